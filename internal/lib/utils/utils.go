// Package utils contains small helpers used across the project.
package utils

import (
	"math"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns *p, or the zero value when p is nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// NormalizeNumber turns a whole float64 (how JSON numbers decode into
// `any`) into an int64 so it binds to integer columns. float64(MaxInt64)
// rounds up to 2^63, so the upper bound is exclusive.
func NormalizeNumber(v any) any {
	f, ok := v.(float64)
	if !ok {
		return v
	}
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f)
	}
	return f
}

// NormalizeNumbers applies NormalizeNumber to every value of m in place.
func NormalizeNumbers(m *orderedmap.OrderedMap[string, any]) {
	if m == nil {
		return
	}
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		pair.Value = NormalizeNumber(pair.Value)
	}
}
