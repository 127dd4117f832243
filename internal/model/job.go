package model

import (
	"github.com/deppfellow/jobly/internal/validation"
	"github.com/shopspring/decimal"
)

// Job is a row of the jobs table. Equity is exchanged as a string,
// e.g. "0.05".
type Job struct {
	ID            int                 `json:"id" db:"id"`
	Title         string              `json:"title" db:"title"`
	Salary        *int                `json:"salary" db:"salary"`
	Equity        decimal.NullDecimal `json:"equity" db:"equity"`
	CompanyHandle string              `json:"companyHandle" db:"company_handle"`
}

// ParseEquity parses an optional equity string. nil means no equity.
func ParseEquity(s *string) (decimal.NullDecimal, error) {
	if s == nil {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func invalidEquity() error {
	return validation.CustomValidationErrors{{Field: "equity", Message: "must be a decimal between 0 and 1"}}
}

func validEquity(d decimal.NullDecimal) bool {
	return !d.Valid || (!d.Decimal.IsNegative() && d.Decimal.LessThanOrEqual(decimal.NewFromInt(1)))
}

// ---- requests ----

// CreateJobRequest is the body of POST /jobs.
type CreateJobRequest struct {
	Title         string  `json:"title"`
	Salary        *int    `json:"salary"`
	Equity        *string `json:"equity"`
	CompanyHandle string  `json:"companyHandle"`

	equity decimal.NullDecimal
}

func (r *CreateJobRequest) BodySchema() string { return validation.SchemaJobNew }

func (r *CreateJobRequest) Validate() error {
	equity, err := ParseEquity(r.Equity)
	if err != nil || !validEquity(equity) {
		return invalidEquity()
	}
	r.equity = equity
	return nil
}

// EquityValue is the parsed equity, set by Validate.
func (r *CreateJobRequest) EquityValue() decimal.NullDecimal {
	return r.equity
}

// SearchJobsRequest is the query string of GET /jobs.
type SearchJobsRequest struct {
	Title     *string `query:"title" json:"title,omitempty"`
	MinSalary *int    `query:"minSalary" json:"minSalary,omitempty" validate:"omitempty,min=0"`
	HasEquity bool    `query:"hasEquity" json:"hasEquity,omitempty"`
}

func (r *SearchJobsRequest) QuerySchema() string { return validation.SchemaJobSearch }

func (r *SearchJobsRequest) Validate() error {
	return validation.Struct(r)
}

// JobIDRequest addresses a single job by path.
type JobIDRequest struct {
	ID int `param:"id" validate:"required,min=1"`
}

func (r *JobIDRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateJobRequest is PATCH /jobs/:id.
type UpdateJobRequest struct {
	ID     int     `param:"id" json:"-" validate:"required,min=1"`
	Fields *Fields `json:"-"`
}

func (r *UpdateJobRequest) BodySchema() string { return validation.SchemaJobUpdate }

func (r *UpdateJobRequest) UnmarshalJSON(data []byte) error {
	fields, err := decodeFields(data)
	if err != nil {
		return err
	}
	r.Fields = fields
	return nil
}

// Validate also rewrites equity into its canonical decimal string.
func (r *UpdateJobRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.Fields == nil {
		return nil
	}

	raw, ok := r.Fields.Get("equity")
	if !ok || raw == nil {
		return nil
	}

	s, isString := raw.(string)
	if !isString {
		return invalidEquity()
	}
	equity, err := ParseEquity(&s)
	if err != nil || !validEquity(equity) {
		return invalidEquity()
	}
	r.Fields.Set("equity", equity.Decimal.String())
	return nil
}

// ---- responses ----

type JobResponse struct {
	Job *Job `json:"job"`
}

type JobsResponse struct {
	Jobs []Job `json:"jobs"`
}
