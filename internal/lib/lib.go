// Package lib groups helpers that do not belong to a single layer:
// SQL builders (sqlutil), password hashing, bearer tokens, background
// jobs (Asynq) and email delivery (Resend).
package lib
