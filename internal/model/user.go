package model

import (
	"github.com/deppfellow/jobly/internal/validation"
)

// User is a row of the users table without the password hash.
type User struct {
	Username  string `json:"username" db:"username"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	Email     string `json:"email" db:"email"`
	IsAdmin   bool   `json:"isAdmin" db:"is_admin"`
}

// UserWithJobs is a user and the ids of the jobs they applied to.
type UserWithJobs struct {
	User
	JobsApplied []int `json:"jobsApplied"`
}

// Application links a user to a job they applied to.
type Application struct {
	Username string `json:"username" db:"username"`
	JobID    int    `json:"jobId" db:"job_id"`
}

// ---- requests ----

// AuthRequest is the body of POST /auth/token.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *AuthRequest) BodySchema() string { return validation.SchemaUserAuth }

func (r *AuthRequest) Validate() error { return nil }

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (r *RegisterRequest) BodySchema() string { return validation.SchemaUserRegister }

func (r *RegisterRequest) Validate() error { return nil }

// CreateUserRequest is the body of POST /users (admin only).
type CreateUserRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
}

func (r *CreateUserRequest) BodySchema() string { return validation.SchemaUserNew }

func (r *CreateUserRequest) Validate() error { return nil }

// ListUsersRequest has no parameters.
type ListUsersRequest struct{}

func (r *ListUsersRequest) Validate() error { return nil }

// UsernameRequest addresses a single user by path.
type UsernameRequest struct {
	Username string `param:"username" validate:"required,max=25"`
}

func (r *UsernameRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateUserRequest is PATCH /users/:username.
type UpdateUserRequest struct {
	Username string  `param:"username" json:"-" validate:"required,max=25"`
	Fields   *Fields `json:"-"`
}

func (r *UpdateUserRequest) BodySchema() string { return validation.SchemaUserUpdate }

func (r *UpdateUserRequest) UnmarshalJSON(data []byte) error {
	fields, err := decodeFields(data)
	if err != nil {
		return err
	}
	r.Fields = fields
	return nil
}

func (r *UpdateUserRequest) Validate() error {
	return validation.Struct(r)
}

// ApplyRequest is POST /users/:username/jobs/:id.
type ApplyRequest struct {
	Username string `param:"username" validate:"required,max=25"`
	JobID    int    `param:"id" validate:"required,min=1"`
}

func (r *ApplyRequest) Validate() error {
	return validation.Struct(r)
}

// ---- responses ----

type UserResponse struct {
	User any `json:"user"`
}

type UserTokenResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type UsersResponse struct {
	Users []UserWithJobs `json:"users"`
}

type AppliedResponse struct {
	Applied int `json:"applied"`
}
