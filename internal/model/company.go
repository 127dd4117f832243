package model

import (
	"github.com/deppfellow/jobly/internal/validation"
	"github.com/shopspring/decimal"
)

// Company is a row of the companies table.
type Company struct {
	Handle       string  `json:"handle" db:"handle"`
	Name         string  `json:"name" db:"name"`
	Description  string  `json:"description" db:"description"`
	NumEmployees *int    `json:"numEmployees" db:"num_employees"`
	LogoURL      *string `json:"logoUrl" db:"logo_url"`
}

// CompanyJob is the short job representation nested in a company.
type CompanyJob struct {
	ID     int                 `json:"id" db:"id"`
	Title  string              `json:"title" db:"title"`
	Salary *int                `json:"salary" db:"salary"`
	Equity decimal.NullDecimal `json:"equity" db:"equity"`
}

// CompanyWithJobs is a company and every job it posted.
type CompanyWithJobs struct {
	Company
	Jobs []CompanyJob `json:"jobs"`
}

// ---- requests ----

// CreateCompanyRequest is the body of POST /companies.
type CreateCompanyRequest struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

func (r *CreateCompanyRequest) BodySchema() string { return validation.SchemaCompanyNew }

func (r *CreateCompanyRequest) Validate() error { return nil }

// SearchCompaniesRequest is the query string of GET /companies.
type SearchCompaniesRequest struct {
	Name         *string `query:"name" json:"name,omitempty"`
	MinEmployees *int    `query:"minEmployees" json:"minEmployees,omitempty" validate:"omitempty,min=0"`
	MaxEmployees *int    `query:"maxEmployees" json:"maxEmployees,omitempty" validate:"omitempty,min=0"`
}

func (r *SearchCompaniesRequest) QuerySchema() string { return validation.SchemaCompanySearch }

func (r *SearchCompaniesRequest) Validate() error {
	return validation.Struct(r)
}

// CompanyHandleRequest addresses a single company by path.
type CompanyHandleRequest struct {
	Handle string `param:"handle" validate:"required,max=25"`
}

func (r *CompanyHandleRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateCompanyRequest is PATCH /companies/:handle.
type UpdateCompanyRequest struct {
	Handle string `param:"handle" json:"-" validate:"required,max=25"`
	Fields *Fields `json:"-"`
}

func (r *UpdateCompanyRequest) BodySchema() string { return validation.SchemaCompanyUpdate }

func (r *UpdateCompanyRequest) UnmarshalJSON(data []byte) error {
	fields, err := decodeFields(data)
	if err != nil {
		return err
	}
	r.Fields = fields
	return nil
}

func (r *UpdateCompanyRequest) Validate() error {
	return validation.Struct(r)
}

// ---- responses ----

type CompanyResponse struct {
	Company *Company `json:"company"`
}

type CompanyWithJobsResponse struct {
	Company *CompanyWithJobs `json:"company"`
}

type CompaniesResponse struct {
	Companies []Company `json:"companies"`
}
