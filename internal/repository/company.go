package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/lib/sqlutil"
	"github.com/deppfellow/jobly/internal/lib/utils"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const companyColumns = `handle, name, description, num_employees, logo_url`

var (
	// companyUpdateColumns maps request fields to columns for partial updates.
	companyUpdateColumns = map[string]string{
		"numEmployees": "num_employees",
		"logoUrl":      "logo_url",
	}
	companyUpdatableFields = []string{"name", "description", "numEmployees", "logoUrl"}

	ErrInvalidEmployeeRange = errs.NewBadRequestError(
		"Min employees cannot be greater than max", true, errs.Code("INVALID_EMPLOYEE_RANGE"), nil,
	)
)

// CompanyFilter narrows FindAll. Nil fields are ignored.
type CompanyFilter struct {
	Name         *string
	MinEmployees *int
	MaxEmployees *int
}

// CreateCompanyParams are the columns of a new company.
type CreateCompanyParams struct {
	Handle       string
	Name         string
	Description  string
	NumEmployees *int
	LogoURL      *string
}

type CompanyRepository struct {
	db Querier
}

func NewCompanyRepository(db Querier) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func duplicateCompany(handle string) error {
	return duplicate("COMPANY_ALREADY_EXISTS", "Duplicate company: %s", handle)
}

// Create inserts a company. A taken handle is a duplicate, whether it is
// seen by the pre-check or by the primary key.
func (r *CompanyRepository) Create(ctx context.Context, p CreateCompanyParams) (*model.Company, error) {
	taken, err := exists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM companies WHERE handle = $1)`, p.Handle)
	if err != nil {
		return nil, fmt.Errorf("failed to check company handle: %w", err)
	}
	if taken {
		return nil, duplicateCompany(p.Handle)
	}

	rows, err := r.db.Query(ctx, `
		INSERT INTO companies (handle, name, description, num_employees, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+companyColumns,
		p.Handle, p.Name, p.Description, p.NumEmployees, p.LogoURL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert company: %w", err)
	}

	company, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Company])
	if err != nil {
		if sqlerr.IsUniqueViolation(err) && sqlerr.ConstraintName(err) == "companies_pkey" {
			return nil, duplicateCompany(p.Handle)
		}
		return nil, fmt.Errorf("failed to insert company: %w", err)
	}

	return &company, nil
}

// FindAll lists companies matching f, ordered by name.
func (r *CompanyRepository) FindAll(ctx context.Context, f CompanyFilter) ([]model.Company, error) {
	if f.MinEmployees != nil && f.MaxEmployees != nil && *f.MinEmployees > *f.MaxEmployees {
		return nil, ErrInvalidEmployeeRange
	}

	var where sqlutil.Where
	if f.Name != nil && *f.Name != "" {
		where.Add("name", "ILIKE", sqlutil.ContainsPattern(*f.Name))
	}
	if f.MinEmployees != nil {
		where.Add("num_employees", ">=", *f.MinEmployees)
	}
	if f.MaxEmployees != nil {
		where.Add("num_employees", "<=", *f.MaxEmployees)
	}

	query := fmt.Sprintf(`SELECT %s FROM companies %s ORDER BY name`, companyColumns, where.SQL())

	rows, err := r.db.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	companies, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Company])
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	if companies == nil {
		companies = []model.Company{}
	}

	return companies, nil
}

// Get returns a company with its jobs ordered by id. A company without
// jobs has an empty, non-nil Jobs slice.
func (r *CompanyRepository) Get(ctx context.Context, handle string) (*model.CompanyWithJobs, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.handle, c.name, c.description, c.num_employees, c.logo_url,
		       j.id, j.title, j.salary, j.equity
		FROM companies c
		LEFT JOIN jobs j ON j.company_handle = c.handle
		WHERE c.handle = $1
		ORDER BY j.id`,
		handle,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	var (
		result   *model.CompanyWithJobs
		company  model.Company
		jobID    *int
		jobTitle *string
		salary   *int
		equity   decimal.NullDecimal
	)

	_, err = pgx.ForEachRow(rows,
		[]any{
			&company.Handle, &company.Name, &company.Description, &company.NumEmployees, &company.LogoURL,
			&jobID, &jobTitle, &salary, &equity,
		},
		func() error {
			if result == nil {
				result = &model.CompanyWithJobs{Company: company, Jobs: []model.CompanyJob{}}
			}
			// The outer join yields one all-null job row for a company without jobs.
			if jobID == nil {
				return nil
			}
			job := model.CompanyJob{
				ID:     *jobID,
				Title:  utils.Deref(jobTitle),
				Equity: equity,
			}
			if salary != nil {
				job.Salary = utils.Ptr(*salary)
			}
			result.Jobs = append(result.Jobs, job)
			return nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	if result == nil {
		return nil, notFound("No company: %s", handle)
	}

	return result, nil
}

// Update applies a partial update. data may contain name, description,
// numEmployees and logoUrl.
func (r *CompanyRepository) Update(ctx context.Context, handle string, data *model.Fields) (*model.Company, error) {
	if err := rejectUnknownFields(data, companyUpdatableFields...); err != nil {
		return nil, err
	}

	set, err := sqlutil.PartialUpdate(data, companyUpdateColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE companies SET %s WHERE handle = $%d RETURNING %s`,
		set.SetCols, set.NextPlaceholder(), companyColumns)

	rows, err := r.db.Query(ctx, query, append(set.Values, handle)...)
	if err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	company, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Company])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("No company: %s", handle)
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	return &company, nil
}

// Remove deletes a company; its jobs go with it (ON DELETE CASCADE).
func (r *CompanyRepository) Remove(ctx context.Context, handle string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM companies WHERE handle = $1`, handle)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("No company: %s", handle)
	}
	return nil
}
