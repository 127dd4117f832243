package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/jobly/internal/lib/sqlutil"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const jobColumns = `id, title, salary, equity, company_handle`

// Only these fields can change; id and companyHandle are fixed at creation.
var jobUpdatableFields = []string{"title", "salary", "equity"}

// JobFilter narrows FindAll. HasEquity false means no equity constraint.
type JobFilter struct {
	Title     *string
	MinSalary *int
	HasEquity bool
}

// CreateJobParams are the columns of a new job.
type CreateJobParams struct {
	Title         string
	Salary        *int
	Equity        decimal.NullDecimal
	CompanyHandle string
}

type JobRepository struct {
	db Querier
}

func NewJobRepository(db Querier) *JobRepository {
	return &JobRepository{db: db}
}

// equityArg binds equity as its decimal text, or NULL.
func equityArg(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.String()
}

// Create inserts a job. An unknown company handle fails on the foreign key.
func (r *JobRepository) Create(ctx context.Context, p CreateJobParams) (*model.Job, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ($1, $2, $3, $4)
		RETURNING `+jobColumns,
		p.Title, p.Salary, equityArg(p.Equity), p.CompanyHandle,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert job: %w", err)
	}

	job, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
	if err != nil {
		return nil, fmt.Errorf("failed to insert job: %w", err)
	}

	return &job, nil
}

// FindAll lists jobs matching f, ordered by id.
func (r *JobRepository) FindAll(ctx context.Context, f JobFilter) ([]model.Job, error) {
	var where sqlutil.Where
	if f.Title != nil && *f.Title != "" {
		where.Add("title", "ILIKE", sqlutil.ContainsPattern(*f.Title))
	}
	if f.MinSalary != nil {
		where.Add("salary", ">=", *f.MinSalary)
	}
	if f.HasEquity {
		where.AddRaw("equity > 0")
	}

	query := fmt.Sprintf(`SELECT %s FROM jobs %s ORDER BY id`, jobColumns, where.SQL())

	rows, err := r.db.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	jobs, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	if jobs == nil {
		jobs = []model.Job{}
	}

	return jobs, nil
}

func (r *JobRepository) Get(ctx context.Context, id int) (*model.Job, error) {
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	job, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("No job: %d", id)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

// Update applies a partial update of title, salary and equity. Any other
// key is rejected before a query is built.
func (r *JobRepository) Update(ctx context.Context, id int, data *model.Fields) (*model.Job, error) {
	if err := rejectUnknownFields(data, jobUpdatableFields...); err != nil {
		return nil, err
	}

	set, err := sqlutil.PartialUpdate(data, nil)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE jobs SET %s WHERE id = $%d RETURNING %s`,
		set.SetCols, set.NextPlaceholder(), jobColumns)

	rows, err := r.db.Query(ctx, query, append(set.Values, id)...)
	if err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	job, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("No job: %d", id)
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	return &job, nil
}

func (r *JobRepository) Remove(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("No job: %d", id)
	}
	return nil
}
