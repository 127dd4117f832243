package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/lib/password"
	"github.com/deppfellow/jobly/internal/lib/sqlutil"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const userColumns = `username, first_name, last_name, email, is_admin`

var (
	userUpdateColumns = map[string]string{
		"firstName": "first_name",
		"lastName":  "last_name",
		"isAdmin":   "is_admin",
	}
	userUpdatableFields = []string{"firstName", "lastName", "password", "email", "isAdmin"}

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so callers cannot tell them apart.
	ErrInvalidCredentials = errs.NewUnauthorizedError("Invalid username/password", true)
)

// RegisterUserParams are the fields of a new user; Password is plain text.
type RegisterUserParams struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	IsAdmin   bool
}

type UserRepository struct {
	db     Querier
	hasher *password.Hasher
}

func NewUserRepository(db Querier, hasher *password.Hasher) *UserRepository {
	return &UserRepository{db: db, hasher: hasher}
}

func duplicateUser(username string) error {
	return duplicate("USER_ALREADY_EXISTS", "Duplicate username: %s", username)
}

// Authenticate checks username and password and returns the user.
func (r *UserRepository) Authenticate(ctx context.Context, username, plain string) (*model.User, error) {
	var (
		user model.User
		hash string
	)

	err := r.db.QueryRow(ctx, `
		SELECT username, password, first_name, last_name, email, is_admin
		FROM users
		WHERE username = $1`,
		username,
	).Scan(&user.Username, &hash, &user.FirstName, &user.LastName, &user.Email, &user.IsAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.hasher.CompareDummy(plain)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}

	if err := r.hasher.Compare(hash, plain); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// Register creates a user with a hashed password.
func (r *UserRepository) Register(ctx context.Context, p RegisterUserParams) (*model.User, error) {
	taken, err := exists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, p.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, duplicateUser(p.Username)
	}

	hash, err := r.hasher.Hash(p.Password)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		INSERT INTO users (username, password, first_name, last_name, email, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		p.Username, hash, p.FirstName, p.LastName, p.Email, p.IsAdmin,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		if sqlerr.IsUniqueViolation(err) && sqlerr.ConstraintName(err) == "users_pkey" {
			return nil, duplicateUser(p.Username)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &user, nil
}

// FindAll lists every user with the ids of the jobs they applied to,
// ordered by username.
func (r *UserRepository) FindAll(ctx context.Context) ([]model.UserWithJobs, error) {
	return r.queryWithJobs(ctx, ``)
}

// Get returns one user with the ids of the jobs they applied to.
func (r *UserRepository) Get(ctx context.Context, username string) (*model.UserWithJobs, error) {
	users, err := r.queryWithJobs(ctx, `WHERE u.username = $1`, username)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, notFound("No user: %s", username)
	}
	return &users[0], nil
}

// queryWithJobs joins users to applications and folds the row-per-application
// result into one record per user. Users without applications get an empty
// JobsApplied.
func (r *UserRepository) queryWithJobs(ctx context.Context, where string, args ...any) ([]model.UserWithJobs, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.username, u.first_name, u.last_name, u.email, u.is_admin, a.job_id
		FROM users u
		LEFT JOIN applications a ON a.username = u.username
		`+where+`
		ORDER BY u.username, a.job_id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var (
		users = []model.UserWithJobs{}
		user  model.User
		jobID *int
	)

	_, err = pgx.ForEachRow(rows,
		[]any{&user.Username, &user.FirstName, &user.LastName, &user.Email, &user.IsAdmin, &jobID},
		func() error {
			if len(users) == 0 || users[len(users)-1].Username != user.Username {
				users = append(users, model.UserWithJobs{User: user, JobsApplied: []int{}})
			}
			if jobID != nil {
				current := &users[len(users)-1]
				current.JobsApplied = append(current.JobsApplied, *jobID)
			}
			return nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// Update applies a partial update. A password in data is hashed before it
// is written; data itself is left untouched.
func (r *UserRepository) Update(ctx context.Context, username string, data *model.Fields) (*model.User, error) {
	if err := rejectUnknownFields(data, userUpdatableFields...); err != nil {
		return nil, err
	}

	data, err := r.hashPasswordField(data)
	if err != nil {
		return nil, err
	}

	set, err := sqlutil.PartialUpdate(data, userUpdateColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE users SET %s WHERE username = $%d RETURNING %s`,
		set.SetCols, set.NextPlaceholder(), userColumns)

	rows, err := r.db.Query(ctx, query, append(set.Values, username)...)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("No user: %s", username)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &user, nil
}

// hashPasswordField returns a copy of data with the password hashed, or
// data unchanged when it has no password.
func (r *UserRepository) hashPasswordField(data *model.Fields) (*model.Fields, error) {
	if data == nil {
		return nil, nil
	}

	raw, ok := data.Get("password")
	if !ok {
		return data, nil
	}

	plain, ok := raw.(string)
	if !ok {
		return nil, errs.NewBadRequestError("Password must be a string", true, nil,
			[]errs.FieldError{{Field: "password", Error: "must be a string"}})
	}

	hash, err := r.hasher.Hash(plain)
	if err != nil {
		return nil, err
	}

	out := orderedmap.New[string, any]()
	for pair := data.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}
	out.Set("password", hash)

	return out, nil
}

func (r *UserRepository) Remove(ctx context.Context, username string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("No user: %s", username)
	}
	return nil
}

// ApplyForJob records that username applied to jobID. Applying twice is a
// no-op that returns the same application.
func (r *UserRepository) ApplyForJob(ctx context.Context, username string, jobID int) (*model.Application, error) {
	jobExists, err := exists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM jobs WHERE id = $1)`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to check job: %w", err)
	}
	if !jobExists {
		return nil, notFound("No job: %d", jobID)
	}

	userExists, err := exists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !userExists {
		return nil, notFound("No user: %s", username)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO applications (username, job_id)
		VALUES ($1, $2)
		ON CONFLICT (username, job_id) DO NOTHING`,
		username, jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to apply for job: %w", err)
	}

	return &model.Application{Username: username, JobID: jobID}, nil
}
