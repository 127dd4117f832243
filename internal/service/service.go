// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"context"

	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/repository"
)

// The stores below are the repository methods each service depends on.
// *repository.CompanyRepository, *repository.JobRepository and
// *repository.UserRepository implement them.

type CompanyStore interface {
	Create(ctx context.Context, p repository.CreateCompanyParams) (*model.Company, error)
	FindAll(ctx context.Context, f repository.CompanyFilter) ([]model.Company, error)
	Get(ctx context.Context, handle string) (*model.CompanyWithJobs, error)
	Update(ctx context.Context, handle string, data *model.Fields) (*model.Company, error)
	Remove(ctx context.Context, handle string) error
}

type JobStore interface {
	Create(ctx context.Context, p repository.CreateJobParams) (*model.Job, error)
	FindAll(ctx context.Context, f repository.JobFilter) ([]model.Job, error)
	Get(ctx context.Context, id int) (*model.Job, error)
	Update(ctx context.Context, id int, data *model.Fields) (*model.Job, error)
	Remove(ctx context.Context, id int) error
}

type UserStore interface {
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	Register(ctx context.Context, p repository.RegisterUserParams) (*model.User, error)
	FindAll(ctx context.Context) ([]model.UserWithJobs, error)
	Get(ctx context.Context, username string) (*model.UserWithJobs, error)
	Update(ctx context.Context, username string, data *model.Fields) (*model.User, error)
	Remove(ctx context.Context, username string) error
	ApplyForJob(ctx context.Context, username string, jobID int) (*model.Application, error)
}

// WelcomeMailer schedules the welcome email. *job.JobService implements it.
type WelcomeMailer interface {
	EnqueueWelcomeEmail(ctx context.Context, to, firstName string) error
}

var (
	_ CompanyStore = (*repository.CompanyRepository)(nil)
	_ JobStore     = (*repository.JobRepository)(nil)
	_ UserStore    = (*repository.UserRepository)(nil)
)
