package service

import (
	"context"

	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/repository"
)

// JobService manages job postings. Background tasks live in package job.
type JobService struct {
	jobs JobStore
}

func NewJobService(jobs JobStore) *JobService {
	return &JobService{jobs: jobs}
}

func (s *JobService) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	return s.jobs.Create(ctx, repository.CreateJobParams{
		Title:         req.Title,
		Salary:        req.Salary,
		Equity:        req.EquityValue(),
		CompanyHandle: req.CompanyHandle,
	})
}

func (s *JobService) FindAll(ctx context.Context, req *model.SearchJobsRequest) ([]model.Job, error) {
	return s.jobs.FindAll(ctx, repository.JobFilter{
		Title:     req.Title,
		MinSalary: req.MinSalary,
		HasEquity: req.HasEquity,
	})
}

func (s *JobService) Get(ctx context.Context, id int) (*model.Job, error) {
	return s.jobs.Get(ctx, id)
}

func (s *JobService) Update(ctx context.Context, id int, data *model.Fields) (*model.Job, error) {
	return s.jobs.Update(ctx, id, data)
}

func (s *JobService) Remove(ctx context.Context, id int) error {
	return s.jobs.Remove(ctx, id)
}
