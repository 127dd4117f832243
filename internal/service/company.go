package service

import (
	"context"

	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/repository"
)

type CompanyService struct {
	companies CompanyStore
}

func NewCompanyService(companies CompanyStore) *CompanyService {
	return &CompanyService{companies: companies}
}

func (s *CompanyService) Create(ctx context.Context, req *model.CreateCompanyRequest) (*model.Company, error) {
	return s.companies.Create(ctx, repository.CreateCompanyParams{
		Handle:       req.Handle,
		Name:         req.Name,
		Description:  req.Description,
		NumEmployees: req.NumEmployees,
		LogoURL:      req.LogoURL,
	})
}

func (s *CompanyService) FindAll(ctx context.Context, req *model.SearchCompaniesRequest) ([]model.Company, error) {
	return s.companies.FindAll(ctx, repository.CompanyFilter{
		Name:         req.Name,
		MinEmployees: req.MinEmployees,
		MaxEmployees: req.MaxEmployees,
	})
}

func (s *CompanyService) Get(ctx context.Context, handle string) (*model.CompanyWithJobs, error) {
	return s.companies.Get(ctx, handle)
}

func (s *CompanyService) Update(ctx context.Context, handle string, data *model.Fields) (*model.Company, error) {
	return s.companies.Update(ctx, handle, data)
}

func (s *CompanyService) Remove(ctx context.Context, handle string) error {
	return s.companies.Remove(ctx, handle)
}
