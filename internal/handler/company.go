package handler

import (
	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/deppfellow/jobly/internal/service"
	"github.com/labstack/echo/v4"
)

type CompanyHandler struct {
	Handler
	companies *service.CompanyService
}

func NewCompanyHandler(s *server.Server, companies *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		Handler:   NewHandler(s),
		companies: companies,
	}
}

func (h *CompanyHandler) Create(c echo.Context, req *model.CreateCompanyRequest) (*model.CompanyResponse, error) {
	company, err := h.companies.Create(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	return &model.CompanyResponse{Company: company}, nil
}

func (h *CompanyHandler) List(c echo.Context, req *model.SearchCompaniesRequest) (*model.CompaniesResponse, error) {
	companies, err := h.companies.FindAll(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	return &model.CompaniesResponse{Companies: companies}, nil
}

func (h *CompanyHandler) Get(c echo.Context, req *model.CompanyHandleRequest) (*model.CompanyWithJobsResponse, error) {
	company, err := h.companies.Get(c.Request().Context(), req.Handle)
	if err != nil {
		return nil, err
	}
	return &model.CompanyWithJobsResponse{Company: company}, nil
}

func (h *CompanyHandler) Update(c echo.Context, req *model.UpdateCompanyRequest) (*model.CompanyResponse, error) {
	company, err := h.companies.Update(c.Request().Context(), req.Handle, req.Fields)
	if err != nil {
		return nil, err
	}
	return &model.CompanyResponse{Company: company}, nil
}

func (h *CompanyHandler) Delete(c echo.Context, req *model.CompanyHandleRequest) (*model.DeletedResponse, error) {
	if err := h.companies.Remove(c.Request().Context(), req.Handle); err != nil {
		return nil, err
	}
	return &model.DeletedResponse{Deleted: req.Handle}, nil
}
