package handler

import (
	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/deppfellow/jobly/internal/service"
	"github.com/labstack/echo/v4"
)

type JobHandler struct {
	Handler
	jobs *service.JobService
}

func NewJobHandler(s *server.Server, jobs *service.JobService) *JobHandler {
	return &JobHandler{
		Handler: NewHandler(s),
		jobs:    jobs,
	}
}

func (h *JobHandler) Create(c echo.Context, req *model.CreateJobRequest) (*model.JobResponse, error) {
	job, err := h.jobs.Create(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	return &model.JobResponse{Job: job}, nil
}

func (h *JobHandler) List(c echo.Context, req *model.SearchJobsRequest) (*model.JobsResponse, error) {
	jobs, err := h.jobs.FindAll(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	return &model.JobsResponse{Jobs: jobs}, nil
}

func (h *JobHandler) Get(c echo.Context, req *model.JobIDRequest) (*model.JobResponse, error) {
	job, err := h.jobs.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return &model.JobResponse{Job: job}, nil
}

func (h *JobHandler) Update(c echo.Context, req *model.UpdateJobRequest) (*model.JobResponse, error) {
	job, err := h.jobs.Update(c.Request().Context(), req.ID, req.Fields)
	if err != nil {
		return nil, err
	}
	return &model.JobResponse{Job: job}, nil
}

func (h *JobHandler) Delete(c echo.Context, req *model.JobIDRequest) (*model.DeletedResponse, error) {
	if err := h.jobs.Remove(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}
	return &model.DeletedResponse{Deleted: req.ID}, nil
}
