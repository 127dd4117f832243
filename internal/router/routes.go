package router

import (
	"net/http"

	"github.com/deppfellow/jobly/internal/handler"
	"github.com/deppfellow/jobly/internal/middleware"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/labstack/echo/v4"
)

func registerAuthRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	auth := h.Auth
	g := r.Group("/auth", m.RateLimit.AuthLimiter())

	g.POST("/token", handler.Handle(auth.Handler, auth.Token, http.StatusOK, &model.AuthRequest{}))
	g.POST("/register", handler.Handle(auth.Handler, auth.Register, http.StatusCreated, &model.RegisterRequest{}))
}

func registerCompanyRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	companies := h.Company
	g := r.Group("/companies")

	g.POST("", handler.Handle(companies.Handler, companies.Create, http.StatusCreated, &model.CreateCompanyRequest{}), m.Auth.RequireAdmin)
	g.GET("", handler.Handle(companies.Handler, companies.List, http.StatusOK, &model.SearchCompaniesRequest{}))
	g.GET("/:handle", handler.Handle(companies.Handler, companies.Get, http.StatusOK, &model.CompanyHandleRequest{}))
	g.PATCH("/:handle", handler.Handle(companies.Handler, companies.Update, http.StatusOK, &model.UpdateCompanyRequest{}), m.Auth.RequireAdmin)
	g.DELETE("/:handle", handler.Handle(companies.Handler, companies.Delete, http.StatusOK, &model.CompanyHandleRequest{}), m.Auth.RequireAdmin)
}

func registerJobRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	jobs := h.Job
	g := r.Group("/jobs")

	g.POST("", handler.Handle(jobs.Handler, jobs.Create, http.StatusCreated, &model.CreateJobRequest{}), m.Auth.RequireAdmin)
	g.GET("", handler.Handle(jobs.Handler, jobs.List, http.StatusOK, &model.SearchJobsRequest{}))
	g.GET("/:id", handler.Handle(jobs.Handler, jobs.Get, http.StatusOK, &model.JobIDRequest{}))
	g.PATCH("/:id", handler.Handle(jobs.Handler, jobs.Update, http.StatusOK, &model.UpdateJobRequest{}), m.Auth.RequireAdmin)
	g.DELETE("/:id", handler.Handle(jobs.Handler, jobs.Delete, http.StatusOK, &model.JobIDRequest{}), m.Auth.RequireAdmin)
}

func registerUserRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	users := h.User
	g := r.Group("/users")
	self := m.Auth.RequireAdminOrSelf("username")

	g.POST("", handler.Handle(users.Handler, users.Create, http.StatusCreated, &model.CreateUserRequest{}), m.Auth.RequireAdmin)
	g.GET("", handler.Handle(users.Handler, users.List, http.StatusOK, &model.ListUsersRequest{}), m.Auth.RequireAdmin)
	g.GET("/:username", handler.Handle(users.Handler, users.Get, http.StatusOK, &model.UsernameRequest{}), self)
	g.PATCH("/:username", handler.Handle(users.Handler, users.Update, http.StatusOK, &model.UpdateUserRequest{}), self)
	g.DELETE("/:username", handler.Handle(users.Handler, users.Delete, http.StatusOK, &model.UsernameRequest{}), self)
	g.POST("/:username/jobs/:id", handler.Handle(users.Handler, users.Apply, http.StatusOK, &model.ApplyRequest{}), self)
}
