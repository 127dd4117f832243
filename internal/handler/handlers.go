package handler

import (
	"github.com/deppfellow/jobly/internal/server"
	"github.com/deppfellow/jobly/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health  *HealthHandler
	Auth    *AuthHandler
	Company *CompanyHandler
	Job     *JobHandler
	User    *UserHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		Auth:    NewAuthHandler(s, services.Auth),
		Company: NewCompanyHandler(s, services.Company),
		Job:     NewJobHandler(s, services.Job),
		User:    NewUserHandler(s, services.User),
	}
}
