package service

import (
	"github.com/deppfellow/jobly/internal/lib/token"
	"github.com/deppfellow/jobly/internal/repository"
	"github.com/deppfellow/jobly/internal/server"
)

type Services struct {
	Auth    *AuthService
	Company *CompanyService
	Job     *JobService
	User    *UserService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	tokens := token.NewManager(s.Config.Auth.SecretKey, s.Config.Auth.TokenTTL)

	return &Services{
		Auth:    NewAuthService(repos.User, tokens, s.Job),
		Company: NewCompanyService(repos.Company),
		Job:     NewJobService(repos.Job),
		User:    NewUserService(repos.User, tokens),
	}, nil
}
