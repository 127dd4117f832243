package repository

import (
	"github.com/deppfellow/jobly/internal/lib/password"
	"github.com/deppfellow/jobly/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Company *CompanyRepository
	Job     *JobRepository
	User    *UserRepository
}

// NewRepositories wires every repository to the shared pool.
func NewRepositories(s *server.Server) *Repositories {
	hasher := password.NewHasher(s.Config.Auth.BcryptWorkFactor)

	return &Repositories{
		Company: NewCompanyRepository(s.DB.Pool),
		Job:     NewJobRepository(s.DB.Pool),
		User:    NewUserRepository(s.DB.Pool, hasher),
	}
}
