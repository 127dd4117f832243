package service

import (
	"context"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/lib/token"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/repository"
)

// ErrAdminOnlyField is returned when a non-admin tries to change isAdmin.
var ErrAdminOnlyField = errs.NewUnauthorizedError("Only admins can change isAdmin", true)

type UserService struct {
	users  UserStore
	tokens *token.Manager
}

func NewUserService(users UserStore, tokens *token.Manager) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// Create adds a user on behalf of an admin and returns it with a token
// for the new user.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, string, error) {
	user, err := s.users.Register(ctx, repository.RegisterUserParams{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		return nil, "", err
	}

	signed, err := s.tokens.Issue(user.Username, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}

	return user, signed, nil
}

func (s *UserService) FindAll(ctx context.Context) ([]model.UserWithJobs, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) Get(ctx context.Context, username string) (*model.UserWithJobs, error) {
	return s.users.Get(ctx, username)
}

// Update changes the user's fields. Only an admin caller may set isAdmin.
func (s *UserService) Update(ctx context.Context, username string, data *model.Fields, callerIsAdmin bool) (*model.User, error) {
	if !callerIsAdmin && data != nil {
		if _, ok := data.Get("isAdmin"); ok {
			return nil, ErrAdminOnlyField
		}
	}
	return s.users.Update(ctx, username, data)
}

func (s *UserService) Remove(ctx context.Context, username string) error {
	return s.users.Remove(ctx, username)
}

func (s *UserService) ApplyForJob(ctx context.Context, username string, jobID int) (*model.Application, error) {
	return s.users.ApplyForJob(ctx, username, jobID)
}
