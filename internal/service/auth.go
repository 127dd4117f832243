package service

import (
	"context"

	"github.com/deppfellow/jobly/internal/lib/token"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/repository"
	"github.com/rs/zerolog"
)

// AuthService exchanges credentials for bearer tokens.
type AuthService struct {
	users  UserStore
	tokens *token.Manager
	mailer WelcomeMailer
}

// NewAuthService returns an AuthService. mailer may be nil, in which case
// no welcome email is sent.
func NewAuthService(users UserStore, tokens *token.Manager, mailer WelcomeMailer) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		mailer: mailer,
	}
}

// Login checks the credentials and returns a token for the user.
func (s *AuthService) Login(ctx context.Context, req *model.AuthRequest) (string, error) {
	user, err := s.users.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(user.Username, user.IsAdmin)
}

// Register creates a non-admin user, queues the welcome email and returns
// a token for the new user.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (string, error) {
	user, err := s.users.Register(ctx, repository.RegisterUserParams{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return "", err
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().Str("username", user.Username).Msg("user registered")

	if s.mailer != nil {
		// The account exists at this point; a queue outage only loses the email.
		if err := s.mailer.EnqueueWelcomeEmail(ctx, user.Email, user.FirstName); err != nil {
			logger.Error().Err(err).Str("username", user.Username).Msg("failed to enqueue welcome email")
		}
	}

	return s.tokens.Issue(user.Username, user.IsAdmin)
}
