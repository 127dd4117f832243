package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/lib/token"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUsers implements UserStore with canned results.
type fakeUsers struct {
	user       *model.User
	err        error
	registered repository.RegisterUserParams
	updated    *model.Fields
}

func (f *fakeUsers) Authenticate(_ context.Context, username, _ string) (*model.User, error) {
	return f.user, f.err
}

func (f *fakeUsers) Register(_ context.Context, p repository.RegisterUserParams) (*model.User, error) {
	f.registered = p
	if f.err != nil {
		return nil, f.err
	}
	return &model.User{Username: p.Username, FirstName: p.FirstName, Email: p.Email, IsAdmin: p.IsAdmin}, nil
}

func (f *fakeUsers) FindAll(context.Context) ([]model.UserWithJobs, error) { return nil, f.err }

func (f *fakeUsers) Get(context.Context, string) (*model.UserWithJobs, error) { return nil, f.err }

func (f *fakeUsers) Update(_ context.Context, _ string, data *model.Fields) (*model.User, error) {
	f.updated = data
	return f.user, f.err
}

func (f *fakeUsers) Remove(context.Context, string) error { return f.err }

func (f *fakeUsers) ApplyForJob(_ context.Context, username string, jobID int) (*model.Application, error) {
	return &model.Application{Username: username, JobID: jobID}, f.err
}

type fakeMailer struct {
	to, firstName string
	err           error
}

func (m *fakeMailer) EnqueueWelcomeEmail(_ context.Context, to, firstName string) error {
	m.to, m.firstName = to, firstName
	return m.err
}

func newTokens() *token.Manager {
	return token.NewManager("test-secret", time.Hour)
}

func TestLogin(t *testing.T) {
	tokens := newTokens()

	t.Run("issues token with admin flag", func(t *testing.T) {
		svc := NewAuthService(&fakeUsers{user: &model.User{Username: "u1", IsAdmin: true}}, tokens, nil)

		signed, err := svc.Login(context.Background(), &model.AuthRequest{Username: "u1", Password: "password1"})
		require.NoError(t, err)

		claims, err := tokens.Verify(signed)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.Username)
		assert.True(t, claims.IsAdmin)
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc := NewAuthService(&fakeUsers{err: repository.ErrInvalidCredentials}, tokens, nil)

		_, err := svc.Login(context.Background(), &model.AuthRequest{Username: "u1", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, errs.StatusOf(err))
	})
}

func TestRegister(t *testing.T) {
	tokens := newTokens()

	t.Run("never admin and sends welcome email", func(t *testing.T) {
		users := &fakeUsers{}
		mailer := &fakeMailer{}
		svc := NewAuthService(users, tokens, mailer)

		signed, err := svc.Register(context.Background(), &model.RegisterRequest{
			Username: "new", Password: "password", FirstName: "first", LastName: "last", Email: "new@email.com",
		})
		require.NoError(t, err)

		assert.False(t, users.registered.IsAdmin)
		assert.Equal(t, "new@email.com", mailer.to)
		assert.Equal(t, "first", mailer.firstName)

		claims, err := tokens.Verify(signed)
		require.NoError(t, err)
		assert.Equal(t, "new", claims.Username)
		assert.False(t, claims.IsAdmin)
	})

	t.Run("queue failure does not fail registration", func(t *testing.T) {
		svc := NewAuthService(&fakeUsers{}, tokens, &fakeMailer{err: errors.New("redis down")})

		_, err := svc.Register(context.Background(), &model.RegisterRequest{
			Username: "new", Password: "password", FirstName: "first", LastName: "last", Email: "new@email.com",
		})
		assert.NoError(t, err)
	})

	t.Run("duplicate", func(t *testing.T) {
		dup := errs.NewBadRequestError("Duplicate username: u1", true, errs.Code("USER_ALREADY_EXISTS"), nil)
		mailer := &fakeMailer{}
		svc := NewAuthService(&fakeUsers{err: dup}, tokens, mailer)

		_, err := svc.Register(context.Background(), &model.RegisterRequest{Username: "u1"})
		assert.ErrorIs(t, err, dup)
		assert.Empty(t, mailer.to)
	})
}

func TestUserCreateReturnsToken(t *testing.T) {
	tokens := newTokens()
	svc := NewUserService(&fakeUsers{}, tokens)

	user, signed, err := svc.Create(context.Background(), &model.CreateUserRequest{
		Username: "admin2", Password: "password", FirstName: "A", LastName: "B", Email: "a@b.com", IsAdmin: true,
	})
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestUserUpdateIsAdminRequiresAdmin(t *testing.T) {
	data, err := model.FieldsFromJSON(`{"isAdmin":true}`)
	require.NoError(t, err)

	t.Run("non-admin", func(t *testing.T) {
		users := &fakeUsers{user: &model.User{Username: "u1"}}
		svc := NewUserService(users, newTokens())

		_, err := svc.Update(context.Background(), "u1", data, false)
		assert.Equal(t, http.StatusUnauthorized, errs.StatusOf(err))
		assert.Nil(t, users.updated)
	})

	t.Run("admin", func(t *testing.T) {
		users := &fakeUsers{user: &model.User{Username: "u1", IsAdmin: true}}
		svc := NewUserService(users, newTokens())

		user, err := svc.Update(context.Background(), "u1", data, true)
		require.NoError(t, err)
		assert.True(t, user.IsAdmin)
		assert.Same(t, data, users.updated)
	})
}
