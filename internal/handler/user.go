package handler

import (
	"github.com/deppfellow/jobly/internal/middleware"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/deppfellow/jobly/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	users *service.UserService
}

func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

// Create handles POST /users, the admin way to add users (possibly admins).
func (h *UserHandler) Create(c echo.Context, req *model.CreateUserRequest) (*model.UserTokenResponse, error) {
	user, signed, err := h.users.Create(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	return &model.UserTokenResponse{User: user, Token: signed}, nil
}

func (h *UserHandler) List(c echo.Context, req *model.ListUsersRequest) (*model.UsersResponse, error) {
	users, err := h.users.FindAll(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &model.UsersResponse{Users: users}, nil
}

func (h *UserHandler) Get(c echo.Context, req *model.UsernameRequest) (*model.UserResponse, error) {
	user, err := h.users.Get(c.Request().Context(), req.Username)
	if err != nil {
		return nil, err
	}
	return &model.UserResponse{User: user}, nil
}

func (h *UserHandler) Update(c echo.Context, req *model.UpdateUserRequest) (*model.UserResponse, error) {
	claims := middleware.GetClaims(c)
	isAdmin := claims != nil && claims.IsAdmin

	user, err := h.users.Update(c.Request().Context(), req.Username, req.Fields, isAdmin)
	if err != nil {
		return nil, err
	}
	return &model.UserResponse{User: user}, nil
}

func (h *UserHandler) Delete(c echo.Context, req *model.UsernameRequest) (*model.DeletedResponse, error) {
	if err := h.users.Remove(c.Request().Context(), req.Username); err != nil {
		return nil, err
	}
	return &model.DeletedResponse{Deleted: req.Username}, nil
}

// Apply handles POST /users/:username/jobs/:id.
func (h *UserHandler) Apply(c echo.Context, req *model.ApplyRequest) (*model.AppliedResponse, error) {
	app, err := h.users.ApplyForJob(c.Request().Context(), req.Username, req.JobID)
	if err != nil {
		return nil, err
	}
	return &model.AppliedResponse{Applied: app.JobID}, nil
}
