package handler

import (
	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/deppfellow/jobly/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

// Token handles POST /auth/token.
func (h *AuthHandler) Token(c echo.Context, req *model.AuthRequest) (*model.TokenResponse, error) {
	signed, err := h.auth.Login(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	return &model.TokenResponse{Token: signed}, nil
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c echo.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	signed, err := h.auth.Register(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	return &model.TokenResponse{Token: signed}, nil
}
