package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkravets/todokeeper-server/internal/logger"
	"github.com/mkravets/todokeeper-server/internal/model"
)

// AuthService defines signup and login operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Signup(ctx context.Context, params model.CreateUserParams) (model.User, error)
}

// Auth handles the public authentication endpoints.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

// Signup creates a new account and returns it without the password hash.
func (h *Auth) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return handleError(model.ErrInvalidInput)
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return handleError(fmt.Errorf("%w: username, email and password are required", model.ErrInvalidInput))
	}

	user, err := h.authService.Signup(c.Request().Context(), model.CreateUserParams{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.logger.Error("Auth handler: signup failed",
			"username", req.Username,
			"error", err.Error())
		return handleError(err)
	}

	h.logger.Info("Auth handler: signup completed",
		"username", user.Username)

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login authenticates a username/password pair and returns a bearer token.
func (h *Auth) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return handleError(model.ErrInvalidInput)
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: login rejected",
			"username", req.Username)
		return handleError(err)
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}
