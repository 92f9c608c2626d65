package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkravets/todokeeper-server/internal/logger"
	"github.com/mkravets/todokeeper-server/internal/model"
)

// UserService defines profile operations for the authenticated account.
type UserService interface {
	GetByUsername(ctx context.Context, username string) (model.User, error)
	UpdateProfile(ctx context.Context, username string, params model.UpdateUserParams) (model.User, error)
}

// User handles the /api/user profile endpoints.
type User struct {
	userService    UserService
	guard          AccessGuard
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, guard AccessGuard, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		userService:    userService,
		guard:          guard,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Me returns the caller's own profile.
func (h *User) Me(c echo.Context) error {
	identity, err := identityFrom(c, h.contextManager)
	if err != nil {
		return err
	}
	if err := h.guard.RequireRole(identity, model.RoleUser); err != nil {
		return handleError(err)
	}

	user, err := h.userService.GetByUsername(c.Request().Context(), identity.Username)
	if err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateMe applies the fields present in the request to the caller's
// profile.
func (h *User) UpdateMe(c echo.Context) error {
	identity, err := identityFrom(c, h.contextManager)
	if err != nil {
		return err
	}
	if err := h.guard.RequireRole(identity, model.RoleUser); err != nil {
		return handleError(err)
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return handleError(model.ErrInvalidInput)
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), identity.Username, model.UpdateUserParams{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.logger.Error("User handler: profile update failed",
			"username", identity.Username,
			"error", err.Error())
		return handleError(err)
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}
