package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mkravets/todokeeper-server/internal/logger"
	"github.com/mkravets/todokeeper-server/internal/model"
)

// AdminService defines administrative account operations.
type AdminService interface {
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) (model.User, error)
}

// Admin handles the /api/admin endpoints. Every operation requires the
// ADMIN role on the resolved identity.
type Admin struct {
	userService    AdminService
	guard          AccessGuard
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAdmin creates a new Admin handler.
func NewAdmin(userService AdminService, guard AccessGuard, contextManager model.ContextManager, logger *logger.Logger) *Admin {
	return &Admin{
		userService:    userService,
		guard:          guard,
		contextManager: contextManager,
		logger:         logger,
	}
}

// ListUsers returns every account.
func (h *Admin) ListUsers(c echo.Context) error {
	identity, err := h.requireAdmin(c)
	if err != nil {
		return err
	}

	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return handleError(err)
	}

	h.logger.Debug("Admin handler: users listed",
		"caller", identity.Username,
		"count", len(users))

	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}
	return c.JSON(http.StatusOK, responses)
}

// DeleteUser removes an account permanently.
func (h *Admin) DeleteUser(c echo.Context) error {
	identity, err := h.requireAdmin(c)
	if err != nil {
		return err
	}
	id, err := userID(c)
	if err != nil {
		return handleError(err)
	}

	if err := h.userService.Delete(c.Request().Context(), id); err != nil {
		return handleError(err)
	}

	h.logger.Info("Admin handler: user deleted",
		"caller", identity.Username,
		"user_id", id)

	return c.NoContent(http.StatusNoContent)
}

// UpdateUserStatus activates or deactivates an account. Deactivation
// invalidates the user's outstanding tokens on their next request.
func (h *Admin) UpdateUserStatus(c echo.Context) error {
	identity, err := h.requireAdmin(c)
	if err != nil {
		return err
	}
	id, err := userID(c)
	if err != nil {
		return handleError(err)
	}

	var req StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return handleError(model.ErrInvalidInput)
	}
	if req.IsActive == nil {
		return handleError(fmt.Errorf("%w: isActive is required", model.ErrInvalidInput))
	}

	user, err := h.userService.SetActive(c.Request().Context(), id, *req.IsActive)
	if err != nil {
		return handleError(err)
	}

	h.logger.Info("Admin handler: user status changed",
		"caller", identity.Username,
		"user_id", id,
		"active", *req.IsActive)

	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *Admin) requireAdmin(c echo.Context) (model.Identity, error) {
	identity, err := identityFrom(c, h.contextManager)
	if err != nil {
		return model.Identity{}, err
	}
	if err := h.guard.RequireRole(identity, model.RoleAdmin); err != nil {
		h.logger.Info("Admin handler: non-admin access denied",
			"caller", identity.Username)
		return model.Identity{}, handleError(err)
	}
	return identity, nil
}

func userID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: user id must be a uuid", model.ErrInvalidInput)
	}
	return id, nil
}
