package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkravets/todokeeper-server/internal/model"
)

// AccessGuard gates operations on roles and ownership.
type AccessGuard interface {
	RequireRole(identity model.Identity, role string) error
	RequireOwnership(identity model.Identity, resourceOwner string) error
}

// identityFrom pulls the identity the authentication middleware resolved.
// A missing identity means the route was wired without the middleware.
func identityFrom(c echo.Context, cm model.ContextManager) (model.Identity, error) {
	identity, ok := cm.GetIdentityFromContext(c.Request().Context())
	if !ok {
		return model.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, model.ErrUnauthenticated.Error())
	}
	return identity, nil
}
