package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkravets/todokeeper-server/internal/model"
)

// handleError maps model sentinels to HTTP statuses. Authorization
// failures keep their own status: a caller can always tell "does not
// exist" from "exists but not yours", except at login where the collapse
// is deliberate.
func handleError(err error) error {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, model.ErrNotFound.Error())
	case errors.Is(err, model.ErrDuplicateUsername):
		return echo.NewHTTPError(http.StatusConflict, model.ErrDuplicateUsername.Error())
	case errors.Is(err, model.ErrDuplicateEmail):
		return echo.NewHTTPError(http.StatusConflict, model.ErrDuplicateEmail.Error())
	case errors.Is(err, model.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, model.ErrForbidden.Error())
	case errors.Is(err, model.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, model.ErrUnauthenticated.Error())
	case errors.Is(err, model.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, model.ErrInvalidCredentials.Error())
	case errors.Is(err, model.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
