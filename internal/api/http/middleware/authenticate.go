package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mkravets/todokeeper-server/internal/logger"
	"github.com/mkravets/todokeeper-server/internal/model"
)

// TokenParser extracts the subject username from a bearer token.
type TokenParser interface {
	Parse(token string) (string, error)
}

// UserResolver loads the current user record for a token subject.
type UserResolver interface {
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

// Authenticate validates bearer tokens and injects the resolved identity
// into the request context. The user record is re-read from the store on
// every request: a token outlives its account only until the account's
// next request, since a deactivated or deleted user fails here regardless
// of token validity.
type Authenticate struct {
	tokens         TokenParser
	users          UserResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens TokenParser, users UserResolver, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, users: users, contextManager: contextManager, logger: logger}
}

// Handle parses the Authorization header, validates the token, resolves
// the live user and stores the identity on the request context.
func (m *Authenticate) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if header == "" || tokenString == header {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		identity, err := m.resolveIdentity(c.Request().Context(), tokenString)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, model.ErrUnauthenticated.Error())
		}

		ctx := m.contextManager.SetIdentityToContext(c.Request().Context(), identity)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

func (m *Authenticate) resolveIdentity(ctx context.Context, tokenString string) (model.Identity, error) {
	username, err := m.tokens.Parse(tokenString)
	if err != nil {
		m.logger.Debug("Authenticate middleware: token rejected",
			"error", err.Error())
		return model.Identity{}, model.ErrUnauthenticated
	}

	user, err := m.users.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return model.Identity{}, model.ErrUnauthenticated
	}
	if err != nil {
		m.logger.Error("Authenticate middleware: failed to resolve user",
			"username", username,
			"error", err.Error())
		return model.Identity{}, model.ErrUnauthenticated
	}

	if !user.Active {
		m.logger.Info("Authenticate middleware: token for inactive account",
			"username", username)
		return model.Identity{}, model.ErrUnauthenticated
	}

	return model.Identity{Username: user.Username, Roles: user.Roles}, nil
}
