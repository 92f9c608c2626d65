package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	httpctx "github.com/mkravets/todokeeper-server/internal/api/http/context"
	"github.com/mkravets/todokeeper-server/internal/model"
	"github.com/mkravets/todokeeper-server/internal/service"
)

var (
	aliceIdentity = model.Identity{Username: "alice", Roles: []string{model.RoleUser}}
	bobIdentity   = model.Identity{Username: "bob", Roles: []string{model.RoleUser}}
	adminIdentity = model.Identity{Username: "root", Roles: []string{model.RoleUser, model.RoleAdmin}}
)

var ctxManager = httpctx.NewManager()

func testGuard() AccessGuard {
	return service.NewGuard()
}

// newJSONContext builds an echo context for a JSON request. An empty body
// yields a request without a payload.
func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

// asIdentity attaches a resolved identity the way the authentication
// middleware would.
func asIdentity(c echo.Context, identity model.Identity) {
	ctx := ctxManager.SetIdentityToContext(c.Request().Context(), identity)
	c.SetRequest(c.Request().WithContext(ctx))
}

// requireHTTPError asserts the handler returned an echo error with the
// given status.
func requireHTTPError(t *testing.T, err error, wantCode int) {
	t.Helper()

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, wantCode, httpErr.Code)
}
