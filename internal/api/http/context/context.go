package context

import (
	"context"

	"github.com/mkravets/todokeeper-server/internal/model"
)

type contextKey int

// identityKey is the context key under which the resolved caller identity
// is stored for the lifetime of a request.
const identityKey contextKey = iota

// Manager stores and retrieves the resolved identity on a request context.
// Handlers read the identity here and pass it explicitly into services;
// nothing below the API layer touches the context for identity.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

var _ model.ContextManager = (*Manager)(nil)

// SetIdentityToContext returns a child context carrying the identity.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentityFromContext retrieves the identity set by the authentication
// middleware. The boolean reports whether one was present.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(model.Identity)
	return identity, ok
}
