package service

import (
	"github.com/mkravets/todokeeper-server/internal/model"
)

// Guard holds the authorization policy: pure checks over an already
// resolved identity and resource metadata. It does no I/O, which keeps the
// policy testable without any store.
type Guard struct{}

func NewGuard() *Guard {
	return &Guard{}
}

// RequireRole passes when the identity holds the given role.
func (g *Guard) RequireRole(identity model.Identity, role string) error {
	if identity.HasRole(role) {
		return nil
	}
	return model.ErrForbidden
}

// RequireOwnership passes when the identity owns the resource. An admin
// identity bypasses the ownership check.
func (g *Guard) RequireOwnership(identity model.Identity, resourceOwner string) error {
	if identity.HasRole(model.RoleAdmin) {
		return nil
	}
	if identity.Username == resourceOwner {
		return nil
	}
	return model.ErrForbidden
}
