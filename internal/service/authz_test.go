package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkravets/todokeeper-server/internal/model"
)

func TestGuard_RequireRole(t *testing.T) {
	guard := NewGuard()

	tests := []struct {
		name     string
		identity model.Identity
		role     string
		wantErr  error
	}{
		{
			name:     "role present",
			identity: model.Identity{Username: "alice", Roles: []string{model.RoleUser}},
			role:     model.RoleUser,
		},
		{
			name:     "role missing",
			identity: model.Identity{Username: "alice", Roles: []string{model.RoleUser}},
			role:     model.RoleAdmin,
			wantErr:  model.ErrForbidden,
		},
		{
			name:     "no roles at all",
			identity: model.Identity{Username: "alice"},
			role:     model.RoleUser,
			wantErr:  model.ErrForbidden,
		},
		{
			name:     "admin holds both roles",
			identity: model.Identity{Username: "root", Roles: []string{model.RoleUser, model.RoleAdmin}},
			role:     model.RoleAdmin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guard.RequireRole(tt.identity, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGuard_RequireOwnership(t *testing.T) {
	guard := NewGuard()

	tests := []struct {
		name     string
		identity model.Identity
		owner    string
		wantErr  error
	}{
		{
			name:     "owner matches",
			identity: model.Identity{Username: "alice", Roles: []string{model.RoleUser}},
			owner:    "alice",
		},
		{
			name:     "foreign resource",
			identity: model.Identity{Username: "bob", Roles: []string{model.RoleUser}},
			owner:    "alice",
			wantErr:  model.ErrForbidden,
		},
		{
			name:     "admin bypasses ownership",
			identity: model.Identity{Username: "root", Roles: []string{model.RoleAdmin}},
			owner:    "alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guard.RequireOwnership(tt.identity, tt.owner)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
