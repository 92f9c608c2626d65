package model

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Role names attached to users. Stored in the roles table and seeded by
// migrations.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) (User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]User, error)
}

// User represents a stored user account. PasswordHash never leaves the
// service layer; response mapping strips it.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Active       bool
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the resolved caller of a request: who they are and which
// roles they hold. It is passed explicitly into every service call.
type Identity struct {
	Username string
	Roles    []string
}

// HasRole reports whether the identity holds the given role.
func (i Identity) HasRole(role string) bool {
	return slices.Contains(i.Roles, role)
}

// CreateUserParams contains parameters to sign up a new user. Password is
// plaintext only at this boundary and is hashed before persistence.
type CreateUserParams struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UpdateUserParams contains optional profile fields; nil means unchanged.
type UpdateUserParams struct {
	Email     *string
	FirstName *string
	LastName  *string
}
