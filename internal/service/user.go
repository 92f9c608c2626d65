package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkravets/todokeeper-server/internal/logger"
	"github.com/mkravets/todokeeper-server/internal/model"
)

// User manages accounts: profile operations for the account itself and
// administrative list/delete/status operations. Role gating happens at the
// call site via Guard before these are invoked.
type User struct {
	userStore model.UserStore
	logger    *logger.Logger
}

func NewUser(userStore model.UserStore, logger *logger.Logger) *User {
	return &User{
		userStore: userStore,
		logger:    logger,
	}
}

// GetByUsername returns the account with the given username.
func (s *User) GetByUsername(ctx context.Context, username string) (model.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

// UpdateProfile applies the fields present in params to the account. A
// changed email is re-checked for uniqueness before the write; the unique
// index settles concurrent changes.
func (s *User) UpdateProfile(ctx context.Context, username string, params model.UpdateUserParams) (model.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return model.User{}, err
	}

	if params.Email != nil && *params.Email != user.Email {
		taken, err := s.userStore.ExistsByEmail(ctx, *params.Email)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return model.User{}, model.ErrDuplicateEmail
		}
		user.Email = *params.Email
	}
	if params.FirstName != nil {
		user.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		user.LastName = *params.LastName
	}

	updated, err := s.userStore.Update(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User service: profile updated",
		"username", username)

	return updated, nil
}

// List returns every account. Admin-only; the caller gates the role.
func (s *User) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// Delete removes an account permanently. Its todos go with it.
func (s *User) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("User service: user deleted",
		"user_id", id)

	return nil
}

// SetActive toggles the account's active flag. Deactivation takes effect
// on the user's very next request: the access guard re-resolves the flag
// from the store each time, so outstanding tokens die with the account.
func (s *User) SetActive(ctx context.Context, id uuid.UUID, active bool) (model.User, error) {
	user, err := s.userStore.SetActive(ctx, id, active)
	if err != nil {
		return model.User{}, err
	}

	s.logger.Info("User service: active flag changed",
		"user_id", id,
		"active", active)

	return user, nil
}
