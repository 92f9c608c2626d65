package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkravets/todokeeper-server/internal/logger"
	"github.com/mkravets/todokeeper-server/internal/model"
)

// Auth verifies credentials and creates accounts. Login failures collapse
// into model.ErrInvalidCredentials so callers cannot probe which usernames
// exist.
type Auth struct {
	userStore    model.UserStore
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewAuth(userStore model.UserStore, tokenManager model.TokenManager, logger *logger.Logger) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Login checks the username/password pair and issues a bearer token whose
// subject is the username.
func (a *Auth) Login(ctx context.Context, username, password string) (string, error) {
	a.logger.Debug("Auth service: processing login",
		"username", username)

	user, err := a.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: login for unknown username",
			"username", username)
		return "", model.ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by username",
			"username", username,
			"error", err.Error())
		return "", fmt.Errorf("failed to get user by username: %w", err)
	}

	if !user.Active {
		a.logger.Info("Auth service: login for inactive account",
			"username", username)
		return "", model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		a.logger.Info("Auth service: password mismatch",
			"username", username)
		return "", model.ErrInvalidCredentials
	}

	token, err := a.tokenManager.Generate(user.Username)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"username", username,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed",
		"username", username)

	return token, nil
}

// Signup creates a new active account with the default role. Both
// uniqueness checks run here; the store's unique indexes settle concurrent
// signups for the same username or email.
func (a *Auth) Signup(ctx context.Context, params model.CreateUserParams) (model.User, error) {
	a.logger.Debug("Auth service: processing signup",
		"username", params.Username)

	taken, err := a.userStore.ExistsByUsername(ctx, params.Username)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		a.logger.Info("Auth service: username already exists",
			"username", params.Username)
		return model.User{}, model.ErrDuplicateUsername
	}

	taken, err = a.userStore.ExistsByEmail(ctx, params.Email)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		a.logger.Info("Auth service: email already exists",
			"username", params.Username)
		return model.User{}, model.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: string(hash),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Active:       true,
		Roles:        []string{model.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := a.userStore.Create(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateUsername) || errors.Is(err, model.ErrDuplicateEmail) {
			return model.User{}, err
		}
		a.logger.Error("Auth service: failed to create user",
			"username", params.Username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: signup completed",
		"username", created.Username)

	// The hash stays behind the store boundary.
	created.PasswordHash = ""
	return created, nil
}
