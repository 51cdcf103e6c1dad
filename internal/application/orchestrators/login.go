package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"ellarises/internal/domain/user"
)

// UserStoreForLogin defines the store interface needed by Login.
type UserStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the result of a successful login. It is the snapshot
// the session holds for the rest of the visit.
type LoginResult struct {
	UserID                 string
	Email                  string
	Role                   string
	FirstName              string
	LastName               string
	PasswordChangeRequired bool
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	UserStore UserStoreForLogin
}

// ErrInvalidCredentials is reported for a bad email and a bad password
// alike, so the login page never reveals which one was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ExecuteLogin validates credentials and returns user info for session creation.
// PRE: Valid email and password provided
// POST: Returns user snapshot on success
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	u, err := deps.UserStore.GetByEmail(ctx, input.Email)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := u.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "wrong_password")
		return LoginResult{}, ErrInvalidCredentials
	}

	slog.Info("auth_event", "event", "login_success", "email", u.Email, "role", u.Role)

	return LoginResult{
		UserID:                 u.ID,
		Email:                  u.Email,
		Role:                   u.Role,
		FirstName:              u.FirstName,
		LastName:               u.LastName,
		PasswordChangeRequired: u.PasswordChangeRequired,
	}, nil
}
