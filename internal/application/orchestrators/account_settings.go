package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"ellarises/internal/domain/user"
)

// UserStoreForSettings defines the store interface needed by the
// account-settings orchestrators.
type UserStoreForSettings interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	GetByUsername(ctx context.Context, username string) (user.User, error)
	Save(ctx context.Context, u user.User) error
	Delete(ctx context.Context, id string) error
}

// ChangeUsernameInput carries input for the change-username orchestrator.
type ChangeUsernameInput struct {
	UserID      string
	NewUsername string
}

// ChangePasswordInput carries input for the change-password orchestrator.
type ChangePasswordInput struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// SettingsDeps holds dependencies for the account-settings orchestrators.
type SettingsDeps struct {
	UserStore UserStoreForSettings
}

var ErrCurrentPasswordWrong = errors.New("current password is incorrect")

// ExecuteChangeUsername updates the signed-in user's username.
// PRE: UserID is valid
// POST: Username is updated; blank or taken usernames are rejected
func ExecuteChangeUsername(ctx context.Context, input ChangeUsernameInput, deps SettingsDeps) error {
	username := strings.TrimSpace(input.NewUsername)
	if username == "" {
		return user.ErrEmptyUsername
	}

	u, err := deps.UserStore.GetByID(ctx, input.UserID)
	if err != nil {
		return errors.New("account not found")
	}

	if other, err := deps.UserStore.GetByUsername(ctx, username); err == nil && other.ID != u.ID {
		return ErrUsernameTaken
	}

	u.Username = username
	if err := deps.UserStore.Save(ctx, u); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "username_changed", "user_id", input.UserID)
	return nil
}

// ExecuteChangePassword validates the current password and updates to the new one.
// PRE: UserID is valid, all password fields are non-empty
// POST: Password is updated, PasswordChangeRequired is cleared
func ExecuteChangePassword(ctx context.Context, input ChangePasswordInput, deps SettingsDeps) error {
	if input.CurrentPassword == "" || input.NewPassword == "" {
		return user.ErrEmptyPassword
	}
	if input.NewPassword != input.ConfirmPassword {
		return user.ErrPasswordMismatch
	}

	u, err := deps.UserStore.GetByID(ctx, input.UserID)
	if err != nil {
		return errors.New("account not found")
	}

	if err := u.CheckPassword(input.CurrentPassword); err != nil {
		return ErrCurrentPasswordWrong
	}

	if err := u.SetPassword(input.NewPassword); err != nil {
		return err
	}
	u.PasswordChangeRequired = false

	if err := deps.UserStore.Save(ctx, u); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "password_changed", "user_id", input.UserID)
	return nil
}

// ExecuteDeleteAccount removes the signed-in user's login. The participant
// record and its history stay, so event and donation records survive the
// account.
// PRE: UserID is valid
// POST: User row is gone; participant row is untouched
func ExecuteDeleteAccount(ctx context.Context, userID string, deps SettingsDeps) error {
	if _, err := deps.UserStore.GetByID(ctx, userID); err != nil {
		return errors.New("account not found")
	}
	if err := deps.UserStore.Delete(ctx, userID); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "account_deleted", "user_id", userID)
	return nil
}
