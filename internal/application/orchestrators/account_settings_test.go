package orchestrators

import (
	"context"
	"errors"
	"testing"

	"ellarises/internal/domain/user"
)

// mockUserStoreForSettings implements UserStoreForSettings for testing.
type mockUserStoreForSettings struct {
	users map[string]user.User // keyed by ID
}

func (m *mockUserStoreForSettings) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, errors.New("not found")
	}
	return u, nil
}

func (m *mockUserStoreForSettings) GetByUsername(_ context.Context, username string) (user.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, errors.New("not found")
}

func (m *mockUserStoreForSettings) Save(_ context.Context, u user.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserStoreForSettings) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func settingsStore(t *testing.T) *mockUserStoreForSettings {
	t.Helper()
	u := user.User{ID: "u-1", Email: "ava@example.com", Username: "ava", Role: user.RoleUser}
	if err := u.SetPassword("original-pw"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	return &mockUserStoreForSettings{users: map[string]user.User{"u-1": u}}
}

// TestExecuteChangeUsername covers valid, blank, and taken usernames.
func TestExecuteChangeUsername(t *testing.T) {
	store := settingsStore(t)
	store.users["u-2"] = user.User{ID: "u-2", Username: "taken"}
	deps := SettingsDeps{UserStore: store}

	if err := ExecuteChangeUsername(context.Background(), ChangeUsernameInput{UserID: "u-1", NewUsername: "avarises"}, deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.users["u-1"].Username != "avarises" {
		t.Errorf("username = %s, want avarises", store.users["u-1"].Username)
	}

	if err := ExecuteChangeUsername(context.Background(), ChangeUsernameInput{UserID: "u-1", NewUsername: ""}, deps); !errors.Is(err, user.ErrEmptyUsername) {
		t.Errorf("blank username error = %v, want ErrEmptyUsername", err)
	}

	if err := ExecuteChangeUsername(context.Background(), ChangeUsernameInput{UserID: "u-1", NewUsername: "taken"}, deps); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("taken username error = %v, want ErrUsernameTaken", err)
	}
}

// TestExecuteChangeUsername_Whitespace verifies whitespace-only input is
// rejected and surrounding whitespace is trimmed before saving.
func TestExecuteChangeUsername_Whitespace(t *testing.T) {
	store := settingsStore(t)
	deps := SettingsDeps{UserStore: store}

	if err := ExecuteChangeUsername(context.Background(), ChangeUsernameInput{UserID: "u-1", NewUsername: "   "}, deps); !errors.Is(err, user.ErrEmptyUsername) {
		t.Errorf("whitespace-only username error = %v, want ErrEmptyUsername", err)
	}
	if store.users["u-1"].Username != "ava" {
		t.Errorf("username = %q, want unchanged %q", store.users["u-1"].Username, "ava")
	}

	if err := ExecuteChangeUsername(context.Background(), ChangeUsernameInput{UserID: "u-1", NewUsername: "  padded  "}, deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.users["u-1"].Username != "padded" {
		t.Errorf("username = %q, want trimmed %q", store.users["u-1"].Username, "padded")
	}
}

// TestExecuteChangeUsername_SameUser verifies keeping your own username is allowed.
func TestExecuteChangeUsername_SameUser(t *testing.T) {
	store := settingsStore(t)
	deps := SettingsDeps{UserStore: store}

	if err := ExecuteChangeUsername(context.Background(), ChangeUsernameInput{UserID: "u-1", NewUsername: "ava"}, deps); err != nil {
		t.Errorf("re-saving own username: %v", err)
	}
}

// TestExecuteChangePassword covers the full validation ladder.
func TestExecuteChangePassword(t *testing.T) {
	store := settingsStore(t)
	deps := SettingsDeps{UserStore: store}

	tests := []struct {
		name    string
		input   ChangePasswordInput
		wantErr error
	}{
		{"wrong current", ChangePasswordInput{UserID: "u-1", CurrentPassword: "nope", NewPassword: "new-pw-123", ConfirmPassword: "new-pw-123"}, ErrCurrentPasswordWrong},
		{"confirmation mismatch", ChangePasswordInput{UserID: "u-1", CurrentPassword: "original-pw", NewPassword: "new-pw-123", ConfirmPassword: "different"}, user.ErrPasswordMismatch},
		{"empty new", ChangePasswordInput{UserID: "u-1", CurrentPassword: "original-pw"}, user.ErrEmptyPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ExecuteChangePassword(context.Background(), tt.input, deps)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// Happy path last so earlier cases ran against the original hash.
	err := ExecuteChangePassword(context.Background(), ChangePasswordInput{
		UserID: "u-1", CurrentPassword: "original-pw", NewPassword: "new-pw-123", ConfirmPassword: "new-pw-123",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	updated := store.users["u-1"]
	if err := updated.CheckPassword("new-pw-123"); err != nil {
		t.Error("new password does not verify")
	}
	if updated.PasswordChangeRequired {
		t.Error("PasswordChangeRequired must be cleared after a change")
	}
}

// TestExecuteDeleteAccount verifies the login goes away.
func TestExecuteDeleteAccount(t *testing.T) {
	store := settingsStore(t)
	deps := SettingsDeps{UserStore: store}

	if err := ExecuteDeleteAccount(context.Background(), "u-1", deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.users["u-1"]; ok {
		t.Error("user row still present after delete")
	}

	if err := ExecuteDeleteAccount(context.Background(), "u-missing", deps); err == nil {
		t.Error("expected error for unknown account")
	}
}
