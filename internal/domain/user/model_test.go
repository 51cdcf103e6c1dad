package user_test

import (
	"testing"

	"ellarises/internal/domain/user"
)

// TestUserValidation tests validation of User.
func TestUserValidation(t *testing.T) {
	tests := []struct {
		name    string
		user    user.User
		wantErr bool
	}{
		{
			name: "valid manager",
			user: user.User{
				ID:       "123",
				Email:    "mgr@ellarises.org",
				Username: "mgr",
				Role:     user.RoleManager,
			},
			wantErr: false,
		},
		{
			name: "valid regular user",
			user: user.User{
				ID:        "124",
				Email:     "a@x.com",
				Username:  "alice",
				FirstName: "Alice",
				LastName:  "Stone",
				Role:      user.RoleUser,
			},
			wantErr: false,
		},
		{
			name: "empty email",
			user: user.User{
				ID:       "125",
				Email:    "",
				Username: "alice",
				Role:     user.RoleUser,
			},
			wantErr: true,
		},
		{
			name: "email without at sign",
			user: user.User{
				ID:       "126",
				Email:    "not-an-email",
				Username: "alice",
				Role:     user.RoleUser,
			},
			wantErr: true,
		},
		{
			name: "whitespace username",
			user: user.User{
				ID:       "127",
				Email:    "a@x.com",
				Username: "   ",
				Role:     user.RoleUser,
			},
			wantErr: true,
		},
		{
			name: "invalid role",
			user: user.User{
				ID:       "128",
				Email:    "a@x.com",
				Username: "alice",
				Role:     "admin",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestPasswordHashing tests SetPassword and CheckPassword round-trips.
func TestPasswordHashing(t *testing.T) {
	u := user.User{ID: "1", Email: "a@x.com", Username: "alice", Role: user.RoleUser}

	if err := u.SetPassword(""); err != user.ErrEmptyPassword {
		t.Errorf("SetPassword(\"\") error = %v, want ErrEmptyPassword", err)
	}

	if err := u.SetPassword("pw1-long-enough"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}
	if u.PasswordHash == "pw1-long-enough" {
		t.Error("password stored in plain text")
	}

	if err := u.CheckPassword("pw1-long-enough"); err != nil {
		t.Errorf("CheckPassword(correct) error = %v", err)
	}
	if err := u.CheckPassword("wrong"); err != user.ErrWrongPassword {
		t.Errorf("CheckPassword(wrong) error = %v, want ErrWrongPassword", err)
	}

	empty := user.User{}
	if err := empty.CheckPassword("anything"); err != user.ErrWrongPassword {
		t.Errorf("CheckPassword with no hash error = %v, want ErrWrongPassword", err)
	}
}

// TestFullName tests display-name assembly.
func TestFullName(t *testing.T) {
	u := user.User{FirstName: "Alice", LastName: "Stone"}
	if got := u.FullName(); got != "Alice Stone" {
		t.Errorf("FullName() = %q, want %q", got, "Alice Stone")
	}
	u = user.User{FirstName: "Alice"}
	if got := u.FullName(); got != "Alice" {
		t.Errorf("FullName() = %q, want %q", got, "Alice")
	}
}
