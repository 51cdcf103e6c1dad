package user

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxEmailLength    = 254
	MaxUsernameLength = 64
)

// Role constants. 'M' marks back-office managers, 'U' regular users.
const (
	RoleManager = "M"
	RoleUser    = "U"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleManager, RoleUser}

// DefaultPassword is assigned when a user row is auto-created by the
// participant role mirror. The account is forced to change it at next login.
const DefaultPassword = "EllaRises!ChangeMe"

// Domain errors
var (
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("email must contain '@'")
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrInvalidRole      = errors.New("role must be 'M' or 'U'")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrPasswordMismatch = errors.New("new password and confirmation do not match")
)

// User is a login identity. Email doubles as the join key to the matching
// participant row; there is no foreign key between the two tables.
type User struct {
	ID                     string
	Email                  string
	Username               string
	PasswordHash           string
	FirstName              string
	LastName               string
	Role                   string
	PasswordChangeRequired bool
	CreatedAt              time.Time
}

// Validate checks if the User has valid data.
// PRE: User struct is populated
// POST: Returns nil if valid, error otherwise
func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyEmail
	}
	if len(u.Email) > MaxEmailLength {
		return errors.New("email cannot exceed 254 characters")
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}
	if len(u.Username) > MaxUsernameLength {
		return errors.New("username cannot exceed 64 characters")
	}
	if !isValidRole(u.Role) {
		return ErrInvalidRole
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: plaintext is non-empty
// POST: PasswordHash is set to bcrypt hash
func (u *User) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: User fields are not mutated
func (u *User) CheckPassword(plaintext string) error {
	if u.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// FullName returns the display name for the user.
// INVARIANT: User fields are not mutated
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsManager returns true if the user holds the manager role.
// INVARIANT: User fields are not mutated
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

func isValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
