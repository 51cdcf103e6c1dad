package participant

import (
	"errors"
	"strings"
)

// Role tag constants mirrored against the users table: 'admin' corresponds
// to a manager login, 'participant' to a regular one.
const (
	RoleParticipant = "participant"
	RoleAdmin       = "admin"
)

// ValidRoles contains all valid participant role tags.
var ValidRoles = []string{RoleParticipant, RoleAdmin}

// MaxPhoneDigits is the stored phone number length.
const MaxPhoneDigits = 10

// Domain errors
var (
	ErrEmptyEmail   = errors.New("email cannot be empty")
	ErrInvalidEmail = errors.New("email must contain '@'")
	ErrEmptyName    = errors.New("first and last name cannot both be empty")
	ErrInvalidRole  = errors.New("participant role must be 'participant' or 'admin'")
)

// Participant is a person tracked for event attendance and donations,
// independent of whether they can log in. Email is the join key to the users
// table. TotalDonations is a denormalized running total maintained in the
// same transaction as each donation insert.
type Participant struct {
	ID               string
	Email            string
	FirstName        string
	LastName         string
	DOB              string
	Phone            string
	City             string
	State            string
	Zip              string
	SchoolOrEmployer string
	FieldOfInterest  string
	Role             string
	TotalDonations   float64
}

// Validate checks if the Participant has valid data.
// PRE: Participant struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Participant) Validate() error {
	if strings.TrimSpace(p.Email) == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(p.Email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(p.FirstName) == "" && strings.TrimSpace(p.LastName) == "" {
		return ErrEmptyName
	}
	if !isValidRole(p.Role) {
		return ErrInvalidRole
	}
	return nil
}

// FullName returns the display name for the participant.
// INVARIANT: Participant fields are not mutated
func (p *Participant) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// NormalizePhone strips all non-digit characters and truncates to 10 digits.
// PRE: none
// POST: Returns a string of at most 10 digit characters
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == MaxPhoneDigits {
				break
			}
		}
	}
	return b.String()
}

func isValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
