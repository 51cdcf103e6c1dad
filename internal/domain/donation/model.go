package donation

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrEmptyParticipant = errors.New("donation must reference a participant")
	ErrInvalidAmount    = errors.New("donation amount must be a positive number")
)

// Donation is a monetary contribution from a Participant. DonatedAt defaults
// to the insert time when zero.
type Donation struct {
	ID            string
	ParticipantID string
	Amount        float64
	DonatedAt     time.Time
}

// Validate checks if the Donation has valid data.
// PRE: Donation struct is populated
// POST: Returns nil if valid, error otherwise
func (d *Donation) Validate() error {
	if d.ParticipantID == "" {
		return ErrEmptyParticipant
	}
	if d.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
