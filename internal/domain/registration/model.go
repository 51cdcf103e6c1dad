package registration

import (
	"errors"
	"time"
)

// StatusRegistered is the status written by the self-registration flow.
// The column itself is free text; manager edits may store anything.
const StatusRegistered = "Registered"

// Domain errors
var (
	ErrEmptyParticipant = errors.New("registration must reference a participant")
	ErrEmptyOccurrence  = errors.New("registration must reference an event occurrence")
)

// Registration links a Participant to an EventOccurrence. Attended is
// tri-state: nil means not yet recorded.
type Registration struct {
	ID            string
	ParticipantID string
	OccurrenceID  string
	Status        string
	Attended      *bool
	CheckedInAt   time.Time
	CreatedAt     time.Time
}

// Validate checks if the Registration has valid data.
// PRE: Registration struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Registration) Validate() error {
	if r.ParticipantID == "" {
		return ErrEmptyParticipant
	}
	if r.OccurrenceID == "" {
		return ErrEmptyOccurrence
	}
	return nil
}

// MarkAttended records attendance and the check-in time.
// PRE: Registration exists
// POST: Attended is true, CheckedInAt is set
func (r *Registration) MarkAttended(now time.Time) {
	attended := true
	r.Attended = &attended
	r.CheckedInAt = now
}
