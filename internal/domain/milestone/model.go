package milestone

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyParticipant = errors.New("milestone must reference a participant")
	ErrEmptyTitle       = errors.New("milestone title cannot be empty")
	ErrEmptyDate        = errors.New("milestone date cannot be empty")
)

// Milestone is a dated achievement note for a Participant (e.g. "First
// scholarship awarded").
type Milestone struct {
	ID            string
	ParticipantID string
	Title         string
	AchievedOn    string // YYYY-MM-DD
}

// Validate checks if the Milestone has valid data.
// PRE: Milestone struct is populated
// POST: Returns nil if valid, error otherwise
func (m *Milestone) Validate() error {
	if m.ParticipantID == "" {
		return ErrEmptyParticipant
	}
	if strings.TrimSpace(m.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(m.AchievedOn) == "" {
		return ErrEmptyDate
	}
	return nil
}
