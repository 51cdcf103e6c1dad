package registration

import (
	"context"
	"time"

	domain "ellarises/internal/domain/registration"
)

// Store persists Registration state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Registration, error)
	// GetByParticipantAndOccurrence returns the existing registration for the
	// pair, or an error when none exists. The (participant, occurrence)
	// uniqueness rule lives in the self-registration flow, not the schema.
	GetByParticipantAndOccurrence(ctx context.Context, participantID, occurrenceID string) (domain.Registration, error)
	Save(ctx context.Context, value domain.Registration) error
	Delete(ctx context.Context, id string) error
	ListByParticipant(ctx context.Context, participantID string) ([]Detail, error)
	ListDetails(ctx context.Context, filter ListFilter) ([]Detail, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// Detail joins a registration with participant and occurrence display fields.
type Detail struct {
	domain.Registration
	ParticipantName  string
	ParticipantEmail string
	OccurrenceName   string
	StartsAt         time.Time
	Location         string
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}
