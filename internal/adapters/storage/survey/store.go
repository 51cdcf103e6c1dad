package survey

import (
	"context"

	domain "ellarises/internal/domain/survey"
)

// Detail is a survey joined with the respondent and event it covers.
type Detail struct {
	domain.Survey
	ParticipantName  string
	ParticipantEmail string
	OccurrenceName   string
}

// ListFilter describes search and pagination parameters for listing surveys.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}

// Store defines persistence for event feedback surveys.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Survey, error)
	Save(ctx context.Context, entity domain.Survey) error
	Delete(ctx context.Context, id string) error
	ListByParticipant(ctx context.Context, participantID string) ([]Detail, error)
	ListDetails(ctx context.Context, filter ListFilter) ([]Detail, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}
