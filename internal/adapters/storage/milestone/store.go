package milestone

import (
	"context"

	domain "ellarises/internal/domain/milestone"
)

// Detail is a milestone joined with the participant it belongs to.
type Detail struct {
	domain.Milestone
	ParticipantName  string
	ParticipantEmail string
}

// Store defines persistence for participant milestones.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Milestone, error)
	Save(ctx context.Context, entity domain.Milestone) error
	Delete(ctx context.Context, id string) error
	ListByParticipant(ctx context.Context, participantID string) ([]domain.Milestone, error)
	List(ctx context.Context) ([]Detail, error)
}
