package user

import (
	"context"

	domain "ellarises/internal/domain/user"
	participantDomain "ellarises/internal/domain/participant"
)

// Store persists User state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	Save(ctx context.Context, value domain.User) error
	// SaveWithParticipant persists a new user and, if no participant row
	// exists for the same email, the given participant — both in one
	// transaction.
	SaveWithParticipant(ctx context.Context, u domain.User, p participantDomain.Participant) error
	// SaveWithRoleSync persists the user and mirrors participantRole onto
	// the participant row matching the user's email, in one transaction.
	SaveWithRoleSync(ctx context.Context, u domain.User, participantRole string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.User, error)
	Count(ctx context.Context) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}
