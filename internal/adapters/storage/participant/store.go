package participant

import (
	"context"

	domain "ellarises/internal/domain/participant"
	userDomain "ellarises/internal/domain/user"
)

// Store persists Participant state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Participant, error)
	GetByEmail(ctx context.Context, email string) (domain.Participant, error)
	Save(ctx context.Context, value domain.Participant) error
	// SaveWithUserRoleSync persists the participant and mirrors its role tag
	// onto the user row matching the participant's email, in one
	// transaction. When no user row exists and newUser is non-nil, newUser
	// is inserted instead.
	SaveWithUserRoleSync(ctx context.Context, p domain.Participant, userRole string, newUser *userDomain.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Participant, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}
