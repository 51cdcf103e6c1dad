package orchestrators

import (
	"context"

	"github.com/google/uuid"

	participantDomain "ellarises/internal/domain/participant"
)

// ParticipantStoreForEnsure defines the store interface needed by EnsureParticipant.
type ParticipantStoreForEnsure interface {
	GetByEmail(ctx context.Context, email string) (participantDomain.Participant, error)
	Save(ctx context.Context, p participantDomain.Participant) error
}

// EnsureParticipantInput identifies the person whose participant record must exist.
type EnsureParticipantInput struct {
	Email     string
	FirstName string
	LastName  string
}

// EnsureParticipantDeps holds dependencies for EnsureParticipant.
type EnsureParticipantDeps struct {
	ParticipantStore ParticipantStoreForEnsure
}

// ExecuteEnsureParticipant returns the participant record for the email,
// creating a minimal one when none exists. Registration and donation flows
// call this so a login without a participant row never dead-ends.
// PRE: email is non-empty
// POST: A participant row exists for the email; repeated calls return it unchanged
func ExecuteEnsureParticipant(ctx context.Context, input EnsureParticipantInput, deps EnsureParticipantDeps) (participantDomain.Participant, error) {
	if existing, err := deps.ParticipantStore.GetByEmail(ctx, input.Email); err == nil {
		return existing, nil
	}

	p := participantDomain.Participant{
		ID:        uuid.NewString(),
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      participantDomain.RoleParticipant,
	}
	if err := p.Validate(); err != nil {
		return participantDomain.Participant{}, err
	}
	if err := deps.ParticipantStore.Save(ctx, p); err != nil {
		return participantDomain.Participant{}, err
	}
	return p, nil
}
