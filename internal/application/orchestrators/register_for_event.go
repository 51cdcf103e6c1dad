package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	eventDomain "ellarises/internal/domain/event"
	registrationDomain "ellarises/internal/domain/registration"
)

// RegistrationStoreForRegister defines the store interface needed by RegisterForEvent.
type RegistrationStoreForRegister interface {
	GetByParticipantAndOccurrence(ctx context.Context, participantID, occurrenceID string) (registrationDomain.Registration, error)
	Save(ctx context.Context, r registrationDomain.Registration) error
}

// OccurrenceStoreForRegister defines the store interface needed by RegisterForEvent.
type OccurrenceStoreForRegister interface {
	GetByID(ctx context.Context, id string) (eventDomain.Occurrence, error)
}

// RegisterForEventInput carries input for the event registration orchestrator.
type RegisterForEventInput struct {
	Email        string
	FirstName    string
	LastName     string
	OccurrenceID string
}

// RegisterForEventDeps holds dependencies for RegisterForEvent.
type RegisterForEventDeps struct {
	ParticipantStore  ParticipantStoreForEnsure
	RegistrationStore RegistrationStoreForRegister
	OccurrenceStore   OccurrenceStoreForRegister
}

var ErrAlreadyRegistered = errors.New("you are already registered for this event")

// ExecuteRegisterForEvent registers the signed-in person for an event
// occurrence, creating their participant record first if needed.
// PRE: Email identifies the signed-in person; occurrence exists
// POST: Exactly one registration exists for the participant/occurrence pair
// INVARIANT: Repeat attempts fail with ErrAlreadyRegistered, never duplicate
func ExecuteRegisterForEvent(ctx context.Context, input RegisterForEventInput, deps RegisterForEventDeps) (registrationDomain.Registration, error) {
	occ, err := deps.OccurrenceStore.GetByID(ctx, input.OccurrenceID)
	if err != nil {
		return registrationDomain.Registration{}, err
	}

	p, err := ExecuteEnsureParticipant(ctx, EnsureParticipantInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}, EnsureParticipantDeps{ParticipantStore: deps.ParticipantStore})
	if err != nil {
		return registrationDomain.Registration{}, err
	}

	if _, err := deps.RegistrationStore.GetByParticipantAndOccurrence(ctx, p.ID, occ.ID); err == nil {
		return registrationDomain.Registration{}, ErrAlreadyRegistered
	}

	attended := false
	reg := registrationDomain.Registration{
		ID:            uuid.NewString(),
		ParticipantID: p.ID,
		OccurrenceID:  occ.ID,
		Status:        registrationDomain.StatusRegistered,
		Attended:      &attended,
		CreatedAt:     time.Now(),
	}
	if err := reg.Validate(); err != nil {
		return registrationDomain.Registration{}, err
	}
	if err := deps.RegistrationStore.Save(ctx, reg); err != nil {
		return registrationDomain.Registration{}, err
	}

	slog.Info("event_registration", "participant_id", p.ID, "occurrence_id", occ.ID)
	return reg, nil
}
