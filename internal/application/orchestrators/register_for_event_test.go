package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	eventDomain "ellarises/internal/domain/event"
	participantDomain "ellarises/internal/domain/participant"
	registrationDomain "ellarises/internal/domain/registration"
)

// mockParticipantStore implements ParticipantStoreForEnsure for testing.
type mockParticipantStore struct {
	byEmail map[string]participantDomain.Participant
}

func (m *mockParticipantStore) GetByEmail(_ context.Context, email string) (participantDomain.Participant, error) {
	p, ok := m.byEmail[email]
	if !ok {
		return participantDomain.Participant{}, errors.New("not found")
	}
	return p, nil
}

func (m *mockParticipantStore) Save(_ context.Context, p participantDomain.Participant) error {
	m.byEmail[p.Email] = p
	return nil
}

// mockRegistrationStore implements RegistrationStoreForRegister for testing.
type mockRegistrationStore struct {
	regs []registrationDomain.Registration
}

func (m *mockRegistrationStore) GetByParticipantAndOccurrence(_ context.Context, participantID, occurrenceID string) (registrationDomain.Registration, error) {
	for _, r := range m.regs {
		if r.ParticipantID == participantID && r.OccurrenceID == occurrenceID {
			return r, nil
		}
	}
	return registrationDomain.Registration{}, errors.New("not found")
}

func (m *mockRegistrationStore) Save(_ context.Context, r registrationDomain.Registration) error {
	m.regs = append(m.regs, r)
	return nil
}

// mockOccurrenceStore implements OccurrenceStoreForRegister for testing.
type mockOccurrenceStore struct {
	occurrences map[string]eventDomain.Occurrence
}

func (m *mockOccurrenceStore) GetByID(_ context.Context, id string) (eventDomain.Occurrence, error) {
	o, ok := m.occurrences[id]
	if !ok {
		return eventDomain.Occurrence{}, errors.New("not found")
	}
	return o, nil
}

func registerDeps() (RegisterForEventDeps, *mockParticipantStore, *mockRegistrationStore) {
	participants := &mockParticipantStore{byEmail: make(map[string]participantDomain.Participant)}
	registrations := &mockRegistrationStore{}
	occurrences := &mockOccurrenceStore{occurrences: map[string]eventDomain.Occurrence{
		"occ-1": {ID: "occ-1", TemplateID: "tmpl-1", Name: "Spring Gala", StartsAt: time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)},
	}}
	return RegisterForEventDeps{
		ParticipantStore:  participants,
		RegistrationStore: registrations,
		OccurrenceStore:   occurrences,
	}, participants, registrations
}

// TestExecuteRegisterForEvent_CreatesParticipant verifies a first-time
// registrant gets a participant record automatically.
func TestExecuteRegisterForEvent_CreatesParticipant(t *testing.T) {
	deps, participants, registrations := registerDeps()

	reg, err := ExecuteRegisterForEvent(context.Background(), RegisterForEventInput{
		Email:        "ava@example.com",
		FirstName:    "Ava",
		LastName:     "Rises",
		OccurrenceID: "occ-1",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, ok := participants.byEmail["ava@example.com"]
	if !ok {
		t.Fatal("participant record not created")
	}
	if reg.ParticipantID != p.ID {
		t.Errorf("registration participant = %s, want %s", reg.ParticipantID, p.ID)
	}
	if reg.Status != registrationDomain.StatusRegistered {
		t.Errorf("status = %s, want %s", reg.Status, registrationDomain.StatusRegistered)
	}
	if reg.Attended == nil || *reg.Attended {
		t.Error("new registration must start not attended")
	}
	if len(registrations.regs) != 1 {
		t.Errorf("stored %d registrations, want 1", len(registrations.regs))
	}
}

// TestExecuteRegisterForEvent_ReusesParticipant verifies no duplicate
// participant row is created for a known email.
func TestExecuteRegisterForEvent_ReusesParticipant(t *testing.T) {
	deps, participants, _ := registerDeps()
	participants.byEmail["ava@example.com"] = participantDomain.Participant{
		ID: "p-existing", Email: "ava@example.com", FirstName: "Ava",
	}

	reg, err := ExecuteRegisterForEvent(context.Background(), RegisterForEventInput{
		Email:        "ava@example.com",
		OccurrenceID: "occ-1",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.ParticipantID != "p-existing" {
		t.Errorf("participant = %s, want p-existing", reg.ParticipantID)
	}
}

// TestExecuteRegisterForEvent_Duplicate verifies double registration fails.
func TestExecuteRegisterForEvent_Duplicate(t *testing.T) {
	deps, _, registrations := registerDeps()

	input := RegisterForEventInput{Email: "ava@example.com", FirstName: "Ava", OccurrenceID: "occ-1"}
	if _, err := ExecuteRegisterForEvent(context.Background(), input, deps); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	_, err := ExecuteRegisterForEvent(context.Background(), input, deps)
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("error = %v, want ErrAlreadyRegistered", err)
	}
	if len(registrations.regs) != 1 {
		t.Errorf("stored %d registrations, want 1", len(registrations.regs))
	}
}

// TestExecuteRegisterForEvent_UnknownOccurrence verifies a missing event fails.
func TestExecuteRegisterForEvent_UnknownOccurrence(t *testing.T) {
	deps, participants, _ := registerDeps()

	_, err := ExecuteRegisterForEvent(context.Background(), RegisterForEventInput{
		Email:        "ava@example.com",
		OccurrenceID: "occ-missing",
	}, deps)
	if err == nil {
		t.Fatal("expected error for unknown occurrence")
	}
	if len(participants.byEmail) != 0 {
		t.Error("no participant should be created when the event is unknown")
	}
}
