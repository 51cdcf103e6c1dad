package orchestrators

import (
	"context"
	"testing"

	participantDomain "ellarises/internal/domain/participant"
)

// TestExecuteUpdateProfile_Idempotent verifies that submitting the same
// demographics twice updates one row rather than creating a duplicate.
func TestExecuteUpdateProfile_Idempotent(t *testing.T) {
	participants := &mockParticipantStore{byEmail: make(map[string]participantDomain.Participant)}
	deps := UpdateProfileDeps{ParticipantStore: participants}

	input := UpdateProfileInput{
		Email:     "ava@example.com",
		FirstName: "Ava",
		LastName:  "Rises",
		Phone:     "(801) 555-0101",
		City:      "Provo",
		State:     "UT",
	}

	first, err := ExecuteUpdateProfile(context.Background(), input, deps)
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	second, err := ExecuteUpdateProfile(context.Background(), input, deps)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}

	if len(participants.byEmail) != 1 {
		t.Fatalf("stored %d participants, want 1", len(participants.byEmail))
	}
	if second.ID != first.ID {
		t.Errorf("second update created ID %s, want existing %s", second.ID, first.ID)
	}

	p := participants.byEmail["ava@example.com"]
	if p.ID != first.ID {
		t.Errorf("stored ID = %s, want %s", p.ID, first.ID)
	}
	if p.FirstName != "Ava" || p.City != "Provo" {
		t.Errorf("stored fields = %q/%q, want Ava/Provo", p.FirstName, p.City)
	}
	if p.Phone != "8015550101" {
		t.Errorf("phone = %q, want normalized digits", p.Phone)
	}
}

// TestExecuteUpdateProfile_EditsExisting verifies changed fields land on the
// existing row without touching its identity or role.
func TestExecuteUpdateProfile_EditsExisting(t *testing.T) {
	participants := &mockParticipantStore{byEmail: map[string]participantDomain.Participant{
		"ava@example.com": {ID: "p-1", Email: "ava@example.com", FirstName: "Ava", Role: participantDomain.RoleParticipant},
	}}
	deps := UpdateProfileDeps{ParticipantStore: participants}

	updated, err := ExecuteUpdateProfile(context.Background(), UpdateProfileInput{
		Email:     "ava@example.com",
		FirstName: "Ava",
		LastName:  "Rises",
		City:      "Orem",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID != "p-1" {
		t.Errorf("ID = %s, want p-1", updated.ID)
	}
	if updated.City != "Orem" {
		t.Errorf("city = %s, want Orem", updated.City)
	}
	if len(participants.byEmail) != 1 {
		t.Errorf("stored %d participants, want 1", len(participants.byEmail))
	}
}
