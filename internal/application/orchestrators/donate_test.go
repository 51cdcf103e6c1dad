package orchestrators

import (
	"context"
	"errors"
	"testing"

	donationDomain "ellarises/internal/domain/donation"
	participantDomain "ellarises/internal/domain/participant"
)

// mockDonationStore implements DonationStoreForDonate for testing.
type mockDonationStore struct {
	saved []donationDomain.Donation
}

func (m *mockDonationStore) SaveWithTotal(_ context.Context, d donationDomain.Donation) error {
	m.saved = append(m.saved, d)
	return nil
}

// TestExecuteDonate_Valid tests recording a donation.
func TestExecuteDonate_Valid(t *testing.T) {
	participants := &mockParticipantStore{byEmail: map[string]participantDomain.Participant{
		"ava@example.com": {ID: "p-1", Email: "ava@example.com", FirstName: "Ava"},
	}}
	donations := &mockDonationStore{}
	sender := &mockSender{}

	d, err := ExecuteDonate(context.Background(), DonateInput{
		Email:  "ava@example.com",
		Amount: 50,
	}, DonateDeps{ParticipantStore: participants, DonationStore: donations, Sender: sender})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ParticipantID != "p-1" {
		t.Errorf("participant = %s, want p-1", d.ParticipantID)
	}
	if len(donations.saved) != 1 {
		t.Fatalf("saved %d donations, want 1", len(donations.saved))
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d receipts, want 1", len(sender.sent))
	}
	if sender.sent[0].Subject != "Thank you for your donation" {
		t.Errorf("subject = %q", sender.sent[0].Subject)
	}
}

// TestExecuteDonate_InvalidAmount tests zero and negative amounts.
func TestExecuteDonate_InvalidAmount(t *testing.T) {
	participants := &mockParticipantStore{byEmail: map[string]participantDomain.Participant{
		"ava@example.com": {ID: "p-1", Email: "ava@example.com"},
	}}
	donations := &mockDonationStore{}

	for _, amount := range []float64{0, -5} {
		_, err := ExecuteDonate(context.Background(), DonateInput{
			Email:  "ava@example.com",
			Amount: amount,
		}, DonateDeps{ParticipantStore: participants, DonationStore: donations})
		if !errors.Is(err, donationDomain.ErrInvalidAmount) {
			t.Errorf("amount %v: error = %v, want ErrInvalidAmount", amount, err)
		}
	}
	if len(donations.saved) != 0 {
		t.Error("nothing should be saved for invalid amounts")
	}
}

// TestExecuteDonate_NoParticipant tests donating before any participant
// record exists.
func TestExecuteDonate_NoParticipant(t *testing.T) {
	participants := &mockParticipantStore{byEmail: map[string]participantDomain.Participant{}}
	donations := &mockDonationStore{}

	_, err := ExecuteDonate(context.Background(), DonateInput{
		Email:  "ghost@example.com",
		Amount: 20,
	}, DonateDeps{ParticipantStore: participants, DonationStore: donations})
	if !errors.Is(err, ErrNoParticipant) {
		t.Errorf("error = %v, want ErrNoParticipant", err)
	}
}
