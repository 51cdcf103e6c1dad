package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ellarises/internal/adapters/email"
	donationDomain "ellarises/internal/domain/donation"
	participantDomain "ellarises/internal/domain/participant"
)

// ParticipantStoreForDonate defines the store interface needed by Donate.
type ParticipantStoreForDonate interface {
	GetByEmail(ctx context.Context, email string) (participantDomain.Participant, error)
}

// DonationStoreForDonate defines the store interface needed by Donate.
type DonationStoreForDonate interface {
	SaveWithTotal(ctx context.Context, d donationDomain.Donation) error
}

// DonateInput carries input for the donation orchestrator.
type DonateInput struct {
	Email  string
	Amount float64
}

// DonateDeps holds dependencies for Donate.
type DonateDeps struct {
	ParticipantStore ParticipantStoreForDonate
	DonationStore    DonationStoreForDonate
	Sender           email.Sender
}

// ErrNoParticipant means the signed-in person has no participant record yet,
// so there is nothing to attach the donation to.
var ErrNoParticipant = errors.New("register for an event first so we know who to thank")

// ExecuteDonate records a donation against the signed-in person's
// participant record and sends a receipt.
// PRE: Amount > 0; email identifies the signed-in person
// POST: Donation row exists and the donor's running total includes it
func ExecuteDonate(ctx context.Context, input DonateInput, deps DonateDeps) (donationDomain.Donation, error) {
	if input.Amount <= 0 {
		return donationDomain.Donation{}, donationDomain.ErrInvalidAmount
	}

	p, err := deps.ParticipantStore.GetByEmail(ctx, input.Email)
	if err != nil {
		return donationDomain.Donation{}, ErrNoParticipant
	}

	d := donationDomain.Donation{
		ID:            uuid.NewString(),
		ParticipantID: p.ID,
		Amount:        input.Amount,
		DonatedAt:     time.Now(),
	}
	if err := deps.DonationStore.SaveWithTotal(ctx, d); err != nil {
		return donationDomain.Donation{}, err
	}

	slog.Info("donation_recorded", "participant_id", p.ID, "amount", input.Amount)

	if deps.Sender != nil {
		if _, err := deps.Sender.Send(ctx, email.ComposeDonationReceipt(p.Email, p.FirstName, d.Amount, d.DonatedAt)); err != nil {
			slog.Warn("receipt_email_failed", "email", p.Email, "error", err)
		}
	}

	return d, nil
}
