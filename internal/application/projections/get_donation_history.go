package projections

import (
	"context"

	domainDonation "ellarises/internal/domain/donation"
)

// GetDonationHistoryDeps holds dependencies for GetDonationHistory.
type GetDonationHistoryDeps struct {
	ParticipantStore ParticipantStore
	DonationStore    DonationStore
}

// GetDonationHistoryResult carries the signed-in person's giving history.
type GetDonationHistoryResult struct {
	Donations []domainDonation.Donation
	Total     float64
}

// QueryGetDonationHistory retrieves the viewer's donations, newest first,
// with their running total.
// PRE: email identifies the session
// POST: Total matches the participant's denormalized total_donations
func QueryGetDonationHistory(ctx context.Context, email string, deps GetDonationHistoryDeps) (GetDonationHistoryResult, error) {
	p, err := deps.ParticipantStore.GetByEmail(ctx, email)
	if err != nil {
		// No participant record means no giving history.
		return GetDonationHistoryResult{}, nil
	}

	donations, err := deps.DonationStore.ListByEmail(ctx, email)
	if err != nil {
		return GetDonationHistoryResult{}, err
	}
	return GetDonationHistoryResult{
		Donations: donations,
		Total:     p.TotalDonations,
	}, nil
}
