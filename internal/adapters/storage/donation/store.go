package donation

import (
	"context"
	"time"

	domain "ellarises/internal/domain/donation"
)

// Detail is a donation joined with the donor's name and email.
type Detail struct {
	domain.Donation
	ParticipantName  string
	ParticipantEmail string
}

// ListFilter describes search and pagination parameters for listing donations.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}

// Store defines persistence for donations. Writes that change an amount go
// through the *WithTotal methods so the donor's running total stays
// consistent with the donation rows.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Donation, error)
	// SaveWithTotal inserts the donation and increments the donor's
	// total_donations in one transaction.
	SaveWithTotal(ctx context.Context, entity domain.Donation) error
	// UpdateAmountWithTotal changes a donation's amount and date and adjusts
	// the donor's total by the difference, atomically.
	UpdateAmountWithTotal(ctx context.Context, id string, amount float64, donatedAt time.Time) error
	// DeleteWithTotal removes the donation and subtracts its amount from the
	// donor's total, atomically.
	DeleteWithTotal(ctx context.Context, id string) error
	ListByEmail(ctx context.Context, email string) ([]domain.Donation, error)
	ListDetails(ctx context.Context, filter ListFilter) ([]Detail, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}
