package donation

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"ellarises/internal/adapters/storage"
	domain "ellarises/internal/domain/donation"
)

const donationColumns = "id, participant_id, amount, donated_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new DonationStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Donation by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Donation, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+donationColumns+" FROM donations WHERE id = ?", id)
	entity, err := scanDonation(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Donation{}, fmt.Errorf("donation not found: %w", err)
	}
	return entity, err
}

// SaveWithTotal inserts the donation and increments the donor's running
// total in the same transaction.
// PRE: entity has been validated; the participant row exists
// POST: Donation row exists and participants.total_donations reflects it
// INVARIANT: total_donations equals the sum of the participant's donation amounts
func (s *SQLiteStore) SaveWithTotal(ctx context.Context, entity domain.Donation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO donations (id, participant_id, amount, donated_at) VALUES (?, ?, ?, ?)",
		entity.ID, entity.ParticipantID, entity.Amount, storage.FormatTime(entity.DonatedAt),
	)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE participants SET total_donations = total_donations + ? WHERE id = ?",
		entity.Amount, entity.ParticipantID,
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateAmountWithTotal changes a donation's amount and date, adjusting the
// donor's running total by the difference.
// PRE: id refers to an existing donation; amount > 0
// POST: Donation row and participants.total_donations both reflect the new amount
func (s *SQLiteStore) UpdateAmountWithTotal(ctx context.Context, id string, amount float64, donatedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, "SELECT participant_id, amount FROM donations WHERE id = ?", id)
	var participantID string
	var oldAmount float64
	if err := row.Scan(&participantID, &oldAmount); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("donation not found: %w", err)
		}
		return err
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE donations SET amount = ?, donated_at = ? WHERE id = ?",
		amount, storage.FormatTime(donatedAt), id,
	)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE participants SET total_donations = total_donations + ? WHERE id = ?",
		amount-oldAmount, participantID,
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteWithTotal removes the donation and subtracts its amount from the
// donor's running total.
// PRE: id is non-empty
// POST: Donation row is gone and the donor's total no longer includes it
func (s *SQLiteStore) DeleteWithTotal(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, "SELECT participant_id, amount FROM donations WHERE id = ?", id)
	var participantID string
	var amount float64
	if err := row.Scan(&participantID, &amount); err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM donations WHERE id = ?", id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE participants SET total_donations = total_donations - ? WHERE id = ?",
		amount, participantID,
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// ListByEmail retrieves donations for the participant with the given email,
// newest first.
// PRE: email is non-empty
// POST: Returns the donor's donations, possibly empty
func (s *SQLiteStore) ListByEmail(ctx context.Context, email string) ([]domain.Donation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.participant_id, d.amount, d.donated_at
		FROM donations d
		JOIN participants p ON p.id = d.participant_id
		WHERE p.email = ? COLLATE NOCASE
		ORDER BY d.donated_at DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Donation
	for rows.Next() {
		entity, err := scanDonation(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// ListDetails retrieves donations joined with donor name and email. Search
// matches donor fields and the donation date, case-insensitively.
// PRE: filter has valid parameters
// POST: Returns matching joined rows, newest first
func (s *SQLiteStore) ListDetails(ctx context.Context, filter ListFilter) ([]Detail, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(`
		SELECT d.id, d.participant_id, d.amount, d.donated_at,
		       p.first_name || ' ' || p.last_name, p.email
		FROM donations d
		JOIN participants p ON p.id = d.participant_id`)
	appendSearch(&queryBuilder, &args, filter.Search)
	queryBuilder.WriteString(" ORDER BY d.donated_at DESC")
	if filter.Limit > 0 {
		queryBuilder.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Detail
	for rows.Next() {
		var d Detail
		var donatedAt string
		err := rows.Scan(&d.ID, &d.ParticipantID, &d.Amount, &donatedAt, &d.ParticipantName, &d.ParticipantEmail)
		if err != nil {
			return nil, err
		}
		d.DonatedAt, _ = storage.ParseTime(donatedAt)
		results = append(results, d)
	}
	return results, rows.Err()
}

// Count returns the number of donations matching the filter.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString("SELECT COUNT(*) FROM donations d JOIN participants p ON p.id = d.participant_id")
	appendSearch(&queryBuilder, &args, filter.Search)

	var count int
	err := s.db.QueryRowContext(ctx, queryBuilder.String(), args...).Scan(&count)
	return count, err
}

func appendSearch(qb *strings.Builder, args *[]any, search string) {
	if search == "" {
		return
	}
	qb.WriteString(" WHERE p.first_name LIKE ? COLLATE NOCASE OR p.last_name LIKE ? COLLATE NOCASE OR p.email LIKE ? COLLATE NOCASE OR d.donated_at LIKE ?")
	pattern := "%" + search + "%"
	*args = append(*args, pattern, pattern, pattern, pattern)
}

// scanDonation extracts a Donation from a row scanner function.
func scanDonation(scan func(dest ...any) error) (domain.Donation, error) {
	var entity domain.Donation
	var donatedAt string
	err := scan(&entity.ID, &entity.ParticipantID, &entity.Amount, &donatedAt)
	if err != nil {
		return domain.Donation{}, err
	}
	entity.DonatedAt, _ = storage.ParseTime(donatedAt)
	return entity, nil
}
