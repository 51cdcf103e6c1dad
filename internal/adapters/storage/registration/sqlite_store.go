package registration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"ellarises/internal/adapters/storage"
	domain "ellarises/internal/domain/registration"
)

const registrationColumns = "id, participant_id, occurrence_id, status, attended, checked_in_at, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new RegistrationStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Registration by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Registration, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+registrationColumns+" FROM registrations WHERE id = ?", id)
	entity, err := scanRegistration(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Registration{}, fmt.Errorf("registration not found: %w", err)
	}
	return entity, err
}

// GetByParticipantAndOccurrence retrieves the registration for the pair.
// PRE: both ids are non-empty
// POST: Returns the entity or an error if none exists
func (s *SQLiteStore) GetByParticipantAndOccurrence(ctx context.Context, participantID, occurrenceID string) (domain.Registration, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+registrationColumns+" FROM registrations WHERE participant_id = ? AND occurrence_id = ?",
		participantID, occurrenceID,
	)
	entity, err := scanRegistration(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Registration{}, fmt.Errorf("registration not found: %w", err)
	}
	return entity, err
}

// Save persists a Registration to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Registration) error {
	var attended any
	if entity.Attended != nil {
		attended = boolToInt(*entity.Attended)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO registrations (id, participant_id, occurrence_id, status, attended, checked_in_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			participant_id=excluded.participant_id,
			occurrence_id=excluded.occurrence_id,
			status=excluded.status,
			attended=excluded.attended,
			checked_in_at=excluded.checked_in_at`,
		entity.ID,
		entity.ParticipantID,
		entity.OccurrenceID,
		entity.Status,
		attended,
		storage.FormatTime(entity.CheckedInAt),
		storage.FormatTime(entity.CreatedAt),
	)
	return err
}

// Delete removes a Registration from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM registrations WHERE id = ?", id)
	return err
}

// ListByParticipant retrieves a participant's registrations, newest first.
// PRE: participantID is non-empty
// POST: Returns joined detail rows for the participant
func (s *SQLiteStore) ListByParticipant(ctx context.Context, participantID string) ([]Detail, error) {
	rows, err := s.db.QueryContext(ctx, detailSelect+" WHERE r.participant_id = ? ORDER BY r.created_at DESC", participantID)
	if err != nil {
		return nil, err
	}
	return collectDetails(rows)
}

// ListDetails retrieves registrations joined with participant and occurrence
// fields. Search matches participant name/email, occurrence name, status,
// and the registration date, case-insensitively.
// PRE: filter has valid parameters
// POST: Returns matching joined rows
func (s *SQLiteStore) ListDetails(ctx context.Context, filter ListFilter) ([]Detail, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(detailSelect)
	appendSearch(&queryBuilder, &args, filter.Search)
	queryBuilder.WriteString(" ORDER BY r.created_at DESC")
	if filter.Limit > 0 {
		queryBuilder.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	return collectDetails(rows)
}

// Count returns the number of registrations matching the filter.
// PRE: filter has valid parameters
// POST: Returns matching row count
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(`
		SELECT COUNT(*)
		FROM registrations r
		JOIN participants p ON p.id = r.participant_id
		JOIN event_occurrences o ON o.id = r.occurrence_id`)
	appendSearch(&queryBuilder, &args, filter.Search)

	var count int
	err := s.db.QueryRowContext(ctx, queryBuilder.String(), args...).Scan(&count)
	return count, err
}

const detailSelect = `
	SELECT r.id, r.participant_id, r.occurrence_id, r.status, r.attended, r.checked_in_at, r.created_at,
	       p.first_name || ' ' || p.last_name, p.email, o.name, o.starts_at, o.location
	FROM registrations r
	JOIN participants p ON p.id = r.participant_id
	JOIN event_occurrences o ON o.id = r.occurrence_id`

func appendSearch(qb *strings.Builder, args *[]any, search string) {
	if search == "" {
		return
	}
	qb.WriteString(" WHERE p.first_name LIKE ? COLLATE NOCASE OR p.last_name LIKE ? COLLATE NOCASE OR p.email LIKE ? COLLATE NOCASE OR o.name LIKE ? COLLATE NOCASE OR r.status LIKE ? COLLATE NOCASE OR r.created_at LIKE ?")
	pattern := "%" + search + "%"
	*args = append(*args, pattern, pattern, pattern, pattern, pattern, pattern)
}

func collectDetails(rows *sql.Rows) ([]Detail, error) {
	defer rows.Close()
	var results []Detail
	for rows.Next() {
		var d Detail
		var attended sql.NullInt64
		var checkedIn, createdAt sql.NullString
		var startsAt string
		var location sql.NullString
		err := rows.Scan(
			&d.ID, &d.ParticipantID, &d.OccurrenceID, &d.Status, &attended, &checkedIn, &createdAt,
			&d.ParticipantName, &d.ParticipantEmail, &d.OccurrenceName, &startsAt, &location,
		)
		if err != nil {
			return nil, err
		}
		if attended.Valid {
			v := attended.Int64 != 0
			d.Attended = &v
		}
		d.CheckedInAt, _ = storage.ParseTime(checkedIn.String)
		d.CreatedAt, _ = storage.ParseTime(createdAt.String)
		d.StartsAt, _ = storage.ParseTime(startsAt)
		d.Location = location.String
		results = append(results, d)
	}
	return results, rows.Err()
}

// scanRegistration extracts a Registration from a row scanner function.
func scanRegistration(scan func(dest ...any) error) (domain.Registration, error) {
	var entity domain.Registration
	var attended sql.NullInt64
	var checkedIn, createdAt sql.NullString
	err := scan(
		&entity.ID,
		&entity.ParticipantID,
		&entity.OccurrenceID,
		&entity.Status,
		&attended,
		&checkedIn,
		&createdAt,
	)
	if err != nil {
		return domain.Registration{}, err
	}
	if attended.Valid {
		v := attended.Int64 != 0
		entity.Attended = &v
	}
	entity.CheckedInAt, _ = storage.ParseTime(checkedIn.String)
	entity.CreatedAt, _ = storage.ParseTime(createdAt.String)
	return entity, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
