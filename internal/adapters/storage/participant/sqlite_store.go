package participant

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"ellarises/internal/adapters/storage"
	domain "ellarises/internal/domain/participant"
	userDomain "ellarises/internal/domain/user"
)

const participantColumns = "id, email, first_name, last_name, dob, phone, city, state, zip, school_or_employer, field_of_interest, participant_role, total_donations"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new ParticipantStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Participant by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Participant, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+participantColumns+" FROM participants WHERE id = ?", id)
	entity, err := scanParticipant(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Participant{}, fmt.Errorf("participant not found: %w", err)
	}
	return entity, err
}

// GetByEmail retrieves a Participant by email, compared case-insensitively.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Participant, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+participantColumns+" FROM participants WHERE email = ? COLLATE NOCASE", email)
	entity, err := scanParticipant(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Participant{}, fmt.Errorf("participant not found: %w", err)
	}
	return entity, err
}

// Save persists a Participant to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update); total_donations is NOT
// written on update — the running total is owned by the donation store.
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Participant) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := upsertParticipant(ctx, tx, entity); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveWithUserRoleSync persists the participant and mirrors its role onto
// the matching user row in one transaction. If no user row matches the
// email and newUser is non-nil, newUser is inserted.
// PRE: entity has been validated; userRole is 'M' or 'U'
// POST: Participant upserted; matching (or new) user carries userRole
func (s *SQLiteStore) SaveWithUserRoleSync(ctx context.Context, p domain.Participant, userRole string, newUser *userDomain.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := upsertParticipant(ctx, tx, p); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE users SET role = ? WHERE email = ? COLLATE NOCASE",
		userRole, p.Email,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 && newUser != nil {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO users (id, email, username, password_hash, first_name, last_name, role, password_change_required, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			newUser.ID,
			newUser.Email,
			newUser.Username,
			newUser.PasswordHash,
			newUser.FirstName,
			newUser.LastName,
			newUser.Role,
			boolToInt(newUser.PasswordChangeRequired),
			storage.FormatTime(newUser.CreatedAt),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete removes a Participant from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM participants WHERE id = ?", id)
	return err
}

// List retrieves Participants based on the filter. Search matches name,
// email, and city case-insensitively.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Participant, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString("SELECT " + participantColumns + " FROM participants")
	appendSearch(&queryBuilder, &args, filter.Search)
	queryBuilder.WriteString(" ORDER BY last_name, first_name")
	if filter.Limit > 0 {
		queryBuilder.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Participant
	for rows.Next() {
		entity, err := scanParticipant(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the number of participants matching the filter.
// PRE: filter has valid parameters
// POST: Returns matching row count
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString("SELECT COUNT(*) FROM participants")
	appendSearch(&queryBuilder, &args, filter.Search)

	var count int
	err := s.db.QueryRowContext(ctx, queryBuilder.String(), args...).Scan(&count)
	return count, err
}

func appendSearch(qb *strings.Builder, args *[]any, search string) {
	if search == "" {
		return
	}
	qb.WriteString(" WHERE first_name LIKE ? COLLATE NOCASE OR last_name LIKE ? COLLATE NOCASE OR email LIKE ? COLLATE NOCASE OR city LIKE ? COLLATE NOCASE")
	pattern := "%" + search + "%"
	*args = append(*args, pattern, pattern, pattern, pattern)
}

func upsertParticipant(ctx context.Context, tx *sql.Tx, entity domain.Participant) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO participants (id, email, first_name, last_name, dob, phone, city, state, zip, school_or_employer, field_of_interest, participant_role, total_donations)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email=excluded.email,
			first_name=excluded.first_name,
			last_name=excluded.last_name,
			dob=excluded.dob,
			phone=excluded.phone,
			city=excluded.city,
			state=excluded.state,
			zip=excluded.zip,
			school_or_employer=excluded.school_or_employer,
			field_of_interest=excluded.field_of_interest,
			participant_role=excluded.participant_role`,
		entity.ID,
		entity.Email,
		entity.FirstName,
		entity.LastName,
		entity.DOB,
		entity.Phone,
		entity.City,
		entity.State,
		entity.Zip,
		entity.SchoolOrEmployer,
		entity.FieldOfInterest,
		entity.Role,
		entity.TotalDonations,
	)
	return err
}

// scanParticipant extracts a Participant from a row scanner function.
func scanParticipant(scan func(dest ...any) error) (domain.Participant, error) {
	var entity domain.Participant
	var dob, phone, city, state, zip, school, interest sql.NullString
	err := scan(
		&entity.ID,
		&entity.Email,
		&entity.FirstName,
		&entity.LastName,
		&dob,
		&phone,
		&city,
		&state,
		&zip,
		&school,
		&interest,
		&entity.Role,
		&entity.TotalDonations,
	)
	if err != nil {
		return domain.Participant{}, err
	}
	entity.DOB = dob.String
	entity.Phone = phone.String
	entity.City = city.String
	entity.State = state.String
	entity.Zip = zip.String
	entity.SchoolOrEmployer = school.String
	entity.FieldOfInterest = interest.String
	return entity, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
