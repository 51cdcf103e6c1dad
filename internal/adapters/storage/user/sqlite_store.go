package user

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"ellarises/internal/adapters/storage"
	domain "ellarises/internal/domain/user"
	participantDomain "ellarises/internal/domain/participant"
)

const userColumns = "id, email, username, password_hash, first_name, last_name, role, password_change_required, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new UserStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a User by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	entity, err := scanUser(row.Scan)
	if err == sql.ErrNoRows {
		return domain.User{}, fmt.Errorf("user not found: %w", err)
	}
	return entity, err
}

// GetByEmail retrieves a User by email, compared case-insensitively.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ? COLLATE NOCASE", email)
	entity, err := scanUser(row.Scan)
	if err == sql.ErrNoRows {
		return domain.User{}, fmt.Errorf("user not found: %w", err)
	}
	return entity, err
}

// GetByUsername retrieves a User by username.
// PRE: username is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE username = ?", username)
	entity, err := scanUser(row.Scan)
	if err == sql.ErrNoRows {
		return domain.User{}, fmt.Errorf("user not found: %w", err)
	}
	return entity, err
}

// Save persists a User to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := upsertUser(ctx, tx, entity); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveWithParticipant persists a new user plus a participant row for the
// same email if none exists yet, in a single transaction.
// PRE: both entities have been validated and share an email
// POST: User upserted; participant inserted only when the email was unseen
func (s *SQLiteStore) SaveWithParticipant(ctx context.Context, u domain.User, p participantDomain.Participant) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := upsertUser(ctx, tx, u); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO participants (id, email, first_name, last_name, dob, phone, city, state, zip, school_or_employer, field_of_interest, participant_role, total_donations)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(email) DO NOTHING`,
		p.ID, p.Email, p.FirstName, p.LastName, p.DOB, p.Phone, p.City, p.State, p.Zip,
		p.SchoolOrEmployer, p.FieldOfInterest, p.Role, p.TotalDonations,
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// SaveWithRoleSync persists the user and mirrors participantRole onto the
// participant row matching the user's email, in one transaction. A missing
// participant row is not an error; there is nothing to mirror onto.
// PRE: entity has been validated; participantRole is a valid role tag
// POST: User upserted and any matching participant carries participantRole
func (s *SQLiteStore) SaveWithRoleSync(ctx context.Context, u domain.User, participantRole string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := upsertUser(ctx, tx, u); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE participants SET participant_role = ? WHERE email = ? COLLATE NOCASE",
		participantRole, u.Email,
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a User from the database. The linked participant row is
// deliberately left in place.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	return err
}

// List retrieves Users based on the filter. Search matches email, username,
// and names case-insensitively.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.User, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString("SELECT " + userColumns + " FROM users")
	if filter.Search != "" {
		queryBuilder.WriteString(" WHERE email LIKE ? COLLATE NOCASE OR username LIKE ? COLLATE NOCASE OR first_name LIKE ? COLLATE NOCASE OR last_name LIKE ? COLLATE NOCASE")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern, pattern)
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")
	if filter.Limit > 0 {
		queryBuilder.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.User
	for rows.Next() {
		entity, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the total number of users.
// PRE: none
// POST: Returns total user count
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

func upsertUser(ctx context.Context, tx *sql.Tx, entity domain.User) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO users (id, email, username, password_hash, first_name, last_name, role, password_change_required, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email=excluded.email,
			username=excluded.username,
			password_hash=excluded.password_hash,
			first_name=excluded.first_name,
			last_name=excluded.last_name,
			role=excluded.role,
			password_change_required=excluded.password_change_required`,
		entity.ID,
		entity.Email,
		entity.Username,
		entity.PasswordHash,
		entity.FirstName,
		entity.LastName,
		entity.Role,
		boolToInt(entity.PasswordChangeRequired),
		storage.FormatTime(entity.CreatedAt),
	)
	return err
}

// scanUser extracts a User from a row scanner function.
func scanUser(scan func(dest ...any) error) (domain.User, error) {
	var entity domain.User
	var changeRequired int
	var createdAt string
	err := scan(
		&entity.ID,
		&entity.Email,
		&entity.Username,
		&entity.PasswordHash,
		&entity.FirstName,
		&entity.LastName,
		&entity.Role,
		&changeRequired,
		&createdAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	entity.PasswordChangeRequired = changeRequired != 0
	entity.CreatedAt, _ = storage.ParseTime(createdAt)
	return entity, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
