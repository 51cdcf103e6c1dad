package event

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"ellarises/internal/adapters/storage"
	domain "ellarises/internal/domain/event"
)

const occurrenceColumns = "id, template_id, name, starts_at, ends_at, location, capacity, registration_deadline"

// SQLiteStore implements Store and TemplateStore using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new event store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Occurrence by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Occurrence, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+occurrenceColumns+" FROM event_occurrences WHERE id = ?", id)
	entity, err := scanOccurrence(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Occurrence{}, fmt.Errorf("event occurrence not found: %w", err)
	}
	return entity, err
}

// GetDetail retrieves an Occurrence joined with its Template.
// PRE: id is non-empty
// POST: Returns the joined detail or an error if not found
func (s *SQLiteStore) GetDetail(ctx context.Context, id string) (domain.Detail, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT o.id, o.template_id, o.name, o.starts_at, o.ends_at, o.location, o.capacity, o.registration_deadline,
		       t.name, t.type, t.description
		FROM event_occurrences o
		JOIN event_templates t ON t.id = o.template_id
		WHERE o.id = ?`, id)

	var d domain.Detail
	var startsAt string
	var endsAt, location, deadline sql.NullString
	err := row.Scan(
		&d.ID, &d.TemplateID, &d.Name, &startsAt, &endsAt, &location, &d.Capacity, &deadline,
		&d.TemplateName, &d.TemplateType, &d.Description,
	)
	if err == sql.ErrNoRows {
		return domain.Detail{}, fmt.Errorf("event occurrence not found: %w", err)
	}
	if err != nil {
		return domain.Detail{}, err
	}
	d.StartsAt, _ = storage.ParseTime(startsAt)
	d.EndsAt, _ = storage.ParseTime(endsAt.String)
	d.Location = location.String
	d.RegistrationDeadline, _ = storage.ParseTime(deadline.String)
	return d, nil
}

// Save persists an Occurrence to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Occurrence) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO event_occurrences (id, template_id, name, starts_at, ends_at, location, capacity, registration_deadline)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			template_id=excluded.template_id,
			name=excluded.name,
			starts_at=excluded.starts_at,
			ends_at=excluded.ends_at,
			location=excluded.location,
			capacity=excluded.capacity,
			registration_deadline=excluded.registration_deadline`,
		entity.ID,
		entity.TemplateID,
		entity.Name,
		storage.FormatTime(entity.StartsAt),
		storage.FormatTime(entity.EndsAt),
		entity.Location,
		entity.Capacity,
		storage.FormatTime(entity.RegistrationDeadline),
	)
	return err
}

// Delete removes an Occurrence from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM event_occurrences WHERE id = ?", id)
	return err
}

// ListDetails retrieves occurrences joined with templates, soonest first.
// Search matches occurrence name, template name/type, and location.
// PRE: filter has valid parameters
// POST: Returns matching joined rows
func (s *SQLiteStore) ListDetails(ctx context.Context, filter ListFilter) ([]domain.Detail, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(`
		SELECT o.id, o.template_id, o.name, o.starts_at, o.ends_at, o.location, o.capacity, o.registration_deadline,
		       t.name, t.type, t.description
		FROM event_occurrences o
		JOIN event_templates t ON t.id = o.template_id`)
	if filter.Search != "" {
		queryBuilder.WriteString(" WHERE o.name LIKE ? COLLATE NOCASE OR t.name LIKE ? COLLATE NOCASE OR t.type LIKE ? COLLATE NOCASE OR o.location LIKE ? COLLATE NOCASE OR o.starts_at LIKE ?")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern, pattern, pattern)
	}
	queryBuilder.WriteString(" ORDER BY o.starts_at")
	if filter.Limit > 0 {
		queryBuilder.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Detail
	for rows.Next() {
		var d domain.Detail
		var startsAt string
		var endsAt, location, deadline sql.NullString
		err := rows.Scan(
			&d.ID, &d.TemplateID, &d.Name, &startsAt, &endsAt, &location, &d.Capacity, &deadline,
			&d.TemplateName, &d.TemplateType, &d.Description,
		)
		if err != nil {
			return nil, err
		}
		d.StartsAt, _ = storage.ParseTime(startsAt)
		d.EndsAt, _ = storage.ParseTime(endsAt.String)
		d.Location = location.String
		d.RegistrationDeadline, _ = storage.ParseTime(deadline.String)
		results = append(results, d)
	}
	return results, rows.Err()
}

// GetTemplateByID retrieves a Template by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetTemplateByID(ctx context.Context, id string) (domain.Template, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, type, description FROM event_templates WHERE id = ?", id)
	var t domain.Template
	err := row.Scan(&t.ID, &t.Name, &t.Type, &t.Description)
	if err == sql.ErrNoRows {
		return domain.Template{}, fmt.Errorf("event template not found: %w", err)
	}
	return t, err
}

// SaveTemplate persists a Template to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) SaveTemplate(ctx context.Context, entity domain.Template) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO event_templates (id, name, type, description)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			type=excluded.type,
			description=excluded.description`,
		entity.ID, entity.Name, entity.Type, entity.Description,
	)
	return err
}

// ListTemplates retrieves all templates ordered by name.
// PRE: none
// POST: Returns all templates
func (s *SQLiteStore) ListTemplates(ctx context.Context) ([]domain.Template, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, type, description FROM event_templates ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Template
	for rows.Next() {
		var t domain.Template
		if err := rows.Scan(&t.ID, &t.Name, &t.Type, &t.Description); err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	return results, rows.Err()
}

// scanOccurrence extracts an Occurrence from a row scanner function.
func scanOccurrence(scan func(dest ...any) error) (domain.Occurrence, error) {
	var entity domain.Occurrence
	var startsAt string
	var endsAt, location, deadline sql.NullString
	err := scan(
		&entity.ID,
		&entity.TemplateID,
		&entity.Name,
		&startsAt,
		&endsAt,
		&location,
		&entity.Capacity,
		&deadline,
	)
	if err != nil {
		return domain.Occurrence{}, err
	}
	entity.StartsAt, _ = storage.ParseTime(startsAt)
	entity.EndsAt, _ = storage.ParseTime(endsAt.String)
	entity.Location = location.String
	entity.RegistrationDeadline, _ = storage.ParseTime(deadline.String)
	return entity, nil
}
