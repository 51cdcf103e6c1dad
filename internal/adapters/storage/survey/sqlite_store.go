package survey

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"ellarises/internal/adapters/storage"
	domain "ellarises/internal/domain/survey"
)

const surveyColumns = "id, registration_id, satisfaction, organization, content, recommend, overall, comments, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SurveyStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Survey by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Survey, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+surveyColumns+" FROM surveys WHERE id = ?", id)
	entity, err := scanSurvey(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Survey{}, fmt.Errorf("survey not found: %w", err)
	}
	return entity, err
}

// Save persists a Survey to the database.
// PRE: entity has been validated and Overall computed
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Survey) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO surveys (id, registration_id, satisfaction, organization, content, recommend, overall, comments, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			satisfaction=excluded.satisfaction,
			organization=excluded.organization,
			content=excluded.content,
			recommend=excluded.recommend,
			overall=excluded.overall,
			comments=excluded.comments`,
		entity.ID,
		entity.RegistrationID,
		entity.Satisfaction,
		entity.Organization,
		entity.Content,
		entity.Recommend,
		entity.Overall,
		entity.Comments,
		storage.FormatTime(entity.CreatedAt),
	)
	return err
}

// Delete removes a Survey from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM surveys WHERE id = ?", id)
	return err
}

// ListByParticipant retrieves a participant's surveys, newest first.
func (s *SQLiteStore) ListByParticipant(ctx context.Context, participantID string) ([]Detail, error) {
	rows, err := s.db.QueryContext(ctx, detailSelect+" WHERE r.participant_id = ? ORDER BY sv.created_at DESC", participantID)
	if err != nil {
		return nil, err
	}
	return collectDetails(rows)
}

// ListDetails retrieves surveys joined with respondent and occurrence
// fields. Search matches respondent name/email, occurrence name, and the
// submission date, case-insensitively.
// PRE: filter has valid parameters
// POST: Returns matching joined rows, newest first
func (s *SQLiteStore) ListDetails(ctx context.Context, filter ListFilter) ([]Detail, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(detailSelect)
	appendSearch(&queryBuilder, &args, filter.Search)
	queryBuilder.WriteString(" ORDER BY sv.created_at DESC")
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

// Count returns the number of surveys matching the filter.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(`
		SELECT COUNT(*)
		FROM surveys sv
		JOIN registrations r ON r.id = sv.registration_id
		JOIN participants p ON p.id = r.participant_id
		JOIN event_occurrences o ON o.id = r.occurrence_id`)
	appendSearch(&queryBuilder, &args, filter.Search)

	var count int
	err := s.db.QueryRowContext(ctx, queryBuilder.String(), args...).Scan(&count)
	return count, err
}

const detailSelect = `
	SELECT sv.id, sv.registration_id, sv.satisfaction, sv.organization, sv.content, sv.recommend, sv.overall, sv.comments, sv.created_at,
	       p.first_name || ' ' || p.last_name, p.email, o.name
	FROM surveys sv
	JOIN registrations r ON r.id = sv.registration_id
	JOIN participants p ON p.id = r.participant_id
	JOIN event_occurrences o ON o.id = r.occurrence_id`

func appendSearch(qb *strings.Builder, args *[]any, search string) {
	if search == "" {
		return
	}
	qb.WriteString(" WHERE p.first_name LIKE ? COLLATE NOCASE OR p.last_name LIKE ? COLLATE NOCASE OR p.email LIKE ? COLLATE NOCASE OR o.name LIKE ? COLLATE NOCASE OR sv.created_at LIKE ?")
	pattern := "%" + search + "%"
	*args = append(*args, pattern, pattern, pattern, pattern, pattern)
}

func collectDetails(rows *sql.Rows) ([]Detail, error) {
	defer rows.Close()
	var results []Detail
	for rows.Next() {
		var d Detail
		var comments sql.NullString
		var createdAt string
		err := rows.Scan(
			&d.ID, &d.RegistrationID, &d.Satisfaction, &d.Organization, &d.Content, &d.Recommend, &d.Overall, &comments, &createdAt,
			&d.ParticipantName, &d.ParticipantEmail, &d.OccurrenceName,
		)
		if err != nil {
			return nil, err
		}
		d.Comments = comments.String
		d.CreatedAt, _ = storage.ParseTime(createdAt)
		results = append(results, d)
	}
	return results, rows.Err()
}

// scanSurvey extracts a Survey from a row scanner function.
func scanSurvey(scan func(dest ...any) error) (domain.Survey, error) {
	var entity domain.Survey
	var comments sql.NullString
	var createdAt string
	err := scan(
		&entity.ID,
		&entity.RegistrationID,
		&entity.Satisfaction,
		&entity.Organization,
		&entity.Content,
		&entity.Recommend,
		&entity.Overall,
		&comments,
		&createdAt,
	)
	if err != nil {
		return domain.Survey{}, err
	}
	entity.Comments = comments.String
	entity.CreatedAt, _ = storage.ParseTime(createdAt)
	return entity, nil
}
