package milestone

import (
	"context"
	"database/sql"
	"fmt"

	"ellarises/internal/adapters/storage"
	domain "ellarises/internal/domain/milestone"
)

const milestoneColumns = "id, participant_id, title, achieved_on"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new MilestoneStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Milestone by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Milestone, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+milestoneColumns+" FROM milestones WHERE id = ?", id)
	entity, err := scanMilestone(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Milestone{}, fmt.Errorf("milestone not found: %w", err)
	}
	return entity, err
}

// Save persists a Milestone to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Milestone) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO milestones (id, participant_id, title, achieved_on)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			achieved_on=excluded.achieved_on`,
		entity.ID, entity.ParticipantID, entity.Title, entity.AchievedOn,
	)
	return err
}

// Delete removes a Milestone from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM milestones WHERE id = ?", id)
	return err
}

// ListByParticipant retrieves a participant's milestones, most recent first.
func (s *SQLiteStore) ListByParticipant(ctx context.Context, participantID string) ([]domain.Milestone, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+milestoneColumns+" FROM milestones WHERE participant_id = ? ORDER BY achieved_on DESC",
		participantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Milestone
	for rows.Next() {
		entity, err := scanMilestone(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// List retrieves all milestones joined with participant name and email,
// most recent first.
func (s *SQLiteStore) List(ctx context.Context) ([]Detail, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.participant_id, m.title, m.achieved_on,
		       p.first_name || ' ' || p.last_name, p.email
		FROM milestones m
		JOIN participants p ON p.id = m.participant_id
		ORDER BY m.achieved_on DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Detail
	for rows.Next() {
		var d Detail
		err := rows.Scan(&d.ID, &d.ParticipantID, &d.Title, &d.AchievedOn, &d.ParticipantName, &d.ParticipantEmail)
		if err != nil {
			return nil, err
		}
		results = append(results, d)
	}
	return results, rows.Err()
}

// scanMilestone extracts a Milestone from a row scanner function.
func scanMilestone(scan func(dest ...any) error) (domain.Milestone, error) {
	var entity domain.Milestone
	err := scan(&entity.ID, &entity.ParticipantID, &entity.Title, &entity.AchievedOn)
	if err != nil {
		return domain.Milestone{}, err
	}
	return entity, nil
}
