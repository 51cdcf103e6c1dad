package orchestrators

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	milestoneDomain "ellarises/internal/domain/milestone"
)

// MilestoneStoreForAdd defines the store interface needed by AddMilestone.
type MilestoneStoreForAdd interface {
	Save(ctx context.Context, m milestoneDomain.Milestone) error
}

// AddMilestoneInput carries input for the milestone orchestrator.
type AddMilestoneInput struct {
	ParticipantID string
	Title         string
	AchievedOn    string
}

// AddMilestoneDeps holds dependencies for AddMilestone.
type AddMilestoneDeps struct {
	MilestoneStore MilestoneStoreForAdd
}

// ExecuteAddMilestone records an achievement for a participant.
// PRE: ParticipantID refers to an existing participant
// POST: Milestone row exists
func ExecuteAddMilestone(ctx context.Context, input AddMilestoneInput, deps AddMilestoneDeps) (milestoneDomain.Milestone, error) {
	m := milestoneDomain.Milestone{
		ID:            uuid.NewString(),
		ParticipantID: input.ParticipantID,
		Title:         input.Title,
		AchievedOn:    input.AchievedOn,
	}
	if err := m.Validate(); err != nil {
		return milestoneDomain.Milestone{}, err
	}
	if err := deps.MilestoneStore.Save(ctx, m); err != nil {
		return milestoneDomain.Milestone{}, err
	}

	slog.Info("milestone_added", "participant_id", m.ParticipantID, "title", m.Title)
	return m, nil
}
