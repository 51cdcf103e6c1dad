package projections

import (
	"context"

	registrationStore "ellarises/internal/adapters/storage/registration"
	surveyStore "ellarises/internal/adapters/storage/survey"
	domainMilestone "ellarises/internal/domain/milestone"
)

// GetDashboardQuery carries input for the dashboard projection.
type GetDashboardQuery struct {
	Email string // signed-in person's email
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	ParticipantStore  ParticipantStore
	RegistrationStore RegistrationStore
	SurveyStore       SurveyStore
	MilestoneStore    MilestoneStore
}

// GetDashboardResult carries everything the signed-in person's dashboard
// shows: their registrations, feedback, milestones, and giving total.
type GetDashboardResult struct {
	HasParticipant bool
	ParticipantID  string
	TotalDonations float64
	Registrations  []registrationStore.Detail
	Surveys        []surveyStore.Detail
	Milestones     []domainMilestone.Milestone
}

// QueryGetDashboard assembles the signed-in person's dashboard.
// PRE: Email identifies the session
// POST: Returns the participant's activity; a missing participant record
// yields an empty dashboard, not an error
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (GetDashboardResult, error) {
	p, err := deps.ParticipantStore.GetByEmail(ctx, query.Email)
	if err != nil {
		// No participant record yet: nothing to show.
		return GetDashboardResult{}, nil
	}

	result := GetDashboardResult{
		HasParticipant: true,
		ParticipantID:  p.ID,
		TotalDonations: p.TotalDonations,
	}

	if result.Registrations, err = deps.RegistrationStore.ListByParticipant(ctx, p.ID); err != nil {
		return GetDashboardResult{}, err
	}
	if result.Surveys, err = deps.SurveyStore.ListByParticipant(ctx, p.ID); err != nil {
		return GetDashboardResult{}, err
	}
	if result.Milestones, err = deps.MilestoneStore.ListByParticipant(ctx, p.ID); err != nil {
		return GetDashboardResult{}, err
	}
	return result, nil
}
