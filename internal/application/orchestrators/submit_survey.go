package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	registrationDomain "ellarises/internal/domain/registration"
	surveyDomain "ellarises/internal/domain/survey"
)

// RegistrationStoreForSurvey defines the store interface needed by SubmitSurvey.
type RegistrationStoreForSurvey interface {
	GetByID(ctx context.Context, id string) (registrationDomain.Registration, error)
}

// SurveyStoreForSubmit defines the store interface needed by SubmitSurvey.
type SurveyStoreForSubmit interface {
	Save(ctx context.Context, sv surveyDomain.Survey) error
}

// SubmitSurveyInput carries input for the survey orchestrator.
type SubmitSurveyInput struct {
	RegistrationID string
	ParticipantID  string
	Satisfaction   int
	Organization   int
	Content        int
	Recommend      int
	Comments       string
}

// SubmitSurveyDeps holds dependencies for SubmitSurvey.
type SubmitSurveyDeps struct {
	RegistrationStore RegistrationStoreForSurvey
	SurveyStore       SurveyStoreForSubmit
}

// ErrNotYourRegistration means the survey targets a registration that
// belongs to someone else.
var ErrNotYourRegistration = errors.New("that registration does not belong to you")

// ExecuteSubmitSurvey validates all four scores and stores the feedback with
// its computed overall rating.
// PRE: All four scores are in [1,5]; registration belongs to the participant
// POST: Survey row exists with Overall = mean of the four scores, 2dp
// INVARIANT: A survey with any invalid score is never partially stored
func ExecuteSubmitSurvey(ctx context.Context, input SubmitSurveyInput, deps SubmitSurveyDeps) (surveyDomain.Survey, error) {
	reg, err := deps.RegistrationStore.GetByID(ctx, input.RegistrationID)
	if err != nil {
		return surveyDomain.Survey{}, err
	}
	if input.ParticipantID != "" && reg.ParticipantID != input.ParticipantID {
		return surveyDomain.Survey{}, ErrNotYourRegistration
	}

	sv := surveyDomain.Survey{
		ID:             uuid.NewString(),
		RegistrationID: reg.ID,
		Satisfaction:   input.Satisfaction,
		Organization:   input.Organization,
		Content:        input.Content,
		Recommend:      input.Recommend,
		Comments:       input.Comments,
		CreatedAt:      time.Now(),
	}
	if err := sv.Validate(); err != nil {
		return surveyDomain.Survey{}, err
	}
	sv.ComputeOverall()

	if err := deps.SurveyStore.Save(ctx, sv); err != nil {
		return surveyDomain.Survey{}, err
	}

	slog.Info("survey_submitted", "registration_id", reg.ID, "overall", sv.Overall)
	return sv, nil
}
