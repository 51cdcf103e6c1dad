package projections

import (
	"context"

	donationStore "ellarises/internal/adapters/storage/donation"
	eventStore "ellarises/internal/adapters/storage/event"
	participantStore "ellarises/internal/adapters/storage/participant"
	registrationStore "ellarises/internal/adapters/storage/registration"
	surveyStore "ellarises/internal/adapters/storage/survey"
	userStore "ellarises/internal/adapters/storage/user"
	domainDonation "ellarises/internal/domain/donation"
	domainEvent "ellarises/internal/domain/event"
	domainMilestone "ellarises/internal/domain/milestone"
	domainParticipant "ellarises/internal/domain/participant"
	domainUser "ellarises/internal/domain/user"
)

// ParticipantStore interface for participant queries.
type ParticipantStore interface {
	GetByID(ctx context.Context, id string) (domainParticipant.Participant, error)
	GetByEmail(ctx context.Context, email string) (domainParticipant.Participant, error)
	List(ctx context.Context, filter participantStore.ListFilter) ([]domainParticipant.Participant, error)
	Count(ctx context.Context, filter participantStore.ListFilter) (int, error)
}

// EventStore interface for event queries.
type EventStore interface {
	GetDetail(ctx context.Context, id string) (domainEvent.Detail, error)
	ListDetails(ctx context.Context, filter eventStore.ListFilter) ([]domainEvent.Detail, error)
	ListTemplates(ctx context.Context) ([]domainEvent.Template, error)
}

// RegistrationStore interface for registration queries.
type RegistrationStore interface {
	ListByParticipant(ctx context.Context, participantID string) ([]registrationStore.Detail, error)
	ListDetails(ctx context.Context, filter registrationStore.ListFilter) ([]registrationStore.Detail, error)
	Count(ctx context.Context, filter registrationStore.ListFilter) (int, error)
}

// DonationStore interface for donation queries.
type DonationStore interface {
	ListByEmail(ctx context.Context, email string) ([]domainDonation.Donation, error)
	ListDetails(ctx context.Context, filter donationStore.ListFilter) ([]donationStore.Detail, error)
}

// SurveyStore interface for survey queries.
type SurveyStore interface {
	ListByParticipant(ctx context.Context, participantID string) ([]surveyStore.Detail, error)
	ListDetails(ctx context.Context, filter surveyStore.ListFilter) ([]surveyStore.Detail, error)
	Count(ctx context.Context, filter surveyStore.ListFilter) (int, error)
}

// MilestoneStore interface for milestone queries.
type MilestoneStore interface {
	ListByParticipant(ctx context.Context, participantID string) ([]domainMilestone.Milestone, error)
}

// UserStore interface for user queries.
type UserStore interface {
	List(ctx context.Context, filter userStore.ListFilter) ([]domainUser.User, error)
}
