package orchestrators

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	participantDomain "ellarises/internal/domain/participant"
)

// UpdateProfileInput carries the editable participant fields for the
// signed-in person. Email identifies the row and is never changed here.
type UpdateProfileInput struct {
	Email            string
	FirstName        string
	LastName         string
	DOB              string
	Phone            string
	City             string
	State            string
	Zip              string
	SchoolOrEmployer string
	FieldOfInterest  string
}

// UpdateProfileDeps holds dependencies for UpdateProfile.
type UpdateProfileDeps struct {
	ParticipantStore ParticipantStoreForEnsure
}

// ExecuteUpdateProfile upserts the participant record for the signed-in
// person's email. Phone numbers are normalized to bare digits.
// PRE: Email identifies the signed-in person
// POST: Participant row reflects the submitted fields
func ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput, deps UpdateProfileDeps) (participantDomain.Participant, error) {
	p, err := deps.ParticipantStore.GetByEmail(ctx, input.Email)
	if err != nil {
		p = participantDomain.Participant{
			ID:    uuid.NewString(),
			Email: input.Email,
			Role:  participantDomain.RoleParticipant,
		}
	}

	p.FirstName = input.FirstName
	p.LastName = input.LastName
	p.DOB = input.DOB
	p.Phone = participantDomain.NormalizePhone(input.Phone)
	p.City = input.City
	p.State = input.State
	p.Zip = input.Zip
	p.SchoolOrEmployer = input.SchoolOrEmployer
	p.FieldOfInterest = input.FieldOfInterest

	if err := p.Validate(); err != nil {
		return participantDomain.Participant{}, err
	}
	if err := deps.ParticipantStore.Save(ctx, p); err != nil {
		return participantDomain.Participant{}, err
	}

	slog.Info("profile_updated", "participant_id", p.ID)
	return p, nil
}
