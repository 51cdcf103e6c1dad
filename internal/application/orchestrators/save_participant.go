package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	participantDomain "ellarises/internal/domain/participant"
	"ellarises/internal/domain/user"
)

// ParticipantStoreForSave defines the store interface needed by SaveParticipant.
type ParticipantStoreForSave interface {
	GetByID(ctx context.Context, id string) (participantDomain.Participant, error)
	SaveWithUserRoleSync(ctx context.Context, p participantDomain.Participant, userRole string, newUser *user.User) error
}

// SaveParticipantInput carries input for the manager-side participant
// create/edit orchestrator. An empty ID means create.
type SaveParticipantInput struct {
	ID               string
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
	Role             string
}

// SaveParticipantDeps holds dependencies for SaveParticipant.
type SaveParticipantDeps struct {
	ParticipantStore ParticipantStoreForSave
}

// userRoleFor maps a participant role tag back onto the login role.
func userRoleFor(participantRole string) string {
	if participantRole == participantDomain.RoleAdmin {
		return user.RoleManager
	}
	return user.RoleUser
}

// ExecuteSaveParticipant creates or updates a participant from the manager
// console and mirrors the role onto the user row sharing the email. When an
// admin-tagged participant has no login yet, one is created with a
// known-default password that must be changed at first login.
// PRE: Role is 'participant' or 'admin'
// POST: Participant row saved; matching user row carries the mirrored role
// INVARIANT: The user and participant role columns never disagree for a shared email
func ExecuteSaveParticipant(ctx context.Context, input SaveParticipantInput, deps SaveParticipantDeps) (participantDomain.Participant, error) {
	var p participantDomain.Participant
	if input.ID != "" {
		existing, err := deps.ParticipantStore.GetByID(ctx, input.ID)
		if err != nil {
			return participantDomain.Participant{}, err
		}
		p = existing
	} else {
		p = participantDomain.Participant{ID: uuid.NewString()}
	}

	p.Email = input.Email
	p.FirstName = input.FirstName
	p.LastName = input.LastName
	p.DOB = input.DOB
	p.Phone = participantDomain.NormalizePhone(input.Phone)
	p.City = input.City
	p.State = input.State
	p.Zip = input.Zip
	p.SchoolOrEmployer = input.SchoolOrEmployer
	p.FieldOfInterest = input.FieldOfInterest
	if input.Role != "" {
		p.Role = input.Role
	}
	if p.Role == "" {
		p.Role = participantDomain.RoleParticipant
	}

	if err := p.Validate(); err != nil {
		return participantDomain.Participant{}, err
	}

	// Tagging a participant as admin grants a login even if none exists.
	var newUser *user.User
	if p.Role == participantDomain.RoleAdmin {
		u := user.User{
			ID:                     uuid.NewString(),
			Email:                  p.Email,
			Username:               strings.Split(p.Email, "@")[0],
			FirstName:              p.FirstName,
			LastName:               p.LastName,
			Role:                   user.RoleManager,
			PasswordChangeRequired: true,
			CreatedAt:              time.Now(),
		}
		if err := u.SetPassword(user.DefaultPassword); err != nil {
			return participantDomain.Participant{}, err
		}
		newUser = &u
	}

	if err := deps.ParticipantStore.SaveWithUserRoleSync(ctx, p, userRoleFor(p.Role), newUser); err != nil {
		return participantDomain.Participant{}, err
	}

	slog.Info("participant_saved", "participant_id", p.ID, "role", p.Role)
	return p, nil
}
