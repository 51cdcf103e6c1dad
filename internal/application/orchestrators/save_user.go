package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	participantDomain "ellarises/internal/domain/participant"
	"ellarises/internal/domain/user"
)

// UserStoreForSave defines the store interface needed by SaveUser.
type UserStoreForSave interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	SaveWithRoleSync(ctx context.Context, u user.User, participantRole string) error
}

// SaveUserInput carries input for the manager-side user create/edit
// orchestrator. An empty ID means create.
type SaveUserInput struct {
	ID        string
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// SaveUserDeps holds dependencies for SaveUser.
type SaveUserDeps struct {
	UserStore UserStoreForSave
}

// participantRoleFor maps a login role onto the tag shown on participant rows.
func participantRoleFor(role string) string {
	if role == user.RoleManager {
		return participantDomain.RoleAdmin
	}
	return participantDomain.RoleParticipant
}

// ExecuteSaveUser creates or updates a user from the manager console and
// mirrors the role onto any participant row sharing the email.
// PRE: Role is 'M' or 'U'
// POST: User row saved; matching participant row carries the mirrored role
// INVARIANT: The user and participant role columns never disagree for a shared email
func ExecuteSaveUser(ctx context.Context, input SaveUserInput, deps SaveUserDeps) (user.User, error) {
	var u user.User
	if input.ID != "" {
		existing, err := deps.UserStore.GetByID(ctx, input.ID)
		if err != nil {
			return user.User{}, err
		}
		u = existing
	} else {
		u = user.User{ID: uuid.NewString(), CreatedAt: time.Now()}
	}

	u.Email = input.Email
	u.Username = input.Username
	u.FirstName = input.FirstName
	u.LastName = input.LastName
	u.Role = input.Role

	if err := u.Validate(); err != nil {
		return user.User{}, err
	}
	if input.Password != "" {
		if err := u.SetPassword(input.Password); err != nil {
			return user.User{}, err
		}
	}

	if err := deps.UserStore.SaveWithRoleSync(ctx, u, participantRoleFor(u.Role)); err != nil {
		return user.User{}, err
	}

	slog.Info("user_saved", "user_id", u.ID, "role", u.Role)
	return u, nil
}
