package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ellarises/internal/adapters/email"
	participantDomain "ellarises/internal/domain/participant"
	"ellarises/internal/domain/user"
)

// UserStoreForCreateProfile defines the store interface needed by CreateProfile.
type UserStoreForCreateProfile interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByUsername(ctx context.Context, username string) (user.User, error)
	SaveWithParticipant(ctx context.Context, u user.User, p participantDomain.Participant) error
}

// CreateProfileInput carries input for the signup orchestrator.
type CreateProfileInput struct {
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
}

// CreateProfileResult carries the created user for session creation.
type CreateProfileResult struct {
	UserID    string
	Email     string
	Role      string
	FirstName string
	LastName  string
}

// CreateProfileDeps holds dependencies for CreateProfile.
type CreateProfileDeps struct {
	UserStore UserStoreForCreateProfile
	Sender    email.Sender
}

var (
	ErrEmailTaken    = errors.New("an account with that email already exists")
	ErrUsernameTaken = errors.New("that username is already taken")
)

// ExecuteCreateProfile creates a user account and its participant record in
// one transaction, then sends a welcome email.
// PRE: Input fields are present; password matches its confirmation
// POST: User and participant rows exist for the email; new users get role 'U'
// INVARIANT: Signup never creates a manager
func ExecuteCreateProfile(ctx context.Context, input CreateProfileInput, deps CreateProfileDeps) (CreateProfileResult, error) {
	if input.Password != input.ConfirmPassword {
		return CreateProfileResult{}, user.ErrPasswordMismatch
	}

	u := user.User{
		ID:        uuid.NewString(),
		Email:     input.Email,
		Username:  input.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      user.RoleUser,
		CreatedAt: time.Now(),
	}
	if err := u.Validate(); err != nil {
		return CreateProfileResult{}, err
	}
	if err := u.SetPassword(input.Password); err != nil {
		return CreateProfileResult{}, err
	}

	if _, err := deps.UserStore.GetByEmail(ctx, input.Email); err == nil {
		return CreateProfileResult{}, ErrEmailTaken
	}
	if _, err := deps.UserStore.GetByUsername(ctx, input.Username); err == nil {
		return CreateProfileResult{}, ErrUsernameTaken
	}

	p := participantDomain.Participant{
		ID:        uuid.NewString(),
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      participantDomain.RoleParticipant,
	}

	if err := deps.UserStore.SaveWithParticipant(ctx, u, p); err != nil {
		return CreateProfileResult{}, err
	}

	slog.Info("auth_event", "event", "profile_created", "email", u.Email)

	if deps.Sender != nil {
		if _, err := deps.Sender.Send(ctx, email.ComposeWelcome(u.Email, u.FirstName)); err != nil {
			// Signup already committed; a failed welcome email is not fatal.
			slog.Warn("welcome_email_failed", "email", u.Email, "error", err)
		}
	}

	return CreateProfileResult{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}, nil
}
