package orchestrators

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	participantDomain "ellarises/internal/domain/participant"
	"ellarises/internal/domain/user"
)

// UserStoreForSeed defines the store interface needed by SeedManager.
type UserStoreForSeed interface {
	Count(ctx context.Context) (int, error)
	SaveWithParticipant(ctx context.Context, u user.User, p participantDomain.Participant) error
}

// SeedManagerDeps holds dependencies for SeedManager.
type SeedManagerDeps struct {
	UserStore UserStoreForSeed
}

// ExecuteSeedManager creates the first manager account from ELLA_ADMIN_EMAIL
// and ELLA_ADMIN_PASSWORD when the users table is empty. A fresh install is
// unusable without at least one manager.
// PRE: None
// POST: If the table was empty and both env vars are set, a manager exists
// INVARIANT: Never runs against a non-empty users table
func ExecuteSeedManager(ctx context.Context, deps SeedManagerDeps) error {
	count, err := deps.UserStore.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminEmail := os.Getenv("ELLA_ADMIN_EMAIL")
	adminPassword := os.Getenv("ELLA_ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		slog.Warn("seed_skipped", "reason", "ELLA_ADMIN_EMAIL or ELLA_ADMIN_PASSWORD not set")
		return nil
	}

	u := user.User{
		ID:        uuid.NewString(),
		Email:     adminEmail,
		Username:  "admin",
		FirstName: "Site",
		LastName:  "Manager",
		Role:      user.RoleManager,
		CreatedAt: time.Now(),
	}
	if err := u.SetPassword(adminPassword); err != nil {
		return err
	}

	p := participantDomain.Participant{
		ID:        uuid.NewString(),
		Email:     adminEmail,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      participantDomain.RoleAdmin,
	}

	if err := deps.UserStore.SaveWithParticipant(ctx, u, p); err != nil {
		return err
	}

	slog.Info("seed_manager_created", "email", adminEmail)
	return nil
}
