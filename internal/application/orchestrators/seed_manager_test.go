package orchestrators

import (
	"context"
	"testing"

	participantDomain "ellarises/internal/domain/participant"
	"ellarises/internal/domain/user"
)

// mockUserStoreForSeed implements UserStoreForSeed for testing.
type mockUserStoreForSeed struct {
	count            int
	savedUser        *user.User
	savedParticipant *participantDomain.Participant
}

func (m *mockUserStoreForSeed) Count(_ context.Context) (int, error) {
	return m.count, nil
}

func (m *mockUserStoreForSeed) SaveWithParticipant(_ context.Context, u user.User, p participantDomain.Participant) error {
	m.savedUser = &u
	m.savedParticipant = &p
	return nil
}

// TestExecuteSeedManager_EmptyTable tests seeding a fresh database.
func TestExecuteSeedManager_EmptyTable(t *testing.T) {
	t.Setenv("ELLA_ADMIN_EMAIL", "admin@ellarises.org")
	t.Setenv("ELLA_ADMIN_PASSWORD", "first-run-secret")

	store := &mockUserStoreForSeed{count: 0}
	if err := ExecuteSeedManager(context.Background(), SeedManagerDeps{UserStore: store}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.savedUser == nil {
		t.Fatal("manager not created")
	}
	if store.savedUser.Role != user.RoleManager {
		t.Errorf("role = %s, want %s", store.savedUser.Role, user.RoleManager)
	}
	if err := store.savedUser.CheckPassword("first-run-secret"); err != nil {
		t.Error("seeded password does not verify")
	}
	if store.savedParticipant == nil || store.savedParticipant.Role != participantDomain.RoleAdmin {
		t.Error("seeded manager must carry an admin participant record")
	}
}

// TestExecuteSeedManager_NonEmptyTable tests that existing users block seeding.
func TestExecuteSeedManager_NonEmptyTable(t *testing.T) {
	t.Setenv("ELLA_ADMIN_EMAIL", "admin@ellarises.org")
	t.Setenv("ELLA_ADMIN_PASSWORD", "first-run-secret")

	store := &mockUserStoreForSeed{count: 3}
	if err := ExecuteSeedManager(context.Background(), SeedManagerDeps{UserStore: store}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.savedUser != nil {
		t.Error("seed must not run against a populated table")
	}
}

// TestExecuteSeedManager_MissingEnv tests that absent credentials skip seeding.
func TestExecuteSeedManager_MissingEnv(t *testing.T) {
	t.Setenv("ELLA_ADMIN_EMAIL", "")
	t.Setenv("ELLA_ADMIN_PASSWORD", "")

	store := &mockUserStoreForSeed{count: 0}
	if err := ExecuteSeedManager(context.Background(), SeedManagerDeps{UserStore: store}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.savedUser != nil {
		t.Error("seed must not run without credentials")
	}
}
