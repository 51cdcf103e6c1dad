package orchestrators

import (
	"context"
	"errors"
	"testing"

	participantDomain "ellarises/internal/domain/participant"
	"ellarises/internal/domain/user"
)

// mockParticipantStoreForSave implements ParticipantStoreForSave for testing.
type mockParticipantStoreForSave struct {
	participants map[string]participantDomain.Participant
	syncedRole   string
	createdUser  *user.User
}

func (m *mockParticipantStoreForSave) GetByID(_ context.Context, id string) (participantDomain.Participant, error) {
	p, ok := m.participants[id]
	if !ok {
		return participantDomain.Participant{}, errors.New("not found")
	}
	return p, nil
}

func (m *mockParticipantStoreForSave) SaveWithUserRoleSync(_ context.Context, p participantDomain.Participant, userRole string, newUser *user.User) error {
	m.participants[p.ID] = p
	m.syncedRole = userRole
	m.createdUser = newUser
	return nil
}

// TestExecuteSaveParticipant_Create tests creating a regular participant.
func TestExecuteSaveParticipant_Create(t *testing.T) {
	store := &mockParticipantStoreForSave{participants: make(map[string]participantDomain.Participant)}

	p, err := ExecuteSaveParticipant(context.Background(), SaveParticipantInput{
		Email:     "ava@example.com",
		FirstName: "Ava",
		LastName:  "Rises",
		Phone:     "(555) 123-4567",
	}, SaveParticipantDeps{ParticipantStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Role != participantDomain.RoleParticipant {
		t.Errorf("role = %s, want %s", p.Role, participantDomain.RoleParticipant)
	}
	if p.Phone != "5551234567" {
		t.Errorf("phone = %s, want normalized digits", p.Phone)
	}
	if store.syncedRole != user.RoleUser {
		t.Errorf("synced user role = %s, want %s", store.syncedRole, user.RoleUser)
	}
	if store.createdUser != nil {
		t.Error("a plain participant must not get a login created")
	}
}

// TestExecuteSaveParticipant_AdminCreatesLogin tests that tagging a
// participant as admin provisions a manager login with a default password
// that must be changed.
func TestExecuteSaveParticipant_AdminCreatesLogin(t *testing.T) {
	store := &mockParticipantStoreForSave{participants: make(map[string]participantDomain.Participant)}

	_, err := ExecuteSaveParticipant(context.Background(), SaveParticipantInput{
		Email:     "lead@example.com",
		FirstName: "Lena",
		LastName:  "Ortiz",
		Role:      participantDomain.RoleAdmin,
	}, SaveParticipantDeps{ParticipantStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.syncedRole != user.RoleManager {
		t.Errorf("synced user role = %s, want %s", store.syncedRole, user.RoleManager)
	}
	if store.createdUser == nil {
		t.Fatal("admin participant must come with a login candidate")
	}
	if store.createdUser.Role != user.RoleManager {
		t.Errorf("created user role = %s, want %s", store.createdUser.Role, user.RoleManager)
	}
	if !store.createdUser.PasswordChangeRequired {
		t.Error("default-password logins must require a password change")
	}
	if err := store.createdUser.CheckPassword(user.DefaultPassword); err != nil {
		t.Error("created login must accept the default password")
	}
}

// TestExecuteSaveParticipant_EditKeepsRole tests that editing without a role
// keeps the stored one.
func TestExecuteSaveParticipant_EditKeepsRole(t *testing.T) {
	store := &mockParticipantStoreForSave{participants: map[string]participantDomain.Participant{
		"p-1": {ID: "p-1", Email: "ava@example.com", FirstName: "Ava", Role: participantDomain.RoleParticipant},
	}}

	p, err := ExecuteSaveParticipant(context.Background(), SaveParticipantInput{
		ID:        "p-1",
		Email:     "ava@example.com",
		FirstName: "Ava",
		LastName:  "Rises",
		City:      "Austin",
	}, SaveParticipantDeps{ParticipantStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Role != participantDomain.RoleParticipant {
		t.Errorf("role = %s, want unchanged", p.Role)
	}
	if p.City != "Austin" {
		t.Errorf("city = %s, want Austin", p.City)
	}
}

// TestExecuteSaveUser_RoleSync tests the mirror in the other direction.
func TestExecuteSaveUser_RoleSync(t *testing.T) {
	store := &mockUserStoreForSaveUser{users: make(map[string]user.User)}

	u, err := ExecuteSaveUser(context.Background(), SaveUserInput{
		Email:    "lead@example.com",
		Username: "lead",
		Password: "pw-123456",
		Role:     user.RoleManager,
	}, SaveUserDeps{UserStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.syncedRole != participantDomain.RoleAdmin {
		t.Errorf("synced participant role = %s, want %s", store.syncedRole, participantDomain.RoleAdmin)
	}
	if u.Role != user.RoleManager {
		t.Errorf("role = %s, want %s", u.Role, user.RoleManager)
	}

	_, err = ExecuteSaveUser(context.Background(), SaveUserInput{
		Email:    "member@example.com",
		Username: "member",
		Role:     user.RoleUser,
	}, SaveUserDeps{UserStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.syncedRole != participantDomain.RoleParticipant {
		t.Errorf("synced participant role = %s, want %s", store.syncedRole, participantDomain.RoleParticipant)
	}
}

// mockUserStoreForSaveUser implements UserStoreForSave for testing.
type mockUserStoreForSaveUser struct {
	users      map[string]user.User
	syncedRole string
}

func (m *mockUserStoreForSaveUser) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, errors.New("not found")
	}
	return u, nil
}

func (m *mockUserStoreForSaveUser) SaveWithRoleSync(_ context.Context, u user.User, participantRole string) error {
	m.users[u.ID] = u
	m.syncedRole = participantRole
	return nil
}

// TestExecuteSaveUser_InvalidRole tests role validation.
func TestExecuteSaveUser_InvalidRole(t *testing.T) {
	store := &mockUserStoreForSaveUser{users: make(map[string]user.User)}

	_, err := ExecuteSaveUser(context.Background(), SaveUserInput{
		Email:    "x@example.com",
		Username: "x",
		Role:     "superuser",
	}, SaveUserDeps{UserStore: store})
	if !errors.Is(err, user.ErrInvalidRole) {
		t.Errorf("error = %v, want ErrInvalidRole", err)
	}
}
