package participant_test

import (
	"testing"

	"ellarises/internal/domain/participant"
)

// TestParticipantValidation tests validation of Participant.
func TestParticipantValidation(t *testing.T) {
	tests := []struct {
		name        string
		participant participant.Participant
		wantErr     bool
	}{
		{
			name: "valid participant",
			participant: participant.Participant{
				ID:        "p1",
				Email:     "a@x.com",
				FirstName: "Alice",
				LastName:  "Stone",
				Role:      participant.RoleParticipant,
			},
			wantErr: false,
		},
		{
			name: "valid admin tag",
			participant: participant.Participant{
				ID:        "p2",
				Email:     "b@x.com",
				FirstName: "Bea",
				Role:      participant.RoleAdmin,
			},
			wantErr: false,
		},
		{
			name: "empty email",
			participant: participant.Participant{
				ID:        "p3",
				FirstName: "Alice",
				Role:      participant.RoleParticipant,
			},
			wantErr: true,
		},
		{
			name: "no names at all",
			participant: participant.Participant{
				ID:    "p4",
				Email: "a@x.com",
				Role:  participant.RoleParticipant,
			},
			wantErr: true,
		},
		{
			name: "invalid role tag",
			participant: participant.Participant{
				ID:        "p5",
				Email:     "a@x.com",
				FirstName: "Alice",
				Role:      "M",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.participant.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestNormalizePhone tests digit stripping and truncation.
func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "formatted US number", raw: "(801) 555-0142", want: "8015550142"},
		{name: "dots and spaces", raw: "801.555.0142 ", want: "8015550142"},
		{name: "leading country code truncated", raw: "+1 801 555 0142", want: "1801555014"},
		{name: "already digits", raw: "8015550142", want: "8015550142"},
		{name: "no digits", raw: "call me", want: ""},
		{name: "empty", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := participant.NormalizePhone(tt.raw); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
