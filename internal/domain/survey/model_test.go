package survey_test

import (
	"testing"

	"ellarises/internal/domain/survey"
)

// TestSurveyValidation tests score range validation.
func TestSurveyValidation(t *testing.T) {
	tests := []struct {
		name    string
		survey  survey.Survey
		wantErr bool
	}{
		{
			name:    "all scores in range",
			survey:  survey.Survey{ID: "s1", RegistrationID: "r1", Satisfaction: 1, Organization: 3, Content: 4, Recommend: 5},
			wantErr: false,
		},
		{
			name:    "missing registration",
			survey:  survey.Survey{ID: "s2", Satisfaction: 3, Organization: 3, Content: 3, Recommend: 3},
			wantErr: true,
		},
		{
			name:    "score below range",
			survey:  survey.Survey{ID: "s3", RegistrationID: "r1", Satisfaction: 0, Organization: 3, Content: 3, Recommend: 3},
			wantErr: true,
		},
		{
			name:    "score above range",
			survey:  survey.Survey{ID: "s4", RegistrationID: "r1", Satisfaction: 3, Organization: 3, Content: 3, Recommend: 6},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.survey.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestComputeOverall tests the two-decimal mean.
func TestComputeOverall(t *testing.T) {
	tests := []struct {
		name   string
		scores [4]int
		want   float64
	}{
		{name: "all fives", scores: [4]int{5, 5, 5, 5}, want: 5},
		{name: "mixed quarter", scores: [4]int{5, 4, 4, 4}, want: 4.25},
		{name: "mixed three quarters", scores: [4]int{5, 5, 5, 4}, want: 4.75},
		{name: "all ones", scores: [4]int{1, 1, 1, 1}, want: 1},
		{name: "half", scores: [4]int{1, 2, 1, 2}, want: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := survey.Survey{
				RegistrationID: "r1",
				Satisfaction:   tt.scores[0],
				Organization:   tt.scores[1],
				Content:        tt.scores[2],
				Recommend:      tt.scores[3],
			}
			s.ComputeOverall()
			if s.Overall != tt.want {
				t.Errorf("ComputeOverall() = %v, want %v", s.Overall, tt.want)
			}
		})
	}
}
