package survey

import (
	"errors"
	"math"
	"time"
)

// Score bounds for each of the four questions.
const (
	MinScore = 1
	MaxScore = 5
)

// Domain errors
var (
	ErrEmptyRegistration = errors.New("survey must reference a registration")
	ErrScoreOutOfRange   = errors.New("each score must be a number between 1 and 5")
)

// Survey is post-event feedback tied to a Registration. Overall is the
// arithmetic mean of the four scores, rounded to two decimal places.
type Survey struct {
	ID             string
	RegistrationID string
	Satisfaction   int
	Organization   int
	Content        int
	Recommend      int
	Overall        float64
	Comments       string
	CreatedAt      time.Time
}

// Validate checks if the Survey has valid data.
// PRE: Survey struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Survey) Validate() error {
	if s.RegistrationID == "" {
		return ErrEmptyRegistration
	}
	for _, score := range []int{s.Satisfaction, s.Organization, s.Content, s.Recommend} {
		if score < MinScore || score > MaxScore {
			return ErrScoreOutOfRange
		}
	}
	return nil
}

// ComputeOverall sets Overall to the mean of the four scores, two decimals.
// PRE: scores are in range
// POST: Overall = round(mean(scores), 2)
func (s *Survey) ComputeOverall() {
	sum := s.Satisfaction + s.Organization + s.Content + s.Recommend
	s.Overall = math.Round(float64(sum)/4*100) / 100
}
