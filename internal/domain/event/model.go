package event

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyName       = errors.New("event name cannot be empty")
	ErrEmptyTemplateID = errors.New("occurrence must reference a template")
	ErrEndBeforeStart  = errors.New("event cannot end before it starts")
)

// Template is a reusable event definition. Description is markdown.
type Template struct {
	ID          string
	Name        string
	Type        string
	Description string
}

// Validate checks if the Template has valid data.
// PRE: Template struct is populated
// POST: Returns nil if valid, error otherwise
func (t *Template) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Occurrence is a scheduled instance of a Template. Capacity and the
// registration deadline are stored for display; registration does not
// enforce either.
type Occurrence struct {
	ID                   string
	TemplateID           string
	Name                 string
	StartsAt             time.Time
	EndsAt               time.Time
	Location             string
	Capacity             int
	RegistrationDeadline time.Time
}

// Validate checks if the Occurrence has valid data.
// PRE: Occurrence struct is populated
// POST: Returns nil if valid, error otherwise
func (o *Occurrence) Validate() error {
	if o.TemplateID == "" {
		return ErrEmptyTemplateID
	}
	if strings.TrimSpace(o.Name) == "" {
		return ErrEmptyName
	}
	if !o.EndsAt.IsZero() && o.EndsAt.Before(o.StartsAt) {
		return ErrEndBeforeStart
	}
	return nil
}

// Detail pairs an occurrence with its template for rendering.
type Detail struct {
	Occurrence
	TemplateName string
	TemplateType string
	Description  string
}
