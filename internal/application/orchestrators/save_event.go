package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"ellarises/internal/adapters/storage"
	eventDomain "ellarises/internal/domain/event"
)

// EventStoreForSave defines the store interface needed by SaveEvent.
type EventStoreForSave interface {
	GetByID(ctx context.Context, id string) (eventDomain.Occurrence, error)
	GetTemplateByID(ctx context.Context, id string) (eventDomain.Template, error)
	SaveTemplate(ctx context.Context, t eventDomain.Template) error
	Save(ctx context.Context, o eventDomain.Occurrence) error
}

// SaveEventInput carries input for the manager-side event create/edit
// orchestrator. An empty OccurrenceID means create. When TemplateID is empty
// a new template is created from the name/type/description fields.
type SaveEventInput struct {
	OccurrenceID         string
	TemplateID           string
	TemplateName         string
	TemplateType         string
	Description          string
	Name                 string
	StartsAt             string
	EndsAt               string
	Location             string
	Capacity             int
	RegistrationDeadline string
}

// SaveEventDeps holds dependencies for SaveEvent.
type SaveEventDeps struct {
	EventStore EventStoreForSave
}

// ExecuteSaveEvent creates or updates an event occurrence, creating its
// template on the fly when needed.
// PRE: Either TemplateID refers to an existing template or TemplateName is set
// POST: Occurrence row saved and linked to a valid template
func ExecuteSaveEvent(ctx context.Context, input SaveEventInput, deps SaveEventDeps) (eventDomain.Occurrence, error) {
	templateID := input.TemplateID
	if templateID == "" {
		t := eventDomain.Template{
			ID:          uuid.NewString(),
			Name:        input.TemplateName,
			Type:        input.TemplateType,
			Description: input.Description,
		}
		if t.Name == "" {
			t.Name = input.Name
		}
		if err := t.Validate(); err != nil {
			return eventDomain.Occurrence{}, err
		}
		if err := deps.EventStore.SaveTemplate(ctx, t); err != nil {
			return eventDomain.Occurrence{}, err
		}
		templateID = t.ID
	} else if _, err := deps.EventStore.GetTemplateByID(ctx, templateID); err != nil {
		return eventDomain.Occurrence{}, err
	}

	var o eventDomain.Occurrence
	if input.OccurrenceID != "" {
		existing, err := deps.EventStore.GetByID(ctx, input.OccurrenceID)
		if err != nil {
			return eventDomain.Occurrence{}, err
		}
		o = existing
	} else {
		o = eventDomain.Occurrence{ID: uuid.NewString()}
	}

	startsAt, err := storage.ParseTime(input.StartsAt)
	if err != nil {
		return eventDomain.Occurrence{}, fmt.Errorf("invalid start time: %w", err)
	}
	endsAt, _ := storage.ParseTime(input.EndsAt)
	deadline, _ := storage.ParseTime(input.RegistrationDeadline)

	o.TemplateID = templateID
	o.Name = input.Name
	o.StartsAt = startsAt
	o.EndsAt = endsAt
	o.Location = input.Location
	o.Capacity = input.Capacity
	o.RegistrationDeadline = deadline

	if err := o.Validate(); err != nil {
		return eventDomain.Occurrence{}, err
	}
	if err := deps.EventStore.Save(ctx, o); err != nil {
		return eventDomain.Occurrence{}, err
	}

	slog.Info("event_saved", "occurrence_id", o.ID, "template_id", templateID)
	return o, nil
}
