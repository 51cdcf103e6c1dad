package event

import (
	"context"

	domain "ellarises/internal/domain/event"
)

// TemplateStore persists EventTemplate state. Templates are read-only in the
// public handlers; only seeding and the manager surface write them.
type TemplateStore interface {
	GetTemplateByID(ctx context.Context, id string) (domain.Template, error)
	SaveTemplate(ctx context.Context, value domain.Template) error
	ListTemplates(ctx context.Context) ([]domain.Template, error)
}

// Store persists EventOccurrence state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Occurrence, error)
	// GetDetail returns the occurrence joined with its template.
	GetDetail(ctx context.Context, id string) (domain.Detail, error)
	Save(ctx context.Context, value domain.Occurrence) error
	Delete(ctx context.Context, id string) error
	// ListDetails returns occurrences joined with templates, soonest first.
	ListDetails(ctx context.Context, filter ListFilter) ([]domain.Detail, error)
}

// FullStore is implemented by stores that persist both occurrences and
// templates. The manager event surface creates templates on the fly, so it
// needs the pair behind one value.
type FullStore interface {
	Store
	TemplateStore
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}
