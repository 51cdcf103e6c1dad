package projections

import (
	"context"
	"time"

	eventStore "ellarises/internal/adapters/storage/event"
	domainEvent "ellarises/internal/domain/event"
)

// GetEventListQuery carries query parameters for the public event list.
type GetEventListQuery struct {
	Search       string
	UpcomingOnly bool
	Now          time.Time
}

// GetEventListDeps holds dependencies for GetEventList.
type GetEventListDeps struct {
	EventStore EventStore
}

// GetEventListResult carries the query result.
type GetEventListResult struct {
	Events []domainEvent.Detail
}

// QueryGetEventList retrieves event occurrences joined with their template,
// soonest first, optionally limited to ones that have not started yet.
// PRE: Valid query parameters
// POST: Returns matching events in chronological order
func QueryGetEventList(ctx context.Context, query GetEventListQuery, deps GetEventListDeps) (GetEventListResult, error) {
	details, err := deps.EventStore.ListDetails(ctx, eventStore.ListFilter{Search: query.Search})
	if err != nil {
		return GetEventListResult{}, err
	}

	if !query.UpcomingOnly {
		return GetEventListResult{Events: details}, nil
	}

	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}
	var upcoming []domainEvent.Detail
	for _, d := range details {
		if d.StartsAt.After(now) {
			upcoming = append(upcoming, d)
		}
	}
	return GetEventListResult{Events: upcoming}, nil
}

// GetEventDetailDeps holds dependencies for GetEventDetail.
type GetEventDetailDeps struct {
	EventStore        EventStore
	RegistrationStore RegistrationStore
	ParticipantStore  ParticipantStore
}

// GetEventDetailResult carries an event with the viewer's registration state.
type GetEventDetailResult struct {
	Event      domainEvent.Detail
	Registered bool
}

// QueryGetEventDetail retrieves one event and whether the viewer is already
// registered for it.
// PRE: occurrenceID is non-empty; viewerEmail may be empty for anonymous views
// POST: Registered is true only when the viewer has a registration
func QueryGetEventDetail(ctx context.Context, occurrenceID, viewerEmail string, deps GetEventDetailDeps) (GetEventDetailResult, error) {
	detail, err := deps.EventStore.GetDetail(ctx, occurrenceID)
	if err != nil {
		return GetEventDetailResult{}, err
	}
	result := GetEventDetailResult{Event: detail}

	if viewerEmail == "" {
		return result, nil
	}
	p, err := deps.ParticipantStore.GetByEmail(ctx, viewerEmail)
	if err != nil {
		return result, nil
	}
	regs, err := deps.RegistrationStore.ListByParticipant(ctx, p.ID)
	if err != nil {
		return GetEventDetailResult{}, err
	}
	for _, r := range regs {
		if r.OccurrenceID == occurrenceID {
			result.Registered = true
			break
		}
	}
	return result, nil
}
