package projections

import (
	"context"

	registrationStore "ellarises/internal/adapters/storage/registration"
	"ellarises/internal/application/listutil"
)

// GetRegistrationListQuery carries query parameters for the admin list.
type GetRegistrationListQuery struct {
	Search string
	Page   int
}

// GetRegistrationListDeps holds dependencies for GetRegistrationList.
type GetRegistrationListDeps struct {
	RegistrationStore RegistrationStore
}

// GetRegistrationListResult carries the query result.
type GetRegistrationListResult struct {
	Registrations []registrationStore.Detail
	PageInfo      listutil.PageInfo
}

// QueryGetRegistrationList retrieves a page of registrations joined with
// participant and event fields for the admin console.
// PRE: Valid query parameters
// POST: Returns at most one page of matching registrations with page metadata
func QueryGetRegistrationList(ctx context.Context, query GetRegistrationListQuery, deps GetRegistrationListDeps) (GetRegistrationListResult, error) {
	filter := registrationStore.ListFilter{Search: query.Search}
	total, err := deps.RegistrationStore.Count(ctx, filter)
	if err != nil {
		return GetRegistrationListResult{}, err
	}

	info := listutil.NewPageInfo(query.Page, listutil.PageSizeRegistrations, total)
	filter.Limit = info.PerPage
	filter.Offset = info.Offset()

	regs, err := deps.RegistrationStore.ListDetails(ctx, filter)
	if err != nil {
		return GetRegistrationListResult{}, err
	}
	return GetRegistrationListResult{Registrations: regs, PageInfo: info}, nil
}
