package projections

import (
	"context"

	participantStore "ellarises/internal/adapters/storage/participant"
	"ellarises/internal/application/listutil"
	domainDonation "ellarises/internal/domain/donation"
	domainMilestone "ellarises/internal/domain/milestone"
	domainParticipant "ellarises/internal/domain/participant"

	registrationStore "ellarises/internal/adapters/storage/registration"
	surveyStore "ellarises/internal/adapters/storage/survey"
)

// GetParticipantListQuery carries query parameters for the admin list.
type GetParticipantListQuery struct {
	Search string
	Page   int
}

// GetParticipantListDeps holds dependencies for GetParticipantList.
type GetParticipantListDeps struct {
	ParticipantStore ParticipantStore
}

// GetParticipantListResult carries the query result.
type GetParticipantListResult struct {
	Participants []domainParticipant.Participant
	PageInfo     listutil.PageInfo
}

// QueryGetParticipantList retrieves a page of participants for the admin
// console.
// PRE: Valid query parameters
// POST: Returns at most one page of matching participants with page metadata
func QueryGetParticipantList(ctx context.Context, query GetParticipantListQuery, deps GetParticipantListDeps) (GetParticipantListResult, error) {
	filter := participantStore.ListFilter{Search: query.Search}
	total, err := deps.ParticipantStore.Count(ctx, filter)
	if err != nil {
		return GetParticipantListResult{}, err
	}

	info := listutil.NewPageInfo(query.Page, listutil.PageSizeParticipants, total)
	filter.Limit = info.PerPage
	filter.Offset = info.Offset()

	participants, err := deps.ParticipantStore.List(ctx, filter)
	if err != nil {
		return GetParticipantListResult{}, err
	}
	return GetParticipantListResult{Participants: participants, PageInfo: info}, nil
}

// GetParticipantDetailDeps holds dependencies for GetParticipantDetail.
type GetParticipantDetailDeps struct {
	ParticipantStore  ParticipantStore
	RegistrationStore RegistrationStore
	DonationStore     DonationStore
	SurveyStore       SurveyStore
	MilestoneStore    MilestoneStore
}

// GetParticipantDetailResult carries one participant with their history.
type GetParticipantDetailResult struct {
	Participant   domainParticipant.Participant
	Registrations []registrationStore.Detail
	Donations     []domainDonation.Donation
	Surveys       []surveyStore.Detail
	Milestones    []domainMilestone.Milestone
}

// QueryGetParticipantDetail retrieves a participant and everything attached
// to them for the admin detail page.
// PRE: id refers to an existing participant
// POST: Returns the participant with registrations, donations, surveys, and milestones
func QueryGetParticipantDetail(ctx context.Context, id string, deps GetParticipantDetailDeps) (GetParticipantDetailResult, error) {
	p, err := deps.ParticipantStore.GetByID(ctx, id)
	if err != nil {
		return GetParticipantDetailResult{}, err
	}

	result := GetParticipantDetailResult{Participant: p}
	if result.Registrations, err = deps.RegistrationStore.ListByParticipant(ctx, p.ID); err != nil {
		return GetParticipantDetailResult{}, err
	}
	if result.Donations, err = deps.DonationStore.ListByEmail(ctx, p.Email); err != nil {
		return GetParticipantDetailResult{}, err
	}
	if result.Surveys, err = deps.SurveyStore.ListByParticipant(ctx, p.ID); err != nil {
		return GetParticipantDetailResult{}, err
	}
	if result.Milestones, err = deps.MilestoneStore.ListByParticipant(ctx, p.ID); err != nil {
		return GetParticipantDetailResult{}, err
	}
	return result, nil
}
