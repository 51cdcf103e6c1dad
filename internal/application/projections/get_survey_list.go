package projections

import (
	"context"

	surveyStore "ellarises/internal/adapters/storage/survey"
	"ellarises/internal/application/listutil"
)

// GetSurveyListQuery carries query parameters for the admin list.
type GetSurveyListQuery struct {
	Search string
	Page   int
}

// GetSurveyListDeps holds dependencies for GetSurveyList.
type GetSurveyListDeps struct {
	SurveyStore SurveyStore
}

// GetSurveyListResult carries the query result.
type GetSurveyListResult struct {
	Surveys  []surveyStore.Detail
	PageInfo listutil.PageInfo
}

// QueryGetSurveyList retrieves a page of surveys joined with respondent and
// event fields for the admin console.
// PRE: Valid query parameters
// POST: Returns at most one page of matching surveys with page metadata
func QueryGetSurveyList(ctx context.Context, query GetSurveyListQuery, deps GetSurveyListDeps) (GetSurveyListResult, error) {
	filter := surveyStore.ListFilter{Search: query.Search}
	total, err := deps.SurveyStore.Count(ctx, filter)
	if err != nil {
		return GetSurveyListResult{}, err
	}

	info := listutil.NewPageInfo(query.Page, listutil.PageSizeSurveys, total)
	filter.Limit = info.PerPage
	filter.Offset = info.Offset()

	surveys, err := deps.SurveyStore.ListDetails(ctx, filter)
	if err != nil {
		return GetSurveyListResult{}, err
	}
	return GetSurveyListResult{Surveys: surveys, PageInfo: info}, nil
}
