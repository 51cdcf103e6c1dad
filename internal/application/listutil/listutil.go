package listutil

import (
	"net/url"
	"strconv"
)

// Page sizes for the admin list surfaces. Each list view has a fixed size
// rather than a user-selectable one.
const (
	PageSizeParticipants  = 200
	PageSizeRegistrations = 200
	PageSizeSurveys       = 100
)

// ListParams carries the page number and free-text search parsed from a
// list-view request.
type ListParams struct {
	Page   int // 1-indexed page number
	Search string
}

// PageInfo carries pagination metadata for rendering.
type PageInfo struct {
	Page       int // current page (1-indexed)
	PerPage    int // rows per page
	Total      int // total matching rows
	TotalPages int // ceil(Total / PerPage)
}

// ParseListParams extracts the search query and page number from URL query
// values. The documented parameters are `search` and `offset` (a row offset,
// floored to a page boundary of perPage rows); `q` and `page` are accepted as
// aliases. A perPage of 0 marks an unpaginated list: offset is ignored.
// PRE: none
// POST: Page >= 1
func ParseListParams(q url.Values, perPage int) ListParams {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 && perPage > 0 {
		if offset, err := strconv.Atoi(q.Get("offset")); err == nil && offset > 0 {
			page = offset/perPage + 1
		}
	}
	if page < 1 {
		page = 1
	}
	search := q.Get("search")
	if search == "" {
		search = q.Get("q")
	}
	return ListParams{Page: page, Search: search}
}

// NewPageInfo computes pagination metadata.
// PRE: total >= 0, perPage > 0
// POST: returns PageInfo with TotalPages computed; Page clamped to valid range
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = 1
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset returns the SQL OFFSET for the current page.
// PRE: PageInfo is valid
// POST: Returns (Page-1) * PerPage
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// StartRow returns the 1-indexed first row number on the current page.
// POST: Returns 0 if Total is 0, otherwise Offset+1
func (p PageInfo) StartRow() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset() + 1
}

// EndRow returns the 1-indexed last row number on the current page.
// POST: Returns min(Offset+PerPage, Total)
func (p PageInfo) EndRow() int {
	end := p.Offset() + p.PerPage
	if end > p.Total {
		end = p.Total
	}
	return end
}

// PageNumbers returns the page numbers to display in pagination controls.
// Shows at most 5 pages centered around the current page.
func (p PageInfo) PageNumbers() []int {
	const maxButtons = 5
	start := p.Page - maxButtons/2
	if start < 1 {
		start = 1
	}
	end := start + maxButtons - 1
	if end > p.TotalPages {
		end = p.TotalPages
		start = end - maxButtons + 1
		if start < 1 {
			start = 1
		}
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// ShowPagination returns true if pagination controls should be displayed.
// POST: Returns true if Total > PerPage
func (p PageInfo) ShowPagination() bool {
	return p.Total > p.PerPage
}
