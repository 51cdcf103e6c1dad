package listutil

import (
	"net/url"
	"reflect"
	"testing"
)

// TestParseListParams_Defaults verifies defaults when no query values provided.
func TestParseListParams_Defaults(t *testing.T) {
	p := ParseListParams(url.Values{}, PageSizeParticipants)
	if p.Page != 1 {
		t.Errorf("expected page 1, got %d", p.Page)
	}
	if p.Search != "" {
		t.Errorf("expected empty search, got %q", p.Search)
	}
}

// TestParseListParams_Valid verifies parsing of page and search.
func TestParseListParams_Valid(t *testing.T) {
	p := ParseListParams(url.Values{"page": {"3"}, "q": {"gala"}}, PageSizeParticipants)
	if p.Page != 3 {
		t.Errorf("expected page 3, got %d", p.Page)
	}
	if p.Search != "gala" {
		t.Errorf("expected search gala, got %q", p.Search)
	}
}

// TestParseListParams_SearchAndOffset verifies the documented parameter
// names: search as the filter, offset as a row offset floored to a page.
func TestParseListParams_SearchAndOffset(t *testing.T) {
	tests := []struct {
		name     string
		values   url.Values
		perPage  int
		wantPage int
		wantQ    string
	}{
		{"search param", url.Values{"search": {"gala"}}, 200, 1, "gala"},
		{"search wins over q alias", url.Values{"search": {"gala"}, "q": {"other"}}, 200, 1, "gala"},
		{"offset maps to page", url.Values{"offset": {"200"}}, 200, 2, ""},
		{"offset floors to page boundary", url.Values{"offset": {"250"}}, 100, 3, ""},
		{"zero offset is page one", url.Values{"offset": {"0"}}, 200, 1, ""},
		{"page wins over offset", url.Values{"page": {"4"}, "offset": {"200"}}, 200, 4, ""},
		{"offset ignored on unpaginated list", url.Values{"offset": {"200"}}, 0, 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParseListParams(tt.values, tt.perPage)
			if p.Page != tt.wantPage {
				t.Errorf("page = %d, want %d", p.Page, tt.wantPage)
			}
			if p.Search != tt.wantQ {
				t.Errorf("search = %q, want %q", p.Search, tt.wantQ)
			}
		})
	}
}

// TestParseListParams_InvalidPage verifies bad page values fall back to 1.
func TestParseListParams_InvalidPage(t *testing.T) {
	for _, v := range []string{"0", "-2", "abc", ""} {
		p := ParseListParams(url.Values{"page": {v}}, PageSizeParticipants)
		if p.Page != 1 {
			t.Errorf("page=%q: expected 1, got %d", v, p.Page)
		}
	}
}

// TestNewPageInfo verifies page math across edge cases.
func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name                 string
		page, perPage, total int
		wantPage, wantPages  int
	}{
		{"empty list", 1, 200, 0, 1, 1},
		{"single page", 1, 200, 42, 1, 1},
		{"exact fit", 1, 100, 200, 1, 2},
		{"remainder adds page", 1, 100, 201, 1, 3},
		{"page clamped down", 9, 100, 150, 2, 2},
		{"page clamped up", 0, 100, 150, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPageInfo(tt.page, tt.perPage, tt.total)
			if info.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", info.Page, tt.wantPage)
			}
			if info.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", info.TotalPages, tt.wantPages)
			}
		})
	}
}

// TestPageInfo_Rows verifies offset and row-range helpers.
func TestPageInfo_Rows(t *testing.T) {
	info := NewPageInfo(2, 100, 250)
	if info.Offset() != 100 {
		t.Errorf("Offset = %d, want 100", info.Offset())
	}
	if info.StartRow() != 101 {
		t.Errorf("StartRow = %d, want 101", info.StartRow())
	}
	if info.EndRow() != 200 {
		t.Errorf("EndRow = %d, want 200", info.EndRow())
	}

	empty := NewPageInfo(1, 100, 0)
	if empty.StartRow() != 0 {
		t.Errorf("StartRow on empty = %d, want 0", empty.StartRow())
	}
}

// TestPageInfo_PageNumbers verifies the 5-button window.
func TestPageInfo_PageNumbers(t *testing.T) {
	info := NewPageInfo(5, 100, 1000) // 10 pages
	got := info.PageNumbers()
	want := []int{3, 4, 5, 6, 7}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PageNumbers = %v, want %v", got, want)
	}

	first := NewPageInfo(1, 100, 1000)
	if got := first.PageNumbers(); !reflect.DeepEqual(got, []int{1, 2, 3, 4, 5}) {
		t.Errorf("PageNumbers at start = %v", got)
	}
}

// TestPageInfo_ShowPagination verifies the visibility rule.
func TestPageInfo_ShowPagination(t *testing.T) {
	if NewPageInfo(1, 200, 150).ShowPagination() {
		t.Error("single page must not show pagination")
	}
	if !NewPageInfo(1, 200, 201).ShowPagination() {
		t.Error("multi page must show pagination")
	}
}
