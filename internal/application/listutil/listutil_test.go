package listutil

import (
	"net/url"
	"testing"
)

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantPage    int
		wantPerPage int
	}{
		{"defaults", "", 1, DefaultPerPage},
		{"explicit", "page=3&per_page=50", 3, 50},
		{"perPageOutsideOptions", "per_page=25", 1, DefaultPerPage},
		{"negativePage", "page=-4", 1, DefaultPerPage},
		{"garbage", "page=two&per_page=many", 1, DefaultPerPage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("ParseQuery: %v", err)
			}
			p := ParsePageParams(q)
			if p.Page != tt.wantPage {
				t.Errorf("Page: got %d, want %d", p.Page, tt.wantPage)
			}
			if p.PerPage != tt.wantPerPage {
				t.Errorf("PerPage: got %d, want %d", p.PerPage, tt.wantPerPage)
			}
		})
	}
}

func TestParseSortParams(t *testing.T) {
	allowed := []string{"created_at", "priority"}

	s := ParseSortParams(url.Values{"sort": {"priority"}, "dir": {"desc"}}, allowed)
	if s.Sort != "priority" || s.Dir != "desc" {
		t.Errorf("got sort=%q dir=%q, want priority/desc", s.Sort, s.Dir)
	}

	// A column not in the allow list is dropped, not an error.
	s = ParseSortParams(url.Values{"sort": {"password_hash"}}, allowed)
	if s.Sort != "" {
		t.Errorf("expected disallowed column dropped, got %q", s.Sort)
	}

	s = ParseSortParams(url.Values{"sort": {"created_at"}, "dir": {"sideways"}}, allowed)
	if s.Dir != "asc" {
		t.Errorf("expected invalid dir to fall back to asc, got %q", s.Dir)
	}
}

func TestParseFilterParams(t *testing.T) {
	q := url.Values{"q": {"invoice"}, "category": {"billing"}, "admin": {"true"}}
	f := ParseFilterParams(q, []string{"category", "unread"})
	if f.Search != "invoice" {
		t.Errorf("Search: got %q, want invoice", f.Search)
	}
	if f.Filters["category"] != "billing" {
		t.Errorf("category filter: got %q, want billing", f.Filters["category"])
	}
	if _, ok := f.Filters["admin"]; ok {
		t.Error("parameter outside filterKeys must be ignored")
	}
	if _, ok := f.Filters["unread"]; ok {
		t.Error("absent filter key must not appear in Filters")
	}
}

func TestParseListParams(t *testing.T) {
	q := url.Values{
		"page": {"2"}, "per_page": {"10"},
		"sort": {"created_at"}, "dir": {"desc"},
		"q": {"renewal"}, "unread": {"true"},
	}
	lp := ParseListParams(q, []string{"created_at"}, []string{"unread"})
	if lp.Page != 2 || lp.PerPage != 10 {
		t.Errorf("paging: got page=%d per_page=%d", lp.Page, lp.PerPage)
	}
	if lp.Sort != "created_at" || lp.Dir != "desc" {
		t.Errorf("sorting: got sort=%q dir=%q", lp.Sort, lp.Dir)
	}
	if lp.Search != "renewal" || lp.Filters["unread"] != "true" {
		t.Errorf("filtering: got search=%q filters=%v", lp.Search, lp.Filters)
	}
}

func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		perPage    int
		total      int
		wantPages  int
		wantPage   int
		wantOffset int
		wantEnd    int
	}{
		{"firstPage", 1, 20, 85, 5, 1, 0, 20},
		{"middlePage", 2, 20, 85, 5, 2, 20, 40},
		{"lastPartialPage", 5, 20, 85, 5, 5, 80, 85},
		{"pageClampedToLast", 10, 20, 85, 5, 5, 80, 85},
		{"emptyResult", 1, 20, 0, 1, 1, 0, 0},
		{"exactFit", 1, 10, 10, 1, 1, 0, 10},
		{"zeroPerPage", 1, 0, 5, 1, 1, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pi := NewPageInfo(tt.page, tt.perPage, tt.total)
			if pi.TotalPages != tt.wantPages {
				t.Errorf("TotalPages: got %d, want %d", pi.TotalPages, tt.wantPages)
			}
			if pi.Page != tt.wantPage {
				t.Errorf("Page: got %d, want %d", pi.Page, tt.wantPage)
			}
			if pi.Offset() != tt.wantOffset {
				t.Errorf("Offset: got %d, want %d", pi.Offset(), tt.wantOffset)
			}
			if pi.EndRow() != tt.wantEnd {
				t.Errorf("EndRow: got %d, want %d", pi.EndRow(), tt.wantEnd)
			}
		})
	}
}

// Slicing a result set with Offset and EndRow must stay in bounds for any
// page the client asks for, including pages past the end.
func TestPageInfoSliceBounds(t *testing.T) {
	rows := make([]int, 47)
	for page := 1; page <= 8; page++ {
		pi := NewPageInfo(page, 10, len(rows))
		got := rows[pi.Offset():pi.EndRow()]
		if pi.Offset() > pi.EndRow() {
			t.Fatalf("page %d: offset %d past end %d", page, pi.Offset(), pi.EndRow())
		}
		if len(got) > pi.PerPage {
			t.Errorf("page %d: %d rows exceeds per_page %d", page, len(got), pi.PerPage)
		}
	}
}
