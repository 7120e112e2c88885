// Package listutil parses the query parameters shared by list endpoints
// (paging, sorting, filtering) and computes paging metadata for responses.
package listutil

import (
	"net/url"
	"strconv"
)

// PageParams is the paging portion of a list request.
type PageParams struct {
	Page    int // 1-indexed page number
	PerPage int // rows per page
}

// SortParams is the sorting portion of a list request.
type SortParams struct {
	Sort string // column name, empty when unsorted
	Dir  string // "asc" or "desc"
}

// FilterParams is the filtering portion of a list request.
type FilterParams struct {
	Search  string            // free-text search from the q parameter
	Filters map[string]string // exact-match filters (e.g. category=billing)
}

// PageInfo is the paging metadata a list endpoint reports back.
type PageInfo struct {
	Page       int // current page (1-indexed)
	PerPage    int // rows per page
	Total      int // total matching rows
	TotalPages int // ceil(Total / PerPage)
}

// ListParams bundles everything a list endpoint accepts.
type ListParams struct {
	PageParams
	SortParams
	FilterParams
}

// DefaultPerPage is used when the request names no per_page or an
// unrecognised one.
const DefaultPerPage = 20

// PerPageOptions are the accepted rows-per-page values.
var PerPageOptions = []int{10, 20, 50, 100, 200}

// ParsePageParams reads page and per_page from the query string.
// POST: Page >= 1 and PerPage is one of PerPageOptions
func ParsePageParams(q url.Values) PageParams {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if !isValidPerPage(perPage) {
		perPage = DefaultPerPage
	}
	return PageParams{Page: page, PerPage: perPage}
}

// ParseSortParams reads sort and dir from the query string. A sort column
// outside allowedColumns is dropped rather than rejected, so a stale or
// hand-edited URL still returns results in the default order.
// POST: Dir is always "asc" or "desc"
func ParseSortParams(q url.Values, allowedColumns []string) SortParams {
	sort := q.Get("sort")
	dir := q.Get("dir")

	if !isAllowedColumn(sort, allowedColumns) {
		sort = ""
	}
	if dir != "asc" && dir != "desc" {
		dir = "asc"
	}
	return SortParams{Sort: sort, Dir: dir}
}

// ParseFilterParams reads the q search parameter and the named exact-match
// filters from the query string. Unknown parameter names are ignored.
// PRE: filterKeys lists the filter parameter names the endpoint accepts
func ParseFilterParams(q url.Values, filterKeys []string) FilterParams {
	fp := FilterParams{
		Search:  q.Get("q"),
		Filters: make(map[string]string),
	}
	for _, key := range filterKeys {
		if v := q.Get(key); v != "" {
			fp.Filters[key] = v
		}
	}
	return fp
}

// ParseListParams parses paging, sorting, and filtering in one call.
func ParseListParams(q url.Values, allowedSortCols []string, filterKeys []string) ListParams {
	return ListParams{
		PageParams:   ParsePageParams(q),
		SortParams:   ParseSortParams(q, allowedSortCols),
		FilterParams: ParseFilterParams(q, filterKeys),
	}
}

// NewPageInfo computes paging metadata for a result set of total rows.
// A page past the end is clamped to the last page, so the slice bounds
// derived from the result are always valid.
// PRE: total >= 0
// POST: 1 <= Page <= TotalPages, PerPage > 0
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
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

// Offset returns the number of rows before the current page.
// POST: Returns (Page-1) * PerPage
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// EndRow returns the index one past the last row on the current page,
// suitable as the upper bound of a slice expression.
// POST: Returns min(Offset+PerPage, Total)
func (p PageInfo) EndRow() int {
	end := p.Offset() + p.PerPage
	if end > p.Total {
		end = p.Total
	}
	return end
}

func isValidPerPage(n int) bool {
	for _, opt := range PerPageOptions {
		if n == opt {
			return true
		}
	}
	return false
}

func isAllowedColumn(col string, allowed []string) bool {
	for _, a := range allowed {
		if col == a {
			return true
		}
	}
	return false
}
