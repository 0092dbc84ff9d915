// Package listutil parses paging and sorting query parameters for workshop list views.
package listutil

import (
	"cmp"
	"net/url"
	"slices"
	"strconv"
	"strings"

	domain "workshops/internal/domain/workshop"
)

// Sort columns accepted by ParseSortParams.
const (
	SortDate    = "date"
	SortUpvotes = "upvotes"
	SortType    = "type"
	SortPlace   = "place"
)

// SortColumns lists every sortable column.
var SortColumns = []string{SortDate, SortUpvotes, SortType, SortPlace}

// DefaultPerPage is the default number of rows per page.
const DefaultPerPage = 20

// PerPageOptions are the allowed rows-per-page values.
var PerPageOptions = []int{10, 20, 50, 100}

// PageParams carries pagination parameters parsed from a request.
type PageParams struct {
	Page    int // 1-indexed page number
	PerPage int
	Set     bool // true when the request named page or per_page
}

// SortParams carries sorting parameters parsed from a request.
// An empty Sort keeps insertion order.
type SortParams struct {
	Sort string
	Desc bool
}

// PageInfo carries pagination metadata for response headers.
type PageInfo struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// ParsePageParams extracts page and per_page from URL query values.
// PRE: none
// POST: returns valid PageParams with defaults applied
func ParsePageParams(q url.Values) PageParams {
	p := PageParams{Page: 1, PerPage: DefaultPerPage}
	if v := q.Get("page"); v != "" {
		p.Set = true
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			p.Page = n
		}
	}
	if v := q.Get("per_page"); v != "" {
		p.Set = true
		if n, err := strconv.Atoi(v); err == nil && slices.Contains(PerPageOptions, n) {
			p.PerPage = n
		}
	}
	return p
}

// ParseSortParams extracts sort and dir from URL query values.
// PRE: none
// POST: Sort is empty or one of SortColumns
func ParseSortParams(q url.Values) SortParams {
	col := strings.ToLower(q.Get("sort"))
	if !slices.Contains(SortColumns, col) {
		col = ""
	}
	return SortParams{Sort: col, Desc: q.Get("dir") == "desc"}
}

// NewPageInfo computes pagination metadata.
// PRE: total >= 0
// POST: Page is clamped to [1, TotalPages]; TotalPages >= 1
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := max((total+perPage-1)/perPage, 1)
	page = min(max(page, 1), totalPages)
	return PageInfo{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset returns the index of the first row on the current page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Paginate returns the rows of items on the current page.
func Paginate[T any](items []T, p PageInfo) []T {
	start := min(p.Offset(), len(items))
	end := min(start+p.PerPage, len(items))
	return items[start:end]
}

// SortWorkshops orders list in place. Ties keep their relative order.
func SortWorkshops(list []domain.BaseWorkshop, s SortParams) {
	if s.Sort == "" {
		return
	}
	slices.SortStableFunc(list, func(a, b domain.BaseWorkshop) int {
		var c int
		switch s.Sort {
		case SortDate:
			c = cmp.Compare(a.Date, b.Date)
		case SortUpvotes:
			c = cmp.Compare(a.Upvotes, b.Upvotes)
		case SortType:
			c = strings.Compare(strings.ToLower(a.Type), strings.ToLower(b.Type))
		case SortPlace:
			c = strings.Compare(strings.ToLower(a.Place.Name), strings.ToLower(b.Place.Name))
		}
		if s.Desc {
			return -c
		}
		return c
	})
}
