package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100

	defaultSortField = "created_at"
)

// Params is the normalized shape of the page/limit/query/sortBy/sortType
// query parameters shared by every list endpoint.
type Params struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortType string
}

// Parse reads pagination inputs from query parameters and clamps them
// into a bounded, deterministic plan. sortable whitelists the column
// names a caller may sort on; anything else falls back to created_at.
func Parse(values url.Values, sortable ...string) Params {
	p := Params{
		Page:     1,
		Limit:    DefaultLimit,
		Query:    strings.TrimSpace(values.Get("query")),
		SortBy:   defaultSortField,
		SortType: "desc",
	}

	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 1 {
			p.Page = page
		}
	}

	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit >= 1 {
			p.Limit = limit
			if p.Limit > MaxLimit {
				p.Limit = MaxLimit
			}
		}
	}

	if sortBy := strings.TrimSpace(values.Get("sortBy")); sortBy != "" {
		for _, field := range sortable {
			if sortBy == field {
				p.SortBy = sortBy
				break
			}
		}
	}

	if strings.EqualFold(strings.TrimSpace(values.Get("sortType")), "asc") {
		p.SortType = "asc"
	}

	return p
}

// Offset returns the number of rows to skip for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// OrderBy renders the ORDER BY clause for the plan. SortBy is
// whitelisted at parse time and SortType is one of asc/desc, so the
// clause is safe to interpolate. A secondary id sort keeps pages
// stable when the sort field has duplicates.
func (p Params) OrderBy() string {
	direction := "DESC"
	if p.SortType == "asc" {
		direction = "ASC"
	}
	return "ORDER BY " + p.SortBy + " " + direction + ", id " + direction
}

// Meta is the derived pagination metadata block; never stored.
type Meta struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
	Limit       int  `json:"limit"`
}

// NewMeta derives the metadata for a page. A zero total yields zero
// totalPages and both flags false.
func NewMeta(page int, limit int, total int) Meta {
	totalPages := 0
	if total > 0 && limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
		Limit:       limit,
	}
}

// Page is the list-response payload: items plus derived metadata.
type Page struct {
	Items any `json:"items"`
	Meta
}
