package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		sortable []string
		want     Params
	}{
		{
			name:  "defaults",
			query: "",
			want:  Params{Page: 1, Limit: 10, SortBy: "created_at", SortType: "desc"},
		},
		{
			name:  "page floor is one",
			query: "page=0&limit=5",
			want:  Params{Page: 1, Limit: 5, SortBy: "created_at", SortType: "desc"},
		},
		{
			name:  "negative page ignored",
			query: "page=-3",
			want:  Params{Page: 1, Limit: 10, SortBy: "created_at", SortType: "desc"},
		},
		{
			name:  "limit clamped to max",
			query: "limit=5000",
			want:  Params{Page: 1, Limit: MaxLimit, SortBy: "created_at", SortType: "desc"},
		},
		{
			name:  "zero limit falls back to default",
			query: "limit=0",
			want:  Params{Page: 1, Limit: 10, SortBy: "created_at", SortType: "desc"},
		},
		{
			name:  "garbage numbers ignored",
			query: "page=abc&limit=xyz",
			want:  Params{Page: 1, Limit: 10, SortBy: "created_at", SortType: "desc"},
		},
		{
			name:     "whitelisted sort field",
			query:    "sortBy=views&sortType=asc",
			sortable: []string{"views", "duration"},
			want:     Params{Page: 1, Limit: 10, SortBy: "views", SortType: "asc"},
		},
		{
			name:     "unlisted sort field falls back",
			query:    "sortBy=password_hash",
			sortable: []string{"views"},
			want:     Params{Page: 1, Limit: 10, SortBy: "created_at", SortType: "desc"},
		},
		{
			name:  "free text query trimmed",
			query: "query=+golang+",
			want:  Params{Page: 1, Limit: 10, Query: "golang", SortBy: "created_at", SortType: "desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, Parse(values, tt.sortable...))
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Params{Page: 3, Limit: 10}.Offset())
}

func TestOrderBy(t *testing.T) {
	p := Params{SortBy: "views", SortType: "asc"}
	assert.Equal(t, "ORDER BY views ASC, id ASC", p.OrderBy())

	p = Params{SortBy: "created_at", SortType: "desc"}
	assert.Equal(t, "ORDER BY created_at DESC, id DESC", p.OrderBy())
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int
		want  Meta
	}{
		{
			name: "empty result set", page: 1, limit: 10, total: 0,
			want: Meta{CurrentPage: 1, TotalPages: 0, TotalCount: 0, HasNextPage: false, HasPrevPage: false, Limit: 10},
		},
		{
			name: "last partial page", page: 3, limit: 10, total: 25,
			want: Meta{CurrentPage: 3, TotalPages: 3, TotalCount: 25, HasNextPage: false, HasPrevPage: true, Limit: 10},
		},
		{
			name: "middle page", page: 2, limit: 10, total: 25,
			want: Meta{CurrentPage: 2, TotalPages: 3, TotalCount: 25, HasNextPage: true, HasPrevPage: true, Limit: 10},
		},
		{
			name: "exact multiple", page: 1, limit: 5, total: 10,
			want: Meta{CurrentPage: 1, TotalPages: 2, TotalCount: 10, HasNextPage: true, HasPrevPage: false, Limit: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMeta(tt.page, tt.limit, tt.total))
		})
	}
}
