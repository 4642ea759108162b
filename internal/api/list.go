package api

import (
	"context"
	"net/url"
	"strconv"

	"shopctl/internal/types"
)

// SortOrder is the sort direction for list requests.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListParams is the parameter set of every list endpoint:
// GET /resource?page=&limit=&search=&sortBy=&sortOrder=&<filters>.
type ListParams struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder SortOrder
	Filters   map[string]string
}

// Values encodes the params as a query string. Zero values are omitted so
// the server applies its own defaults.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.SortBy != "" {
		v.Set("sortBy", p.SortBy)
		order := p.SortOrder
		if order == "" {
			order = SortAsc
		}
		v.Set("sortOrder", string(order))
	}
	for k, val := range p.Filters {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

// Clone returns a deep copy (Filters map included).
func (p ListParams) Clone() ListParams {
	out := p
	if p.Filters != nil {
		out.Filters = make(map[string]string, len(p.Filters))
		for k, v := range p.Filters {
			out.Filters[k] = v
		}
	}
	return out
}

// ListResponse is the uniform list envelope: items plus a paging summary.
type ListResponse[T any] struct {
	Items      []T              `json:"items"`
	Pagination types.Pagination `json:"pagination"`
}

// List issues a GET list request against path with the given params.
// Methods cannot be generic, hence the package-level helper.
func List[T any](ctx context.Context, c *Client, path string, p ListParams) (ListResponse[T], error) {
	var out ListResponse[T]
	err := c.Get(ctx, path, p.Values(), &out)
	return out, err
}
