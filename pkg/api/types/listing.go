package types

import (
	"time"

	"mercator-hq/atoz/pkg/alpha"
	"mercator-hq/atoz/pkg/listing"
)

// ListResponse is the body of GET /v1/items and GET /admin/v1/items.
type ListResponse struct {
	Items   []*listing.Item `json:"items"`
	Total   int64           `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
	Backend string          `json:"backend"`
	Alpha   AlphaInfo       `json:"alpha"`
	Links   []alpha.Link    `json:"links,omitempty"`
}

// AlphaInfo reports how the alphabetic mode applied to a listing.
type AlphaInfo struct {
	// State is "inactive", "ordered" or "filtered".
	State string `json:"state"`

	// Filter is the canonical parameter value; empty for no selection.
	Filter string `json:"filter"`
}

// NewListResponse converts a listing result.
func NewListResponse(res *listing.Result) *ListResponse {
	items := res.Items
	if items == nil {
		items = []*listing.Item{}
	}
	return &ListResponse{
		Items:   items,
		Total:   res.Total,
		Limit:   res.Limit,
		Offset:  res.Offset,
		Backend: res.Backend,
		Alpha: AlphaInfo{
			State:  res.State.String(),
			Filter: res.Filter.Value(),
		},
		Links: res.Links,
	}
}

// LinksResponse is the body of GET /v1/categories/{category}/links.
type LinksResponse struct {
	Category string       `json:"category"`
	Current  string       `json:"current"`
	Links    []alpha.Link `json:"links"`
}

// Category describes one registered category.
type Category struct {
	Name          string   `json:"name"`
	Features      []string `json:"features"`
	AlphaSortable bool     `json:"alpha_sortable"`
}

// CategoriesResponse is the body of GET /v1/categories.
type CategoriesResponse struct {
	Categories []Category `json:"categories"`
	Version    string     `json:"version"`
	LoadedAt   time.Time  `json:"loaded_at"`
}

// CreateItemRequest is the body of POST /v1/items.
type CreateItemRequest struct {
	ID        string    `json:"id,omitempty"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug,omitempty"`
	Status    string    `json:"status,omitempty"`
	MenuOrder int       `json:"menu_order,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Item converts the request into a listing item.
func (r *CreateItemRequest) Item() *listing.Item {
	return &listing.Item{
		ID:        r.ID,
		Category:  r.Category,
		Title:     r.Title,
		Slug:      r.Slug,
		Status:    r.Status,
		MenuOrder: r.MenuOrder,
		CreatedAt: r.CreatedAt,
	}
}
