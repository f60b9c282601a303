package listing

import (
	"fmt"

	"mercator-hq/atoz/pkg/alpha"
)

const (
	// DefaultLimit is the default number of items to return if not specified.
	DefaultLimit = 50

	// MaxLimit is the maximum number of items that can be returned in a single query.
	MaxLimit = 1000
)

// ValidSortFields contains the fields that can be used for sorting.
var ValidSortFields = map[string]bool{
	"title":      true,
	"menu_order": true,
	"created_at": true,
	"updated_at": true,
	"id":         true,
	"category":   true,
}

// ValidSortOrders contains the valid sort orders.
var ValidSortOrders = map[alpha.Direction]bool{
	alpha.Asc:  true,
	alpha.Desc: true,
}

// ValidStatuses contains the statuses an item may have.
var ValidStatuses = map[string]bool{
	StatusPublished: true,
	StatusDraft:     true,
}

// DefaultOrder is applied when nothing else set an ordering.
var DefaultOrder = []Order{
	{Field: "created_at", Direction: alpha.Desc},
	{Field: "id", Direction: alpha.Desc},
}

// Validate validates a query and returns an error if any parameters are invalid.
func Validate(q *Query) error {
	// Validate limit
	if q.Limit < 0 {
		return NewQueryError(q, fmt.Errorf("limit must be >= 0, got %d", q.Limit))
	}
	if q.Limit > MaxLimit {
		return NewQueryError(q, fmt.Errorf("limit must be <= %d, got %d", MaxLimit, q.Limit))
	}

	// Validate offset
	if q.Offset < 0 {
		return NewQueryError(q, fmt.Errorf("offset must be >= 0, got %d", q.Offset))
	}

	// Validate sort keys
	for _, o := range q.OrderBy {
		if !ValidSortFields[o.Field] {
			return NewQueryError(q, fmt.Errorf("invalid sort field: %s", o.Field))
		}
		if !ValidSortOrders[o.Direction] {
			return NewQueryError(q, fmt.Errorf("invalid sort order: %s (must be 'asc' or 'desc')", o.Direction))
		}
	}

	// Validate status
	if q.Status != "" && !ValidStatuses[q.Status] {
		return NewQueryError(q, fmt.Errorf("invalid status: %s (must be 'published' or 'draft')", q.Status))
	}

	return nil
}

// ApplyDefaults applies default values to a query.
func ApplyDefaults(q *Query) {
	// Apply default limit
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}

	// Apply default ordering
	if len(q.OrderBy) == 0 {
		q.SetOrder(DefaultOrder...)
	}
}

// ValidateItem checks an item before it is written.
func ValidateItem(item *Item) error {
	if item == nil {
		return NewItemError("", fmt.Errorf("item is nil"))
	}
	if item.Category == "" {
		return NewItemError(item.ID, fmt.Errorf("category is required"))
	}
	if item.Title == "" {
		return NewItemError(item.ID, fmt.Errorf("title is required"))
	}
	if item.Status != "" && !ValidStatuses[item.Status] {
		return NewItemError(item.ID, fmt.Errorf("invalid status: %s", item.Status))
	}
	return nil
}
