package listing

import (
	"context"
	"time"
)

// Item statuses.
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
)

// Item is a single piece of listed content. Title is the sort key in
// alphabetic mode; MenuOrder and CreatedAt break ties between equal titles.
type Item struct {
	// Identity
	ID       string `json:"id" yaml:"id"`
	Category string `json:"category" yaml:"category"`

	// Content
	Title string `json:"title" yaml:"title"`
	Slug  string `json:"slug,omitempty" yaml:"slug,omitempty"`

	// Publishing
	Status    string    `json:"status" yaml:"status"`
	MenuOrder int       `json:"menu_order" yaml:"menu_order"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Storage defines the interface for listing storage backends.
// Implementations must be thread-safe and support concurrent access.
type Storage interface {
	// Backend returns the backend name used in errors and metrics.
	Backend() string

	// Store inserts or replaces an item.
	Store(ctx context.Context, item *Item) error

	// Get returns the item with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Item, error)

	// Query retrieves items matching the query, in query order.
	// Returns an empty slice if no items match.
	Query(ctx context.Context, query *Query) ([]*Item, error)

	// Count returns the number of items matching the query, ignoring
	// limit and offset.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes the item with the given ID, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the storage backend.
	Close() error
}
