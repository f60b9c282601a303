package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"mercator-hq/atoz/pkg/alpha"
	"mercator-hq/atoz/pkg/listing"
)

// MemoryStorage implements listing.Storage using an in-memory map.
// It backs tests and the search index mirror; it evaluates the same
// conditions and ordering as the SQLite backend.
type MemoryStorage struct {
	name  string
	items map[string]*listing.Item
	mu    sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return NewNamedMemoryStorage("memory")
}

// NewNamedMemoryStorage creates an in-memory backend reporting the given
// backend name, so a search index mirror is distinguishable in metrics.
func NewNamedMemoryStorage(name string) *MemoryStorage {
	return &MemoryStorage{
		name:  name,
		items: make(map[string]*listing.Item),
	}
}

// Backend implements listing.Storage.
func (s *MemoryStorage) Backend() string {
	return s.name
}

// Store persists a copy of the item.
func (s *MemoryStorage) Store(ctx context.Context, item *listing.Item) error {
	if err := ctx.Err(); err != nil {
		return listing.NewStorageError(s.name, "store", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Create a copy to avoid mutation
	itemCopy := *item
	s.items[item.ID] = &itemCopy

	return nil
}

// Get returns a copy of the item with the given ID.
func (s *MemoryStorage) Get(ctx context.Context, id string) (*listing.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, listing.NewStorageError(s.name, "get", listing.ErrNotFound)
	}

	itemCopy := *item
	return &itemCopy, nil
}

// Query retrieves items matching the query, sorted and paginated.
func (s *MemoryStorage) Query(ctx context.Context, query *listing.Query) ([]*listing.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, listing.NewStorageError(s.name, "query", err)
	}

	s.mu.RLock()
	results := []*listing.Item{}
	for _, item := range s.items {
		if matchesQuery(item, query) {
			itemCopy := *item
			results = append(results, &itemCopy)
		}
	}
	s.mu.RUnlock()

	sortItems(results, query.OrderBy)

	// Apply pagination
	start := query.Offset
	if start > len(results) {
		return []*listing.Item{}, nil
	}

	limit := query.Limit
	if limit <= 0 {
		limit = listing.DefaultLimit
	}

	end := start + limit
	if end > len(results) {
		end = len(results)
	}

	return results[start:end], nil
}

// Count returns the number of items matching the query filters.
func (s *MemoryStorage) Count(ctx context.Context, query *listing.Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, item := range s.items {
		if matchesQuery(item, query) {
			count++
		}
	}

	return count, nil
}

// Delete removes the item with the given ID.
func (s *MemoryStorage) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return listing.NewStorageError(s.name, "delete", listing.ErrNotFound)
	}
	delete(s.items, id)

	return nil
}

// Ping always succeeds for memory storage.
func (s *MemoryStorage) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op for memory storage.
func (s *MemoryStorage) Close() error {
	return nil
}

// Len returns the number of stored items.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// matchesQuery checks if an item matches the query filters.
func matchesQuery(item *listing.Item, query *listing.Query) bool {
	for _, c := range query.Conditions {
		if !c.Match(item) {
			return false
		}
	}

	if categories := query.Categories(); len(categories) > 0 {
		found := false
		for _, c := range categories {
			if item.Category == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if query.Status != "" && item.Status != query.Status {
		return false
	}

	if query.IsSearch() {
		term := asciiLower(strings.TrimSpace(query.Search))
		if !strings.Contains(asciiLower(item.Title), term) {
			return false
		}
	}

	return true
}

// sortItems orders items by the given keys, matching the SQLite ORDER BY.
func sortItems(items []*listing.Item, orders []listing.Order) {
	if len(orders) == 0 {
		orders = listing.DefaultOrder
	}

	sort.SliceStable(items, func(i, j int) bool {
		for _, o := range orders {
			c := compareField(items[i], items[j], o.Field)
			if c == 0 {
				continue
			}
			if o.Direction == alpha.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// compareField returns -1, 0 or 1 comparing a and b on one sort field.
func compareField(a, b *listing.Item, field string) int {
	switch field {
	case "title":
		return strings.Compare(asciiLower(a.Title), asciiLower(b.Title))
	case "menu_order":
		return compareInt64(int64(a.MenuOrder), int64(b.MenuOrder))
	case "created_at":
		return compareInt64(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano())
	case "updated_at":
		return compareInt64(a.UpdatedAt.UnixNano(), b.UpdatedAt.UnixNano())
	case "id":
		return strings.Compare(a.ID, b.ID)
	case "category":
		return strings.Compare(a.Category, b.Category)
	default:
		return 0
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// asciiLower folds A-Z only, like SQLite's NOCASE collation and LIKE.
func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}
