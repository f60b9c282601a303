package listing

import (
	"strings"

	"mercator-hq/atoz/pkg/alpha"
)

// Order is one ORDER BY key.
type Order = alpha.Order

// Condition is one AND-ed filter on a listing query. It renders to a
// parameterized SQL fragment and can be evaluated in memory so that every
// backend applies the same semantics.
type Condition interface {
	// SQL returns the WHERE fragment (without AND) and its bound arguments.
	SQL() (string, []any)

	// Match evaluates the condition against an item.
	Match(item *Item) bool
}

// Query is the mutable listing query built per request. It is not safe for
// concurrent use; each request owns its own Query.
type Query struct {
	categories []string

	// Search is the search term; non-empty marks a search context.
	Search string

	// Status restricts the listing to one status. Empty means any.
	Status string

	// Conditions are AND-ed in order.
	Conditions []Condition

	// OrderBy lists sort keys in priority order.
	OrderBy []Order

	// ExplicitOrder is true when OrderBy came from the caller.
	ExplicitOrder bool

	// AlphaFilter is the canonical alphabetic selection, if any.
	AlphaFilter alpha.Filter

	// UseSearchIndex allows the query to be answered by the secondary
	// search index instead of the primary store.
	UseSearchIndex bool

	// Pagination
	Limit  int
	Offset int
}

// NewQuery returns a query scoped to the given categories with the search
// index enabled.
func NewQuery(categories ...string) *Query {
	q := &Query{UseSearchIndex: true}
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c != "" {
			q.categories = append(q.categories, c)
		}
	}
	return q
}

// Categories implements alpha.Query. A nil query has no categories.
func (q *Query) Categories() []string {
	if q == nil {
		return nil
	}
	return q.categories
}

// IsSearch implements alpha.Query.
func (q *Query) IsSearch() bool {
	if q == nil {
		return false
	}
	return strings.TrimSpace(q.Search) != ""
}

// HasExplicitOrder implements alpha.Query.
func (q *Query) HasExplicitOrder() bool {
	return q.ExplicitOrder && len(q.OrderBy) > 0
}

// SetOrder implements alpha.Query.
func (q *Query) SetOrder(orders ...Order) {
	q.OrderBy = append([]Order(nil), orders...)
}

// SetExplicitOrder sets ordering requested by the caller.
func (q *Query) SetExplicitOrder(orders ...Order) {
	q.SetOrder(orders...)
	q.ExplicitOrder = len(orders) > 0
}

// SetAlphaFilter implements alpha.Query.
func (q *Query) SetAlphaFilter(f alpha.Filter) {
	q.AlphaFilter = f
}

// DisableSearchIndex implements alpha.Query.
func (q *Query) DisableSearchIndex() {
	q.UseSearchIndex = false
}

// PrependCondition implements alpha.Query.
func (q *Query) PrependCondition(p alpha.Predicate) {
	q.Conditions = append([]Condition{TitlePrefix{Predicate: p}}, q.Conditions...)
}

// AddCondition appends a condition.
func (q *Query) AddCondition(c Condition) {
	q.Conditions = append(q.Conditions, c)
}

// TitlePrefix adapts an alphabetic predicate to a Condition.
type TitlePrefix struct {
	alpha.Predicate
}

// Match implements Condition.
func (t TitlePrefix) Match(item *Item) bool {
	return t.MatchTitle(item.Title)
}

// Eq is an equality condition on a whitelisted item field.
type Eq struct {
	Field string
	Value string
}

// SQL implements Condition.
func (e Eq) SQL() (string, []any) {
	if !ValidFilterFields[e.Field] {
		// Unknown fields never match rather than reaching the SQL text.
		return "1 = 0", nil
	}
	return e.Field + " = ?", []any{e.Value}
}

// Match implements Condition.
func (e Eq) Match(item *Item) bool {
	switch e.Field {
	case "id":
		return item.ID == e.Value
	case "category":
		return item.Category == e.Value
	case "slug":
		return item.Slug == e.Value
	case "status":
		return item.Status == e.Value
	default:
		return false
	}
}

// ValidFilterFields contains the fields usable in Eq conditions.
var ValidFilterFields = map[string]bool{
	"id":       true,
	"category": true,
	"slug":     true,
	"status":   true,
}
