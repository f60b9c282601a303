package alpha

import (
	"log/slog"
)

// Feature is the capability name a category must declare to allow
// alphabetic sorting and filtering.
const Feature = "alpha_sort"

// Direction is a sort direction.
type Direction string

const (
	// Asc sorts ascending.
	Asc Direction = "asc"
	// Desc sorts descending.
	Desc Direction = "desc"
)

// Order is one ORDER BY key.
type Order struct {
	Field     string
	Direction Direction
}

// TitleOrder is the ordering applied in alphabetic mode. Ties on title fall
// back to the manual menu order, then creation order, then id so that pages
// are stable.
var TitleOrder = []Order{
	{Field: TitleColumn, Direction: Asc},
	{Field: "menu_order", Direction: Asc},
	{Field: "created_at", Direction: Asc},
	{Field: "id", Direction: Asc},
}

// Query is the mutable listing query owned by the host engine.
type Query interface {
	// Categories returns the categories the listing is scoped to.
	Categories() []string

	// IsSearch reports whether the query is a full-text search.
	IsSearch() bool

	// HasExplicitOrder reports whether ordering was set by the caller.
	HasExplicitOrder() bool

	// SetOrder replaces the query ordering.
	SetOrder(orders ...Order)

	// SetAlphaFilter records the canonical filter for downstream use.
	SetAlphaFilter(f Filter)

	// DisableSearchIndex forces the query onto the primary store.
	DisableSearchIndex()

	// PrependCondition ANDs p in front of the existing conditions.
	PrependCondition(p Predicate)
}

// Capabilities answers whether every category in a set declares a feature.
type Capabilities interface {
	SupportsAll(feature string, categories ...string) bool
}

// Params carries the per-request inputs the augmenter reads.
type Params struct {
	// Filter is the raw, untrusted parameter value.
	Filter string

	// HasFilter is true when the parameter was present on the request,
	// even if empty.
	HasFilter bool

	// Admin is true for administrative listing views.
	Admin bool
}

// State is the per-request position in the augmentation state machine:
// Unchecked → Inactive, or Unchecked → Ordered → Filtered.
type State uint8

const (
	StateUnchecked State = iota
	StateInactive
	StateOrdered
	StateFiltered
)

// String returns the state name used in logs and metric labels.
func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateOrdered:
		return "ordered"
	case StateFiltered:
		return "filtered"
	default:
		return "unchecked"
	}
}

// Observer receives the outcome of each augmentation.
type Observer interface {
	ObserveAugment(state State, filter Filter)
}

// Option configures an Augmenter.
type Option func(*Augmenter)

// WithFeature overrides the capability name checked on categories.
func WithFeature(feature string) Option {
	return func(a *Augmenter) {
		if feature != "" {
			a.feature = feature
		}
	}
}

// WithLogger sets the logger used for debug tracing of decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Augmenter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithObserver registers an observer notified after every Augment call.
func WithObserver(o Observer) Option {
	return func(a *Augmenter) {
		a.observer = o
	}
}

// Augmenter applies alphabetic ordering and filtering to listing queries
// whose categories support it.
type Augmenter struct {
	caps     Capabilities
	feature  string
	logger   *slog.Logger
	observer Observer
}

// NewAugmenter creates an Augmenter that consults caps for category support.
func NewAugmenter(caps Capabilities, opts ...Option) *Augmenter {
	a := &Augmenter{
		caps:    caps,
		feature: Feature,
		logger:  slog.Default().With("component", "alpha.augmenter"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Feature returns the capability name the augmenter checks.
func (a *Augmenter) Feature() string {
	return a.feature
}

// Supports reports whether every category supports alphabetic mode.
func (a *Augmenter) Supports(categories ...string) bool {
	if a == nil || a.caps == nil || len(categories) == 0 {
		return false
	}
	return a.caps.SupportsAll(a.feature, categories...)
}

// Augment mutates q for alphabetic mode and returns the resulting state.
//
// Queries without categories, search queries, and queries touching any
// category that lacks the feature are left untouched (StateInactive).
// Otherwise title ordering is applied, unless this is an admin view that
// already carries an explicit ordering. When the request carried a filter
// parameter, the normalized filter is stored on the query, the search index
// is bypassed, and a title predicate is prepended to the conditions.
func (a *Augmenter) Augment(q Query, p Params) State {
	state, filter := a.augment(q, p)

	if a != nil && a.observer != nil {
		a.observer.ObserveAugment(state, filter)
	}

	return state
}

func (a *Augmenter) augment(q Query, p Params) (State, Filter) {
	if a == nil || q == nil {
		return StateInactive, None()
	}

	categories := q.Categories()
	if q.IsSearch() || !a.Supports(categories...) {
		a.logger.Debug("alphabetic mode not applicable",
			"categories", categories,
			"search", q.IsSearch(),
		)
		return StateInactive, None()
	}

	if p.Admin && q.HasExplicitOrder() {
		a.logger.Debug("keeping explicit admin ordering", "categories", categories)
	} else {
		q.SetOrder(TitleOrder...)
	}

	if !p.HasFilter {
		return StateOrdered, None()
	}

	filter := Normalize(p.Filter)
	q.SetAlphaFilter(filter)
	q.DisableSearchIndex()

	pred, ok := PredicateFor(filter)
	if !ok {
		return StateOrdered, filter
	}
	q.PrependCondition(pred)

	a.logger.Debug("alphabetic filter applied",
		"categories", categories,
		"filter", filter.String(),
	)

	return StateFiltered, filter
}
