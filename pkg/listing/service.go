package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"mercator-hq/atoz/pkg/alpha"
	"mercator-hq/atoz/pkg/telemetry/tracing"
)

// Query outcome labels reported to a QueryObserver.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Tracer starts spans. Both trace.Tracer and *tracing.Tracer satisfy it.
type Tracer interface {
	Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span)
}

// QueryObserver receives the outcome and latency of each storage query.
type QueryObserver interface {
	ObserveQuery(backend, status string, duration time.Duration)
}

// Request describes one listing request as received from a caller.
type Request struct {
	// Categories scopes the listing.
	Categories []string

	// Params are the raw request parameters; the alphabetic filter is read
	// from them.
	Params url.Values

	// Admin marks an administrative listing view.
	Admin bool

	// Search is an optional search term.
	Search string

	// Status restricts results to one item status.
	Status string

	// OrderBy is an explicit caller ordering.
	OrderBy []Order

	// Pagination
	Limit  int
	Offset int

	// BaseURL, when set, makes List attach filter links for a single
	// supported category.
	BaseURL *url.URL
}

// Result is the outcome of a listing request.
type Result struct {
	Items   []*Item
	Total   int64
	Limit   int
	Offset  int
	Backend string

	// State is how far alphabetic mode got for this request.
	State alpha.State

	// Filter is the canonical alphabetic selection.
	Filter alpha.Filter

	// Links is the letter navigation, when requested and applicable.
	Links []alpha.Link
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the service logger.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithQueryObserver registers an observer for storage query outcomes.
func WithQueryObserver(o QueryObserver) ServiceOption {
	return func(s *Service) {
		s.observer = o
	}
}

// WithTracer sets the tracer used for listing spans.
func WithTracer(t Tracer) ServiceOption {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithParamNames sets the request parameter names read for the filter.
// The first name is the one written into links.
func WithParamNames(names ...string) ServiceOption {
	return func(s *Service) {
		if len(names) > 0 {
			s.paramNames = append([]string(nil), names...)
		}
	}
}

// WithClock overrides the time source used for item timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service runs listing requests through the alphabetic augmenter and the
// configured storage backends.
type Service struct {
	primary    Storage
	index      Storage
	augmenter  *alpha.Augmenter
	paramNames []string
	logger     *slog.Logger
	observer   QueryObserver
	tracer     Tracer
	now        func() time.Time
}

// NewService creates a listing service. index may be nil when no search
// index is configured.
func NewService(primary, index Storage, augmenter *alpha.Augmenter, opts ...ServiceOption) *Service {
	s := &Service{
		primary:    primary,
		index:      index,
		augmenter:  augmenter,
		paramNames: alpha.DefaultParamNames,
		logger:     slog.Default().With("component", "listing.service"),
		tracer:     noop.NewTracerProvider().Tracer("atoz"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List executes a listing request.
func (s *Service) List(ctx context.Context, req Request) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "listing.list",
		trace.WithAttributes(
			attribute.StringSlice(tracing.AttrCategories, req.Categories),
			attribute.Bool(tracing.AttrAdmin, req.Admin),
		),
	)
	defer span.End()

	q := NewQuery(req.Categories...)
	q.Search = req.Search
	q.Status = req.Status
	q.Limit = req.Limit
	q.Offset = req.Offset
	if len(req.OrderBy) > 0 {
		q.SetExplicitOrder(req.OrderBy...)
	}

	state := s.augment(ctx, q, req)

	ApplyDefaults(q)
	if err := Validate(q); err != nil {
		tracing.SetErrorAttributes(span, err, "validation")
		return nil, err
	}

	store := s.route(q)
	span.SetAttributes(attribute.String(tracing.AttrBackend, store.Backend()))

	start := time.Now()
	items, total, err := s.run(ctx, store, q)
	s.observe(store.Backend(), err, time.Since(start))
	if err != nil {
		tracing.SetErrorAttributes(span, err, "storage")
		s.logger.Error("listing query failed",
			"backend", store.Backend(),
			"categories", q.Categories(),
			"error", err,
		)
		return nil, err
	}

	result := &Result{
		Items:   items,
		Total:   total,
		Limit:   q.Limit,
		Offset:  q.Offset,
		Backend: store.Backend(),
		State:   state,
		Filter:  q.AlphaFilter,
	}

	if req.BaseURL != nil && state != alpha.StateInactive && len(q.Categories()) == 1 {
		result.Links = s.Links(q.Categories()[0], req.BaseURL, q.AlphaFilter)
	}

	span.SetAttributes(attribute.Int64(tracing.AttrResultCount, int64(len(items))))
	return result, nil
}

// augment runs the augmenter under its own span.
func (s *Service) augment(ctx context.Context, q *Query, req Request) alpha.State {
	_, span := s.tracer.Start(ctx, "alpha.augment")
	defer span.End()

	params := alpha.ParamsFromValues(req.Params, req.Admin, s.paramNames...)
	state := s.augmenter.Augment(q, params)

	span.SetAttributes(
		attribute.String(tracing.AttrAlphaState, state.String()),
		attribute.String(tracing.AttrAlphaFilter, q.AlphaFilter.String()),
	)
	return state
}

// route picks the index when the query still allows it.
func (s *Service) route(q *Query) Storage {
	if q.UseSearchIndex && s.index != nil {
		return s.index
	}
	return s.primary
}

func (s *Service) run(ctx context.Context, store Storage, q *Query) ([]*Item, int64, error) {
	items, err := store.Query(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	total, err := store.Count(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) observe(backend string, err error, d time.Duration) {
	if s.observer == nil {
		return
	}
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	s.observer.ObserveQuery(backend, status, d)
}

// Links returns the letter navigation for a category, or nil when the
// category does not support alphabetic mode.
func (s *Service) Links(category string, base *url.URL, current alpha.Filter) []alpha.Link {
	if !s.augmenter.Supports(category) {
		return nil
	}
	return alpha.BuildLinks(base, s.paramNames[0], current)
}

// Put validates and stores an item, assigning an ID and timestamps as
// needed, and mirrors it into the search index.
func (s *Service) Put(ctx context.Context, item *Item) error {
	if err := ValidateItem(item); err != nil {
		return err
	}

	now := s.now().UTC()
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Status == "" {
		item.Status = StatusPublished
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	if err := s.primary.Store(ctx, item); err != nil {
		return err
	}

	if s.index != nil {
		if err := s.index.Store(ctx, item); err != nil {
			return fmt.Errorf("failed to mirror item %s into search index: %w", item.ID, err)
		}
	}

	s.logger.Debug("item stored", "id", item.ID, "category", item.Category)
	return nil
}

// Get returns an item from the primary store.
func (s *Service) Get(ctx context.Context, id string) (*Item, error) {
	return s.primary.Get(ctx, id)
}

// Delete removes an item from the primary store and the search index.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.primary.Delete(ctx, id); err != nil {
		return err
	}

	if s.index != nil {
		if err := s.index.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("failed to remove item %s from search index: %w", id, err)
		}
	}
	return nil
}

// SyncIndex copies every item from the primary store into the search index.
// It returns the number of items copied.
func (s *Service) SyncIndex(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, nil
	}

	copied := 0
	for offset := 0; ; offset += MaxLimit {
		q := NewQuery()
		q.SetOrder(Order{Field: "id", Direction: alpha.Asc})
		q.Limit = MaxLimit
		q.Offset = offset

		items, err := s.primary.Query(ctx, q)
		if err != nil {
			return copied, fmt.Errorf("failed to read primary store: %w", err)
		}

		for _, item := range items {
			if err := s.index.Store(ctx, item); err != nil {
				return copied, fmt.Errorf("failed to index item %s: %w", item.ID, err)
			}
			copied++
		}

		if len(items) < MaxLimit {
			break
		}
	}

	s.logger.Info("search index synchronized", "items", copied)
	return copied, nil
}
