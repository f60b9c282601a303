package storage

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"mercator-hq/atoz/pkg/alpha"
	"mercator-hq/atoz/pkg/listing"
)

// backends returns every storage implementation under test.
func backends(t *testing.T) map[string]listing.Storage {
	t.Helper()

	out := map[string]listing.Storage{
		"memory": NewMemoryStorage(),
	}

	for _, driver := range []string{DriverPureGo, DriverCGO} {
		s, err := NewSQLiteStorage(&SQLiteConfig{
			Path:         filepath.Join(t.TempDir(), driver+".db"),
			Driver:       driver,
			MaxOpenConns: 5,
			MaxIdleConns: 2,
			WALMode:      true,
			BusyTimeout:  5 * time.Second,
		})
		if err != nil {
			if driver == DriverCGO && strings.Contains(err.Error(), "CGO") {
				t.Logf("skipping %s driver: %v", driver, err)
				continue
			}
			t.Fatalf("Failed to create SQLite storage (%s): %v", driver, err)
		}
		out["sqlite/"+driver] = s
	}

	for _, s := range out {
		s := s
		t.Cleanup(func() { s.Close() })
	}
	return out
}

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// seed stores a fixed set of items in a backend.
func seed(t *testing.T, s listing.Storage) {
	t.Helper()

	items := []*listing.Item{
		{ID: "1", Category: "book", Title: "banana", Status: listing.StatusPublished, MenuOrder: 0},
		{ID: "2", Category: "book", Title: "Apple", Status: listing.StatusPublished, MenuOrder: 2},
		{ID: "3", Category: "book", Title: "apple", Status: listing.StatusPublished, MenuOrder: 1},
		{ID: "4", Category: "book", Title: "42 Answers", Status: listing.StatusPublished},
		{ID: "5", Category: "book", Title: "Ångström", Status: listing.StatusPublished},
		{ID: "6", Category: "book", Title: "Cherry", Status: listing.StatusDraft},
		{ID: "7", Category: "film", Title: "Alien", Status: listing.StatusPublished},
		{ID: "8", Category: "book", Title: "100% pure", Status: listing.StatusPublished},
	}
	for i, item := range items {
		item.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		item.UpdatedAt = item.CreatedAt
		if err := s.Store(context.Background(), item); err != nil {
			t.Fatalf("Store(%s) failed: %v", item.ID, err)
		}
	}
}

func ids(items []*listing.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestStorage_StoreAndGet(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seed(t, s)

			got, err := s.Get(ctx, "2")
			if err != nil {
				t.Fatalf("Get() failed: %v", err)
			}
			want := &listing.Item{
				ID: "2", Category: "book", Title: "Apple", Status: listing.StatusPublished,
				MenuOrder: 2, CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour),
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Get() mismatch (-want +got):\n%s", diff)
			}

			_, err = s.Get(ctx, "missing")
			if !errors.Is(err, listing.ErrNotFound) {
				t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStorage_AlphaFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter alpha.Filter
		want   []string
	}{
		{name: "letter a", filter: alpha.Normalize("a"), want: []string{"3", "2"}},
		{name: "letter uppercase input", filter: alpha.Normalize("B"), want: []string{"1"}},
		{name: "symbols", filter: alpha.Symbols(), want: []string{"8", "4", "5"}},
		{name: "legacy symbols value", filter: alpha.Normalize("SYM"), want: []string{"8", "4", "5"}},
		{name: "letter with no matches", filter: alpha.Normalize("z"), want: []string{}},
	}

	for name, s := range backends(t) {
		seed(t, s)
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				q := listing.NewQuery("book")
				q.Status = listing.StatusPublished
				pred, ok := alpha.PredicateFor(tt.filter)
				if !ok {
					t.Fatalf("PredicateFor(%v) returned no predicate", tt.filter)
				}
				q.PrependCondition(pred)
				q.SetOrder(alpha.TitleOrder...)

				got, err := s.Query(context.Background(), q)
				if err != nil {
					t.Fatalf("Query() failed: %v", err)
				}
				if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
					t.Errorf("Query() ids mismatch (-want +got):\n%s", diff)
				}

				count, err := s.Count(context.Background(), q)
				if err != nil {
					t.Fatalf("Count() failed: %v", err)
				}
				if count != int64(len(tt.want)) {
					t.Errorf("Count() = %d, want %d", count, len(tt.want))
				}
			})
		}
	}
}

func TestStorage_TitleOrderIsCaseInsensitive(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, s)

			q := listing.NewQuery("book")
			q.SetOrder(alpha.TitleOrder...)

			got, err := s.Query(context.Background(), q)
			if err != nil {
				t.Fatalf("Query() failed: %v", err)
			}

			// "100% pure" and "42 Answers" sort before letters; "apple" (menu
			// order 1) precedes "Apple" (menu order 2); "Ångström" sorts last
			// because only ASCII is folded.
			want := []string{"8", "4", "3", "2", "1", "6", "5"}
			if diff := cmp.Diff(want, ids(got)); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStorage_AlphaFilterUsesTitleNotSlug(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			item := &listing.Item{
				ID: "s1", Category: "book", Title: "Apple", Slug: "zebra",
				Status: listing.StatusPublished, CreatedAt: base, UpdatedAt: base,
			}
			if err := s.Store(ctx, item); err != nil {
				t.Fatalf("Store() failed: %v", err)
			}

			for raw, want := range map[string][]string{"a": {"s1"}, "z": {}} {
				q := listing.NewQuery("book")
				pred, _ := alpha.PredicateFor(alpha.Normalize(raw))
				q.PrependCondition(pred)

				got, err := s.Query(ctx, q)
				if err != nil {
					t.Fatalf("Query(%s) failed: %v", raw, err)
				}
				if diff := cmp.Diff(want, ids(got)); diff != "" {
					t.Errorf("Query(%s) ids mismatch (-want +got):\n%s", raw, diff)
				}
			}
		})
	}
}

func TestStorage_DefaultOrderAndPagination(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, s)

			q := listing.NewQuery()
			q.Limit = 3
			q.Offset = 1

			got, err := s.Query(context.Background(), q)
			if err != nil {
				t.Fatalf("Query() failed: %v", err)
			}
			if diff := cmp.Diff([]string{"7", "6", "5"}, ids(got)); diff != "" {
				t.Errorf("page mismatch (-want +got):\n%s", diff)
			}

			count, err := s.Count(context.Background(), q)
			if err != nil {
				t.Fatalf("Count() failed: %v", err)
			}
			if count != 8 {
				t.Errorf("Count() = %d, want 8 (limit ignored)", count)
			}
		})
	}
}

func TestStorage_SearchEscapesWildcards(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, s)

			q := listing.NewQuery("book")
			q.Search = "%"

			got, err := s.Query(context.Background(), q)
			if err != nil {
				t.Fatalf("Query() failed: %v", err)
			}
			if diff := cmp.Diff([]string{"8"}, ids(got)); diff != "" {
				t.Errorf("search mismatch (-want +got):\n%s", diff)
			}

			q.Search = "APPLE"
			got, err = s.Query(context.Background(), q)
			if err != nil {
				t.Fatalf("Query() failed: %v", err)
			}
			if len(got) != 2 {
				t.Errorf("case-insensitive search returned %d items, want 2", len(got))
			}
		})
	}
}

func TestStorage_EqCondition(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, s)

			q := listing.NewQuery()
			q.AddCondition(listing.Eq{Field: "category", Value: "film"})

			got, err := s.Query(context.Background(), q)
			if err != nil {
				t.Fatalf("Query() failed: %v", err)
			}
			if diff := cmp.Diff([]string{"7"}, ids(got)); diff != "" {
				t.Errorf("Eq mismatch (-want +got):\n%s", diff)
			}

			q = listing.NewQuery()
			q.AddCondition(listing.Eq{Field: "title; DROP TABLE items", Value: "x"})
			got, err = s.Query(context.Background(), q)
			if err != nil {
				t.Fatalf("Query() with unknown field failed: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("unknown field matched %d items, want 0", len(got))
			}
		})
	}
}

func TestStorage_StoreReplacesAndDelete(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seed(t, s)

			item, err := s.Get(ctx, "1")
			if err != nil {
				t.Fatalf("Get() failed: %v", err)
			}
			item.Title = "Blueberry"
			if err := s.Store(ctx, item); err != nil {
				t.Fatalf("Store() failed: %v", err)
			}

			got, err := s.Get(ctx, "1")
			if err != nil {
				t.Fatalf("Get() failed: %v", err)
			}
			if got.Title != "Blueberry" {
				t.Errorf("Title = %q, want Blueberry", got.Title)
			}

			if err := s.Delete(ctx, "1"); err != nil {
				t.Fatalf("Delete() failed: %v", err)
			}
			if err := s.Delete(ctx, "1"); !errors.Is(err, listing.ErrNotFound) {
				t.Errorf("second Delete() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestBuildWhereClause_PredicateLeads(t *testing.T) {
	q := listing.NewQuery("book", "film")
	q.Status = listing.StatusPublished
	q.AddCondition(listing.Eq{Field: "slug", Value: "x"})
	pred, _ := alpha.PredicateFor(alpha.Normalize("m"))
	q.PrependCondition(pred)

	clause, args := buildWhereClause(q)

	wantClause := "(LOWER(SUBSTR(title, 1, 1)) = ?) AND (slug = ?) AND category IN (?, ?) AND status = ?"
	if clause != wantClause {
		t.Errorf("clause = %q, want %q", clause, wantClause)
	}
	wantArgs := []any{"m", "x", "book", "film", listing.StatusPublished}
	if diff := cmp.Diff(wantArgs, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildOrderClause(t *testing.T) {
	tests := []struct {
		name   string
		orders []listing.Order
		want   string
	}{
		{name: "empty", orders: nil, want: "created_at DESC, id DESC"},
		{name: "title order", orders: alpha.TitleOrder, want: "title COLLATE NOCASE ASC, menu_order ASC, created_at ASC, id ASC"},
		{name: "unknown field dropped", orders: []listing.Order{{Field: "1; --", Direction: alpha.Asc}, {Field: "id", Direction: alpha.Desc}}, want: "id DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildOrderClause(tt.orders); got != tt.want {
				t.Errorf("buildOrderClause() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewSQLiteStorage_UnsupportedDriver(t *testing.T) {
	_, err := NewSQLiteStorage(&SQLiteConfig{Path: filepath.Join(t.TempDir(), "x.db"), Driver: "postgres"})
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	var se *listing.StorageError
	if !errors.As(err, &se) {
		t.Errorf("error type = %T, want *listing.StorageError", err)
	}
}

func TestPing(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			p, ok := s.(interface{ Ping(context.Context) error })
			if !ok {
				t.Fatalf("%T does not implement Ping", s)
			}
			if err := p.Ping(context.Background()); err != nil {
				t.Errorf("Ping() error = %v", err)
			}
		})
	}
}
