package capability

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRegistry_Supports(t *testing.T) {
	r := NewRegistryFrom(map[string][]string{
		"book":  {"alpha_sort", "featured"},
		"film":  {"alpha_sort"},
		"event": {},
		" ":     {"alpha_sort"},
	})

	tests := []struct {
		category string
		feature  string
		want     bool
	}{
		{"book", "alpha_sort", true},
		{"book", "featured", true},
		{"film", "featured", false},
		{"event", "alpha_sort", false},
		{"podcast", "alpha_sort", false},
		{"", "alpha_sort", false},
	}

	for _, tt := range tests {
		t.Run(tt.category+"/"+tt.feature, func(t *testing.T) {
			if got := r.Supports(tt.category, tt.feature); got != tt.want {
				t.Errorf("Supports(%q, %q) = %v, want %v", tt.category, tt.feature, got, tt.want)
			}
		})
	}

	if diff := cmp.Diff([]string{"book", "event", "film"}, r.Categories()); diff != "" {
		t.Errorf("Categories() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_SupportsAll(t *testing.T) {
	r := NewRegistryFrom(map[string][]string{
		"book": {"alpha_sort"},
		"film": {"alpha_sort"},
		"page": {"featured"},
	})

	tests := []struct {
		name       string
		categories []string
		want       bool
	}{
		{"empty set", nil, false},
		{"single", []string{"book"}, true},
		{"all supported", []string{"book", "film"}, true},
		{"one missing feature", []string{"book", "page"}, false},
		{"one unknown", []string{"book", "podcast"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.SupportsAll("alpha_sort", tt.categories...); got != tt.want {
				t.Errorf("SupportsAll(%v) = %v, want %v", tt.categories, got, tt.want)
			}
		})
	}
}

func TestRegistry_AddAndReplace(t *testing.T) {
	r := NewRegistry()
	if r.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", r.Count())
	}

	r.Add("book", "alpha_sort")
	r.Add("book", "featured", "alpha_sort")
	r.Add("  ", "alpha_sort")

	if diff := cmp.Diff([]string{"alpha_sort", "featured"}, r.Features("book")); diff != "" {
		t.Errorf("Features(book) mismatch (-want +got):\n%s", diff)
	}
	if r.Features("film") != nil {
		t.Error("Features(film) should be nil")
	}

	r.Replace(map[string][]string{"film": {"alpha_sort"}})
	if r.Supports("book", "alpha_sort") {
		t.Error("Replace kept an old category")
	}
	if !r.Supports("film", "alpha_sort") {
		t.Error("Replace lost the new category")
	}
}

func TestRegistry_Version(t *testing.T) {
	a := NewRegistryFrom(map[string][]string{"book": {"alpha_sort", "featured"}, "film": {"alpha_sort"}})
	b := NewRegistryFrom(map[string][]string{"film": {"alpha_sort"}, "book": {"featured", "alpha_sort", "featured"}})

	if a.Version() != b.Version() {
		t.Errorf("equal content has different versions: %s vs %s", a.Version(), b.Version())
	}
	if len(a.Version()) != 16 {
		t.Errorf("Version() = %q, want 16 hex chars", a.Version())
	}

	before := a.Version()
	a.Add("film", "featured")
	if a.Version() == before {
		t.Error("Version() did not change after Add")
	}
	if NewRegistry().Version() == before {
		t.Error("empty registry shares a version with a populated one")
	}
}

func TestRegistry_SnapshotIsACopy(t *testing.T) {
	r := NewRegistryFrom(map[string][]string{"book": {"alpha_sort"}})

	snap := r.Snapshot()
	snap["book"] = nil
	snap["film"] = []string{"alpha_sort"}

	if !r.Supports("book", "alpha_sort") || r.Supports("film", "alpha_sort") {
		t.Error("mutating Snapshot() changed the registry")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistryFrom(map[string][]string{"book": {"alpha_sort"}})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Add(fmt.Sprintf("cat-%d-%d", i, j), "alpha_sort")
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if !r.SupportsAll("alpha_sort", "book") {
					t.Error("book lost alpha_sort during concurrent writes")
					return
				}
				_ = r.Categories()
			}
		}()
	}
	wg.Wait()

	if got := r.Count(); got != 801 {
		t.Errorf("Count() = %d, want 801", got)
	}
}
