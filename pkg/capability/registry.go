package capability

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// snapshot is an immutable view of category features. Readers load it
// without locking; writers build a new one and swap it in.
type snapshot struct {
	categories map[string]map[string]struct{}
	version    string
	loadedAt   time.Time
}

// Registry maps content categories to the features they declare.
// Reads are lock-free; writes are serialized and copy-on-write.
type Registry struct {
	current atomic.Pointer[snapshot]
	mu      sync.Mutex
	now     func() time.Time
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	r := &Registry{now: time.Now}
	r.current.Store(r.build(nil))
	return r
}

// NewRegistryFrom returns a registry seeded with a category → features map.
func NewRegistryFrom(categories map[string][]string) *Registry {
	r := NewRegistry()
	r.Replace(categories)
	return r
}

// Supports reports whether category declares feature.
func (r *Registry) Supports(category, feature string) bool {
	features, ok := r.current.Load().categories[category]
	if !ok {
		return false
	}
	_, ok = features[feature]
	return ok
}

// SupportsAll reports whether every category declares feature. An empty
// category set is never supported.
func (r *Registry) SupportsAll(feature string, categories ...string) bool {
	if len(categories) == 0 {
		return false
	}
	snap := r.current.Load()
	for _, c := range categories {
		features, ok := snap.categories[c]
		if !ok {
			return false
		}
		if _, ok := features[feature]; !ok {
			return false
		}
	}
	return true
}

// Add declares features for a category, keeping any it already has.
func (r *Registry) Add(category string, features ...string) {
	category = strings.TrimSpace(category)
	if category == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.current.Load().toMap()
	next[category] = append(next[category], features...)
	r.current.Store(r.build(next))
}

// Replace swaps the whole category set atomically.
func (r *Registry) Replace(categories map[string][]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current.Store(r.build(categories))
}

// Categories returns the registered category names, sorted.
func (r *Registry) Categories() []string {
	snap := r.current.Load()
	names := make([]string, 0, len(snap.categories))
	for name := range snap.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Features returns the sorted features of a category, or nil.
func (r *Registry) Features(category string) []string {
	features, ok := r.current.Load().categories[category]
	if !ok {
		return nil
	}
	return sortedKeys(features)
}

// Snapshot returns a copy of the current category → features map.
func (r *Registry) Snapshot() map[string][]string {
	return r.current.Load().toMap()
}

// Count returns the number of registered categories.
func (r *Registry) Count() int {
	return len(r.current.Load().categories)
}

// Version is a content hash of the category set. It changes only when the
// declared features change.
func (r *Registry) Version() string {
	return r.current.Load().version
}

// LoadedAt returns when the current snapshot was installed.
func (r *Registry) LoadedAt() time.Time {
	return r.current.Load().loadedAt
}

// build normalizes a map into a snapshot. Blank names are dropped and
// duplicate features collapse.
func (r *Registry) build(categories map[string][]string) *snapshot {
	snap := &snapshot{
		categories: make(map[string]map[string]struct{}, len(categories)),
		loadedAt:   r.now(),
	}

	for name, features := range categories {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		set := snap.categories[name]
		if set == nil {
			set = make(map[string]struct{}, len(features))
			snap.categories[name] = set
		}
		for _, f := range features {
			if f = strings.TrimSpace(f); f != "" {
				set[f] = struct{}{}
			}
		}
	}

	snap.version = hashCategories(snap.categories)
	return snap
}

func (s *snapshot) toMap() map[string][]string {
	out := make(map[string][]string, len(s.categories))
	for name, features := range s.categories {
		out[name] = sortedKeys(features)
	}
	return out
}

// hashCategories returns a short stable hash of the category set.
func hashCategories(categories map[string]map[string]struct{}) string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte{0})
		for _, f := range sortedKeys(categories[name]) {
			h.Write([]byte(f))
			h.Write([]byte{1})
		}
		h.Write([]byte{2})
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
