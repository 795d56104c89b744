package pokeapi

import (
	"sync"

	"github.com/s0up4200/pokedex/cache"
)

type cachedResource[T Resource] struct {
	obj  T
	slug string
}

// ResultCache is a bounded cache of decoded resources of one kind, reachable
// by id or by slug. Both keys always resolve to the same instance and an
// evicted resource disappears under both.
type ResultCache[T Resource] struct {
	kind Kind

	mu    sync.Mutex
	byID  *cache.LRU[int, cachedResource[T]]
	slugs map[string]int
}

// NewResultCache creates a cache holding at most size resources.
func NewResultCache[T Resource](kind Kind, size int) *ResultCache[T] {
	rc := &ResultCache[T]{
		kind:  kind,
		slugs: make(map[string]int),
	}
	// The callback runs inside Put, which already holds rc.mu.
	rc.byID = cache.NewLRU[int, cachedResource[T]](size, cache.WithEvictCallback(func(id int, e cachedResource[T]) {
		if e.slug != "" && rc.slugs[e.slug] == id {
			delete(rc.slugs, e.slug)
		}
	}))
	return rc
}

// Kind returns the kind of resource stored.
func (rc *ResultCache[T]) Kind() Kind { return rc.kind }

// Get looks up a resource. Numeric names are treated as ids.
func (rc *ResultCache[T]) Get(q Query) (T, bool) {
	q = q.normalize()

	rc.mu.Lock()
	defer rc.mu.Unlock()

	id, ok := q.ID()
	if !ok {
		id, ok = rc.slugs[q.Key()]
		if !ok {
			var zero T
			return zero, false
		}
	}

	e, ok := rc.byID.Get(id)
	if !ok {
		var zero T
		return zero, false
	}
	return e.obj, true
}

// Put stores obj under its id and slug, evicting the least recently used
// resource when full.
func (rc *ResultCache[T]) Put(obj T) {
	id := obj.ResourceID()
	slug := ""
	if s := obj.ResourceSlug(); s != "" {
		slug = FormatParam(s)
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if prev, ok := rc.byID.Peek(id); ok && prev.slug != slug && rc.slugs[prev.slug] == id {
		delete(rc.slugs, prev.slug)
	}

	rc.byID.Put(id, cachedResource[T]{obj: obj, slug: slug})
	if slug != "" {
		rc.slugs[slug] = id
	}
}

// Len returns the number of cached resources.
func (rc *ResultCache[T]) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.byID.Len()
}

// Cap returns the capacity.
func (rc *ResultCache[T]) Cap() int {
	return rc.byID.Cap()
}

// Clear empties both indexes.
func (rc *ResultCache[T]) Clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.byID.Clear()
	clear(rc.slugs)
}
