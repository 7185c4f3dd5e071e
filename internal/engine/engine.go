// Package engine orchestrates ingest (parent reconciliation against
// existing records, synthesis of negative ids for inferred parents) and
// query (multi-word set algebra, keyboard-layout retry, result shaping)
// over a trie.Trie and a geo.Registry.
package engine

import (
	"sync"

	"github.com/freeeve/geoindex/internal/geo"
	"github.com/freeeve/geoindex/internal/trie"
)

// DefaultResultLimit is N in the §4.4 result envelope: the default
// number of records materialized before the rest are only counted.
const DefaultResultLimit = 20

// Engine owns one trie and one registry for its lifetime. Ingest
// mutates both under a write lock; Search only reads, under a read
// lock, so concurrent readers are safe as long as no ingest is in
// flight (§5).
type Engine struct {
	mu         sync.RWMutex
	trie       *trie.Trie
	registry   *geo.Registry
	nextNegID  int64
	generation int
}

// New returns an empty Engine ready for Ingest.
func New() *Engine {
	return &Engine{
		trie:      trie.New(),
		registry:  geo.NewRegistry(),
		nextNegID: -1,
	}
}

// Generation returns the number of successful Ingest calls plus
// BumpGeneration calls made so far. Used
// as a cache-key component by callers that memoize Search results,
// since it changes exactly when cached envelopes would go stale.
func (e *Engine) Generation() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.generation
}

// Registry exposes the underlying registry for read-only use by
// import/export and the admin HTTP handlers.
func (e *Engine) Registry() *geo.Registry {
	return e.registry
}

// Stats returns trie introspection, guarded by the read lock so it
// never races a concurrent Ingest.
func (e *Engine) Stats() trie.Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.trie.Analyze()
}

// BumpGeneration increments the generation counter. Ingest calls this
// itself after a successful batch; callers that add records one at a
// time outside of Ingest (tree-format import, which must resolve each
// row's parent against the registry before the next row can reference
// it) call it once after their own loop completes successfully.
func (e *Engine) BumpGeneration() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
}
