// Package service wires the engine to its collaborators: the
// generation-keyed cache in front of Search, and the audit log behind
// Import.
package service

import (
	"context"

	"github.com/freeeve/geoindex/internal/cache"
	"github.com/freeeve/geoindex/internal/engine"
)

// SearchService memoizes engine.Search through a Cache keyed on the
// engine's current generation, so a completed ingest invalidates every
// future lookup without the cache needing to know ingest happened.
type SearchService struct {
	eng   *engine.Engine
	cache cache.Cache
}

// NewSearchService wires an Engine to a Cache.
func NewSearchService(eng *engine.Engine, c cache.Cache) *SearchService {
	return &SearchService{eng: eng, cache: c}
}

// Search returns the cached result for (query, limit) at the engine's
// current generation, computing and caching it on a miss.
func (s *SearchService) Search(ctx context.Context, query string, limit int) engine.Result {
	if limit <= 0 {
		limit = engine.DefaultResultLimit
	}
	generation := s.eng.Generation()

	if result, ok := s.cache.Get(ctx, generation, query, limit); ok {
		return result
	}

	result := s.eng.Search(query, limit)
	s.cache.Set(ctx, generation, query, limit, result)
	return result
}
