// Package cache memoizes engine.Search results. Every key embeds the
// engine's generation counter, so a completed ingest invalidates the
// whole cache implicitly by changing every future key rather than by
// scanning and deleting old entries.
package cache

import (
	"context"

	"github.com/freeeve/geoindex/internal/engine"
)

// Cache stores and retrieves search results keyed by generation, query,
// and limit.
type Cache interface {
	Get(ctx context.Context, generation int, query string, limit int) (engine.Result, bool)
	Set(ctx context.Context, generation int, query string, limit int, result engine.Result)
}
