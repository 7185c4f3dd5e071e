package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/geoindex/internal/engine"
	"github.com/freeeve/geoindex/internal/repository/redis"
)

// ttl bounds how long a cached envelope survives even without an
// intervening ingest, guarding against a cache entry outliving a crash
// that lost the in-memory generation counter.
const ttl = 10 * time.Minute

// Redis caches Result envelopes in a shared redis.Client, scoped by key
// under the geoindex:search namespace.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an already-connected redis.Client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func key(generation int, query string, limit int) string {
	return fmt.Sprintf("geoindex:search:%d:%d:%s", generation, limit, query)
}

func (r *Redis) Get(ctx context.Context, generation int, query string, limit int) (engine.Result, bool) {
	raw, err := r.client.Underlying().Get(ctx, key(generation, query, limit)).Bytes()
	if err != nil {
		return engine.Result{}, false
	}
	var result engine.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		log.Warn().Err(err).Msg("cache: discarding unparseable cached result")
		return engine.Result{}, false
	}
	return result, true
}

func (r *Redis) Set(ctx context.Context, generation int, query string, limit int, result engine.Result) {
	raw, err := json.Marshal(result)
	if err != nil {
		log.Warn().Err(err).Msg("cache: failed to marshal result for caching")
		return
	}
	if err := r.client.Underlying().Set(ctx, key(generation, query, limit), raw, ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("cache: failed to store result")
	}
}
