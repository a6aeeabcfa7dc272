package cataloginfra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aarifhsn/nexthire-backend/pkg/metrics"
	"github.com/aarifhsn/nexthire-backend/recruitment/catalog"
	"github.com/redis/go-redis/v9"
)

const (
	skillsKey    = "skills"
	locationsKey = "locations"
)

// CachingSource decorates a catalog.Source with a Redis cache. A cache
// failure falls through to the inner source.
type CachingSource struct {
	inner     catalog.Source
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingSource decorates inner. If ttl is 0 it defaults to 5 minutes; a
// nil client disables caching.
func NewCachingSource(rdb *redis.Client, ttl time.Duration, inner catalog.Source) *CachingSource {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachingSource{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: "catalog",
	}
}

// JobSkills returns the cached skills, loading them on a miss
func (c *CachingSource) JobSkills(ctx context.Context) ([]string, error) {
	return c.cached(ctx, skillsKey, c.inner.JobSkills)
}

// JobLocations returns the cached locations, loading them on a miss
func (c *CachingSource) JobLocations(ctx context.Context) ([]string, error) {
	return c.cached(ctx, locationsKey, c.inner.JobLocations)
}

func (c *CachingSource) cached(ctx context.Context, name string, load func(context.Context) ([]string, error)) ([]string, error) {
	if c.rdb == nil {
		return load(ctx)
	}

	key := c.namespace + ":" + name
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []string
		if err := json.Unmarshal(b, &out); err == nil {
			metrics.ObserveCache(name, true)
			return out, nil
		}
		// Corrupted entry
		_ = c.rdb.Del(ctx, key).Err()
	}
	metrics.ObserveCache(name, false)

	out, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}
