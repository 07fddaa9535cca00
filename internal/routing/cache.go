package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

const distanceKeyPrefix = "ridesplit:distance:"

// DistanceCacheRequests counts distance cache lookups by result.
var DistanceCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ridesplit",
	Subsystem: "routing",
	Name:      "distance_cache_requests_total",
	Help:      "Distance cache lookups by result (hit, miss, error).",
}, []string{"result"})

// DistanceCache stores looked-up distances.
type DistanceCache interface {
	// Get returns the cached distance and whether it was found.
	Get(ctx context.Context, key string) (float64, bool, error)
	Set(ctx context.Context, key string, km float64, ttl time.Duration) error
}

// RedisCache is a DistanceCache backed by Redis string keys.
type RedisCache struct {
	redis *redis.Client
}

// NewRedisCache creates a RedisCache connected to addr.
func NewRedisCache(addr string) *RedisCache {
	return &RedisCache{redis: redis.NewClient(&redis.Options{Addr: addr})}
}

// Ping checks the connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.redis.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *RedisCache) Close() error {
	return c.redis.Close()
}

func (c *RedisCache) Get(ctx context.Context, key string) (float64, bool, error) {
	val, err := c.redis.Get(ctx, distanceKeyPrefix+key).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	km, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt cached distance %q: %w", val, err)
	}
	return km, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, km float64, ttl time.Duration) error {
	return c.redis.Set(ctx, distanceKeyPrefix+key, strconv.FormatFloat(km, 'f', -1, 64), ttl).Err()
}

// CachedLookup wraps a DistanceLookup with a DistanceCache.
// Cache failures are logged and never fail the lookup.
type CachedLookup struct {
	inner DistanceLookup
	cache DistanceCache
	ttl   time.Duration
}

// NewCachedLookup creates a CachedLookup keeping entries for ttl.
func NewCachedLookup(inner DistanceLookup, cache DistanceCache, ttl time.Duration) *CachedLookup {
	return &CachedLookup{inner: inner, cache: cache, ttl: ttl}
}

func (l *CachedLookup) Distance(ctx context.Context, origin, destination string) (float64, error) {
	key := cacheKey(origin, destination)

	km, found, err := l.cache.Get(ctx, key)
	switch {
	case err != nil:
		DistanceCacheRequests.WithLabelValues("error").Inc()
		slog.Warn("Distance cache read failed", "key", key, "error", err)
	case found:
		DistanceCacheRequests.WithLabelValues("hit").Inc()
		return km, nil
	default:
		DistanceCacheRequests.WithLabelValues("miss").Inc()
	}

	km, err = l.inner.Distance(ctx, origin, destination)
	if err != nil {
		return 0, err
	}

	if err := l.cache.Set(ctx, key, km, l.ttl); err != nil && !errors.Is(err, context.Canceled) {
		slog.Warn("Distance cache write failed", "key", key, "error", err)
	}
	return km, nil
}

// cacheKey folds case and whitespace. Keys are directional.
// The origin is length-prefixed so no address can shift the boundary.
func cacheKey(origin, destination string) string {
	norm := func(s string) string { return strings.Join(strings.Fields(strings.ToLower(s)), " ") }
	o := norm(origin)
	return strconv.Itoa(len(o)) + ":" + o + "|" + norm(destination)
}
