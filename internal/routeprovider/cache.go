package routeprovider

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/draymaster/tripplanner/internal/domain"
	"github.com/draymaster/tripplanner/internal/platform/logger"
)

// GeocodeCache is a Redis-backed cache in front of the Mapbox geocoding
// API, following the *redis.Client field used directly off a service
// struct in services/tracking-service. Place names rarely move, so a
// long TTL is appropriate.
type GeocodeCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewGeocodeCache builds a cache around an existing redis.Client.
func NewGeocodeCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *GeocodeCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &GeocodeCache{client: client, ttl: ttl, log: log}
}

func cacheKey(query string) string {
	return "tripplanner:geocode:" + strings.ToLower(strings.TrimSpace(query))
}

// Get returns the cached point for query, if present.
func (c *GeocodeCache) Get(ctx context.Context, query string) (domain.Point, bool) {
	raw, err := c.client.Get(ctx, cacheKey(query)).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.WithError(err).Debugw("geocode cache read failed", "query", query)
		}
		return domain.Point{}, false
	}
	var pt domain.Point
	if err := json.Unmarshal([]byte(raw), &pt); err != nil {
		return domain.Point{}, false
	}
	return pt, true
}

// Set stores a geocoded point, best-effort. Cache failures never block a
// planning request.
func (c *GeocodeCache) Set(ctx context.Context, query string, pt domain.Point) {
	raw, err := json.Marshal(pt)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(query), raw, c.ttl).Err(); err != nil {
		c.log.WithError(err).Debugw("geocode cache write failed", "query", query)
	}
}
