package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pandorahunt/boxhunt/internal/hunt"
)

// NearbyCache keeps proximity responses in Redis for a short window.
// A stale entry can only over-report boxes opened since it was
// written, and the claim path always re-checks the store, so this
// never weakens claim correctness. Box state itself is never cached.
//
// A nil cache, a zero TTL, or a failing Redis all degrade to querying
// the store directly.
type NearbyCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewNearbyCache(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *NearbyCache {
	return &NearbyCache{rdb: rdb, ttl: ttl, logger: logger}
}

func cacheKey(q hunt.NearbyQuery) string {
	return fmt.Sprintf("nearby:%.6f:%.6f:%d:%d:%d",
		q.Lon, q.Lat, q.MaxDistanceMeters, q.Limit, q.Offset)
}

func (c *NearbyCache) Get(ctx context.Context, q hunt.NearbyQuery) ([]hunt.PlaceSummary, bool) {
	if c == nil || c.rdb == nil || c.ttl <= 0 {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, cacheKey(q)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Debug("nearby cache read failed", "error", err)
		}
		return nil, false
	}

	var places []hunt.PlaceSummary
	if err := json.Unmarshal(data, &places); err != nil {
		return nil, false
	}
	return places, true
}

func (c *NearbyCache) Set(ctx context.Context, q hunt.NearbyQuery, places []hunt.PlaceSummary) {
	if c == nil || c.rdb == nil || c.ttl <= 0 {
		return
	}

	data, err := json.Marshal(places)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(q), data, c.ttl).Err(); err != nil {
		c.logger.Debug("nearby cache write failed", "error", err)
	}
}
