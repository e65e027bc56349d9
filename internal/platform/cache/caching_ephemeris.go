// Package cache provides caching implementations for the ephemeris interface.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"astrology_backend/internal/feature/chart/domain/entity"
	"astrology_backend/internal/feature/chart/usecase"
)

// CachingEphemeris decorates an Ephemeris with Redis caching.
// Positions and houses for a given instant never change, so entries only
// expire to bound memory use. Results carrying an error code are not cached.
type CachingEphemeris struct {
	inner     usecase.Ephemeris
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingEphemerisがEphemerisを実装していることをコンパイル時に検証します。
var _ usecase.Ephemeris = (*CachingEphemeris)(nil)

// NewCachingEphemeris decorates an Ephemeris with Redis caching.
// If ttl is 0, it defaults to 24 hours. If namespace is empty, it uses "ephemeris".
func NewCachingEphemeris(rdb *redis.Client, ttl time.Duration, inner usecase.Ephemeris, namespace string) *CachingEphemeris {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if namespace == "" {
		namespace = "ephemeris"
	}
	return &CachingEphemeris{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Position returns a cached position or asks the inner ephemeris.
func (c *CachingEphemeris) Position(ctx context.Context, jd float64, body entity.Planet, flags usecase.Flags) (usecase.RawPosition, error) {
	if c.rdb == nil {
		return c.inner.Position(ctx, jd, body, flags)
	}
	key := fmt.Sprintf("%s:pos:%.6f:%s:%s", c.namespace, jd, safe(string(body)), flagsKey(flags))
	return cached(ctx, c, key, func() (usecase.RawPosition, error) {
		return c.inner.Position(ctx, jd, body, flags)
	}, func(p usecase.RawPosition) bool { return p.ErrorCode == 0 })
}

// Houses returns cached cusps or asks the inner ephemeris.
func (c *CachingEphemeris) Houses(ctx context.Context, jd, lat, lon float64, system entity.HouseSystem, flags usecase.Flags) (usecase.RawHouses, error) {
	if c.rdb == nil {
		return c.inner.Houses(ctx, jd, lat, lon, system, flags)
	}
	key := fmt.Sprintf("%s:houses:%.6f:%.4f:%.4f:%s:%s", c.namespace, jd, lat, lon, string(system.Code()), flagsKey(flags))
	return cached(ctx, c, key, func() (usecase.RawHouses, error) {
		return c.inner.Houses(ctx, jd, lat, lon, system, flags)
	}, func(h usecase.RawHouses) bool { return h.ErrorCode == 0 })
}

// cached implements read-through caching: check Redis, fall back to load,
// then store the result when cacheable reports true.
func cached[T any](ctx context.Context, c *CachingEphemeris, key string, load func() (T, error), cacheable func(T) bool) (T, error) {
	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the ephemeris
	out, err := load()
	if err != nil {
		return out, err
	}

	// 3) Store in cache (best effort)
	if cacheable(out) {
		if b, err := json.Marshal(out); err == nil {
			_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
		}
	}
	return out, nil
}

func flagsKey(f usecase.Flags) string {
	if !f.Sidereal {
		return "tropical"
	}
	return "sidereal-" + safe(strings.ToLower(f.Ayanamsa))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
