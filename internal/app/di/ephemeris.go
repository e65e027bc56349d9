// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"astrology_backend/internal/feature/chart/usecase"
	"astrology_backend/internal/platform/cache"
	"astrology_backend/internal/platform/config"
	"astrology_backend/internal/platform/ephemeris/analytic"
	"astrology_backend/internal/platform/externalapi/ephemerisapi"
	infrahttp "astrology_backend/internal/platform/http"
	"astrology_backend/internal/platform/metrics"
	"astrology_backend/internal/shared/ratelimiter"
)

// NewEphemeris creates the configured ephemeris provider, instrumented with
// metrics and, when rdb is non-nil, wrapped in the Redis cache.
func NewEphemeris(cfg config.EphemerisConfig, rdb *redis.Client, ttl time.Duration) (usecase.Ephemeris, error) {
	var provider usecase.Ephemeris
	switch cfg.Provider {
	case "", "analytic":
		provider = analytic.New()
	case "remote":
		apiCfg := ephemerisapi.NewConfig(cfg)
		httpClient := infrahttp.NewEphemerisClient(apiCfg.Timeout)
		limiter := ratelimiter.NewRateLimiter(cfg.RateLimit, time.Minute)
		provider = ephemerisapi.NewRemoteEphemeris(apiCfg, httpClient, limiter)
	default:
		return nil, fmt.Errorf("unsupported ephemeris provider %q", cfg.Provider)
	}

	name := cfg.Provider
	if name == "" {
		name = "analytic"
	}
	instrumented := metrics.NewInstrumentedEphemeris(provider, name)
	slog.Info("ephemeris ready", "provider", name, "cache", rdb != nil)
	return cache.NewCachingEphemeris(rdb, ttl, instrumented, "ephemeris:"+name), nil
}
