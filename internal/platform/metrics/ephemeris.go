package metrics

import (
	"context"
	"time"

	"astrology_backend/internal/feature/chart/domain/entity"
	"astrology_backend/internal/feature/chart/usecase"
)

// InstrumentedEphemeris records call counts and latency for an Ephemeris.
// A nonzero error code counts as an error result.
type InstrumentedEphemeris struct {
	inner    usecase.Ephemeris
	provider string
}

var _ usecase.Ephemeris = (*InstrumentedEphemeris)(nil)

// NewInstrumentedEphemeris wraps inner; provider labels the series (e.g. "analytic").
func NewInstrumentedEphemeris(inner usecase.Ephemeris, provider string) *InstrumentedEphemeris {
	Init()
	return &InstrumentedEphemeris{inner: inner, provider: provider}
}

// Position delegates to the wrapped ephemeris.
func (e *InstrumentedEphemeris) Position(ctx context.Context, jd float64, body entity.Planet, flags usecase.Flags) (usecase.RawPosition, error) {
	start := time.Now()
	pos, err := e.inner.Position(ctx, jd, body, flags)
	ObserveEphemeris("position", e.provider, result(err, pos.ErrorCode), time.Since(start))
	return pos, err
}

// Houses delegates to the wrapped ephemeris.
func (e *InstrumentedEphemeris) Houses(ctx context.Context, jd, lat, lon float64, system entity.HouseSystem, flags usecase.Flags) (usecase.RawHouses, error) {
	start := time.Now()
	h, err := e.inner.Houses(ctx, jd, lat, lon, system, flags)
	ObserveEphemeris("houses", e.provider, result(err, h.ErrorCode), time.Since(start))
	return h, err
}

func result(err error, code int) string {
	if err != nil || code != 0 {
		return resultError
	}
	return resultSuccess
}
