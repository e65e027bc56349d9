// Package analytic is a self-contained Ephemeris built from closed-form
// series: Keplerian elements for the planets, a truncated lunar theory and
// spherical trigonometry for the houses. Accuracy is on the order of an
// arcminute for the Sun, Moon and inner planets, which is enough for
// sign, house and aspect work without an external provider.
package analytic

import (
	"context"
	"math"

	"astrology_backend/internal/feature/chart/domain/astro"
	"astrology_backend/internal/feature/chart/domain/entity"
	"astrology_backend/internal/feature/chart/usecase"
)

// Error codes reported through RawPosition.ErrorCode and RawHouses.ErrorCode.
const (
	ErrCodeUnknownBody     = -1
	ErrCodeUnknownAyanamsa = -2
	ErrCodeInvalidLocation = -3
)

// speedStep is the half-width in days of the central difference used for speeds.
const speedStep = 0.5

const deg = math.Pi / 180

// Ephemeris implements usecase.Ephemeris with analytic series.
// It holds no state and is safe for concurrent use.
type Ephemeris struct{}

// Ephemeris が usecase.Ephemeris を実装していることをコンパイル時に検証します。
var _ usecase.Ephemeris = (*Ephemeris)(nil)

// New returns an analytic ephemeris.
func New() *Ephemeris {
	return &Ephemeris{}
}

// Position returns the geocentric ecliptic position of body at jd (UT).
// Longitudes are referred to the mean equinox of date, or shifted by the
// ayanamsa when flags request the sidereal zodiac.
func (e *Ephemeris) Position(ctx context.Context, jd float64, body entity.Planet, flags usecase.Flags) (usecase.RawPosition, error) {
	if err := ctx.Err(); err != nil {
		return usecase.RawPosition{}, err
	}
	if !body.Valid() {
		return usecase.RawPosition{ErrorCode: ErrCodeUnknownBody}, nil
	}
	shift := 0.0
	if flags.Sidereal {
		a, ok := Ayanamsa(flags.Ayanamsa, jd)
		if !ok {
			return usecase.RawPosition{ErrorCode: ErrCodeUnknownAyanamsa}, nil
		}
		shift = a
	}

	lon, lat, dist := geocentric(body, jd)
	before, _, _ := geocentric(body, jd-speedStep)
	after, _, _ := geocentric(body, jd+speedStep)

	return usecase.RawPosition{
		Longitude: astro.Normalize(lon - shift),
		Latitude:  lat,
		Distance:  dist,
		Speed:     astro.SignedDelta(before, after) / (2 * speedStep),
	}, nil
}

// Houses returns the cusps, Ascendant and Midheaven for an observer at lat/lon.
// Placidus, Koch and Topocentric fall back to Porphyry inside the polar circles.
func (e *Ephemeris) Houses(ctx context.Context, jd, lat, lon float64, system entity.HouseSystem, flags usecase.Flags) (usecase.RawHouses, error) {
	if err := ctx.Err(); err != nil {
		return usecase.RawHouses{}, err
	}
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 {
		return usecase.RawHouses{ErrorCode: ErrCodeInvalidLocation}, nil
	}
	shift := 0.0
	if flags.Sidereal {
		a, ok := Ayanamsa(flags.Ayanamsa, jd)
		if !ok {
			return usecase.RawHouses{ErrorCode: ErrCodeUnknownAyanamsa}, nil
		}
		shift = a
	}

	f := newFrame(jd, lat, lon)
	cusps := f.cusps(system)
	out := usecase.RawHouses{
		Ascendant: astro.Normalize(f.asc - shift),
		MC:        astro.Normalize(f.mc - shift),
	}
	for i, c := range cusps {
		out.Cusps[i] = astro.Normalize(c - shift)
	}
	return out, nil
}

// geocentric dispatches to the lunar series or the Keplerian model.
func geocentric(body entity.Planet, jd float64) (lon, lat, dist float64) {
	if body == entity.Moon {
		return moon(jd)
	}
	return planet(body, jd)
}

// centuries is the number of Julian centuries since J2000.
func centuries(jd float64) float64 {
	return (jd - astro.J2000) / 36525
}

// precession is the accumulated general precession in longitude, in degrees.
func precession(t float64) float64 {
	return 1.396971*t + 0.0003086*t*t
}

// obliquity is the mean obliquity of the ecliptic (Meeus 22.2), in degrees.
func obliquity(t float64) float64 {
	return 23.439291111 - 0.0130041667*t - 1.6389e-7*t*t + 5.036e-7*t*t*t
}
