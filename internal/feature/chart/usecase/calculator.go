package usecase

import (
	"context"
	"log/slog"
	"time"

	"astrology_backend/internal/feature/chart/domain/astro"
	"astrology_backend/internal/feature/chart/domain/entity"
)

// meanLunarMotion は月の平均黄経速度（度/日）です。ルナリターンの推定に使います。
const meanLunarMotion = 13.176

// NatalInput はチャート計算の入力です。
type NatalInput struct {
	Instant     time.Time
	Location    entity.Location
	HouseSystem entity.HouseSystem
	Zodiac      entity.ZodiacType
}

// SolarReturnInput はソーラーリターン計算の入力です。
type SolarReturnInput struct {
	Natal NatalInput
	// NatalSunLongitude が nil の場合は出生データから計算します。
	NatalSunLongitude *float64
	Year              int
	// Location が nil の場合は出生地を使います。
	Location *entity.Location
}

// LunarReturnInput はルナリターン計算の入力です。From 以降で最初のリターンを探します。
type LunarReturnInput struct {
	Natal              NatalInput
	NatalMoonLongitude *float64
	From               time.Time
	Location           *entity.Location
}

// Calculator は天体暦からチャートとリターンを組み立てます。
// 状態を持たないため、複数のリクエストから同時に呼び出せます。
type Calculator struct {
	resolver *PositionResolver
	houses   *HouseCalculator
	finder   *ReturnFinder
}

// NewCalculator はCalculatorの新しいインスタンスを生成します。
func NewCalculator(eph Ephemeris, cfg ResolverConfig) *Calculator {
	resolver := NewPositionResolver(eph, cfg)
	return &Calculator{
		resolver: resolver,
		houses:   NewHouseCalculator(eph, resolver),
		finder:   NewReturnFinder(resolver),
	}
}

func normalizeInput(in NatalInput) NatalInput {
	if !in.HouseSystem.Valid() {
		in.HouseSystem = entity.Placidus
	}
	if in.Zodiac != entity.Sidereal {
		in.Zodiac = entity.Tropical
	}
	return in
}

// CalculateNatalChart は出生チャートを計算します。
// 天体位置とハウスを別々に計算し、最後にハウス番号を付与した新しいチャートを組み立てます。
func (c *Calculator) CalculateNatalChart(ctx context.Context, in NatalInput) (entity.Chart, error) {
	in = normalizeInput(in)
	jd, err := astro.ToJulianDay(in.Instant)
	if err != nil {
		return entity.Chart{}, err
	}
	return c.chartAt(ctx, jd, in.Location, in.HouseSystem, in.Zodiac)
}

func (c *Calculator) chartAt(ctx context.Context, jd float64, loc entity.Location, system entity.HouseSystem, zodiac entity.ZodiacType) (entity.Chart, error) {
	positions, err := c.resolver.Positions(ctx, jd, zodiac)
	if err != nil {
		return entity.Chart{}, err
	}
	houses, err := c.houses.Calculate(ctx, jd, loc, system, zodiac)
	if err != nil {
		return entity.Chart{}, err
	}

	placed := make([]entity.PlanetPosition, 0, len(positions))
	var sunLon, moonLon float64
	for _, p := range positions {
		placed = append(placed, p.WithHouse(astro.AssignHouse(p.Longitude, houses.Cusps)))
		switch p.Planet {
		case entity.Sun:
			sunLon = p.Longitude
		case entity.Moon:
			moonLon = p.Longitude
		}
	}

	return entity.NewChart(entity.ChartParts{
		Instant:     astro.FromJulianDay(jd),
		JulianDay:   jd,
		Location:    loc,
		HouseSystem: system,
		Zodiac:      zodiac,
		Planets:     placed,
		Houses:      houses.Cusps,
		Ascendant:   houses.Ascendant,
		Midheaven:   houses.Midheaven,
		MoonPhase:   astro.MoonPhaseOf(sunLon, moonLon),
		Aspects:     astro.ChartAspects(placed),
	}), nil
}

// CalculateSolarReturn は指定年のソーラーリターンの瞬間とそのチャートを計算します。
// 推定日は出生時の月日・時刻を対象年に当てはめたものです。
func (c *Calculator) CalculateSolarReturn(ctx context.Context, in SolarReturnInput) (entity.Return, error) {
	natal := normalizeInput(in.Natal)
	natalJD, err := astro.ToJulianDay(natal.Instant)
	if err != nil {
		return entity.Return{}, err
	}

	var target float64
	if in.NatalSunLongitude != nil {
		target = *in.NatalSunLongitude
	} else if target, err = c.resolver.Longitude(ctx, entity.Sun, natalJD, natal.Zodiac); err != nil {
		return entity.Return{}, err
	}

	b := natal.Instant.UTC()
	estimate, err := astro.ToJulianDay(time.Date(in.Year, b.Month(), b.Day(), b.Hour(), b.Minute(), b.Second(), 0, time.UTC))
	if err != nil {
		return entity.Return{}, err
	}

	return c.findReturn(ctx, entity.Sun, target, estimate, natal, in.Location)
}

// CalculateLunarReturn は From 以降で最初のルナリターンを計算します。
func (c *Calculator) CalculateLunarReturn(ctx context.Context, in LunarReturnInput) (entity.Return, error) {
	natal := normalizeInput(in.Natal)

	var target float64
	if in.NatalMoonLongitude != nil {
		target = *in.NatalMoonLongitude
	} else {
		natalJD, err := astro.ToJulianDay(natal.Instant)
		if err != nil {
			return entity.Return{}, err
		}
		if target, err = c.resolver.Longitude(ctx, entity.Moon, natalJD, natal.Zodiac); err != nil {
			return entity.Return{}, err
		}
	}

	fromJD, err := astro.ToJulianDay(in.From)
	if err != nil {
		return entity.Return{}, err
	}
	moonNow, err := c.resolver.Longitude(ctx, entity.Moon, fromJD, natal.Zodiac)
	if err != nil {
		return entity.Return{}, err
	}
	estimate := fromJD + astro.Normalize(target-moonNow)/meanLunarMotion

	return c.findReturn(ctx, entity.Moon, target, estimate, natal, in.Location)
}

func (c *Calculator) findReturn(ctx context.Context, body entity.Planet, target, estimate float64, natal NatalInput, loc *entity.Location) (entity.Return, error) {
	res, err := c.finder.Find(ctx, body, target, estimate, natal.Zodiac)
	if err != nil {
		return entity.Return{}, err
	}
	if res.Status == entity.BestEffort {
		slog.Warn("return search did not converge", "body", body, "target", target, "julian_day", res.JulianDay)
	}

	where := natal.Location
	if loc != nil {
		where = *loc
	}
	chart, err := c.chartAt(ctx, res.JulianDay, where, natal.HouseSystem, natal.Zodiac)
	if err != nil {
		return entity.Return{}, err
	}

	return entity.Return{
		Body:       body,
		Target:     astro.Normalize(target),
		JulianDay:  res.JulianDay,
		Instant:    astro.FromJulianDay(res.JulianDay),
		Status:     res.Status,
		Iterations: res.Iterations,
		Chart:      chart,
	}, nil
}
