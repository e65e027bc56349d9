package usecase_test

import (
	"context"
	"errors"
	"sync"

	"astrology_backend/internal/feature/chart/domain/astro"
	"astrology_backend/internal/feature/chart/domain/entity"
	"astrology_backend/internal/feature/chart/usecase"
)

// ErrTransport はモックと期待値の間で共有されるセンチネルエラーです。
var ErrTransport = errors.New("ephemeris unreachable")

// mockEphemeris はEphemerisインターフェースのモック実装です。
type mockEphemeris struct {
	PositionFunc func(ctx context.Context, jd float64, body entity.Planet, flags usecase.Flags) (usecase.RawPosition, error)
	HousesFunc   func(ctx context.Context, jd, lat, lon float64, system entity.HouseSystem, flags usecase.Flags) (usecase.RawHouses, error)

	mu            sync.Mutex
	PositionCalls int
	HousesCalls   int
	LastFlags     usecase.Flags
	LastSystem    entity.HouseSystem
}

func (m *mockEphemeris) Position(ctx context.Context, jd float64, body entity.Planet, flags usecase.Flags) (usecase.RawPosition, error) {
	m.mu.Lock()
	m.PositionCalls++
	m.LastFlags = flags
	m.mu.Unlock()
	if m.PositionFunc != nil {
		return m.PositionFunc(ctx, jd, body, flags)
	}
	return usecase.RawPosition{}, errors.New("PositionFunc is not implemented")
}

func (m *mockEphemeris) Houses(ctx context.Context, jd, lat, lon float64, system entity.HouseSystem, flags usecase.Flags) (usecase.RawHouses, error) {
	m.mu.Lock()
	m.HousesCalls++
	m.LastSystem = system
	m.mu.Unlock()
	if m.HousesFunc != nil {
		return m.HousesFunc(ctx, jd, lat, lon, system, flags)
	}
	return usecase.RawHouses{}, errors.New("HousesFunc is not implemented")
}

const (
	sunRate  = 0.9856474
	moonRate = 13.176396
)

// fixedLongitudes は太陽・月以外の天体に使う固定黄経です。
var fixedLongitudes = map[entity.Planet]float64{
	entity.Mercury: 95,
	entity.Venus:   210,
	entity.Mars:    30,
	entity.Jupiter: 150,
	entity.Saturn:  300,
	entity.Uranus:  275,
	entity.Neptune: 283,
	entity.Pluto:   225,
}

// linearPosition は太陽と月が平均速度で動くだけの単純な天体暦です。
func linearPosition(_ context.Context, jd float64, body entity.Planet, _ usecase.Flags) (usecase.RawPosition, error) {
	switch body {
	case entity.Sun:
		return usecase.RawPosition{Longitude: astro.Normalize(280.46 + sunRate*(jd-astro.J2000)), Speed: sunRate}, nil
	case entity.Moon:
		return usecase.RawPosition{Longitude: astro.Normalize(218.316 + moonRate*(jd-astro.J2000)), Speed: moonRate}, nil
	case entity.Saturn:
		return usecase.RawPosition{Longitude: fixedLongitudes[body], Speed: -0.02}, nil
	}
	return usecase.RawPosition{Longitude: fixedLongitudes[body], Speed: 0.5}, nil
}

// equalHouses はASC=100°、MC=10°のイコールハウスを返します。
func equalHouses(_ context.Context, _, _, _ float64, _ entity.HouseSystem, _ usecase.Flags) (usecase.RawHouses, error) {
	return usecase.RawHouses{Cusps: astro.EqualCusps(100), Ascendant: 100, MC: 10}, nil
}

func newLinearEphemeris() *mockEphemeris {
	return &mockEphemeris{PositionFunc: linearPosition, HousesFunc: equalHouses}
}
