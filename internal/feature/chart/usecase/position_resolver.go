package usecase

import (
	"context"
	"fmt"

	"astrology_backend/internal/feature/chart/domain"
	"astrology_backend/internal/feature/chart/domain/astro"
	"astrology_backend/internal/feature/chart/domain/entity"
)

// DefaultAyanamsa はサイデリアル計算で既定として使うアヤナムシャです。
const DefaultAyanamsa = "lahiri"

// ResolverConfig は天体暦呼び出しの設定です。
// グローバル状態ではなく値として渡すため、テスト用と本番用の設定を共存させられます。
type ResolverConfig struct {
	Ayanamsa string
}

// PositionResolver は天体暦の生データを正規化された天体位置に変換します。
// エラー時にリトライはせず、呼び出し元に判断を委ねます。
type PositionResolver struct {
	eph Ephemeris
	cfg ResolverConfig
}

// NewPositionResolver はPositionResolverの新しいインスタンスを生成します。
func NewPositionResolver(eph Ephemeris, cfg ResolverConfig) *PositionResolver {
	if cfg.Ayanamsa == "" {
		cfg.Ayanamsa = DefaultAyanamsa
	}
	return &PositionResolver{eph: eph, cfg: cfg}
}

// flags は黄道の種類から天体暦フラグを組み立てます。
func (r *PositionResolver) flags(zodiac entity.ZodiacType) Flags {
	if zodiac == entity.Sidereal {
		return Flags{Sidereal: true, Ayanamsa: r.cfg.Ayanamsa}
	}
	return Flags{}
}

// Position は1天体の位置を計算します。
func (r *PositionResolver) Position(ctx context.Context, planet entity.Planet, jd float64, zodiac entity.ZodiacType) (entity.PlanetPosition, error) {
	raw, err := r.eph.Position(ctx, jd, planet, r.flags(zodiac))
	if err != nil {
		return entity.PlanetPosition{}, fmt.Errorf("ephemeris position %s: %w", planet, err)
	}
	if raw.ErrorCode != 0 {
		return entity.PlanetPosition{}, &domain.EphemerisError{Code: raw.ErrorCode, Body: string(planet)}
	}

	lon := astro.Normalize(raw.Longitude)
	inSign := astro.DegreeInSign(lon)
	d, m, s := astro.SplitDMS(inSign)
	return entity.PlanetPosition{
		Planet:       planet,
		Longitude:    lon,
		Latitude:     raw.Latitude,
		Speed:        raw.Speed,
		Sign:         astro.SignOf(lon),
		DegreeInSign: inSign,
		Degree:       d,
		Minute:       m,
		Second:       s,
		Retrograde:   raw.Speed < 0,
	}, nil
}

// Positions は全10天体の位置を順番に計算します。1件でも失敗すれば即座にエラーを返します。
func (r *PositionResolver) Positions(ctx context.Context, jd float64, zodiac entity.ZodiacType) ([]entity.PlanetPosition, error) {
	out := make([]entity.PlanetPosition, 0, len(entity.Planets))
	for _, p := range entity.Planets {
		pos, err := r.Position(ctx, p, jd, zodiac)
		if err != nil {
			return nil, err
		}
		out = append(out, pos)
	}
	return out, nil
}

// Longitude は天体の黄経だけを返します。リターン探索で使います。
func (r *PositionResolver) Longitude(ctx context.Context, planet entity.Planet, jd float64, zodiac entity.ZodiacType) (float64, error) {
	pos, err := r.Position(ctx, planet, jd, zodiac)
	if err != nil {
		return 0, err
	}
	return pos.Longitude, nil
}
