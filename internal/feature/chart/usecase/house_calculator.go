package usecase

import (
	"context"
	"fmt"
	"strings"

	"astrology_backend/internal/feature/chart/domain"
	"astrology_backend/internal/feature/chart/domain/astro"
	"astrology_backend/internal/feature/chart/domain/entity"
)

// houseSystemAliases は表記ゆれを正規のハウスシステムに対応付けます。
var houseSystemAliases = map[string]entity.HouseSystem{
	"whole-sign": entity.WholeSign,
	"wholesign":  entity.WholeSign,
	"whole_sign": entity.WholeSign,
}

// ParseHouseSystem は文字列をハウスシステムに変換します。
// 未知の値は strict=false ならプラシーダスに、strict=true なら InvalidHouseSystemError になります。
func ParseHouseSystem(s string, strict bool) (entity.HouseSystem, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return entity.Placidus, nil
	}
	if h := entity.HouseSystem(key); h.Valid() {
		return h, nil
	}
	if h, ok := houseSystemAliases[key]; ok {
		return h, nil
	}
	if strict {
		return "", &domain.InvalidHouseSystemError{Value: s}
	}
	return entity.Placidus, nil
}

// Houses はハウス計算の結果です。
type Houses struct {
	Cusps     []entity.HouseCusp
	Ascendant entity.Point
	Midheaven entity.Point
}

// HouseCalculator は12ハウスのカスプを計算します。
type HouseCalculator struct {
	eph      Ephemeris
	resolver *PositionResolver
}

// NewHouseCalculator はHouseCalculatorの新しいインスタンスを生成します。
func NewHouseCalculator(eph Ephemeris, resolver *PositionResolver) *HouseCalculator {
	return &HouseCalculator{eph: eph, resolver: resolver}
}

// Calculate は指定システムのハウスカスプを計算します。
// ASC/MCは常に天体暦から取得し、ホールサイン・イコールはASCから算術的に求めます。
func (h *HouseCalculator) Calculate(ctx context.Context, jd float64, loc entity.Location, system entity.HouseSystem, zodiac entity.ZodiacType) (Houses, error) {
	if !system.Valid() {
		system = entity.Placidus
	}
	raw, err := h.eph.Houses(ctx, jd, loc.Latitude, loc.Longitude, system, h.resolver.flags(zodiac))
	if err != nil {
		return Houses{}, fmt.Errorf("ephemeris houses %s: %w", system, err)
	}
	if raw.ErrorCode != 0 {
		return Houses{}, &domain.EphemerisError{Code: raw.ErrorCode, Body: "houses/" + string(system)}
	}

	asc := astro.Normalize(raw.Ascendant)
	cusps := raw.Cusps
	switch system {
	case entity.WholeSign:
		cusps = astro.WholeSignCusps(asc)
	case entity.Equal:
		cusps = astro.EqualCusps(asc)
	}

	return Houses{
		Cusps:     astro.Cusps(cusps),
		Ascendant: astro.PointAt(asc),
		Midheaven: astro.PointAt(raw.MC),
	}, nil
}
