// Package usecase はchartフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"

	"astrology_backend/internal/feature/chart/domain/entity"
)

// Flags は天体暦の計算オプションです。
type Flags struct {
	Sidereal bool   // サイデリアル（恒星黄道）で計算するか
	Ayanamsa string // サイデリアル時のアヤナムシャ名（例: "lahiri"）
}

// RawPosition は天体暦が返す1天体の生データです。
type RawPosition struct {
	Longitude float64 // 黄経（度）
	Latitude  float64 // 黄緯（度）
	Distance  float64 // 距離（AU）
	Speed     float64 // 黄経速度（度/日）
	ErrorCode int     // 0以外は計算失敗
}

// RawHouses は天体暦が返すハウス計算の生データです。
type RawHouses struct {
	Cusps     [12]float64
	Ascendant float64
	MC        float64
	ErrorCode int
}

// Ephemeris は外部の天体暦（天体位置・ハウス計算）を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Ephemeris interface {
	// Position は指定ユリウス日における天体の位置を返します。
	Position(ctx context.Context, jd float64, body entity.Planet, flags Flags) (RawPosition, error)

	// Houses は指定ユリウス日・観測地におけるハウスカスプ、ASC、MCを返します。
	Houses(ctx context.Context, jd, lat, lon float64, system entity.HouseSystem, flags Flags) (RawHouses, error)
}
