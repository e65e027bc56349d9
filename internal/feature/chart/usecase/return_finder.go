package usecase

import (
	"context"

	"astrology_backend/internal/feature/chart/domain/astro"
	"astrology_backend/internal/feature/chart/domain/entity"
)

const (
	// ReturnTolerance は目標黄経との許容誤差（度）です。
	ReturnTolerance = 1e-4
	// ReturnIterations は二分探索の最大反復回数です。
	ReturnIterations = 20
	// ReturnWindowDays は推定日を中心とした探索窓の片側幅（日）です。
	ReturnWindowDays = 3.0
)

// LongitudeSource は指定時刻の天体黄経を返します。PositionResolverが実装します。
type LongitudeSource interface {
	Longitude(ctx context.Context, planet entity.Planet, jd float64, zodiac entity.ZodiacType) (float64, error)
}

// ReturnResult はリターン探索の結果です。
type ReturnResult struct {
	JulianDay  float64
	Status     entity.ReturnStatus
	Iterations int
}

// ReturnFinder は天体が出生時の黄経に戻る瞬間を二分探索で求めます。
type ReturnFinder struct {
	src LongitudeSource
}

// NewReturnFinder はReturnFinderの新しいインスタンスを生成します。
func NewReturnFinder(src LongitudeSource) *ReturnFinder {
	return &ReturnFinder{src: src}
}

// Find は estimateJD ±3日の範囲で body が target に一致する時刻を探します。
// 反復ごとに天体暦を1回だけ呼び出します。許容誤差に届かなければ
// 最後の中点を BestEffort として返し、エラーにはしません。
func (f *ReturnFinder) Find(ctx context.Context, body entity.Planet, target, estimateJD float64, zodiac entity.ZodiacType) (ReturnResult, error) {
	target = astro.Normalize(target)
	lo := estimateJD - ReturnWindowDays
	hi := estimateJD + ReturnWindowDays

	var mid float64
	for i := 1; i <= ReturnIterations; i++ {
		mid = (lo + hi) / 2
		lon, err := f.src.Longitude(ctx, body, mid, zodiac)
		if err != nil {
			return ReturnResult{}, err
		}
		if astro.AngularDistance(lon, target) < ReturnTolerance {
			return ReturnResult{JulianDay: mid, Status: entity.Converged, Iterations: i}, nil
		}
		// 目標にまだ届いていなければ後半へ、通り過ぎていれば前半へ絞り込む
		if astro.SignedDelta(lon, target) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return ReturnResult{JulianDay: mid, Status: entity.BestEffort, Iterations: ReturnIterations}, nil
}
