package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"astrology_backend/internal/feature/chart/domain/entity"
)

const (
	// MaxChartNameLength はチャート名の最大文字数（rune数）です。
	MaxChartNameLength = 100
)

// ChartRepository は計算済みチャートの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ChartRepository interface {
	// Save はチャートを保存し、採番したIDを含むレコードを返します。
	Save(ctx context.Context, name string, chart entity.Chart) (entity.StoredChart, error)

	// FindByID はIDに一致するチャートを取得します。
	// 存在しない場合は domain.ErrChartNotFound を返します。
	FindByID(ctx context.Context, id string) (entity.StoredChart, error)
}

// chartUsecase はチャート計算と保存のユースケースを定義します。
type chartUsecase struct {
	*Calculator
	charts ChartRepository
}

// NewChartUsecase はchartUsecaseの新しいインスタンスを生成します。
func NewChartUsecase(calc *Calculator, charts ChartRepository) *chartUsecase {
	return &chartUsecase{Calculator: calc, charts: charts}
}

// CreateNatalChart は出生チャートを計算して保存します。
func (u *chartUsecase) CreateNatalChart(ctx context.Context, name string, in NatalInput) (entity.StoredChart, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > MaxChartNameLength {
		return entity.StoredChart{}, fmt.Errorf("chart name exceeds maximum length of %d characters", MaxChartNameLength)
	}

	chart, err := u.CalculateNatalChart(ctx, in)
	if err != nil {
		return entity.StoredChart{}, err
	}
	stored, err := u.charts.Save(ctx, name, chart)
	if err != nil {
		return entity.StoredChart{}, fmt.Errorf("save chart: %w", err)
	}
	return stored, nil
}

// GetChart は保存済みチャートを取得します。
func (u *chartUsecase) GetChart(ctx context.Context, id string) (entity.StoredChart, error) {
	if strings.TrimSpace(id) == "" {
		return entity.StoredChart{}, errors.New("chart id is required")
	}
	return u.charts.FindByID(ctx, id)
}
