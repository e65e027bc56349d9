// Package adapters はchartフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"astrology_backend/internal/feature/chart/domain"
	"astrology_backend/internal/feature/chart/domain/entity"
	"astrology_backend/internal/feature/chart/usecase"
)

// ChartModel は charts テーブルの行です。検索用の列とチャート全体のJSONを持ちます。
type ChartModel struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Name        string    `gorm:"size:100"`
	Instant     time.Time `gorm:"not null;index"`
	JulianDay   float64   `gorm:"not null"`
	Latitude    float64   `gorm:"not null"`
	Longitude   float64   `gorm:"not null"`
	HouseSystem string    `gorm:"size:16;not null"`
	Zodiac      string    `gorm:"size:16;not null"`
	Payload     []byte    `gorm:"not null"`
	CreatedAt   time.Time
}

func (ChartModel) TableName() string {
	return "charts"
}

// chartGorm はChartRepositoryインターフェースのGORM実装です。
type chartGorm struct {
	db *gorm.DB
}

// chartGormがChartRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ChartRepository = (*chartGorm)(nil)

// NewChartRepository は指定されたgorm.DB接続でchartGormの新しいインスタンスを生成します。
func NewChartRepository(db *gorm.DB) *chartGorm {
	return &chartGorm{db: db}
}

// Save はチャートをJSONとして保存し、UUIDを採番します。
func (r *chartGorm) Save(ctx context.Context, name string, chart entity.Chart) (entity.StoredChart, error) {
	payload, err := json.Marshal(chart)
	if err != nil {
		return entity.StoredChart{}, fmt.Errorf("encode chart: %w", err)
	}
	m := ChartModel{
		ID:          uuid.NewString(),
		Name:        name,
		Instant:     chart.Instant,
		JulianDay:   chart.JulianDay,
		Latitude:    chart.Location.Latitude,
		Longitude:   chart.Location.Longitude,
		HouseSystem: string(chart.HouseSystem),
		Zodiac:      string(chart.Zodiac),
		Payload:     payload,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return entity.StoredChart{}, err
	}
	return entity.StoredChart{ID: m.ID, Name: m.Name, Chart: chart, CreatedAt: m.CreatedAt}, nil
}

// FindByID はIDでチャートを取得します。
// 存在しない場合、domain.ErrChartNotFoundを返します。
func (r *chartGorm) FindByID(ctx context.Context, id string) (entity.StoredChart, error) {
	if _, err := uuid.Parse(id); err != nil {
		return entity.StoredChart{}, domain.ErrChartNotFound
	}
	var m ChartModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.StoredChart{}, domain.ErrChartNotFound
		}
		return entity.StoredChart{}, err
	}
	var chart entity.Chart
	if err := json.Unmarshal(m.Payload, &chart); err != nil {
		return entity.StoredChart{}, fmt.Errorf("decode chart %s: %w", id, err)
	}
	return entity.StoredChart{ID: m.ID, Name: m.Name, Chart: chart, CreatedAt: m.CreatedAt}, nil
}
