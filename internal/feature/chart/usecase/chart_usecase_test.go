package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astrology_backend/internal/feature/chart/domain"
	"astrology_backend/internal/feature/chart/domain/entity"
	"astrology_backend/internal/feature/chart/usecase"
)

// ErrDB はモックと期待値の間で共有されるセンチネルエラーです。
var ErrDB = errors.New("database error")

// mockChartRepository はChartRepositoryインターフェースのモック実装です。
type mockChartRepository struct {
	SaveFunc     func(ctx context.Context, name string, chart entity.Chart) (entity.StoredChart, error)
	FindByIDFunc func(ctx context.Context, id string) (entity.StoredChart, error)
	SaveCalls    int
}

func (m *mockChartRepository) Save(ctx context.Context, name string, chart entity.Chart) (entity.StoredChart, error) {
	m.SaveCalls++
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, name, chart)
	}
	return entity.StoredChart{}, errors.New("SaveFunc is not implemented")
}

func (m *mockChartRepository) FindByID(ctx context.Context, id string) (entity.StoredChart, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return entity.StoredChart{}, errors.New("FindByIDFunc is not implemented")
}

// TestChartUsecase_CreateNatalChart は計算結果が保存されること、および各種エラーを検証します。
func TestChartUsecase_CreateNatalChart(t *testing.T) {
	t.Parallel()

	input := usecase.NatalInput{Instant: time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), Location: london}

	testCases := []struct {
		name          string
		chartName     string
		saveFunc      func(ctx context.Context, name string, chart entity.Chart) (entity.StoredChart, error)
		expectedErr   error
		errContains   string
		expectedSaves int
	}{
		{
			name:      "success: chart saved with trimmed name",
			chartName: "  Alice ",
			saveFunc: func(ctx context.Context, name string, chart entity.Chart) (entity.StoredChart, error) {
				assert.Equal(t, "Alice", name)
				assert.Len(t, chart.Planets, 10)
				return entity.StoredChart{ID: "id-1", Name: name, Chart: chart}, nil
			},
			expectedSaves: 1,
		},
		{
			name:          "error: name too long",
			chartName:     strings.Repeat("あ", usecase.MaxChartNameLength+1),
			errContains:   "maximum length",
			expectedSaves: 0,
		},
		{
			name:      "error: repository failure is wrapped",
			chartName: "Bob",
			saveFunc: func(ctx context.Context, name string, chart entity.Chart) (entity.StoredChart, error) {
				return entity.StoredChart{}, ErrDB
			},
			expectedErr:   ErrDB,
			expectedSaves: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			repo := &mockChartRepository{SaveFunc: tc.saveFunc}
			uc := usecase.NewChartUsecase(usecase.NewCalculator(newLinearEphemeris(), usecase.ResolverConfig{}), repo)

			stored, err := uc.CreateNatalChart(context.Background(), tc.chartName, input)

			assert.Equal(t, tc.expectedSaves, repo.SaveCalls)
			switch {
			case tc.expectedErr != nil:
				assert.ErrorIs(t, err, tc.expectedErr)
			case tc.errContains != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
			default:
				require.NoError(t, err)
				assert.Equal(t, "id-1", stored.ID)
			}
		})
	}
}

// TestChartUsecase_GetChart はID検証とリポジトリのエラー伝播を検証します。
func TestChartUsecase_GetChart(t *testing.T) {
	t.Parallel()

	repo := &mockChartRepository{
		FindByIDFunc: func(ctx context.Context, id string) (entity.StoredChart, error) {
			if id == "known" {
				return entity.StoredChart{ID: id}, nil
			}
			return entity.StoredChart{}, domain.ErrChartNotFound
		},
	}
	uc := usecase.NewChartUsecase(usecase.NewCalculator(newLinearEphemeris(), usecase.ResolverConfig{}), repo)

	got, err := uc.GetChart(context.Background(), "known")
	require.NoError(t, err)
	assert.Equal(t, "known", got.ID)

	_, err = uc.GetChart(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrChartNotFound)

	_, err = uc.GetChart(context.Background(), " ")
	assert.Error(t, err)
}
