package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	chartdomain "astrology_backend/internal/feature/chart/domain"
	"astrology_backend/internal/feature/synastry/domain"
	"astrology_backend/internal/feature/synastry/domain/entity"
	"astrology_backend/internal/feature/synastry/transport/handler"
)

// mockSynastryUsecase はSynastryUsecaseインターフェースのモック実装です。
type mockSynastryUsecase struct {
	CompareFunc   func(ctx context.Context, idA, idB string) (entity.Comparison, error)
	NarrativeFunc func(ctx context.Context, idA, idB string) (entity.Narrative, error)
}

func (m *mockSynastryUsecase) Compare(ctx context.Context, idA, idB string) (entity.Comparison, error) {
	return m.CompareFunc(ctx, idA, idB)
}

func (m *mockSynastryUsecase) Narrative(ctx context.Context, idA, idB string) (entity.Narrative, error) {
	return m.NarrativeFunc(ctx, idA, idB)
}

func TestSynastryHandler_Compare(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		mockCompare    func(ctx context.Context, idA, idB string) (entity.Comparison, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			body: `{"chart_a":"a","chart_b":"b"}`,
			mockCompare: func(ctx context.Context, idA, idB string) (entity.Comparison, error) {
				assert.Equal(t, "a", idA)
				assert.Equal(t, "b", idB)
				return entity.Comparison{
					ChartA: entity.ChartRef{ID: "a", Name: "Alice"},
					ChartB: entity.ChartRef{ID: "b", Name: "Bob"},
					Report: entity.Report{
						Aspects:    []entity.SynastryAspect{},
						Composite:  entity.CompositeChart{Planets: []entity.CompositePosition{}},
						Scores:     entity.CompatibilityScores{Overall: 6},
						Elements:   entity.ElementalBalance{Fire: 3, Earth: 2, Air: 3, Water: 2, Total: 10, Classification: entity.Balanced},
						Strengths:  []string{},
						Challenges: []string{},
						Advice:     []string{"x"},
						Theme:      "t",
					},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"chart_a":{"id":"a","name":"Alice"},"chart_b":{"id":"b","name":"Bob"},"report":{` +
				`"aspects":[],"scores":{"overall":6,"romantic":0,"communication":0,"emotional":0,"intellectual":0,"spiritual":0,"values":0},` +
				`"composite":{"planets":[]},"elements":{"fire":3,"earth":2,"air":3,"water":2,"total":10,"classification":"balanced"},` +
				`"strengths":[],"challenges":[],"advice":["x"],"theme":"t"}}`,
		},
		{
			name:           "error: missing chart id",
			body:           `{"chart_a":"a"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name: "error: chart not found",
			body: `{"chart_a":"a","chart_b":"zzz"}`,
			mockCompare: func(ctx context.Context, idA, idB string) (entity.Comparison, error) {
				return entity.Comparison{}, fmt.Errorf("load chart zzz: %w", chartdomain.ErrChartNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"chart not found"}`,
		},
		{
			name: "error: blank id",
			body: `{"chart_a":"a","chart_b":" "}`,
			mockCompare: func(ctx context.Context, idA, idB string) (entity.Comparison, error) {
				return entity.Comparison{}, domain.ErrChartIDRequired
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"both chart ids are required"}`,
		},
		{
			name: "error: internal",
			body: `{"chart_a":"a","chart_b":"b"}`,
			mockCompare: func(ctx context.Context, idA, idB string) (entity.Comparison, error) {
				return entity.Comparison{}, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewSynastryHandler(&mockSynastryUsecase{CompareFunc: tt.mockCompare})
			router := gin.New()
			router.POST("/synastry", h.Compare)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/synastry", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestSynastryHandler_Narrative(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"success", nil, http.StatusOK},
		{"narrator not configured", domain.ErrNarratorUnavailable, http.StatusServiceUnavailable},
		{"narrator failure", errors.New("quota"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewSynastryHandler(&mockSynastryUsecase{
				NarrativeFunc: func(ctx context.Context, idA, idB string) (entity.Narrative, error) {
					if tt.err != nil {
						return entity.Narrative{}, tt.err
					}
					return entity.Narrative{Text: "hello"}, nil
				},
			})
			router := gin.New()
			router.POST("/synastry/narrative", h.Narrative)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/synastry/narrative", strings.NewReader(`{"chart_a":"a","chart_b":"b"}`))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.err == nil {
				assert.Contains(t, w.Body.String(), `"text":"hello"`)
			}
		})
	}
}
