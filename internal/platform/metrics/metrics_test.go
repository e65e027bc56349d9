package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astrology_backend/internal/feature/chart/domain/entity"
	"astrology_backend/internal/feature/chart/usecase"
)

type stubEphemeris struct {
	pos    usecase.RawPosition
	houses usecase.RawHouses
	err    error
}

func (s stubEphemeris) Position(ctx context.Context, jd float64, body entity.Planet, flags usecase.Flags) (usecase.RawPosition, error) {
	return s.pos, s.err
}

func (s stubEphemeris) Houses(ctx context.Context, jd, lat, lon float64, system entity.HouseSystem, flags usecase.Flags) (usecase.RawHouses, error) {
	return s.houses, s.err
}

// TestInit_Idempotent は Init を複数回呼んでもパニックしないことを検証します。
func TestInit_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Init()
		Init()
	})
}

// TestInstrumentedEphemeris は呼び出し結果ごとにカウンタが増えることを検証します。
func TestInstrumentedEphemeris(t *testing.T) {
	Init()
	ctx := context.Background()

	success := ephemerisCalls.WithLabelValues("position", "test-ok", ResultSuccess)
	before := testutil.ToFloat64(success)
	ok := NewInstrumentedEphemeris(stubEphemeris{pos: usecase.RawPosition{Longitude: 10}}, "test-ok")
	pos, err := ok.Position(ctx, 2451545.0, entity.Sun, usecase.Flags{})
	require.NoError(t, err)
	assert.Equal(t, 10.0, pos.Longitude)
	assert.Equal(t, before+1, testutil.ToFloat64(success))

	codeErr := ephemerisCalls.WithLabelValues("houses", "test-code", ResultError)
	before = testutil.ToFloat64(codeErr)
	withCode := NewInstrumentedEphemeris(stubEphemeris{houses: usecase.RawHouses{ErrorCode: -3}}, "test-code")
	_, err = withCode.Houses(ctx, 2451545.0, 0, 0, entity.Placidus, usecase.Flags{})
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(codeErr))

	transportErr := ephemerisCalls.WithLabelValues("position", "test-err", ResultError)
	before = testutil.ToFloat64(transportErr)
	failing := NewInstrumentedEphemeris(stubEphemeris{err: errors.New("boom")}, "test-err")
	_, err = failing.Position(ctx, 2451545.0, entity.Sun, usecase.Flags{})
	assert.Error(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(transportErr))
}

// TestMiddleware はルートパターン単位でリクエストが記録されることを検証します。
func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Middleware())
	r.GET("/charts/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/metrics", Handler())

	counter := httpRequests.WithLabelValues(http.MethodGet, "/charts/:id", "404")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/charts/"+id, nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
	assert.Equal(t, before+2, testutil.ToFloat64(counter))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "astro_http_requests_total"))
}

// TestObserve_DefaultLabels は空ラベルが既定値に置き換わることを検証します。
func TestObserve_DefaultLabels(t *testing.T) {
	Init()

	unmatched := httpRequests.WithLabelValues(http.MethodGet, "unmatched", "404")
	before := testutil.ToFloat64(unmatched)
	ObserveHTTP(http.MethodGet, "", "404", time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(unmatched))

	unknown := ephemerisCalls.WithLabelValues("position", "unknown", ResultSuccess)
	before = testutil.ToFloat64(unknown)
	ObserveEphemeris("position", "", "", time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(unknown))
}
