package ephemerisapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"astrology_backend/internal/feature/chart/domain/entity"
	"astrology_backend/internal/feature/chart/usecase"
	"astrology_backend/internal/platform/config"
	"astrology_backend/internal/shared/ratelimiter"
)

func newTestEphemeris(server *httptest.Server, key string) *RemoteEphemeris {
	cfg := Config{
		APIKey:  key,
		BaseURL: server.URL,
	}
	return NewRemoteEphemeris(cfg, server.Client(), nil)
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(config.EphemerisConfig{APIKey: "k", BaseURL: "http://eph"})
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Timeout)
	}
	if cfg.APIKey != "k" || cfg.BaseURL != "http://eph" {
		t.Errorf("unexpected config %+v", cfg)
	}

	cfg = NewConfig(config.EphemerisConfig{Timeout: 3 * time.Second})
	if cfg.Timeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %v", cfg.Timeout)
	}
}

func TestRemoteEphemeris_Position_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/positions" {
			t.Errorf("expected path /v1/positions, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("jd") != "2451545.000000" {
			t.Errorf("expected jd 2451545.000000, got %s", r.URL.Query().Get("jd"))
		}
		if r.URL.Query().Get("body") != "4" {
			t.Errorf("expected body 4, got %s", r.URL.Query().Get("body"))
		}
		if r.URL.Query().Get("apikey") != "test-key" {
			t.Errorf("expected apikey test-key, got %s", r.URL.Query().Get("apikey"))
		}
		if r.URL.Query().Has("sidereal") {
			t.Error("tropical request must not send sidereal")
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"body": "mars",
			"longitude": 327.96,
			"latitude": -1.07,
			"distance": 1.85,
			"speed": 0.775,
			"error_code": 0
		}`))
	}))
	defer server.Close()

	eph := newTestEphemeris(server, "test-key")

	pos, err := eph.Position(context.Background(), 2451545.0, entity.Mars, usecase.Flags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.Longitude != 327.96 {
		t.Errorf("expected longitude 327.96, got %f", pos.Longitude)
	}
	if pos.Speed != 0.775 {
		t.Errorf("expected speed 0.775, got %f", pos.Speed)
	}
	if pos.ErrorCode != 0 {
		t.Errorf("expected error code 0, got %d", pos.ErrorCode)
	}
}

func TestRemoteEphemeris_Position_SiderealAndErrorCode(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("sidereal") != "true" {
			t.Errorf("expected sidereal=true, got %s", r.URL.Query().Get("sidereal"))
		}
		if r.URL.Query().Get("ayanamsa") != "lahiri" {
			t.Errorf("expected ayanamsa lahiri, got %s", r.URL.Query().Get("ayanamsa"))
		}
		if r.URL.Query().Has("apikey") {
			t.Error("empty api key must not be sent")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "ok", "error_code": -1}`))
	}))
	defer server.Close()

	eph := newTestEphemeris(server, "")

	pos, err := eph.Position(context.Background(), 2451545.0, entity.Pluto, usecase.Flags{Sidereal: true, Ayanamsa: "Lahiri"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.ErrorCode != -1 {
		t.Errorf("expected error code -1, got %d", pos.ErrorCode)
	}
}

func TestRemoteEphemeris_Houses_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/houses" {
			t.Errorf("expected path /v1/houses, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("lat") != "51.5074" || q.Get("lon") != "-0.1278" {
			t.Errorf("unexpected location %s,%s", q.Get("lat"), q.Get("lon"))
		}
		if q.Get("system") != "K" {
			t.Errorf("expected system K, got %s", q.Get("system"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"system": "K",
			"cusps": [10, 40, 70, 100, 130, 160, 190, 220, 250, 280, 310, 340],
			"ascendant": 10,
			"mc": 280
		}`))
	}))
	defer server.Close()

	eph := newTestEphemeris(server, "test-key")

	houses, err := eph.Houses(context.Background(), 2451545.0, 51.5074, -0.1278, entity.Koch, usecase.Flags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if houses.Cusps[0] != 10 || houses.Cusps[11] != 340 {
		t.Errorf("unexpected cusps %v", houses.Cusps)
	}
	if houses.MC != 280 {
		t.Errorf("expected mc 280, got %f", houses.MC)
	}
}

func TestRemoteEphemeris_Houses_WrongCuspCount(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "ok", "cusps": [1, 2, 3]}`))
	}))
	defer server.Close()

	eph := newTestEphemeris(server, "test-key")

	_, err := eph.Houses(context.Background(), 2451545.0, 0, 0, entity.Placidus, usecase.Flags{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "expected 12 cusps") {
		t.Errorf("expected cusp count error, got %v", err)
	}
}

func TestRemoteEphemeris_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"bad request", http.StatusBadRequest},
		{"unauthorized", http.StatusUnauthorized},
		{"not found", http.StatusNotFound},
		{"internal server error", http.StatusInternalServerError},
		{"service unavailable", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			eph := newTestEphemeris(server, "test-key")

			_, err := eph.Position(context.Background(), 2451545.0, entity.Sun, usecase.Flags{})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), "ephemerisapi http") {
				t.Errorf("expected HTTP error message, got %v", err)
			}
		})
	}
}

func TestRemoteEphemeris_APIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "error", "message": "Invalid API key"}`))
	}))
	defer server.Close()

	eph := newTestEphemeris(server, "invalid-key")

	_, err := eph.Position(context.Background(), 2451545.0, entity.Sun, usecase.Flags{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "Invalid API key") {
		t.Errorf("expected API error message, got %v", err)
	}

	_, err = eph.Houses(context.Background(), 2451545.0, 0, 0, entity.Placidus, usecase.Flags{})
	if err == nil || !strings.Contains(err.Error(), "Invalid API key") {
		t.Errorf("expected API error message from houses, got %v", err)
	}
}

func TestRemoteEphemeris_InvalidJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{invalid json`))
	}))
	defer server.Close()

	eph := newTestEphemeris(server, "test-key")

	_, err := eph.Position(context.Background(), 2451545.0, entity.Sun, usecase.Flags{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "decode /v1/positions response") {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestRemoteEphemeris_TooManyRequestsBacksOff(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "3600")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	limiter := ratelimiter.NewRateLimiter(100, time.Minute)
	eph := NewRemoteEphemeris(Config{BaseURL: server.URL}, server.Client(), limiter)

	_, err := eph.Position(context.Background(), 2451545.0, entity.Sun, usecase.Flags{})
	if err == nil || !strings.Contains(err.Error(), "ephemerisapi http 429") {
		t.Fatalf("expected 429 error, got %v", err)
	}

	// バックオフ中はリクエストを送らずにコンテキスト期限で失敗する
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := eph.Position(ctx, 2451545.0, entity.Sun, usecase.Flags{}); err == nil {
		t.Fatal("expected error while backing off, got nil")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 upstream call, got %d", got)
	}
}

func TestRemoteEphemeris_ContextCancellation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	eph := newTestEphemeris(server, "test-key")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := eph.Position(ctx, 2451545.0, entity.Sun, usecase.Flags{})
	if err == nil {
		t.Fatal("expected error due to context cancellation, got nil")
	}
}

func TestRetryAfter(t *testing.T) {
	t.Parallel()

	if got := retryAfter("30"); got != 30*time.Second {
		t.Errorf("expected 30s, got %v", got)
	}
	if got := retryAfter("Wed, 21 Oct 2015 07:28:00 GMT"); got != 0 {
		t.Errorf("expected 0 for http-date, got %v", got)
	}
}
