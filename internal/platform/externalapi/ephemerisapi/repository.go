package ephemerisapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"astrology_backend/internal/feature/chart/domain/entity"
	"astrology_backend/internal/feature/chart/usecase"
	"astrology_backend/internal/platform/externalapi/ephemerisapi/dto"
	"astrology_backend/internal/shared/ratelimiter"
)

// RemoteEphemeris はリモートの天体暦APIから天体位置とハウスを取得するEphemeris実装です。
type RemoteEphemeris struct {
	cfg     Config
	client  *http.Client
	limiter *ratelimiter.RateLimiter
}

// RemoteEphemerisがEphemerisを実装していることをコンパイル時に検証します。
var _ usecase.Ephemeris = (*RemoteEphemeris)(nil)

// NewRemoteEphemeris は指定された設定とHTTPクライアントでRemoteEphemerisの新しいインスタンスを生成します。
// limiter が nil の場合は呼び出し頻度を制限しません。
func NewRemoteEphemeris(cfg Config, client *http.Client, limiter *ratelimiter.RateLimiter) *RemoteEphemeris {
	return &RemoteEphemeris{cfg: cfg, client: client, limiter: limiter}
}

// Position はAPIから指定ユリウス日の天体位置を取得します。
// APIが返したエラーコードはそのまま RawPosition.ErrorCode に格納します。
func (r *RemoteEphemeris) Position(ctx context.Context, jd float64, body entity.Planet, flags usecase.Flags) (usecase.RawPosition, error) {
	q := r.query(jd, flags)
	q.Set("body", strconv.Itoa(body.BodyID()))

	var res dto.PositionResponse
	if err := r.get(ctx, "/v1/positions", q, &res); err != nil {
		return usecase.RawPosition{}, err
	}
	if res.Status == "error" {
		return usecase.RawPosition{}, fmt.Errorf("ephemerisapi: %s", res.Message)
	}
	return usecase.RawPosition{
		Longitude: res.Longitude,
		Latitude:  res.Latitude,
		Distance:  res.Distance,
		Speed:     res.Speed,
		ErrorCode: res.ErrorCode,
	}, nil
}

// Houses はAPIから指定ユリウス日・観測地のハウスカスプ、ASC、MCを取得します。
func (r *RemoteEphemeris) Houses(ctx context.Context, jd, lat, lon float64, system entity.HouseSystem, flags usecase.Flags) (usecase.RawHouses, error) {
	q := r.query(jd, flags)
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("system", string(system.Code()))

	var res dto.HousesResponse
	if err := r.get(ctx, "/v1/houses", q, &res); err != nil {
		return usecase.RawHouses{}, err
	}
	if res.Status == "error" {
		return usecase.RawHouses{}, fmt.Errorf("ephemerisapi: %s", res.Message)
	}

	out := usecase.RawHouses{Ascendant: res.Ascendant, MC: res.MC, ErrorCode: res.ErrorCode}
	if res.ErrorCode != 0 {
		return out, nil
	}
	if len(res.Cusps) != len(out.Cusps) {
		return usecase.RawHouses{}, fmt.Errorf("ephemerisapi: expected %d cusps, got %d", len(out.Cusps), len(res.Cusps))
	}
	copy(out.Cusps[:], res.Cusps)
	return out, nil
}

// query は全エンドポイント共通のクエリパラメータを組み立てます。
func (r *RemoteEphemeris) query(jd float64, flags usecase.Flags) url.Values {
	q := url.Values{}
	q.Set("jd", strconv.FormatFloat(jd, 'f', 6, 64))
	if flags.Sidereal {
		q.Set("sidereal", "true")
		q.Set("ayanamsa", strings.ToLower(flags.Ayanamsa))
	}
	if r.cfg.APIKey != "" {
		q.Set("apikey", r.cfg.APIKey)
	}
	return q
}

// get はレート制限を守ってGETリクエストを送り、JSONレスポンスを out にデコードします。
func (r *RemoteEphemeris) get(ctx context.Context, path string, q url.Values, out any) error {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	// URLを生成
	u := fmt.Sprintf("%s%s?%s", strings.TrimRight(r.cfg.BaseURL, "/"), path, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode == http.StatusTooManyRequests && r.limiter != nil {
		r.limiter.RecordRateLimited(retryAfter(res.Header.Get("Retry-After")))
	}
	if res.StatusCode >= 400 {
		return fmt.Errorf("ephemerisapi http %d", res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// retryAfter は秒数形式の Retry-After ヘッダーを解釈します。解釈できない場合は0を返します。
func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
