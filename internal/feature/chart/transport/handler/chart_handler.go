// Package handler はchartフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"astrology_backend/internal/feature/chart/domain"
	"astrology_backend/internal/feature/chart/domain/astro"
	"astrology_backend/internal/feature/chart/domain/entity"
	"astrology_backend/internal/feature/chart/transport/http/dto"
	"astrology_backend/internal/feature/chart/usecase"
)

// ChartUsecase はチャート計算・保存のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ChartUsecase interface {
	CreateNatalChart(ctx context.Context, name string, in usecase.NatalInput) (entity.StoredChart, error)
	GetChart(ctx context.Context, id string) (entity.StoredChart, error)
	CalculateSolarReturn(ctx context.Context, in usecase.SolarReturnInput) (entity.Return, error)
	CalculateLunarReturn(ctx context.Context, in usecase.LunarReturnInput) (entity.Return, error)
}

// ChartHandler はチャート関連のHTTPリクエストを処理します。
type ChartHandler struct {
	uc ChartUsecase
}

// NewChartHandler は指定されたusecaseでChartHandlerの新しいインスタンスを生成します。
func NewChartHandler(uc ChartUsecase) *ChartHandler {
	return &ChartHandler{uc: uc}
}

// CreateNatal は出生チャートを計算して保存し、201で返します。
//
// エンドポイント例:
// POST /charts/natal
func (h *ChartHandler) CreateNatal(c *gin.Context) {
	var req dto.NatalChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("natal chart validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}
	in, err := natalInput(req.BirthData)
	if err != nil {
		writeError(c, err)
		return
	}

	stored, err := h.uc.CreateNatalChart(c.Request.Context(), req.Name, in)
	if err != nil {
		writeError(c, err)
		return
	}
	slog.Info("natal chart created", "id", stored.ID, "house_system", stored.Chart.HouseSystem)
	c.JSON(http.StatusCreated, dto.NewStoredChartResponse(stored))
}

// GetChart は保存済みチャートをIDで返します。
//
// エンドポイント例:
// GET /charts/:id
func (h *ChartHandler) GetChart(c *gin.Context) {
	stored, err := h.uc.GetChart(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStoredChartResponse(stored))
}

// SolarReturn は指定年のソーラーリターンを返します。
//
// エンドポイント例:
// POST /charts/solar-return
func (h *ChartHandler) SolarReturn(c *gin.Context) {
	var req dto.SolarReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("solar return validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}
	natal, err := natalInput(req.BirthData)
	if err != nil {
		writeError(c, err)
		return
	}

	ret, err := h.uc.CalculateSolarReturn(c.Request.Context(), usecase.SolarReturnInput{
		Natal:             natal,
		NatalSunLongitude: req.NatalSunLongitude,
		Year:              req.Year,
		Location:          location(req.ReturnLocation),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ret)
}

// LunarReturn は指定日以降で最初のルナリターンを返します。
//
// エンドポイント例:
// POST /charts/lunar-return
func (h *ChartHandler) LunarReturn(c *gin.Context) {
	var req dto.LunarReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("lunar return validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}
	natal, err := natalInput(req.BirthData)
	if err != nil {
		writeError(c, err)
		return
	}
	from, err := astro.ParseInstant(req.From, "00:00", req.Timezone)
	if err != nil {
		writeError(c, err)
		return
	}

	ret, err := h.uc.CalculateLunarReturn(c.Request.Context(), usecase.LunarReturnInput{
		Natal:              natal,
		NatalMoonLongitude: req.NatalMoonLongitude,
		From:               from,
		Location:           location(req.ReturnLocation),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ret)
}

// natalInput はリクエストの出生データをusecaseの入力に変換します。
// HTTPではハウスシステムを厳格に検証します。
func natalInput(b dto.BirthData) (usecase.NatalInput, error) {
	instant, err := astro.ParseInstant(b.Date, b.Time, b.Timezone)
	if err != nil {
		return usecase.NatalInput{}, err
	}
	system, err := usecase.ParseHouseSystem(b.HouseSystem, true)
	if err != nil {
		return usecase.NatalInput{}, err
	}
	return usecase.NatalInput{
		Instant:     instant.UTC(),
		Location:    entity.Location{Latitude: *b.Latitude, Longitude: *b.Longitude},
		HouseSystem: system,
		Zodiac:      entity.ZodiacType(b.Zodiac),
	}, nil
}

func location(l *dto.LocationRequest) *entity.Location {
	if l == nil {
		return nil
	}
	return &entity.Location{Latitude: *l.Latitude, Longitude: *l.Longitude}
}

// writeError はドメインエラーをHTTPステータスに対応付けてレスポンスを書き込みます。
func writeError(c *gin.Context, err error) {
	var (
		dateErr  *domain.InvalidDateError
		houseErr *domain.InvalidHouseSystemError
		ephErr   *domain.EphemerisError
	)
	switch {
	case errors.As(err, &dateErr), errors.As(err, &houseErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrChartNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &ephErr):
		slog.Error("ephemeris failure", "error", err, "code", ephErr.Code)
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		slog.Error("chart request timed out", "error", err, "path", c.FullPath())
		c.JSON(http.StatusGatewayTimeout, dto.ErrorResponse{Error: "ephemeris timed out"})
	default:
		slog.Error("chart request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
