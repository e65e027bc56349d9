// Package handler はsynastryフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	chartdomain "astrology_backend/internal/feature/chart/domain"
	"astrology_backend/internal/feature/synastry/domain"
	"astrology_backend/internal/feature/synastry/domain/entity"
	"astrology_backend/internal/feature/synastry/transport/http/dto"
)

// SynastryUsecase は保存済みチャート同士の比較ユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SynastryUsecase interface {
	Compare(ctx context.Context, idA, idB string) (entity.Comparison, error)
	Narrative(ctx context.Context, idA, idB string) (entity.Narrative, error)
}

// SynastryHandler は相性比較のHTTPリクエストを処理します。
type SynastryHandler struct {
	uc SynastryUsecase
}

// NewSynastryHandler はSynastryHandlerの新しいインスタンスを生成します。
func NewSynastryHandler(uc SynastryUsecase) *SynastryHandler {
	return &SynastryHandler{uc: uc}
}

// Compare は2つの保存済みチャートの相性レポートを返します。
//
// エンドポイント例:
// POST /synastry
func (h *SynastryHandler) Compare(c *gin.Context) {
	var req dto.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("synastry validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}
	cmp, err := h.uc.Compare(c.Request.Context(), req.ChartA, req.ChartB)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cmp)
}

// Narrative は相性レポートとGeminiによる読み物を返します。
//
// エンドポイント例:
// POST /synastry/narrative
func (h *SynastryHandler) Narrative(c *gin.Context) {
	var req dto.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("synastry narrative validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}
	n, err := h.uc.Narrative(c.Request.Context(), req.ChartA, req.ChartB)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrChartIDRequired):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, chartdomain.ErrChartNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: chartdomain.ErrChartNotFound.Error()})
	case errors.Is(err, domain.ErrNarratorUnavailable):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("synastry request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
