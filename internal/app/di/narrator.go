package di

import (
	"context"
	"log/slog"

	"astrology_backend/internal/feature/synastry/adapters/gemini"
	synastryusecase "astrology_backend/internal/feature/synastry/usecase"
	"astrology_backend/internal/platform/config"
)

// NewNarrator creates the Gemini narrator when enabled. It returns a nil
// Narrator when disabled so the narrative endpoint reports 503.
func NewNarrator(ctx context.Context, cfg config.GeminiConfig) (synastryusecase.Narrator, error) {
	if !cfg.Enabled {
		slog.Info("Gemini narrative disabled")
		return nil, nil
	}
	n, err := gemini.NewGeminiNarrator(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return nil, err
	}
	return n, nil
}
