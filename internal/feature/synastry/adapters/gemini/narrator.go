// Package gemini はGoogle Gemini APIを使用した相性レポートの文章生成を提供します。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"astrology_backend/internal/feature/synastry/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// GeminiNarrator はGoogle Gemini APIを使用して相性の読み物を生成します。
type GeminiNarrator struct {
	client *genai.Client
	model  string
}

// GeminiNarratorがNarratorを実装していることをコンパイル時に検証します。
var _ usecase.Narrator = (*GeminiNarrator)(nil)

// NewGeminiNarrator はGeminiNarratorの新しいインスタンスを生成します。
// apiKey が空の場合はADCを使用し、環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT,
// GOOGLE_CLOUD_LOCATION から接続先を決定します。
func NewGeminiNarrator(ctx context.Context, apiKey, model string) (*GeminiNarrator, error) {
	var cfg *genai.ClientConfig
	if apiKey != "" {
		cfg = &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiNarrator{client: client, model: model}, nil
}

// Generate はプロンプトから文章を生成します。
func (g *GeminiNarrator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return resp.Text(), nil
}
