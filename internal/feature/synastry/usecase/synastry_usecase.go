package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	chart "astrology_backend/internal/feature/chart/domain/entity"
	"astrology_backend/internal/feature/synastry/domain"
	"astrology_backend/internal/feature/synastry/domain/entity"
)

const (
	// NarrativePromptTemplate は相性レポートから読み物を生成するためのプロンプトです。
	NarrativePromptTemplate = `Write a warm, concise compatibility reading (about 200 words) for %s and %s.
Theme: %s
Overall score: %.1f / 10
Strengths:
%s
Challenges:
%s
Key contacts:
%s`
	// maxPromptAspects はプロンプトに含めるアスペクトの最大数です。
	maxPromptAspects = 8
)

// ChartSource は保存済みチャートの取得元を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ChartSource interface {
	FindByID(ctx context.Context, id string) (chart.StoredChart, error)
}

// Narrator はプロンプトから文章を生成します。
type Narrator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// synastryUsecase は保存済みチャート同士の比較を提供します。
type synastryUsecase struct {
	charts   ChartSource
	narrator Narrator
}

// NewSynastryUsecase はsynastryUsecaseの新しいインスタンスを生成します。
// narrator が nil の場合、Narrative は domain.ErrNarratorUnavailable を返します。
func NewSynastryUsecase(charts ChartSource, narrator Narrator) *synastryUsecase {
	return &synastryUsecase{charts: charts, narrator: narrator}
}

// Compare は2つのチャートを並行して読み込み、相性レポートを作成します。
func (u *synastryUsecase) Compare(ctx context.Context, idA, idB string) (entity.Comparison, error) {
	idA, idB = strings.TrimSpace(idA), strings.TrimSpace(idB)
	if idA == "" || idB == "" {
		return entity.Comparison{}, domain.ErrChartIDRequired
	}

	var a, b chart.StoredChart
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if a, err = u.charts.FindByID(gctx, idA); err != nil {
			return fmt.Errorf("load chart %s: %w", idA, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if b, err = u.charts.FindByID(gctx, idB); err != nil {
			return fmt.Errorf("load chart %s: %w", idB, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return entity.Comparison{}, err
	}

	return entity.Comparison{
		ChartA: entity.ChartRef{ID: a.ID, Name: a.Name},
		ChartB: entity.ChartRef{ID: b.ID, Name: b.Name},
		Report: BuildReport(a.Chart, b.Chart),
	}, nil
}

// Narrative は比較結果をもとに読み物を生成します。
func (u *synastryUsecase) Narrative(ctx context.Context, idA, idB string) (entity.Narrative, error) {
	if u.narrator == nil {
		return entity.Narrative{}, domain.ErrNarratorUnavailable
	}
	cmp, err := u.Compare(ctx, idA, idB)
	if err != nil {
		return entity.Narrative{}, err
	}

	text, err := u.narrator.Generate(ctx, narrativePrompt(cmp))
	if err != nil {
		return entity.Narrative{}, fmt.Errorf("narrator failed for %s/%s: %w", cmp.ChartA.ID, cmp.ChartB.ID, err)
	}
	return entity.Narrative{Comparison: cmp, Text: strings.TrimSpace(text)}, nil
}

func narrativePrompt(cmp entity.Comparison) string {
	r := cmp.Report
	var contacts []string
	for _, a := range r.Aspects {
		if len(contacts) == maxPromptAspects {
			break
		}
		contacts = append(contacts, fmt.Sprintf("%s %s %s (orb %.1f°)", a.Planet1, a.Type, a.Planet2, a.Orb))
	}
	return fmt.Sprintf(NarrativePromptTemplate,
		nameOr(cmp.ChartA, "Person A"), nameOr(cmp.ChartB, "Person B"),
		r.Theme, r.Scores.Overall,
		bullets(r.Strengths), bullets(r.Challenges), bullets(contacts))
}

func nameOr(ref entity.ChartRef, fallback string) string {
	if ref.Name == "" {
		return fallback
	}
	return ref.Name
}

func bullets(lines []string) string {
	if len(lines) == 0 {
		return "- none"
	}
	return "- " + strings.Join(lines, "\n- ")
}
