package usecase

import (
	"fmt"

	chart "astrology_backend/internal/feature/chart/domain/entity"
	"astrology_backend/internal/feature/synastry/domain/entity"
)

// elementAdvice は不足しているエレメントを補うための助言です。
var elementAdvice = map[chart.Element]string{
	chart.Fire:  "Bring more spontaneity and shared adventures into the relationship.",
	chart.Earth: "Build shared routines and practical goals to ground the relationship.",
	chart.Air:   "Make time for open conversation and exchanging ideas.",
	chart.Water: "Create space for emotional honesty and quiet closeness.",
}

// BuildReport は2つのチャートを比較し、スコア・長所・課題・助言・テーマをまとめます。
// 各項目はアスペクト種別の件数を固定のしきい値と比べて決まるため、同じ入力には常に同じ結果を返します。
func BuildReport(a, b chart.Chart) entity.Report {
	aspects := SynastryAspects(a, b)
	balance := ElementalBalance(a, b)
	scores := scoresOf(aspects, balance)

	counts := map[chart.AspectType]int{}
	notable := 0
	for _, x := range aspects {
		counts[x.Type]++
		if x.Notable {
			notable++
		}
	}

	return entity.Report{
		Aspects:    aspects,
		Scores:     scores,
		Composite:  Composite(a, b),
		Elements:   balance,
		Strengths:  strengths(counts, notable, balance),
		Challenges: challenges(counts, balance),
		Advice:     advice(counts, balance),
		Theme:      theme(scores.Overall),
	}
}

func strengths(counts map[chart.AspectType]int, notable int, balance entity.ElementalBalance) []string {
	out := []string{}
	if n := counts[chart.Trine]; n >= 3 {
		out = append(out, fmt.Sprintf("Natural harmony: %d trines let you support each other with little effort.", n))
	}
	if n := counts[chart.Sextile]; n >= 3 {
		out = append(out, fmt.Sprintf("Easy cooperation: %d sextiles open opportunities you can build on together.", n))
	}
	if n := counts[chart.Conjunction]; n >= 2 {
		out = append(out, fmt.Sprintf("Strong bond: %d conjunctions merge your energies closely.", n))
	}
	if notable >= 1 {
		out = append(out, fmt.Sprintf("Deep connection: %d notable contacts suggest a meaningful bond.", notable))
	}
	if balance.Classification == entity.WellBalanced {
		out = append(out, "Well-balanced elements give the relationship a broad, stable footing.")
	}
	return out
}

func challenges(counts map[chart.AspectType]int, balance entity.ElementalBalance) []string {
	out := []string{}
	if n := counts[chart.Square]; n >= 3 {
		out = append(out, fmt.Sprintf("Friction: %d squares create tension that needs conscious handling.", n))
	}
	if n := counts[chart.Opposition]; n >= 2 {
		out = append(out, fmt.Sprintf("Polarity: %d oppositions pull you in different directions.", n))
	}
	if n := counts[chart.Quincunx]; n >= 2 {
		out = append(out, fmt.Sprintf("Adjustment: %d quincunxes call for ongoing compromise.", n))
	}
	if balance.Classification == entity.Imbalanced {
		out = append(out, "Imbalanced elements can leave some needs unmet in both of you.")
	}
	return out
}

func advice(counts map[chart.AspectType]int, balance entity.ElementalBalance) []string {
	var out []string
	hard := counts[chart.Square] + counts[chart.Opposition]
	soft := counts[chart.Trine] + counts[chart.Sextile]
	if hard > soft {
		out = append(out, "Treat disagreements as a shared project: name the tension early and work through it together.")
	} else {
		out = append(out, "Use your natural ease as a base for growth: set goals that stretch you both.")
	}
	if balance.Classification == entity.Imbalanced {
		out = append(out, elementAdvice[weakestElement(balance)])
	}
	return out
}

// weakestElement は最も少ないエレメントを返します。同数の場合は fire, earth, air, water の順で先のものです。
func weakestElement(balance entity.ElementalBalance) chart.Element {
	weakest := chart.Elements[0]
	for _, el := range chart.Elements[1:] {
		if balance.Count(el) < balance.Count(weakest) {
			weakest = el
		}
	}
	return weakest
}

func theme(overall float64) string {
	switch {
	case overall >= 8:
		return "A deeply harmonious connection"
	case overall >= 6:
		return "A supportive partnership with room to grow"
	case overall >= 4:
		return "A dynamic bond that asks for effort"
	default:
		return "A challenging match that rewards patience"
	}
}
