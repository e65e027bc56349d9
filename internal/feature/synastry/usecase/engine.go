// Package usecase はsynastryフィーチャーのビジネスロジックを実装します。
// 相性計算（シナストリー・コンポジット・エレメントバランス・スコア）は
// 不変のチャートに対する純粋関数で、天体暦へのアクセスを行いません。
package usecase

import (
	"math"
	"slices"

	"astrology_backend/internal/feature/chart/domain/astro"
	chart "astrology_backend/internal/feature/chart/domain/entity"
	"astrology_backend/internal/feature/synastry/domain/entity"
)

const (
	baseScore = 5.0
	minScore  = 1.0
	maxScore  = 10.0
	maxWeight = 5.0

	// 要素バランスの分類しきい値（合計に対する比率）
	wellBalancedRatio = 0.15
	imbalancedRatio   = 0.4
)

type pairKey struct{ a, b chart.Planet }

// key は順序に依存しない惑星ペアのキーを返します。
func key(p1, p2 chart.Planet) pairKey {
	if p1.BodyID() > p2.BodyID() {
		p1, p2 = p2, p1
	}
	return pairKey{p1, p2}
}

// pairWeights は惑星ペアごとの基本重み（1〜5）です。表にないペアは defaultWeight で決まります。
var pairWeights = map[pairKey]float64{
	key(chart.Sun, chart.Moon):        5,
	key(chart.Venus, chart.Mars):      5,
	key(chart.Moon, chart.Moon):       4,
	key(chart.Venus, chart.Venus):     4,
	key(chart.Sun, chart.Venus):       4,
	key(chart.Moon, chart.Venus):      4,
	key(chart.Mercury, chart.Mercury): 4,
	key(chart.Venus, chart.Jupiter):   4,
	key(chart.Sun, chart.Sun):         3,
	key(chart.Sun, chart.Mars):        3,
	key(chart.Moon, chart.Mars):       3,
	key(chart.Mars, chart.Mars):       3,
	key(chart.Sun, chart.Mercury):     3,
	key(chart.Moon, chart.Mercury):    3,
	key(chart.Mercury, chart.Venus):   3,
	key(chart.Sun, chart.Jupiter):     3,
	key(chart.Moon, chart.Jupiter):    3,
	key(chart.Sun, chart.Saturn):      3,
	key(chart.Moon, chart.Saturn):     3,
	key(chart.Venus, chart.Saturn):    3,
	key(chart.Moon, chart.Neptune):    3,
	key(chart.Venus, chart.Neptune):   3,
	key(chart.Venus, chart.Pluto):     3,
	key(chart.Mars, chart.Pluto):      3,
	key(chart.Mercury, chart.Mars):    2,
	key(chart.Mercury, chart.Jupiter): 2,
	key(chart.Mercury, chart.Saturn):  2,
	key(chart.Mars, chart.Saturn):     2,
	key(chart.Sun, chart.Pluto):       2,
	key(chart.Jupiter, chart.Saturn):  2,
	key(chart.Neptune, chart.Neptune): 1,
	key(chart.Pluto, chart.Pluto):     1,
	key(chart.Uranus, chart.Uranus):   1,
	key(chart.Saturn, chart.Saturn):   2,
	key(chart.Jupiter, chart.Jupiter): 2,
	key(chart.Mercury, chart.Uranus):  2,
	key(chart.Moon, chart.Pluto):      2,
	key(chart.Sun, chart.Neptune):     2,
	key(chart.Venus, chart.Uranus):    2,
	key(chart.Mars, chart.Uranus):     2,
	key(chart.Mercury, chart.Neptune): 2,
	key(chart.Jupiter, chart.Neptune): 2,
	key(chart.Jupiter, chart.Pluto):   1,
	key(chart.Saturn, chart.Pluto):    1,
	key(chart.Uranus, chart.Neptune):  1,
	key(chart.Uranus, chart.Pluto):    1,
	key(chart.Neptune, chart.Pluto):   1,
	key(chart.Saturn, chart.Uranus):   1,
	key(chart.Saturn, chart.Neptune):  1,
	key(chart.Jupiter, chart.Uranus):  1,
	key(chart.Mercury, chart.Pluto):   2,
	key(chart.Sun, chart.Uranus):      2,
	key(chart.Moon, chart.Uranus):     2,
	key(chart.Mars, chart.Jupiter):    2,
	key(chart.Mars, chart.Neptune):    2,
}

func defaultWeight(p1, p2 chart.Planet) float64 {
	if p1.IsPersonal() || p2.IsPersonal() {
		return 2
	}
	return 1
}

// typeMultipliers はアスペクト種別ごとの重み倍率です。表にない種別は1.0です。
var typeMultipliers = map[chart.AspectType]float64{
	chart.Conjunction: 1.5,
	chart.Opposition:  1.5,
	chart.Trine:       1.2,
	chart.Square:      1.2,
}

type notableKey struct {
	pair pairKey
	typ  chart.AspectType
}

// notableAspects は特に強い結びつきを示す（惑星ペア, 種別）の組です。
var notableAspects = newNotableSet([]notableKey{
	{key(chart.Sun, chart.Moon), chart.Conjunction},
	{key(chart.Sun, chart.Moon), chart.Trine},
	{key(chart.Sun, chart.Moon), chart.Opposition},
	{key(chart.Moon, chart.Moon), chart.Conjunction},
	{key(chart.Venus, chart.Mars), chart.Conjunction},
	{key(chart.Venus, chart.Mars), chart.Trine},
	{key(chart.Sun, chart.Venus), chart.Conjunction},
	{key(chart.Moon, chart.Venus), chart.Conjunction},
	{key(chart.Moon, chart.Venus), chart.Trine},
	{key(chart.Venus, chart.Venus), chart.Conjunction},
	{key(chart.Venus, chart.Neptune), chart.Conjunction},
	{key(chart.Moon, chart.Neptune), chart.Trine},
	{key(chart.Venus, chart.Pluto), chart.Conjunction},
})

func newNotableSet(keys []notableKey) map[notableKey]bool {
	m := make(map[notableKey]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

// Weight はアスペクトの解釈上の重みを返します。
// 基本重み × 種別倍率 × 個人天体倍率を [0, 5] に収め、小数第2位で丸めます。
func Weight(p1, p2 chart.Planet, t chart.AspectType) float64 {
	base, ok := pairWeights[key(p1, p2)]
	if !ok {
		base = defaultWeight(p1, p2)
	}
	mult, ok := typeMultipliers[t]
	if !ok {
		mult = 1.0
	}
	personal := 1.0
	switch {
	case p1.IsPersonal() && p2.IsPersonal():
		personal = 1.2
	case !p1.IsPersonal() && !p2.IsPersonal():
		personal = 0.8
	}
	w := math.Min(math.Max(base*mult*personal, 0), maxWeight)
	return round(w, 2)
}

// IsNotable は（惑星ペア, 種別）が特筆すべき組み合わせかを返します。
func IsNotable(p1, p2 chart.Planet, t chart.AspectType) bool {
	return notableAspects[notableKey{key(p1, p2), t}]
}

// SynastryAspects はAの全天体とBの全天体の組についてアスペクトを検出します。
// 結果はAの天体順、その中でBの天体順に並びます。惑星がなければ空スライスを返します。
func SynastryAspects(a, b chart.Chart) []entity.SynastryAspect {
	out := []entity.SynastryAspect{}
	for _, pa := range a.Planets {
		for _, pb := range b.Planets {
			m, ok := astro.DetectAspectWithTable(pa.Longitude, pb.Longitude, astro.SynastryOrbs)
			if !ok {
				continue
			}
			out = append(out, entity.SynastryAspect{
				Planet1:  pa.Planet,
				Planet2:  pb.Planet,
				Type:     m.Type,
				Orb:      m.Orb,
				Applying: m.Applying,
				Weight:   Weight(pa.Planet, pb.Planet, m.Type),
				Notable:  IsNotable(pa.Planet, pb.Planet, m.Type),
			})
		}
	}
	return out
}

// accumulate は基準値5.0から各アスペクトの寄与を加減した生のスコアを返します。
func accumulate(aspects []entity.SynastryAspect, include func(entity.SynastryAspect) bool) float64 {
	score := baseScore
	for _, a := range aspects {
		if include != nil && !include(a) {
			continue
		}
		switch a.Type {
		case chart.Trine, chart.Sextile:
			score += a.Weight * 0.5
		case chart.Conjunction:
			score += a.Weight * 0.3
		case chart.Square, chart.Opposition:
			score -= a.Weight * 0.3
		}
	}
	return score
}

func clampScore(s float64) float64 {
	return round(math.Min(math.Max(s, minScore), maxScore), 1)
}

// OverallScore は全アスペクトとエレメントバランスから1〜10の総合スコアを計算します。
// バランスの加点は "balanced" のみで、"well-balanced" は加点しません。
func OverallScore(aspects []entity.SynastryAspect, balance entity.ElementalBalance) float64 {
	score := accumulate(aspects, nil)
	switch balance.Classification {
	case entity.Balanced:
		score += 1
	case entity.Imbalanced:
		score -= 0.5
	}
	return clampScore(score)
}

// categoryPlanets はカテゴリごとの対象天体です。
var categoryPlanets = map[string][]chart.Planet{
	"romantic":      {chart.Venus, chart.Mars, chart.Moon},
	"communication": {chart.Mercury, chart.Sun, chart.Jupiter},
	"emotional":     {chart.Moon, chart.Venus, chart.Neptune},
	"intellectual":  {chart.Mercury, chart.Jupiter, chart.Uranus},
	"spiritual":     {chart.Neptune, chart.Jupiter, chart.Pluto},
	"values":        {chart.Venus, chart.Saturn, chart.Jupiter},
}

func categoryScore(aspects []entity.SynastryAspect, category string) float64 {
	set := categoryPlanets[category]
	return clampScore(accumulate(aspects, func(a entity.SynastryAspect) bool {
		return slices.Contains(set, a.Planet1) || slices.Contains(set, a.Planet2)
	}))
}

// CompatibilityScores はカテゴリ別スコアと総合スコアを計算します。
func CompatibilityScores(a, b chart.Chart) entity.CompatibilityScores {
	aspects := SynastryAspects(a, b)
	return scoresOf(aspects, ElementalBalance(a, b))
}

func scoresOf(aspects []entity.SynastryAspect, balance entity.ElementalBalance) entity.CompatibilityScores {
	return entity.CompatibilityScores{
		Overall:       OverallScore(aspects, balance),
		Romantic:      categoryScore(aspects, "romantic"),
		Communication: categoryScore(aspects, "communication"),
		Emotional:     categoryScore(aspects, "emotional"),
		Intellectual:  categoryScore(aspects, "intellectual"),
		Spiritual:     categoryScore(aspects, "spiritual"),
		Values:        categoryScore(aspects, "values"),
	}
}

// Composite は両方のチャートにある天体の中点からコンポジットチャートを作ります。
// 2つの黄経の差が180°を超える場合は短い弧の側の中点を使います。
func Composite(a, b chart.Chart) entity.CompositeChart {
	out := entity.CompositeChart{Planets: []entity.CompositePosition{}}
	for _, pa := range a.Planets {
		pb, ok := b.Planet(pa.Planet)
		if !ok {
			continue
		}
		la := astro.ToAbsolute(pa.Sign, pa.DegreeInSign)
		lb := astro.ToAbsolute(pb.Sign, pb.DegreeInSign)
		mid := (la + lb) / 2
		if math.Abs(la-lb) > 180 {
			mid = astro.Normalize(mid + 180)
		}
		p := astro.PointAt(mid)
		out.Planets = append(out.Planets, entity.CompositePosition{
			Planet:    pa.Planet,
			Longitude: p.Longitude,
			Sign:      p.Sign,
			Degree:    p.Degree,
			Minute:    p.Minute,
			Second:    p.Second,
		})
	}
	return out
}

// ElementalBalance は両チャートの天体をエレメント別に数え、偏りを分類します。
func ElementalBalance(a, b chart.Chart) entity.ElementalBalance {
	var e entity.ElementalBalance
	for _, c := range []chart.Chart{a, b} {
		for _, p := range c.Planets {
			switch p.Sign.Element() {
			case chart.Fire:
				e.Fire++
			case chart.Earth:
				e.Earth++
			case chart.Air:
				e.Air++
			case chart.Water:
				e.Water++
			}
		}
	}

	hi := max(e.Fire, e.Earth, e.Air, e.Water)
	lo := min(e.Fire, e.Earth, e.Air, e.Water)
	spread := float64(hi - lo)
	e.Total = e.Fire + e.Earth + e.Air + e.Water
	total := float64(e.Total)
	switch {
	case spread < total*wellBalancedRatio:
		e.Classification = entity.WellBalanced
	case spread > total*imbalancedRatio:
		e.Classification = entity.Imbalanced
	default:
		e.Classification = entity.Balanced
	}
	return e
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
