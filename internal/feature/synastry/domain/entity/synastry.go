// Package entity holds the value types produced when two charts are compared.
package entity

import (
	chart "astrology_backend/internal/feature/chart/domain/entity"
)

// SynastryAspect is an aspect between a planet of the first chart (Planet1)
// and a planet of the second chart (Planet2).
type SynastryAspect struct {
	Planet1  chart.Planet     `json:"planet1"`
	Planet2  chart.Planet     `json:"planet2"`
	Type     chart.AspectType `json:"type"`
	Orb      float64          `json:"orb"`
	Applying bool             `json:"applying"`
	// Weight is the interpretive strength in [0, 5], rounded to two decimals.
	Weight  float64 `json:"weight"`
	Notable bool    `json:"notable"`
}

// CompositePosition is the midpoint of one planet across two charts.
type CompositePosition struct {
	Planet    chart.Planet `json:"planet"`
	Longitude float64      `json:"longitude"`
	Sign      chart.Sign   `json:"sign"`
	Degree    int          `json:"degree"`
	Minute    int          `json:"minute"`
	Second    int          `json:"second"`
}

// CompositeChart lists the midpoints of every planet present in both charts.
type CompositeChart struct {
	Planets []CompositePosition `json:"planets"`
}

// Planet looks up one composite position.
func (c CompositeChart) Planet(p chart.Planet) (CompositePosition, bool) {
	for _, pos := range c.Planets {
		if pos.Planet == p {
			return pos, true
		}
	}
	return CompositePosition{}, false
}

// BalanceLevel classifies how evenly planets spread over the four elements.
type BalanceLevel string

const (
	WellBalanced BalanceLevel = "well-balanced"
	Balanced     BalanceLevel = "balanced"
	Imbalanced   BalanceLevel = "imbalanced"
)

// ElementalBalance counts the planets of both charts per element.
type ElementalBalance struct {
	Fire           int          `json:"fire"`
	Earth          int          `json:"earth"`
	Air            int          `json:"air"`
	Water          int          `json:"water"`
	Total          int          `json:"total"`
	Classification BalanceLevel `json:"classification"`
}

// Count returns the tally for one element.
func (e ElementalBalance) Count(el chart.Element) int {
	switch el {
	case chart.Fire:
		return e.Fire
	case chart.Earth:
		return e.Earth
	case chart.Air:
		return e.Air
	case chart.Water:
		return e.Water
	}
	return 0
}

// CompatibilityScores are 1–10 scores with one decimal.
// Overall is computed over every aspect and is not an average of the categories.
type CompatibilityScores struct {
	Overall       float64 `json:"overall"`
	Romantic      float64 `json:"romantic"`
	Communication float64 `json:"communication"`
	Emotional     float64 `json:"emotional"`
	Intellectual  float64 `json:"intellectual"`
	Spiritual     float64 `json:"spiritual"`
	Values        float64 `json:"values"`
}

// Report is the full comparison of two charts.
type Report struct {
	Aspects    []SynastryAspect    `json:"aspects"`
	Scores     CompatibilityScores `json:"scores"`
	Composite  CompositeChart      `json:"composite"`
	Elements   ElementalBalance    `json:"elements"`
	Strengths  []string            `json:"strengths"`
	Challenges []string            `json:"challenges"`
	Advice     []string            `json:"advice"`
	Theme      string              `json:"theme"`
}

// ChartRef identifies one side of a comparison.
type ChartRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Comparison is a report built from two stored charts.
type Comparison struct {
	ChartA ChartRef `json:"chart_a"`
	ChartB ChartRef `json:"chart_b"`
	Report Report   `json:"report"`
}

// Narrative is a comparison with a free-text reading generated from it.
type Narrative struct {
	Comparison
	Text string `json:"text"`
}
