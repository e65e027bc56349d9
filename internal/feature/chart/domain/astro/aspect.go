package astro

import (
	"math"

	"astrology_backend/internal/feature/chart/domain/entity"
)

// AspectDef pairs an aspect with its exact angle and default orb.
type AspectDef struct {
	Type  entity.AspectType
	Angle float64
	Orb   float64
}

// ChartOrbs is the table used inside a single chart. Order matters: the first
// type within orb wins, so conjunction and opposition shadow narrower aspects.
var ChartOrbs = []AspectDef{
	{entity.Conjunction, 0, 10},
	{entity.Opposition, 180, 8},
	{entity.Trine, 120, 8},
	{entity.Square, 90, 8},
	{entity.Sextile, 60, 6},
	{entity.Quincunx, 150, 3},
	{entity.SemiSextile, 30, 3},
}

// SynastryOrbs is the table used between two charts.
var SynastryOrbs = []AspectDef{
	{entity.Conjunction, 0, 10},
	{entity.Opposition, 180, 8},
	{entity.Trine, 120, 8},
	{entity.Square, 90, 8},
	{entity.Sextile, 60, 6},
	{entity.Quincunx, 150, 3},
	{entity.SemiSextile, 30, 3},
}

// Match is the result of comparing two longitudes.
type Match struct {
	Type     entity.AspectType
	Orb      float64
	Applying bool
}

// DetectAspect finds the first aspect in ChartOrbs order whose deviation is
// within orb, using orb as the ceiling for every type.
func DetectAspect(lon1, lon2, orb float64) (Match, bool) {
	return detect(lon1, lon2, ChartOrbs, func(AspectDef) float64 { return orb })
}

// DetectAspectWithTable is DetectAspect with each type's own default orb.
func DetectAspectWithTable(lon1, lon2 float64, table []AspectDef) (Match, bool) {
	return detect(lon1, lon2, table, func(d AspectDef) float64 { return d.Orb })
}

func detect(lon1, lon2 float64, table []AspectDef, orbOf func(AspectDef) float64) (Match, bool) {
	distance := AngularDistance(lon1, lon2)
	for _, def := range table {
		diff := math.Abs(distance - def.Angle)
		if diff <= orbOf(def) {
			// Applying is approximated from longitude order, not relative speed.
			return Match{Type: def.Type, Orb: diff, Applying: lon1 < lon2}, true
		}
	}
	return Match{}, false
}

// ChartAspects evaluates every unordered pair of positions and keeps at most
// one aspect per pair, in input order.
func ChartAspects(positions []entity.PlanetPosition) []entity.Aspect {
	out := []entity.Aspect{}
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			p1, p2 := positions[i], positions[j]
			m, ok := DetectAspectWithTable(p1.Longitude, p2.Longitude, ChartOrbs)
			if !ok {
				continue
			}
			out = append(out, entity.Aspect{
				Planet1:  p1.Planet,
				Planet2:  p2.Planet,
				Type:     m.Type,
				Orb:      m.Orb,
				Applying: m.Applying,
			})
		}
	}
	return out
}
