package astro

import (
	"math"

	"astrology_backend/internal/feature/chart/domain/entity"
)

var phaseNames = [8]string{
	"new",
	"waxing-crescent",
	"first-quarter",
	"waxing-gibbous",
	"full",
	"waning-gibbous",
	"last-quarter",
	"waning-crescent",
}

// MoonPhaseOf derives the phase from the Sun and Moon longitudes.
// Illumination keeps the historical (1+cos)/2 curve that clients already display.
func MoonPhaseOf(sunLon, moonLon float64) entity.MoonPhase {
	angle := Normalize(moonLon - sunLon)
	illumination := math.Round((1 + math.Cos(angle*math.Pi/180)) / 2 * 100)
	idx := int(angle/45) % 8
	return entity.MoonPhase{
		Name:         phaseNames[idx],
		Angle:        angle,
		Illumination: int(illumination),
	}
}
