package astro

import (
	"math"

	"astrology_backend/internal/feature/chart/domain/entity"
)

// WholeSignCusps places house 1 at 0° of the Ascendant's sign and each
// following house one sign later.
func WholeSignCusps(ascendant float64) [12]float64 {
	var cusps [12]float64
	start := math.Floor(Normalize(ascendant)/30) * 30
	for i := range cusps {
		cusps[i] = Normalize(start + 30*float64(i))
	}
	return cusps
}

// EqualCusps places house N at ascendant + 30°·(N-1).
func EqualCusps(ascendant float64) [12]float64 {
	var cusps [12]float64
	for i := range cusps {
		cusps[i] = Normalize(ascendant + 30*float64(i))
	}
	return cusps
}

// Cusps turns raw cusp longitudes into numbered house cusps.
func Cusps(raw [12]float64) []entity.HouseCusp {
	out := make([]entity.HouseCusp, 0, 12)
	for i, lon := range raw {
		p := PointAt(lon)
		out = append(out, entity.HouseCusp{
			House:     i + 1,
			Longitude: p.Longitude,
			Sign:      p.Sign,
			Degree:    p.Degree,
			Minute:    p.Minute,
			Second:    p.Second,
		})
	}
	return out
}

// AssignHouse returns the house whose [cusp, next cusp) arc contains lon,
// wrapping from house 12 to house 1. Degenerate cusps fall back to 12.
func AssignHouse(lon float64, cusps []entity.HouseCusp) int {
	if len(cusps) != 12 {
		return 12
	}
	lon = Normalize(lon)
	for i := 0; i < 12; i++ {
		start := cusps[i].Longitude
		end := cusps[(i+1)%12].Longitude
		if start <= end {
			if lon >= start && lon < end {
				return cusps[i].House
			}
			continue
		}
		if lon >= start || lon < end {
			return cusps[i].House
		}
	}
	return 12
}
