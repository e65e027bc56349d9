// Package astro holds the pure calculations behind a chart: angle arithmetic,
// Julian day conversion, aspect detection, house arithmetic and moon phases.
// Nothing here performs I/O; every function is safe for concurrent use.
package astro

import (
	"math"

	"astrology_backend/internal/feature/chart/domain/entity"
)

// Normalize folds deg into [0, 360). It never returns -0 or 360.
func Normalize(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	// -1e-15 + 360 rounds to 360.
	if r >= 360 || r == 0 {
		return 0
	}
	return r
}

// AngularDistance is the shorter arc between a and b, in [0, 180].
func AngularDistance(a, b float64) float64 {
	d := math.Abs(Normalize(a) - Normalize(b))
	if d > 180 {
		return 360 - d
	}
	return d
}

// SignedDelta returns how far b lies ahead of a along the zodiac, in (-180, 180].
func SignedDelta(a, b float64) float64 {
	d := Normalize(b - a)
	if d > 180 {
		return d - 360
	}
	return d
}

// SignOf maps a longitude to its zodiac sign.
func SignOf(lon float64) entity.Sign {
	i := int(math.Floor(Normalize(lon)/30)) % 12
	return entity.Signs[i]
}

// DegreeInSign is the offset of lon from the start of its sign, in [0, 30).
func DegreeInSign(lon float64) float64 {
	return math.Mod(Normalize(lon), 30)
}

// SplitDMS splits a non-negative angle into whole degrees, minutes and seconds.
func SplitDMS(deg float64) (d, m, s int) {
	deg = math.Abs(deg)
	whole := math.Floor(deg)
	minutes := (deg - whole) * 60
	wholeMin := math.Floor(minutes)
	seconds := math.Floor((minutes - wholeMin) * 60)
	return int(whole), int(wholeMin), int(seconds)
}

// ToAbsolute converts a sign and an offset inside it back to an ecliptic longitude.
func ToAbsolute(sign entity.Sign, degreeInSign float64) float64 {
	i := sign.Index()
	if i < 0 {
		i = 0
	}
	return Normalize(float64(i)*30 + degreeInSign)
}

// PointAt describes lon as a chart point with sign and degree/minute/second.
func PointAt(lon float64) entity.Point {
	lon = Normalize(lon)
	d, m, s := SplitDMS(DegreeInSign(lon))
	return entity.Point{Longitude: lon, Sign: SignOf(lon), Degree: d, Minute: m, Second: s}
}
