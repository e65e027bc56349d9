package analytic

import (
	"math"

	"astrology_backend/internal/feature/chart/domain/astro"
)

// lunarTerm is one periodic term of the lunar theory: multiples of the
// fundamental arguments D, M, M', F and the amplitudes in 1e-6 degrees
// (longitude or latitude) and 1e-3 km (distance).
type lunarTerm struct {
	d, m, mp, f int
	sin, cos    float64
}

// Main terms of Meeus, Astronomical Algorithms, tables 47.A and 47.B.
var (
	lunarLongitude = []lunarTerm{
		{0, 0, 1, 0, 6288774, -20905355},
		{2, 0, -1, 0, 1274027, -3699111},
		{2, 0, 0, 0, 658314, -2955968},
		{0, 0, 2, 0, 213618, -569925},
		{0, 1, 0, 0, -185116, 48888},
		{0, 0, 0, 2, -114332, -3149},
		{2, 0, -2, 0, 58793, 246158},
		{2, -1, -1, 0, 57066, -152138},
		{2, 0, 1, 0, 53322, -170733},
		{2, -1, 0, 0, 45758, -204586},
		{0, 1, -1, 0, -40923, -129620},
		{1, 0, 0, 0, -34720, 108743},
		{0, 1, 1, 0, -30383, 104755},
		{2, 0, 0, -2, 15327, 10321},
		{0, 0, 1, 2, -12528, 0},
		{0, 0, 1, -2, 10980, 79661},
		{4, 0, -1, 0, 10675, -34782},
		{0, 0, 3, 0, 10034, -23210},
		{4, 0, -2, 0, 8548, -21636},
		{2, 1, -1, 0, -7888, 24208},
		{2, 1, 0, 0, -6766, 30824},
		{1, 0, -1, 0, -5163, -8379},
		{1, 1, 0, 0, 4987, -16675},
		{2, -1, 1, 0, 4036, -12831},
		{2, 0, 2, 0, 3994, -10445},
		{4, 0, 0, 0, 3861, -11650},
		{2, 0, -3, 0, 3665, 14403},
		{0, 1, -2, 0, -2689, -7003},
		{2, 0, -1, 2, -2602, 0},
		{2, -1, -2, 0, 2390, 10056},
		{1, 0, 1, 0, -2348, 6322},
		{2, -2, 0, 0, 2236, -9884},
	}

	lunarLatitude = []lunarTerm{
		{0, 0, 0, 1, 5128122, 0},
		{0, 0, 1, 1, 280602, 0},
		{0, 0, 1, -1, 277693, 0},
		{2, 0, 0, -1, 173237, 0},
		{2, 0, -1, 1, 55413, 0},
		{2, 0, -1, -1, 46271, 0},
		{2, 0, 0, 1, 32573, 0},
		{0, 0, 2, 1, 17198, 0},
		{2, 0, 1, -1, 9266, 0},
		{0, 0, 2, -1, 8822, 0},
		{2, -1, 0, -1, 8216, 0},
		{2, 0, -2, -1, 4324, 0},
		{2, 0, 1, 1, 4200, 0},
		{2, 1, 0, -1, -3359, 0},
		{2, -1, -1, 1, 2463, 0},
	}
)

// kmPerAU converts lunar distances to astronomical units.
const kmPerAU = 149597870.7

// moon returns the geocentric ecliptic longitude and latitude of the Moon
// (mean equinox of date, degrees) and its distance in AU.
func moon(jd float64) (lon, lat, dist float64) {
	t := centuries(jd)

	lp := 218.3164477 + 481267.88123421*t - 0.0015786*t*t
	d := 297.8501921 + 445267.1114034*t - 0.0018819*t*t
	m := 357.5291092 + 35999.0502909*t - 0.0001536*t*t
	mp := 134.9633964 + 477198.8675055*t + 0.0087414*t*t
	f := 93.2720950 + 483202.0175233*t - 0.0036539*t*t
	// Eccentricity of Earth's orbit scales terms containing M.
	e := 1 - 0.002516*t - 0.0000074*t*t

	a1 := 119.75 + 131.849*t
	a2 := 53.09 + 479264.290*t
	a3 := 313.45 + 481266.484*t

	var sl, sr, sb float64
	for _, term := range lunarLongitude {
		arg := (float64(term.d)*d + float64(term.m)*m + float64(term.mp)*mp + float64(term.f)*f) * deg
		k := eccFactor(term.m, e)
		sl += term.sin * k * math.Sin(arg)
		sr += term.cos * k * math.Cos(arg)
	}
	for _, term := range lunarLatitude {
		arg := (float64(term.d)*d + float64(term.m)*m + float64(term.mp)*mp + float64(term.f)*f) * deg
		sb += term.sin * eccFactor(term.m, e) * math.Sin(arg)
	}

	sl += 3958*sin(a1) + 1962*sin(lp-f) + 318*sin(a2)
	sb += -2235*sin(lp) + 382*sin(a3) + 175*sin(a1-f) + 175*sin(a1+f) + 127*sin(lp-mp) - 115*sin(lp+mp)

	lon = astro.Normalize(lp + sl/1e6)
	lat = sb / 1e6
	dist = (385000.56 + sr/1000) / kmPerAU
	return lon, lat, dist
}

func eccFactor(m int, e float64) float64 {
	switch m {
	case 1, -1:
		return e
	case 2, -2:
		return e * e
	}
	return 1
}

func sin(d float64) float64 { return math.Sin(d * deg) }
