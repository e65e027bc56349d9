package analytic

import (
	"math"

	"astrology_backend/internal/feature/chart/domain/astro"
	"astrology_backend/internal/feature/chart/domain/entity"
)

// maxLatitude keeps tan(lat) finite at the poles.
const maxLatitude = 89.9999

// frame holds the local sidereal quantities shared by every house system.
type frame struct {
	ramc float64 // right ascension of the MC, degrees
	eps  float64 // obliquity, degrees
	lat  float64 // geographic latitude, degrees
	asc  float64
	mc   float64
}

func newFrame(jd, lat, lon float64) frame {
	t := centuries(jd)
	lat = math.Max(-maxLatitude, math.Min(maxLatitude, lat))
	f := frame{
		ramc: astro.Normalize(siderealTime(jd, t) + lon),
		eps:  obliquity(t),
		lat:  lat,
	}
	f.mc = f.byPole(f.ramc, 0)
	f.asc = f.ascFor(f.ramc)
	return f
}

// siderealTime is Greenwich mean sidereal time in degrees (Meeus 12.4).
func siderealTime(jd, t float64) float64 {
	return astro.Normalize(280.46061837 + 360.98564736629*(jd-astro.J2000) + 0.000387933*t*t - t*t*t/38710000)
}

// ascFor is the ecliptic degree rising on the eastern horizon when the MC has right ascension ramc.
func (f frame) ascFor(ramc float64) float64 {
	r := ramc * deg
	e := f.eps * deg
	return astro.Normalize(math.Atan2(math.Cos(r), -(math.Sin(r)*math.Cos(e)+math.Tan(f.lat*deg)*math.Sin(e))) / deg)
}

// byPole intersects the ecliptic with the house circle crossing the equator
// at right ascension ra and inclined to it by a pole whose tangent is tanPole.
func (f frame) byPole(ra, tanPole float64) float64 {
	r := ra * deg
	e := f.eps * deg
	return astro.Normalize(math.Atan2(math.Sin(r), math.Cos(r)*math.Cos(e)-tanPole*math.Sin(e)) / deg)
}

// polar reports whether the MC never sets or never rises at this latitude,
// where semi-arc systems are undefined.
func (f frame) polar() bool {
	return math.Abs(f.lat) >= 90-f.eps
}

// cusps returns the twelve cusps for system. Houses 4-9 are the opposites of 10-3.
func (f frame) cusps(system entity.HouseSystem) [12]float64 {
	var upper [4]float64 // cusps 11, 12, 2, 3
	switch system {
	case entity.Placidus:
		if f.polar() {
			upper = f.porphyry()
		} else {
			upper = f.placidus()
		}
	case entity.Koch:
		if f.polar() {
			upper = f.porphyry()
		} else {
			upper = f.koch()
		}
	case entity.Topocentric:
		if f.polar() {
			upper = f.porphyry()
		} else {
			upper = f.topocentric()
		}
	case entity.Regiomontanus:
		upper = f.regiomontanus()
	case entity.Campanus:
		upper = f.campanus()
	case entity.Equal:
		return astro.EqualCusps(f.asc)
	case entity.WholeSign:
		return astro.WholeSignCusps(f.asc)
	default:
		upper = f.porphyry()
	}

	var c [12]float64
	c[0] = f.asc
	c[1] = upper[2]
	c[2] = upper[3]
	c[9] = f.mc
	c[10] = upper[0]
	c[11] = upper[1]
	for i := 3; i < 9; i++ {
		c[i] = astro.Normalize(c[(i+6)%12] + 180)
	}
	return c
}

// porphyry trisects the ecliptic arcs between the angles.
func (f frame) porphyry() [4]float64 {
	upper := astro.Normalize(f.asc - f.mc)
	lower := astro.Normalize(f.mc + 180 - f.asc)
	return [4]float64{
		astro.Normalize(f.mc + upper/3),
		astro.Normalize(f.mc + 2*upper/3),
		astro.Normalize(f.asc + lower/3),
		astro.Normalize(f.asc + 2*lower/3),
	}
}

// regiomontanus divides the celestial equator into equal 30 degree arcs.
func (f frame) regiomontanus() [4]float64 {
	var out [4]float64
	for i, h := range [4]float64{30, 60, 120, 150} {
		out[i] = f.byPole(f.ramc+h, math.Tan(f.lat*deg)*math.Sin(h*deg))
	}
	return out
}

// campanus divides the prime vertical into equal arcs and maps each
// division onto the equator before intersecting with the ecliptic.
func (f frame) campanus() [4]float64 {
	var out [4]float64
	cl := math.Cos(f.lat * deg)
	for i, k := range [4]float64{30, 60, 120, 150} {
		h := math.Atan2(math.Sin(k*deg)*cl, math.Cos(k*deg)) / deg
		out[i] = f.byPole(f.ramc+h, math.Tan(f.lat*deg)*math.Sin(h*deg))
	}
	return out
}

// topocentric uses the Polich-Page poles tan(lat)/3 and 2 tan(lat)/3.
func (f frame) topocentric() [4]float64 {
	tl := math.Tan(f.lat * deg)
	return [4]float64{
		f.byPole(f.ramc+30, tl/3),
		f.byPole(f.ramc+60, 2*tl/3),
		f.byPole(f.ramc+120, 2*tl/3),
		f.byPole(f.ramc+150, tl/3),
	}
}

// koch trisects the semi-arc of the MC degree and takes the Ascendant at each division.
func (f frame) koch() [4]float64 {
	decl := math.Asin(math.Sin(f.eps*deg) * math.Sin(f.mc*deg))
	ad := math.Asin(clamp(math.Tan(f.lat*deg)*math.Tan(decl))) / deg
	third := (90 + ad) / 3
	return [4]float64{
		f.ascFor(f.ramc - 2*third),
		f.ascFor(f.ramc - third),
		f.ascFor(f.ramc + third),
		f.ascFor(f.ramc + 2*third),
	}
}

// placidus trisects each cusp's own diurnal or nocturnal semi-arc, iterating
// because the semi-arc depends on the declination of the cusp being sought.
func (f frame) placidus() [4]float64 {
	type division struct {
		fraction float64
		diurnal  bool
	}
	divisions := [4]division{{1.0 / 3, true}, {2.0 / 3, true}, {2.0 / 3, false}, {1.0 / 3, false}}

	tl := math.Tan(f.lat * deg)
	var out [4]float64
	for i, d := range divisions {
		ra := f.ramc + 90*d.fraction
		if !d.diurnal {
			ra = f.ramc + 180 - 90*d.fraction
		}
		for range 50 {
			lon := f.byPole(ra, 0)
			decl := math.Asin(math.Sin(f.eps*deg) * math.Sin(lon*deg))
			ad := math.Asin(clamp(tl*math.Tan(decl))) / deg
			next := f.ramc + (90+ad)*d.fraction
			if !d.diurnal {
				next = f.ramc + 180 - (90-ad)*d.fraction
			}
			if math.Abs(next-ra) < 1e-9 {
				ra = next
				break
			}
			ra = next
		}
		out[i] = f.byPole(ra, 0)
	}
	return out
}

func clamp(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
