package analytic

import (
	"math"

	"astrology_backend/internal/feature/chart/domain/astro"
	"astrology_backend/internal/feature/chart/domain/entity"
)

// elements are mean orbital elements at J2000 (ecliptic and equinox of J2000)
// and their rates per Julian century. Angles in degrees, distances in AU.
type elements struct {
	a, e, i, l, peri, node                   float64
	aDot, eDot, iDot, lDot, periDot, nodeDot float64
}

// Approximate Keplerian elements valid 1800-2050 (Standish, JPL).
var (
	earthElements = elements{
		1.00000261, 0.01671123, -0.00001531, 100.46457166, 102.93768193, 0.0,
		0.00000562, -0.00004392, -0.01294668, 35999.37244981, 0.32327364, 0.0,
	}

	planetElements = map[entity.Planet]elements{
		entity.Mercury: {
			0.38709927, 0.20563593, 7.00497902, 252.25032350, 77.45779628, 48.33076593,
			0.00000037, 0.00001906, -0.00594749, 149472.67411175, 0.16047689, -0.12534081,
		},
		entity.Venus: {
			0.72333566, 0.00677672, 3.39467605, 181.97909950, 131.60246718, 76.67984255,
			0.00000390, -0.00004107, -0.00078890, 58517.81538729, 0.00268329, -0.27769418,
		},
		entity.Mars: {
			1.52371034, 0.09339410, 1.84969142, -4.55343205, -23.94362959, 49.55953891,
			0.00001847, 0.00007882, -0.00813131, 19140.30268499, 0.44441088, -0.29257343,
		},
		entity.Jupiter: {
			5.20288700, 0.04838624, 1.30439695, 34.39644051, 14.72847983, 100.47390909,
			-0.00011607, -0.00013253, -0.00183714, 3034.74612775, 0.21252668, 0.20469106,
		},
		entity.Saturn: {
			9.53667594, 0.05386179, 2.48599187, 49.95424423, 92.59887831, 113.66242448,
			-0.00125060, -0.00050991, 0.00193609, 1222.49362201, -0.41897216, -0.28867794,
		},
		entity.Uranus: {
			19.18916464, 0.04725744, 0.77263783, 313.23810451, 170.95427630, 74.01692503,
			-0.00196176, -0.00004397, -0.00242939, 428.48202785, 0.40805281, 0.04240589,
		},
		entity.Neptune: {
			30.06992276, 0.00859048, 1.77004347, -55.12002969, 44.96476227, 131.78422574,
			0.00026291, 0.00005105, 0.00035372, 218.45945325, -0.32241464, -0.00508664,
		},
		entity.Pluto: {
			39.48211675, 0.24882730, 17.14001206, 238.92903833, 224.06891629, 110.30393684,
			-0.00031596, 0.00005170, 0.00004818, 145.20780515, -0.04062942, -0.01183482,
		},
	}
)

type vec3 struct{ x, y, z float64 }

func (v vec3) sub(o vec3) vec3 { return vec3{v.x - o.x, v.y - o.y, v.z - o.z} }

// heliocentric returns the J2000 ecliptic rectangular position of an orbit at t centuries.
func (el elements) heliocentric(t float64) vec3 {
	a := el.a + el.aDot*t
	e := el.e + el.eDot*t
	inc := (el.i + el.iDot*t) * deg
	l := el.l + el.lDot*t
	peri := el.peri + el.periDot*t
	node := el.node + el.nodeDot*t

	w := (peri - node) * deg
	m := astro.Normalize(l - peri)
	if m > 180 {
		m -= 360
	}
	ecc := kepler(m*deg, e)

	xp := a * (math.Cos(ecc) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(ecc)

	cw, sw := math.Cos(w), math.Sin(w)
	cn, sn := math.Cos(node*deg), math.Sin(node*deg)
	ci, si := math.Cos(inc), math.Sin(inc)

	return vec3{
		x: (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp,
		y: (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp,
		z: (sw*si)*xp + (cw*si)*yp,
	}
}

// kepler solves Kepler's equation E - e sin E = M by Newton iteration (radians).
func kepler(m, e float64) float64 {
	ecc := m + e*math.Sin(m)
	for range 30 {
		delta := (ecc - e*math.Sin(ecc) - m) / (1 - e*math.Cos(ecc))
		ecc -= delta
		if math.Abs(delta) < 1e-12 {
			break
		}
	}
	return ecc
}

// planet returns geocentric ecliptic longitude, latitude (degrees) and
// distance (AU) for the Sun and the planets. Light time and aberration are ignored.
func planet(body entity.Planet, jd float64) (lon, lat, dist float64) {
	t := centuries(jd)
	earth := earthElements.heliocentric(t)

	var g vec3
	if body == entity.Sun {
		g = vec3{-earth.x, -earth.y, -earth.z}
	} else {
		g = planetElements[body].heliocentric(t).sub(earth)
	}

	rxy := math.Hypot(g.x, g.y)
	lon = astro.Normalize(math.Atan2(g.y, g.x)/deg + precession(t))
	lat = math.Atan2(g.z, rxy) / deg
	dist = math.Sqrt(rxy*rxy + g.z*g.z)
	return lon, lat, dist
}
