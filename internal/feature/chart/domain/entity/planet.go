// Package entity defines the domain models for the chart feature.
package entity

// Planet identifies one of the ten bodies every chart carries.
type Planet string

const (
	Sun     Planet = "sun"
	Moon    Planet = "moon"
	Mercury Planet = "mercury"
	Venus   Planet = "venus"
	Mars    Planet = "mars"
	Jupiter Planet = "jupiter"
	Saturn  Planet = "saturn"
	Uranus  Planet = "uranus"
	Neptune Planet = "neptune"
	Pluto   Planet = "pluto"
)

// Planets is the fixed set of bodies in chart order.
var Planets = []Planet{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}

// BodyID returns the ephemeris body number (sun=0 … pluto=9), or -1 for an unknown planet.
func (p Planet) BodyID() int {
	for i, x := range Planets {
		if x == p {
			return i
		}
	}
	return -1
}

// Valid reports whether p is one of Planets.
func (p Planet) Valid() bool {
	return p.BodyID() >= 0
}

// IsPersonal reports whether p is one of the fast personal planets.
func (p Planet) IsPersonal() bool {
	switch p {
	case Sun, Moon, Mercury, Venus, Mars:
		return true
	}
	return false
}
