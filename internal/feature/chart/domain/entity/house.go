package entity

// HouseSystem selects how the twelve house cusps are divided.
type HouseSystem string

const (
	Placidus      HouseSystem = "placidus"
	Koch          HouseSystem = "koch"
	Porphyry      HouseSystem = "porphyry"
	Equal         HouseSystem = "equal"
	WholeSign     HouseSystem = "whole"
	Campanus      HouseSystem = "campanus"
	Regiomontanus HouseSystem = "regiomontanus"
	Topocentric   HouseSystem = "topocentric"
)

// HouseSystems lists every accepted identifier.
var HouseSystems = []HouseSystem{Placidus, Koch, Porphyry, Equal, WholeSign, Campanus, Regiomontanus, Topocentric}

var houseSystemCodes = map[HouseSystem]byte{
	Placidus:      'P',
	Koch:          'K',
	Porphyry:      'O',
	Equal:         'E',
	WholeSign:     'W',
	Campanus:      'C',
	Regiomontanus: 'R',
	Topocentric:   'T',
}

// Code returns the single-letter code ephemeris engines use for the system.
func (h HouseSystem) Code() byte {
	if c, ok := houseSystemCodes[h]; ok {
		return c
	}
	return houseSystemCodes[Placidus]
}

// HouseSystemFromCode is the inverse of Code.
func HouseSystemFromCode(c byte) (HouseSystem, bool) {
	for h, code := range houseSystemCodes {
		if code == c {
			return h, true
		}
	}
	return "", false
}

// Valid reports whether h is a known house system.
func (h HouseSystem) Valid() bool {
	_, ok := houseSystemCodes[h]
	return ok
}

// HouseCusp is the starting longitude of one house.
type HouseCusp struct {
	House     int     `json:"house"`
	Longitude float64 `json:"longitude"`
	Sign      Sign    `json:"sign"`
	Degree    int     `json:"degree"`
	Minute    int     `json:"minute"`
	Second    int     `json:"second"`
}

// ZodiacType selects the reference frame for longitudes.
type ZodiacType string

const (
	Tropical ZodiacType = "tropical"
	Sidereal ZodiacType = "sidereal"
)

// Location is a geographic observer position in degrees (east and north positive).
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
