package entity

import "time"

// PlanetPosition is one body's place on the ecliptic at one instant.
// House is zero until the chart assigns it through WithHouse.
type PlanetPosition struct {
	Planet       Planet  `json:"planet"`
	Longitude    float64 `json:"longitude"`
	Latitude     float64 `json:"latitude"`
	Speed        float64 `json:"speed"`
	Sign         Sign    `json:"sign"`
	DegreeInSign float64 `json:"degree_in_sign"`
	Degree       int     `json:"degree"`
	Minute       int     `json:"minute"`
	Second       int     `json:"second"`
	House        int     `json:"house"`
	Retrograde   bool    `json:"retrograde"`
}

// WithHouse returns a copy of p placed in house n.
func (p PlanetPosition) WithHouse(n int) PlanetPosition {
	p.House = n
	return p
}

// Point is a sensitive chart point such as the Ascendant or Midheaven.
type Point struct {
	Longitude float64 `json:"longitude"`
	Sign      Sign    `json:"sign"`
	Degree    int     `json:"degree"`
	Minute    int     `json:"minute"`
	Second    int     `json:"second"`
}

// MoonPhase describes the Sun–Moon elongation.
type MoonPhase struct {
	Name         string  `json:"name"`
	Angle        float64 `json:"angle"`
	Illumination int     `json:"illumination"`
}

// Chart is a fully calculated horoscope. Build it with NewChart and treat it as read-only.
type Chart struct {
	Instant     time.Time        `json:"instant"`
	JulianDay   float64          `json:"julian_day"`
	Location    Location         `json:"location"`
	HouseSystem HouseSystem      `json:"house_system"`
	Zodiac      ZodiacType       `json:"zodiac"`
	Planets     []PlanetPosition `json:"planets"`
	Houses      []HouseCusp      `json:"houses"`
	Ascendant   Point            `json:"ascendant"`
	Midheaven   Point            `json:"midheaven"`
	MoonPhase   MoonPhase        `json:"moon_phase"`
	Aspects     []Aspect         `json:"aspects"`
}

// ChartParts groups the independently calculated pieces of a chart.
type ChartParts struct {
	Instant     time.Time
	JulianDay   float64
	Location    Location
	HouseSystem HouseSystem
	Zodiac      ZodiacType
	Planets     []PlanetPosition
	Houses      []HouseCusp
	Ascendant   Point
	Midheaven   Point
	MoonPhase   MoonPhase
	Aspects     []Aspect
}

// NewChart copies the parts so the resulting chart shares no slices with the caller.
func NewChart(p ChartParts) Chart {
	return Chart{
		Instant:     p.Instant,
		JulianDay:   p.JulianDay,
		Location:    p.Location,
		HouseSystem: p.HouseSystem,
		Zodiac:      p.Zodiac,
		Planets:     append([]PlanetPosition(nil), p.Planets...),
		Houses:      append([]HouseCusp(nil), p.Houses...),
		Ascendant:   p.Ascendant,
		Midheaven:   p.Midheaven,
		MoonPhase:   p.MoonPhase,
		Aspects:     append([]Aspect{}, p.Aspects...),
	}
}

// Planet looks up the position of one body.
func (c Chart) Planet(p Planet) (PlanetPosition, bool) {
	for _, pos := range c.Planets {
		if pos.Planet == p {
			return pos, true
		}
	}
	return PlanetPosition{}, false
}

// ReturnStatus tells whether a return search met its tolerance.
type ReturnStatus string

const (
	// Converged means the body was within tolerance of the target longitude.
	Converged ReturnStatus = "converged"
	// BestEffort means the iteration budget ran out; the instant is the last midpoint.
	BestEffort ReturnStatus = "best-effort"
)

// Return is a solar or lunar return: the instant a body comes back to its natal longitude.
type Return struct {
	Body       Planet       `json:"body"`
	Target     float64      `json:"target_longitude"`
	JulianDay  float64      `json:"julian_day"`
	Instant    time.Time    `json:"instant"`
	Status     ReturnStatus `json:"status"`
	Iterations int          `json:"iterations"`
	Chart      Chart        `json:"chart"`
}
