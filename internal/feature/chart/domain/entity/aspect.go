package entity

// AspectType names an angular relationship between two bodies.
type AspectType string

const (
	Conjunction AspectType = "conjunction"
	Opposition  AspectType = "opposition"
	Trine       AspectType = "trine"
	Square      AspectType = "square"
	Sextile     AspectType = "sextile"
	Quincunx    AspectType = "quincunx"
	SemiSextile AspectType = "semi-sextile"
)

// Aspect is the relationship found between two planets.
// Orb is the absolute deviation from the exact angle.
type Aspect struct {
	Planet1  Planet     `json:"planet1"`
	Planet2  Planet     `json:"planet2"`
	Type     AspectType `json:"type"`
	Orb      float64    `json:"orb"`
	Applying bool       `json:"applying"`
}
