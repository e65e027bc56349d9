package analytic

import "strings"

// ayanamsaAtJ2000 is the offset between the tropical and sidereal zodiacs at
// J2000 for each supported convention, in degrees.
var ayanamsaAtJ2000 = map[string]float64{
	"lahiri":        23.857092,
	"fagan_bradley": 24.740300,
	"raman":         22.410791,
	"krishnamurti":  23.760240,
}

// Ayanamsas lists the accepted ayanamsa names.
func Ayanamsas() []string {
	return []string{"lahiri", "fagan_bradley", "raman", "krishnamurti"}
}

// Ayanamsa returns the named ayanamsa at jd. An empty name means lahiri.
// Hyphens and spaces are accepted in place of underscores.
func Ayanamsa(name string, jd float64) (float64, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if key == "" {
		key = "lahiri"
	}
	base, ok := ayanamsaAtJ2000[key]
	if !ok {
		return 0, false
	}
	return base + precession(centuries(jd)), true
}
