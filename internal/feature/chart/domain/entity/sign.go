package entity

// Sign is one of the twelve 30° zodiac signs.
type Sign string

const (
	Aries       Sign = "aries"
	Taurus      Sign = "taurus"
	Gemini      Sign = "gemini"
	Cancer      Sign = "cancer"
	Leo         Sign = "leo"
	Virgo       Sign = "virgo"
	Libra       Sign = "libra"
	Scorpio     Sign = "scorpio"
	Sagittarius Sign = "sagittarius"
	Capricorn   Sign = "capricorn"
	Aquarius    Sign = "aquarius"
	Pisces      Sign = "pisces"
)

// Signs is ordered from 0° Aries.
var Signs = []Sign{Aries, Taurus, Gemini, Cancer, Leo, Virgo, Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces}

// Element groups three signs sharing a triplicity.
type Element string

const (
	Fire  Element = "fire"
	Earth Element = "earth"
	Air   Element = "air"
	Water Element = "water"
)

// Elements in display order.
var Elements = []Element{Fire, Earth, Air, Water}

// Index returns the zero-based position of s in Signs, or -1.
func (s Sign) Index() int {
	for i, x := range Signs {
		if x == s {
			return i
		}
	}
	return -1
}

// Element returns the triplicity of s. Unknown signs return "".
func (s Sign) Element() Element {
	i := s.Index()
	if i < 0 {
		return ""
	}
	return Elements[i%4]
}
