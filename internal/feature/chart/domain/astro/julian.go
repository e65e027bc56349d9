package astro

import (
	"fmt"
	"math"
	"strings"
	"time"
	_ "time/tzdata"

	"astrology_backend/internal/feature/chart/domain"
)

const (
	// J2000 is the Julian day of 2000-01-01T12:00:00 TT, the standard epoch.
	J2000 = 2451545.0
	// unixEpochJD is the Julian day of 1970-01-01T00:00:00Z.
	unixEpochJD   = 2440587.5
	secondsPerDay = 86400.0
)

// JulianDay converts a Gregorian calendar date and UTC time of day to a Julian day
// (Meeus, Astronomical Algorithms ch. 7). Invalid calendar values yield *domain.InvalidDateError.
func JulianDay(year, month, day, hour, minute int, second float64) (float64, error) {
	input := fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%06.3f", year, month, day, hour, minute, second)
	switch {
	case math.IsNaN(second) || math.IsInf(second, 0):
		return 0, &domain.InvalidDateError{Input: input, Reason: "second is not a number"}
	case month < 1 || month > 12:
		return 0, &domain.InvalidDateError{Input: input, Reason: "month out of range"}
	case day < 1 || day > daysIn(year, month):
		return 0, &domain.InvalidDateError{Input: input, Reason: "day out of range"}
	case hour < 0 || hour > 23:
		return 0, &domain.InvalidDateError{Input: input, Reason: "hour out of range"}
	case minute < 0 || minute > 59:
		return 0, &domain.InvalidDateError{Input: input, Reason: "minute out of range"}
	case second < 0 || second >= 60:
		return 0, &domain.InvalidDateError{Input: input, Reason: "second out of range"}
	}

	y, m := float64(year), float64(month)
	if month <= 2 {
		y--
		m += 12
	}
	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)
	d := float64(day) + (float64(hour)+float64(minute)/60+second/3600)/24

	return math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + d + b - 1524.5, nil
}

// ToJulianDay converts t (in any zone) to a Julian day.
func ToJulianDay(t time.Time) (float64, error) {
	if t.IsZero() {
		return 0, &domain.InvalidDateError{Reason: "zero time"}
	}
	u := t.UTC()
	sec := float64(u.Second()) + float64(u.Nanosecond())/1e9
	return JulianDay(u.Year(), int(u.Month()), u.Day(), u.Hour(), u.Minute(), sec)
}

// FromJulianDay converts a Julian day back to a UTC instant, rounded to the millisecond.
func FromJulianDay(jd float64) time.Time {
	ms := math.Round((jd - unixEpochJD) * secondsPerDay * 1000)
	return time.UnixMilli(int64(ms)).UTC()
}

// ParseInstant reads a local calendar date ("2006-01-02"), clock time ("15:04" or
// "15:04:05") and IANA zone name. An empty zone means UTC; an empty clock means noon.
func ParseInstant(date, clock, zone string) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" {
		return time.Time{}, &domain.InvalidDateError{Reason: "date is required"}
	}
	if clock == "" {
		clock = "12:00"
	}

	loc := time.UTC
	if zone != "" {
		l, err := time.LoadLocation(zone)
		if err != nil {
			return time.Time{}, &domain.InvalidDateError{Input: zone, Reason: "unknown time zone"}
		}
		loc = l
	}

	layout := "2006-01-02 15:04"
	if strings.Count(clock, ":") == 2 {
		layout = "2006-01-02 15:04:05"
	}
	t, err := time.ParseInLocation(layout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, &domain.InvalidDateError{Input: date + " " + clock, Reason: err.Error()}
	}
	return t, nil
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
