package astro

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astrology_backend/internal/feature/chart/domain"
)

func TestToJulianDay_J2000(t *testing.T) {
	t.Parallel()

	jd, err := ToJulianDay(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.InDelta(t, 2451545.0, jd, 1e-6)
}

func TestJulianDay_KnownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		y, mo, d, h, mi int
		want            float64
	}{
		{"unix epoch", 1970, 1, 1, 0, 0, 2440587.5},
		{"meeus 7.a sputnik", 1957, 10, 4, 19, 26, 2436116.3097222},
		{"leap day", 2024, 2, 29, 0, 0, 2460369.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			jd, err := JulianDay(tt.y, tt.mo, tt.d, tt.h, tt.mi, 0)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, jd, 1e-5)
		})
	}
}

func TestJulianDay_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		y, mo, d, h, mi int
		sec             float64
	}{
		{"month zero", 2020, 0, 1, 0, 0, 0},
		{"month thirteen", 2020, 13, 1, 0, 0, 0},
		{"feb 30", 2021, 2, 30, 0, 0, 0},
		{"feb 29 non leap", 2023, 2, 29, 0, 0, 0},
		{"hour 24", 2020, 1, 1, 24, 0, 0},
		{"minute 60", 2020, 1, 1, 0, 60, 0},
		{"nan second", 2020, 1, 1, 0, 0, math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := JulianDay(tt.y, tt.mo, tt.d, tt.h, tt.mi, tt.sec)
			var dateErr *domain.InvalidDateError
			assert.True(t, errors.As(err, &dateErr), "expected InvalidDateError, got %v", err)
		})
	}
}

func TestToJulianDay_ZeroTime(t *testing.T) {
	t.Parallel()

	_, err := ToJulianDay(time.Time{})
	var dateErr *domain.InvalidDateError
	assert.ErrorAs(t, err, &dateErr)
}

func TestFromJulianDay_RoundTrip(t *testing.T) {
	t.Parallel()

	in := time.Date(1987, 6, 19, 4, 30, 15, 0, time.UTC)
	jd, err := ToJulianDay(in)
	require.NoError(t, err)
	assert.True(t, in.Equal(FromJulianDay(jd)), "got %v", FromJulianDay(jd))
}

func TestParseInstant(t *testing.T) {
	t.Parallel()

	got, err := ParseInstant("1990-05-15", "14:30", "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 5, 15, 18, 30, 0, 0, time.UTC), got.UTC())

	got, err = ParseInstant("1990-05-15", "", "")
	require.NoError(t, err)
	assert.Equal(t, 12, got.Hour())

	got, err = ParseInstant("1990-05-15", "01:02:03", "")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Second())

	for _, in := range [][3]string{
		{"", "12:00", ""},
		{"1990-02-30", "12:00", ""},
		{"not-a-date", "12:00", ""},
		{"1990-05-15", "25:00", ""},
		{"1990-05-15", "12:00", "Mars/Olympus_Mons"},
	} {
		_, err := ParseInstant(in[0], in[1], in[2])
		var dateErr *domain.InvalidDateError
		assert.ErrorAs(t, err, &dateErr, "input %v", in)
	}
}
