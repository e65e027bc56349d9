// Package domain defines domain-level errors for the chart feature.
package domain

import (
	"errors"
	"fmt"
)

// ErrChartNotFound indicates that no stored chart matches the given id.
var ErrChartNotFound = errors.New("chart not found")

// InvalidDateError is returned when calendar input cannot be turned into an instant.
type InvalidDateError struct {
	Input  string
	Reason string
}

func (e *InvalidDateError) Error() string {
	if e.Input == "" {
		return "invalid date: " + e.Reason
	}
	return fmt.Sprintf("invalid date %q: %s", e.Input, e.Reason)
}

// EphemerisError carries the nonzero error code reported by the ephemeris.
type EphemerisError struct {
	Code int
	Body string
}

func (e *EphemerisError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("ephemeris error code %d", e.Code)
	}
	return fmt.Sprintf("ephemeris error code %d for %s", e.Code, e.Body)
}

// InvalidHouseSystemError is returned in strict mode for an unrecognized house system.
type InvalidHouseSystemError struct {
	Value string
}

func (e *InvalidHouseSystemError) Error() string {
	return fmt.Sprintf("invalid house system %q", e.Value)
}
