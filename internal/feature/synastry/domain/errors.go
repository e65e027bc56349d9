// Package domain defines domain-level errors for the synastry feature.
package domain

import "errors"

var (
	// ErrChartIDRequired indicates that one of the compared chart ids is empty.
	ErrChartIDRequired = errors.New("both chart ids are required")
	// ErrNarratorUnavailable indicates that no narrative generator is configured.
	ErrNarratorUnavailable = errors.New("narrative generation is not configured")
)
