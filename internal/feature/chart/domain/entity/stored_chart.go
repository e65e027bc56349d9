package entity

import "time"

// StoredChart is a calculated chart saved under an id so it can be compared later.
type StoredChart struct {
	ID        string    // UUID assigned by the repository
	Name      string    // Label chosen by the caller (e.g. a person's name)
	Chart     Chart     // The calculated chart
	CreatedAt time.Time // Time the chart was saved
}
