// Package dto defines data transfer objects for the remote ephemeris API responses.
package dto

// PositionResponse represents the JSON response from the positions endpoint.
type PositionResponse struct {
	Status    string  `json:"status"`
	Message   string  `json:"message,omitempty"`
	Body      string  `json:"body"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Distance  float64 `json:"distance"`
	Speed     float64 `json:"speed"`
	ErrorCode int     `json:"error_code"`
}

// HousesResponse represents the JSON response from the houses endpoint.
type HousesResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	System    string    `json:"system"`
	Cusps     []float64 `json:"cusps"`
	Ascendant float64   `json:"ascendant"`
	MC        float64   `json:"mc"`
	ErrorCode int       `json:"error_code"`
}
