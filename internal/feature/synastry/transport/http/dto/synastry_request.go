// Package dto defines data transfer objects for the synastry feature's HTTP transport layer.
package dto

// CompareRequest represents the request body for POST /synastry and POST /synastry/narrative.
type CompareRequest struct {
	ChartA string `json:"chart_a" binding:"required"`
	ChartB string `json:"chart_b" binding:"required"`
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
