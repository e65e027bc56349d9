package dto

import (
	"time"

	"astrology_backend/internal/feature/chart/domain/entity"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StoredChartResponse is a persisted chart together with its id.
type StoredChartResponse struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	CreatedAt time.Time    `json:"created_at"`
	Chart     entity.Chart `json:"chart"`
}

// NewStoredChartResponse converts a repository record to its response shape.
func NewStoredChartResponse(s entity.StoredChart) StoredChartResponse {
	return StoredChartResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt, Chart: s.Chart}
}
