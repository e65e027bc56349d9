// Package ephemerisapi provides a client for a remote ephemeris HTTP service.
package ephemerisapi

import (
	"time"

	"astrology_backend/internal/platform/config"
)

// Config holds configuration for the remote ephemeris client.
type Config struct {
	APIKey  string        // API key sent as the apikey query parameter
	BaseURL string        // Base URL for the API (e.g., "https://ephemeris.example.com")
	Timeout time.Duration // HTTP request timeout
}

// NewConfig builds the client configuration from the ephemeris section.
// A zero timeout defaults to 10 seconds.
func NewConfig(c config.EphemerisConfig) Config {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return Config{
		APIKey:  c.APIKey,
		BaseURL: c.BaseURL,
		Timeout: timeout,
	}
}
