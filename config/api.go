package config

import (
	"strings"
	"time"
)

const (
	minAPITimeout = time.Second
	maxAPITimeout = 2 * time.Minute
)

// APIConfig contains the remote API connection settings.
type APIConfig struct {
	// BaseURL is the origin serving /api/... (e.g., "https://events.example.com").
	BaseURL string `env:"EVENTDESK_API_BASE_URL" envDefault:"http://localhost:8800"`

	// Timeout bounds every request; expiry surfaces as a network error.
	Timeout time.Duration `env:"EVENTDESK_API_TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if a.Timeout < minAPITimeout {
		a.Timeout = minAPITimeout
	}
	if a.Timeout > maxAPITimeout {
		a.Timeout = maxAPITimeout
	}
}
