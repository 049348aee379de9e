package config

import (
	"strings"
	"time"
)

// DevAPIConfig controls the local in-memory API server (`eventdesk dev-server`).
type DevAPIConfig struct {
	Addr     string        `env:"ADDR"      envDefault:":8800"`
	Secret   string        `env:"SECRET"    envDefault:"eventdesk-dev-secret"`
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"1h"`

	// Seed loads demo users and events at startup.
	Seed bool `env:"SEED" envDefault:"true"`
}

// Sanitize applies guardrails to dev API values.
func (d *DevAPIConfig) Sanitize() {
	d.Addr = strings.TrimSpace(d.Addr)
	if d.Addr == "" {
		d.Addr = ":8800"
	}
	if d.TokenTTL <= 0 {
		d.TokenTTL = time.Hour
	}
}
