package config

import (
	"log/slog"
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: Remote API connection
//   - storage.go: Credential storage backends
//   - devapi.go: Local in-memory API server
type AppConfig struct {
	// IsDev controls development mode behavior (text logs, debug level).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	API     APIConfig
	Storage StorageConfig
	Redis   RedisConfig `envPrefix:"REDIS_"`

	// Participants configures which users are offered as event participants.
	Participants ParticipantsConfig

	DevAPI DevAPIConfig `envPrefix:"DEV_API_"`
}

// ParticipantsConfig controls the participant directory.
type ParticipantsConfig struct {
	// Filter is a JMESPath expression applied to the user list.
	Filter string `env:"PARTICIPANT_FILTER" envDefault:"[?role=='Participant']"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Storage.Sanitize()
	c.DevAPI.Sanitize()

	c.Participants.Filter = strings.TrimSpace(c.Participants.Filter)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// SlogLevel maps LogLevel onto slog, defaulting to info (debug in dev mode).
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	}
	if c.IsDev {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
