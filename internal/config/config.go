// Package config provides centralized configuration for the ingest job.
// Settings load from environment variables with defaults and are
// validated on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Database   DatabaseConfig
	RaceResult RaceResultConfig
	Server     ServerConfig
	Logging    LoggingConfig
}

// DatabaseConfig holds destination database settings.
//
// The connection can be given three ways, in precedence order: a full
// URL, a JSON secret blob (the shape the deployment's secret store
// hands out), or discrete fields. See DSN().
type DatabaseConfig struct {
	// URL is a complete PostgreSQL connection string
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// SecretJSON is a JSON object with host, port, dbname, username and
	// password, as delivered by the secrets collaborator
	SecretJSON string `env:"DB_SECRET_JSON"`

	Host     string `env:"DB_HOST"`
	Port     int    `env:"DB_PORT"`
	Name     string `env:"DB_NAME"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`

	// MaxConns is the maximum number of pooled connections (default: 4;
	// a run uses one transaction)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of connections to keep open (default: 0)
	MinConns int `env:"DB_MIN_CONNS" default:"0"`
}

// RaceResultConfig holds upstream API settings.
type RaceResultConfig struct {
	// EventID is the raceresult event whose registration data is ingested
	EventID string `env:"RACERESULT_EVENT_ID" default:"307885"`

	// BaseURL is the publishing API root
	BaseURL string `env:"RACERESULT_BASE_URL" default:"https://my.raceresult.com"`

	// StartListName is the list holding starting-list athletes
	StartListName string `env:"RACERESULT_START_LIST" default:"000-Startlists|Startlist"`

	// WaitListName is the list holding waitlist athletes (may be absent upstream)
	WaitListName string `env:"RACERESULT_WAIT_LIST" default:"000-Startlists|Waitlist"`

	// Timeout bounds each individual HTTP request (default: 30s)
	Timeout time.Duration `env:"RACERESULT_TIMEOUT" default:"30s"`

	// RetryMaxElapsed caps the total elapsed retry time per list request
	// (default: 60s)
	RetryMaxElapsed time.Duration `env:"RACERESULT_RETRY_MAX_ELAPSED" default:"60s"`

	// MaxConcurrent bounds the list-request fan-out (default: 8)
	MaxConcurrent int `env:"RACERESULT_MAX_CONCURRENT" default:"8"`
}

// ServerConfig holds trigger-server settings, used only in serve mode.
type ServerConfig struct {
	// Mode selects how the process runs: "once" performs a single
	// pipeline run and exits, "serve" exposes an HTTP trigger endpoint
	Mode string `env:"RUN_MODE" default:"once"`

	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ShutdownTimeout is the maximum wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level: "debug", "info", "warn", "error" (default: "info")
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format: "text" or "json" (default: "text")
	Format string `env:"LOG_FORMAT" default:"text"`
}
