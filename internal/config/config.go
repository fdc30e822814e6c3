package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server configuration, loaded from the environment.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `env:"LIVECHESS_ADDR" envDefault:":8080"`
	// DBPath is the SQLite file backing board snapshots.
	DBPath string `env:"LIVECHESS_DB_PATH" envDefault:"livechess.db"`
	// SessionSecret signs session tokens. Required.
	SessionSecret string `env:"LIVECHESS_SESSION_SECRET"`
	// SessionIssuer is the issuer claim stamped into session tokens.
	SessionIssuer string `env:"LIVECHESS_SESSION_ISSUER" envDefault:"livechess"`
	// OriginAllowlist restricts websocket origins; empty allows all.
	OriginAllowlist []string `env:"LIVECHESS_ORIGIN_ALLOWLIST" envSeparator:","`
	// SaveInterval is how often the board snapshot is persisted.
	SaveInterval time.Duration `env:"LIVECHESS_SAVE_INTERVAL" envDefault:"30s"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("LIVECHESS_SESSION_SECRET is required")
	}
	return cfg, nil
}
