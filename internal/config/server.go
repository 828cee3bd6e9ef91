package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// ServerConfig is the TOML configuration for `arcade serve` and the
// leaderboard backends shared by all commands.
type ServerConfig struct {
	SSH         SSHConfig         `toml:"ssh"`
	Leaderboard LeaderboardConfig `toml:"leaderboard"`
	Logging     LoggingConfig     `toml:"logging"`
}

type SSHConfig struct {
	Host        string        `toml:"host"`
	Port        int           `toml:"port"`
	HostKeyPath string        `toml:"host_key_path"`
	IdleTimeout time.Duration `toml:"idle_timeout"`
	MaxTimeout  time.Duration `toml:"max_timeout"`
}

// LeaderboardConfig selects and tunes the score backend.
type LeaderboardConfig struct {
	Backend         string        `toml:"backend"` // "sqlite", "postgres" or "mock"
	Path            string        `toml:"path"`    // sqlite file
	DSN             string        `toml:"dsn"`     // postgres
	MaxConns        int32         `toml:"max_conns"`
	MinConns        int32         `toml:"min_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
	TopN            int           `toml:"top_n"`
	SubmitLimit     int           `toml:"submit_limit"`  // submissions per window
	SubmitWindow    time.Duration `toml:"submit_window"` // sliding window
	Timeout         time.Duration `toml:"timeout"`
}

type LoggingConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	File  string `toml:"file"`  // empty logs to stderr
}

// LoadServer reads a TOML file over the defaults. An empty path returns the defaults.
func LoadServer(path string) (*ServerConfig, error) {
	cfg := DefaultServerConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *ServerConfig) Validate() error {
	switch c.Leaderboard.Backend {
	case "sqlite", "mock":
	case "postgres":
		if c.Leaderboard.DSN == "" {
			return fmt.Errorf("leaderboard.dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown leaderboard backend %q", c.Leaderboard.Backend)
	}
	if c.Leaderboard.TopN <= 0 {
		return fmt.Errorf("leaderboard.top_n must be positive")
	}
	if c.SSH.Port <= 0 || c.SSH.Port > 65535 {
		return fmt.Errorf("ssh.port %d out of range", c.SSH.Port)
	}
	return nil
}

// DefaultServerConfig returns the built-in server settings.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		SSH: SSHConfig{
			Host:        "0.0.0.0",
			Port:        23234,
			HostKeyPath: ".ssh/arcade_host_key",
			IdleTimeout: 10 * time.Minute,
			MaxTimeout:  2 * time.Hour,
		},
		Leaderboard: LeaderboardConfig{
			Backend:         "sqlite",
			Path:            "~/.arcade/scores.db",
			DSN:             "",
			MaxConns:        10,
			MinConns:        1,
			ConnMaxLifetime: 30 * time.Minute,
			TopN:            10,
			SubmitLimit:     10,
			SubmitWindow:    time.Minute,
			Timeout:         5 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
