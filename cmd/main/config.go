package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/natefinch/atomic"

	"github.com/CTAG07/Sashizume/pkg/card"
	"github.com/CTAG07/Sashizume/pkg/telemetry"
)

// ServerConfig holds the configuration for the HTTP server.
type ServerConfig struct {
	ServerAddr         string `json:"server_addr" env:"SASHIZUME_ADDR"`
	LogLevel           string `json:"log_level" env:"SASHIZUME_LOG_LEVEL"`
	ShutdownTimeoutSec int    `json:"shutdown_timeout_sec" env:"SASHIZUME_SHUTDOWN_TIMEOUT_SEC"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	Server    *ServerConfig     `json:"server_config"`
	Card      *card.CardConfig  `json:"card_config"`
	Telemetry *telemetry.Config `json:"telemetry_config"`
}

// DefaultServerConfig creates a server configuration with default values.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerAddr:         ":7277",
		LogLevel:           "info",
		ShutdownTimeoutSec: 10,
	}
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	cardConfig := card.DefaultConfig()
	telemetryConfig := telemetry.DefaultConfig()
	telemetryConfig.ServiceVersion = Version
	return &Config{
		Server:    DefaultServerConfig(),
		Card:      &cardConfig,
		Telemetry: &telemetryConfig,
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
// Environment variables, including those from an optional .env file in the
// working directory, override values from the file.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		var data []byte
		data, err = json.MarshalIndent(config, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal default config: %w", err)
		}
		if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
			// The server can still run with defaults.
			fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err = json.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err = applyEnv(config); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnv overrides config with any environment variables that are set.
func applyEnv(config *Config) error {
	// The .env file is optional.
	_ = godotenv.Load()

	// A section set to null in the file falls back to its defaults.
	defaults := DefaultConfig()
	if config.Server == nil {
		config.Server = defaults.Server
	}
	if config.Card == nil {
		config.Card = defaults.Card
	}
	if config.Telemetry == nil {
		config.Telemetry = defaults.Telemetry
	}

	for _, section := range []any{config.Server, config.Card, config.Telemetry} {
		if err := env.Parse(section); err != nil {
			return fmt.Errorf("failed to parse environment overrides: %w", err)
		}
	}
	return nil
}

// parseLogLevel maps a configured level name to a slog.Level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(level)}))
}
