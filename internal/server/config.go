package server

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
const DefaultShutdownTimeout = 30 * time.Second

// Config holds the HTTP server configuration, populated from the
// environment.
type Config struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8000"`

	// ReadHeaderTimeout bounds reading of request headers.
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"10s"`

	// WriteTimeout bounds response writes. It must comfortably exceed
	// the maximum simulated operation latency (0.8s).
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`

	// IdleTimeout bounds keep-alive connections.
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
}

// ConfigFromEnv parses the server configuration from environment
// variables, applying defaults for anything unset.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse server config: %w", err)
	}
	return cfg, nil
}
