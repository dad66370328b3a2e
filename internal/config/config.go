package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/deadanime/proxy/pkg/env"
	"github.com/deadanime/proxy/pkg/utils"
)

type Env string

const (
	EnvDevelopment Env = "development"
	EnvProduction  Env = "production"
)

// Config is built once at process start and injected into every component
// that needs it. The TLS verification flag is the only runtime-mutable
// piece: deployment tooling may flip it mid-process in development, so it
// is read per connection setup rather than baked in at startup.
type Config struct {
	Port            string
	Env             Env
	UpstreamBaseURL string
	CorsOrigins     []string

	tlsInsecure atomic.Bool
}

func Load() (*Config, error) {
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if err := env.LoadDotEnv(appEnv, ".env"); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("APP_ENV"))
	}

	cfg := &Config{
		Port: os.Getenv("PORT"),
		Env:  EnvDevelopment,
	}
	if appEnv == string(EnvProduction) {
		cfg.Env = EnvProduction
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.UpstreamBaseURL = strings.TrimSpace(os.Getenv("UPSTREAM_BASE_URL"))

	var origins []string
	corsOriginsEnv := os.Getenv("CORS_ORIGINS")
	if corsOriginsEnv != "" {
		origins = strings.Split(corsOriginsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		origins = utils.RemoveEmptyStrings(origins)
	}
	if len(origins) == 0 {
		if cfg.Env == EnvProduction {
			slog.Warn("CORS_ORIGINS not set in production, allowing all origins")
		}
		origins = []string{"*"}
	}
	cfg.CorsOrigins = origins

	if cfg.IsDevelopment() && os.Getenv("TLS_INSECURE_SKIP_VERIFY") == "true" {
		cfg.tlsInsecure.Store(true)
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if cfg.UpstreamBaseURL == "" {
		return nil, errors.New("UPSTREAM_BASE_URL is required")
	}
	if err := validatePort(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env != EnvProduction
}

// TLSInsecure reports whether upstream TLS verification is disabled. Read
// this at connection setup, not once at client construction.
func (c *Config) TLSInsecure() bool {
	return c.tlsInsecure.Load()
}

// SetTLSInsecure flips upstream TLS verification. Ignored in production.
func (c *Config) SetTLSInsecure(v bool) {
	if !c.IsDevelopment() {
		return
	}
	c.tlsInsecure.Store(v)
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
