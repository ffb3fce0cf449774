package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

// Config carries environment-driven settings shared by the API, worker and purger processes.
type Config struct {
	Port                 string `envconfig:"PORT" default:"8080"`
	PostgresDSN          string `envconfig:"POSTGRES_DSN"`
	SessionTTLHours      int    `envconfig:"SESSION_TTL_HOURS" default:"24"`
	SessionPurgeSchedule string `envconfig:"SESSION_PURGE_SCHEDULE" default:"*/15 * * * *"`
	TemporalAddress      string `envconfig:"TEMPORAL_ADDRESS" default:"localhost:7233"`
	TemporalNamespace    string `envconfig:"TEMPORAL_NAMESPACE" default:"default"`
	TemporalDisabled     bool   `envconfig:"TEMPORAL_DISABLED"`
	Environment          string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel             string `envconfig:"LOG_LEVEL" default:"info"`
	OTLPEndpoint         string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure         bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
}

// Load reads an optional .env file, then the environment, applies defaults and validates.
// A missing env file is not an error.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed loading env file %s: %w", envFile, err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	cfg.PostgresDSN = strings.TrimSpace(cfg.PostgresDSN)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be defaulted safely.
func (c Config) Validate() error {
	var errs []error
	if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be a TCP port, got %q", c.Port))
	}
	if c.SessionTTLHours <= 0 {
		errs = append(errs, errors.New("SESSION_TTL_HOURS must be a positive integer"))
	}
	if _, err := cron.ParseStandard(c.SessionPurgeSchedule); err != nil {
		errs = append(errs, fmt.Errorf("SESSION_PURGE_SCHEDULE is not a valid cron expression: %w", err))
	}
	if !c.TemporalDisabled && strings.TrimSpace(c.TemporalAddress) == "" {
		errs = append(errs, errors.New("TEMPORAL_ADDRESS is required unless TEMPORAL_DISABLED is set"))
	}
	return errors.Join(errs...)
}

// SessionTTL returns the configured session lifetime.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
