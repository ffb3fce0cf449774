package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Apurer/purchase-order-exercise/internal/app/config"
	exercisepostgres "github.com/Apurer/purchase-order-exercise/internal/domains/exercise/adapters/persistence/postgres"
	platformobservability "github.com/Apurer/purchase-order-exercise/internal/platform/observability"
	platformpostgres "github.com/Apurer/purchase-order-exercise/internal/platform/postgres"
	"github.com/Apurer/purchase-order-exercise/internal/platform/scheduler"
)

var errNoDatabase = errors.New("POSTGRES_DSN not set or connection failed; cannot purge sessions")

func main() {
	envFile := flag.String("env-file", ".env", "optional dotenv file loaded before the environment")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := platformobservability.NewLogger(os.Stdout, cfg.LogLevel)
	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("session purge failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run purges expired sessions once and releases the connection before returning.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, cleanup := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db == nil {
		return errNoDatabase
	}

	store := exercisepostgres.NewSessionStore(db, cfg.SessionTTL())
	purged, err := scheduler.New(cfg.SessionPurgeSchedule, store, logger).RunOnce(ctx)
	if err != nil {
		return fmt.Errorf("purge sessions: %w", err)
	}
	logger.Info("session purge completed", slog.Int64("count", purged))
	return nil
}
