package postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// pingTimeout bounds the connectivity check done at startup.
const pingTimeout = 5 * time.Second

// ErrEmptyDSN is returned by Connect when no DSN is configured.
var ErrEmptyDSN = errors.New("postgres DSN is empty")

// Connect opens the session database and pings it once.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrEmptyDSN
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ConnectOptional returns nil and a no-op cleanup when the DSN is blank or
// the database cannot be reached. Exercise sessions then stay in memory.
func ConnectOptional(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, func()) {
	if logger == nil {
		logger = slog.Default()
	}
	noop := func() {}
	db, err := Connect(ctx, dsn)
	switch {
	case errors.Is(err, ErrEmptyDSN):
		logger.Warn("POSTGRES_DSN not set, exercise sessions stay in memory")
		return nil, noop
	case err != nil:
		logger.Warn("postgres unreachable, exercise sessions stay in memory", slog.String("error", err.Error()))
		return nil, noop
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("postgres handle unusable, exercise sessions stay in memory", slog.String("error", err.Error()))
		return nil, noop
	}
	logger.Info("exercise sessions stored in postgres")
	return db, func() { _ = sqlDB.Close() }
}
