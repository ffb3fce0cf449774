package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	exerciseserver "github.com/Apurer/purchase-order-exercise/go"
	"github.com/Apurer/purchase-order-exercise/internal/app/config"
	catalogstatic "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/adapters/static"
	catalogapp "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/application"
	exercisememory "github.com/Apurer/purchase-order-exercise/internal/domains/exercise/adapters/memory"
	exerciseobs "github.com/Apurer/purchase-order-exercise/internal/domains/exercise/adapters/observability"
	exercisepostgres "github.com/Apurer/purchase-order-exercise/internal/domains/exercise/adapters/persistence/postgres"
	exerciseworkflows "github.com/Apurer/purchase-order-exercise/internal/domains/exercise/adapters/workflows"
	exerciseapp "github.com/Apurer/purchase-order-exercise/internal/domains/exercise/application"
	exerciseports "github.com/Apurer/purchase-order-exercise/internal/domains/exercise/ports"
	"github.com/Apurer/purchase-order-exercise/internal/platform/migrations"
	platformobservability "github.com/Apurer/purchase-order-exercise/internal/platform/observability"
	platformpostgres "github.com/Apurer/purchase-order-exercise/internal/platform/postgres"
	"github.com/Apurer/purchase-order-exercise/internal/platform/scheduler"
)

const serviceName = "purchase-order-exercise-api"

// Run boots the exercise HTTP API with observability, session storage, and review workflows wired.
func Run(ctx context.Context, cfg config.Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, ObservabilitySettings(cfg, serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	sessions, storeName, cleanupStore := BuildSessionStore(ctx, cfg, logger)
	defer cleanupStore()

	reviewer, reviewsName := exerciseports.ReviewOrchestrator(exerciseworkflows.NewInlineReviewWorkflows()), "inline"
	if temporalClient, err := ConnectTemporalClient(cfg, instruments, "temporal-client"); err != nil {
		logger.Warn("Temporal workflows unavailable, grading orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		reviewer, reviewsName = exerciseworkflows.NewTemporalReviewWorkflows(temporalClient), "temporal"
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	catalog := catalogstatic.NewCatalog()
	coreExerciseService := exerciseapp.NewService(sessions, catalog, exerciseapp.WithReviewOrchestrator(reviewer))
	exerciseService := exerciseobs.New(
		coreExerciseService,
		exerciseobs.WithLogger(logger),
		exerciseobs.WithTracer(instruments.Tracer("internal.exercise.application")),
		exerciseobs.WithMeter(instruments.Meter("internal.exercise.application")),
	)

	purger := scheduler.New(cfg.SessionPurgeSchedule, sessions, logger)
	if err := purger.Start(); err != nil {
		return fmt.Errorf("failed to start session purge scheduler: %w", err)
	}
	defer purger.Stop()

	handlers := exerciseserver.ApiHandleFunctions{
		CatalogAPI:  exerciseserver.NewCatalogAPI(catalogapp.NewService(catalog)),
		ExerciseAPI: exerciseserver.NewExerciseAPI(exerciseService),
		HealthAPI:   exerciseserver.NewHealthAPI(storeName, reviewsName),
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router := exerciseserver.NewRouterWithGinEngine(engine, handlers)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("exercise API listening", slog.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("exercise API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		logger.Info("shutting down exercise API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// ObservabilitySettings maps process configuration onto telemetry settings.
func ObservabilitySettings(cfg config.Config, service string) platformobservability.Settings {
	return platformobservability.Settings{
		ServiceName:  service,
		Environment:  cfg.Environment,
		LogLevel:     cfg.LogLevel,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
	}
}

// SessionStore is the storage the API and purger need: the port plus purge.
type SessionStore interface {
	exerciseports.SessionStore
	scheduler.Purger
}

// BuildSessionStore picks PostgreSQL when it is configured and reachable, memory otherwise.
func BuildSessionStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (SessionStore, string, func()) {
	db, cleanup := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return exercisememory.NewSessionStore(cfg.SessionTTL()), "memory", cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to migrate exercise sessions schema, keeping sessions in memory", slog.String("error", err.Error()))
		cleanup()
		return exercisememory.NewSessionStore(cfg.SessionTTL()), "memory", func() {}
	}
	logger.Info("exercise sessions stored in postgres")
	return exercisepostgres.NewSessionStore(db, cfg.SessionTTL()), "postgres", cleanup
}

// ConnectTemporalClient dials Temporal with tracing and the structured logger bridge.
func ConnectTemporalClient(cfg config.Config, instruments *platformobservability.Instruments, tracerName string) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer(tracerName)
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
