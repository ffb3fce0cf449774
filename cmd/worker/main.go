package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/purchase-order-exercise/internal/app/api"
	"github.com/Apurer/purchase-order-exercise/internal/app/config"
	platformobservability "github.com/Apurer/purchase-order-exercise/internal/platform/observability"
	reviewactivities "github.com/Apurer/purchase-order-exercise/internal/platform/temporal/activities/review"
	reviewworkflows "github.com/Apurer/purchase-order-exercise/internal/platform/temporal/workflows/review"
)

var errTemporalDisabled = errors.New("TEMPORAL_DISABLED is set; the review worker has nothing to do")

func main() {
	envFile := flag.String("env-file", ".env", "optional dotenv file loaded before the environment")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := run(context.Background(), cfg, worker.InterruptCh()); err != nil {
		log.Fatalf("review worker stopped: %v", err)
	}
}

// run hosts the review workflow until interruptCh fires. Deferred cleanup
// always completes before the error reaches main.
func run(ctx context.Context, cfg config.Config, interruptCh <-chan interface{}) error {
	const serviceName = "purchase-order-exercise-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, api.ObservabilitySettings(cfg, serviceName))
	if err != nil {
		return fmt.Errorf("initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	if cfg.TemporalDisabled {
		return errTemporalDisabled
	}
	temporalClient, err := api.ConnectTemporalClient(cfg, instruments, "temporal-worker")
	if err != nil {
		return fmt.Errorf("create Temporal client: %w", err)
	}
	defer temporalClient.Close()

	activities := reviewactivities.NewActivities()
	w := worker.New(temporalClient, reviewworkflows.ReviewTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(reviewworkflows.ReviewWorkflow, workflow.RegisterOptions{Name: reviewworkflows.ReviewWorkflowName})
	w.RegisterActivityWithOptions(activities.EvaluateOrder, activity.RegisterOptions{Name: reviewactivities.EvaluateOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", reviewworkflows.ReviewTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(interruptCh); err != nil {
		return fmt.Errorf("temporal worker: %w", err)
	}
	logger.Info("Temporal worker stopped")
	return nil
}
