package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/domain"
	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/ports"
	reviewactivities "github.com/Apurer/purchase-order-exercise/internal/platform/temporal/activities/review"
)

// RunReviewSequence evaluates a finished order. Grading is deterministic, so a
// failed attempt is reported to the caller instead of retried.
func RunReviewSequence(ctx workflow.Context, input ports.ReviewInput) (*domain.Review, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("review sequence started", "exerciseId", input.ExerciseID)
	evaluateOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}

	var review domain.Review
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, evaluateOptions), reviewactivities.EvaluateOrderActivityName, input).Get(ctx, &review)
	if err != nil {
		logger.Error("review sequence failed", "exerciseId", input.ExerciseID, "error", err)
		return nil, err
	}
	logger.Info("review sequence completed", "exerciseId", input.ExerciseID, "failed", review.FailedCount())
	return &review, nil
}
