package review

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/domain"
	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/ports"
	"github.com/Apurer/purchase-order-exercise/internal/platform/temporal/sequences"
)

const (
	// ReviewWorkflowName is the public identifier for registering the workflow.
	ReviewWorkflowName = "exercise.workflows.Review"
	// ReviewTaskQueue is the queue consumed by the worker grading finished orders.
	ReviewTaskQueue = "ORDER_REVIEW"
)

// ReviewWorkflowInput carries the finished order and the trace it was started from.
type ReviewWorkflowInput struct {
	Review  ports.ReviewInput
	TraceID string
}

// ReviewWorkflow grades a finished purchase order.
func ReviewWorkflow(ctx workflow.Context, input ReviewWorkflowInput) (*domain.Review, error) {
	logger := workflow.GetLogger(ctx)
	exerciseID := input.Review.ExerciseID
	logger.Info("ReviewWorkflow started", withTraceID(input.TraceID, "exerciseId", exerciseID)...)
	review, err := sequences.RunReviewSequence(ctx, input.Review)
	if err != nil {
		logger.Error("ReviewWorkflow failed", withTraceID(input.TraceID, "exerciseId", exerciseID, "error", err)...)
		return nil, err
	}
	logger.Info("ReviewWorkflow completed", withTraceID(input.TraceID, "exerciseId", exerciseID, "passed", review.Passed())...)
	return review, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
