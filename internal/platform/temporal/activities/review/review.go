package review

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/domain"
	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/ports"
)

// EvaluateOrderActivityName grades a finished purchase order against its offer.
const EvaluateOrderActivityName = "exercise.activities.EvaluateOrder"

// Activities groups activities that operate on finished exercise orders.
type Activities struct{}

// NewActivities builds the review activities bundle.
func NewActivities() *Activities {
	return &Activities{}
}

// EvaluateOrder runs the five review criteria and returns the review.
func (a *Activities) EvaluateOrder(ctx context.Context, input ports.ReviewInput) (*domain.Review, error) {
	logger := activity.GetLogger(ctx)
	if a == nil {
		logger.Error("review activity not initialized", "exerciseId", input.ExerciseID)
		return nil, errors.New("review activity not initialized")
	}
	if input.Order.Number == "" {
		logger.Error("EvaluateOrder received an order without number", "exerciseId", input.ExerciseID)
		return nil, errors.New("order number is required for review")
	}
	logger.Info("EvaluateOrder activity started", "exerciseId", input.ExerciseID, "orderNumber", input.Order.Number)
	review := domain.Evaluate(input.Order, input.Offer)
	logger.Info("EvaluateOrder activity completed", "exerciseId", input.ExerciseID, "passed", review.Passed(), "failed", review.FailedCount())
	return &review, nil
}
