package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"

	"github.com/Apurer/purchase-order-exercise/internal/domains/catalog/adapters/static"
	catalog "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/domain"
	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/domain"
	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/ports"
	reviewactivities "github.com/Apurer/purchase-order-exercise/internal/platform/temporal/activities/review"
)

func finishedInput(t *testing.T) ports.ReviewInput {
	t.Helper()
	ctx := context.Background()
	source := static.NewCatalog()
	offer, err := source.GetOffer(ctx, "off-001")
	require.NoError(t, err)
	buyer, err := source.Buyer(ctx)
	require.NoError(t, err)

	order := domain.NewPurchaseOrder("BC-2025-0A1B2C", time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), buyer, *offer)
	for _, item := range offer.Items {
		order.AddItem(item)
	}
	for _, field := range catalog.ConditionFields {
		order.SetCondition(field, offer.Conditions.Get(field))
	}
	order.SetCondition(catalog.FieldDeliveryMode, "Retrait en magasin")
	order.SetSignature("Jean Dupont")
	return ports.ReviewInput{ExerciseID: "ex-1", Order: *order, Offer: *offer}
}

func TestReviewWorkflow_GradesOrder(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterActivityWithOptions(reviewactivities.NewActivities().EvaluateOrder, activity.RegisterOptions{Name: reviewactivities.EvaluateOrderActivityName})

	env.ExecuteWorkflow(ReviewWorkflow, ReviewWorkflowInput{Review: finishedInput(t), TraceID: "trace-1"})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var review domain.Review
	require.NoError(t, env.GetWorkflowResult(&review))
	require.Equal(t, 1, review.FailedCount())
	criterion, ok := review.Criterion(domain.CriterionDeliveryMode)
	require.True(t, ok)
	require.False(t, criterion.Passed)
	require.Equal(t, "1526.95", review.Subtotal.StringFixed(2))
}

func TestReviewWorkflow_PropagatesActivityFailure(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterActivityWithOptions(
		func(context.Context, ports.ReviewInput) (*domain.Review, error) {
			return nil, errors.New("grader offline")
		},
		activity.RegisterOptions{Name: reviewactivities.EvaluateOrderActivityName},
	)

	env.ExecuteWorkflow(ReviewWorkflow, ReviewWorkflowInput{Review: finishedInput(t)})

	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
}
