package workflows

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/domain"
	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/ports"
	reviewworkflows "github.com/Apurer/purchase-order-exercise/internal/platform/temporal/workflows/review"
)

var (
	_ ports.ReviewOrchestrator = (*TemporalReviewWorkflows)(nil)
	_ ports.ReviewOrchestrator = (*InlineReviewWorkflows)(nil)
)

// DefaultReviewTimeout bounds a whole review run, so a queue nobody polls
// fails the finish request instead of holding it open.
const DefaultReviewTimeout = 30 * time.Second

// TemporalReviewWorkflows grades finished orders on a Temporal cluster.
type TemporalReviewWorkflows struct {
	client           client.Client
	taskQueue        string
	executionTimeout time.Duration
}

// NewTemporalReviewWorkflows wires a Temporal client into the orchestrator.
func NewTemporalReviewWorkflows(c client.Client) *TemporalReviewWorkflows {
	return &TemporalReviewWorkflows{
		client:           c,
		taskQueue:        reviewworkflows.ReviewTaskQueue,
		executionTimeout: DefaultReviewTimeout,
	}
}

// WithExecutionTimeout overrides DefaultReviewTimeout. Non-positive values are ignored.
func (o *TemporalReviewWorkflows) WithExecutionTimeout(timeout time.Duration) *TemporalReviewWorkflows {
	if timeout > 0 {
		o.executionTimeout = timeout
	}
	return o
}

// ReviewOrder starts the review workflow and waits for its result.
func (o *TemporalReviewWorkflows) ReviewOrder(ctx context.Context, input ports.ReviewInput) (*domain.Review, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal review workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildReviewWorkflowID(input, traceComponent)
	run, err := o.client.ExecuteWorkflow(
		ctx,
		o.startOptions(workflowID),
		reviewworkflows.ReviewWorkflowName,
		reviewworkflows.ReviewWorkflowInput{Review: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, err
		}
		// A retried finish within the same trace joins the running review.
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var review domain.Review
	if err := run.Get(ctx, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (o *TemporalReviewWorkflows) startOptions(workflowID string) client.StartWorkflowOptions {
	return client.StartWorkflowOptions{
		ID:                       workflowID,
		TaskQueue:                o.taskQueue,
		WorkflowExecutionTimeout: o.executionTimeout,
	}
}

// InlineReviewWorkflows grades orders in-process, used when Temporal is unavailable.
type InlineReviewWorkflows struct{}

// NewInlineReviewWorkflows returns the synchronous reviewer.
func NewInlineReviewWorkflows() *InlineReviewWorkflows {
	return &InlineReviewWorkflows{}
}

// ReviewOrder evaluates the order directly.
func (o *InlineReviewWorkflows) ReviewOrder(ctx context.Context, input ports.ReviewInput) (*domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	review := domain.Evaluate(input.Order, input.Offer)
	return &review, nil
}

func buildReviewWorkflowID(input ports.ReviewInput, traceComponent string) string {
	id := strings.TrimSpace(input.ExerciseID)
	if id == "" {
		id = "anonymous"
	}
	return fmt.Sprintf("order-review-%s-%s", id, traceComponent)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceComponent := workflowTraceID(ctx); traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
