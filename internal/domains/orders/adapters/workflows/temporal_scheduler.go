package workflows

import (
	"context"
	"errors"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/xtremepizzaria/storefront/internal/domains/orders/ports"
	orderworkflows "github.com/xtremepizzaria/storefront/internal/durable/temporal/workflows/orders"
	orderactivities "github.com/xtremepizzaria/storefront/internal/platform/temporal/activities/orders"
)

var _ ports.Scheduler = (*TemporalScheduler)(nil)

// TemporalScheduler starts one OrderStatusWorkflow per order on a Temporal cluster.
type TemporalScheduler struct {
	client    client.Client
	worker    worker.Worker
	taskQueue string
	unit      time.Duration
}

// NewTemporalScheduler wires a Temporal client into the scheduler. unit scales the progression offsets.
func NewTemporalScheduler(c client.Client, unit time.Duration) *TemporalScheduler {
	if unit <= 0 {
		unit = time.Second
	}
	return &TemporalScheduler{client: c, taskQueue: orderworkflows.OrderStatusTaskQueue, unit: unit}
}

// StartWorker runs an embedded worker whose activities apply transitions through advancer.
func (s *TemporalScheduler) StartWorker(advancer ports.StatusAdvancer) error {
	if s == nil || s.client == nil {
		return errors.New("temporal order scheduler not configured")
	}
	w := worker.New(s.client, s.taskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderStatusWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderStatusWorkflowName})
	w.RegisterActivityWithOptions(orderactivities.NewActivities(advancer).AdvanceStatus, activity.RegisterOptions{Name: orderactivities.AdvanceStatusActivityName})
	if err := w.Start(); err != nil {
		return err
	}
	s.worker = w
	return nil
}

// Schedule starts the order workflow. An already running workflow for the order counts as scheduled.
func (s *TemporalScheduler) Schedule(ctx context.Context, orderID string, createdAt time.Time) error {
	if s == nil || s.client == nil {
		return errors.New("temporal order scheduler not configured")
	}
	options := client.StartWorkflowOptions{
		ID:                    orderworkflows.WorkflowID(orderID),
		TaskQueue:             s.taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}
	_, err := s.client.ExecuteWorkflow(ctx, options, orderworkflows.OrderStatusWorkflowName, orderworkflows.OrderStatusWorkflowInput{
		OrderID:   orderID,
		CreatedAt: createdAt,
		TimeUnit:  s.unit,
		TraceID:   workflowTraceID(ctx),
	})
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil
		}
		return err
	}
	return nil
}

// Cancel requests cancellation of the order workflow; an unknown workflow is not an error.
func (s *TemporalScheduler) Cancel(ctx context.Context, orderID string) error {
	err := s.client.CancelWorkflow(ctx, orderworkflows.WorkflowID(orderID), "")
	var notFound *serviceerror.NotFound
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}

// Close stops the embedded worker, waiting for running activities.
func (s *TemporalScheduler) Close() error {
	if s != nil && s.worker != nil {
		s.worker.Stop()
		s.worker = nil
	}
	return nil
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
