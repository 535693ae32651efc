package orders

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/workflow"

	"github.com/xtremepizzaria/storefront/internal/domains/orders/domain"
	"github.com/xtremepizzaria/storefront/internal/durable/temporal/sequences"
)

const (
	// OrderStatusWorkflowName is the public identifier for registering the workflow.
	OrderStatusWorkflowName = "orders.workflows.StatusProgression"
	// OrderStatusTaskQueue is the queue consumed by the embedded storefront worker.
	OrderStatusTaskQueue = "ORDER_STATUS"
)

// OrderStatusWorkflowInput identifies the order and the length of one progression unit.
type OrderStatusWorkflowInput struct {
	OrderID   string
	CreatedAt time.Time
	TimeUnit  time.Duration
	TraceID   string
}

// WorkflowID is the per-order id; starting it twice is rejected by the server.
func WorkflowID(orderID string) string {
	return fmt.Sprintf("order-status-%s", orderID)
}

// OrderStatusWorkflow drives one order from received to delivered.
func OrderStatusWorkflow(ctx workflow.Context, input OrderStatusWorkflowInput) (domain.Status, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderStatusWorkflow started", withTraceID(input.TraceID, "orderId", input.OrderID)...)
	status, err := sequences.RunStatusProgressionSequence(ctx, input.OrderID, input.CreatedAt, input.TimeUnit)
	if err != nil {
		logger.Error("OrderStatusWorkflow failed", withTraceID(input.TraceID, "orderId", input.OrderID, "error", err)...)
		return status, err
	}
	logger.Info("OrderStatusWorkflow completed", withTraceID(input.TraceID, "orderId", input.OrderID, "status", string(status))...)
	return status, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
