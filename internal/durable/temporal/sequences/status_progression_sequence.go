package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/xtremepizzaria/storefront/internal/domains/orders/domain"
	orderactivities "github.com/xtremepizzaria/storefront/internal/platform/temporal/activities/orders"
)

// RunStatusProgressionSequence sleeps until each step is due and applies it, stopping
// once the order is gone or terminal.
func RunStatusProgressionSequence(ctx workflow.Context, orderID string, createdAt time.Time, unit time.Duration) (domain.Status, error) {
	logger := workflow.GetLogger(ctx)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	status := domain.StatusReceived
	for _, step := range domain.Progression {
		if wait := step.Due(createdAt, unit).Sub(workflow.Now(ctx)); wait > 0 {
			if err := workflow.Sleep(ctx, wait); err != nil {
				logger.Info("status progression interrupted", "orderId", orderID, "error", err)
				return status, err
			}
		}

		var result orderactivities.AdvanceStatusResult
		input := orderactivities.AdvanceStatusInput{OrderID: orderID, To: step.To}
		if err := workflow.ExecuteActivity(ctx, orderactivities.AdvanceStatusActivityName, input).Get(ctx, &result); err != nil {
			logger.Error("status progression step failed", "orderId", orderID, "to", string(step.To), "error", err)
			return status, err
		}
		if !result.Found {
			logger.Info("status progression abandoned, order gone", "orderId", orderID)
			return status, nil
		}
		status = result.Status
		if status.Terminal() {
			break
		}
	}
	logger.Info("status progression completed", "orderId", orderID, "status", string(status))
	return status, nil
}
