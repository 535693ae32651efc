package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/xtremepizzaria/storefront/internal/domains/orders/domain"
	orderports "github.com/xtremepizzaria/storefront/internal/domains/orders/ports"
)

// AdvanceStatusActivityName applies one scheduled order transition.
const AdvanceStatusActivityName = "orders.activities.AdvanceStatus"

// AdvanceStatusInput names the order and the status it should reach.
type AdvanceStatusInput struct {
	OrderID string
	To      domain.Status
}

// AdvanceStatusResult reports the status after the activity ran.
type AdvanceStatusResult struct {
	Found  bool
	Status domain.Status
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	advancer orderports.StatusAdvancer
}

// NewActivities wires the order store into the Temporal activities bundle.
func NewActivities(advancer orderports.StatusAdvancer) *Activities {
	return &Activities{advancer: advancer}
}

// AdvanceStatus applies the transition. A missing order is reported, not retried.
func (a *Activities) AdvanceStatus(ctx context.Context, input AdvanceStatusInput) (*AdvanceStatusResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.advancer == nil {
		logger.Error("advance status activity not initialized", "orderId", input.OrderID)
		return nil, errors.New("advance status activity not initialized")
	}
	logger.Info("AdvanceStatus activity started", "orderId", input.OrderID, "to", string(input.To))
	order, err := a.advancer.AdvanceStatus(ctx, input.OrderID, input.To)
	if err != nil {
		if errors.Is(err, orderports.ErrNotFound) {
			logger.Info("AdvanceStatus skipped, order gone", "orderId", input.OrderID)
			return &AdvanceStatusResult{Found: false}, nil
		}
		logger.Error("AdvanceStatus activity failed", "orderId", input.OrderID, "error", err)
		return nil, err
	}
	logger.Info("AdvanceStatus activity completed", "orderId", input.OrderID, "status", string(order.Status))
	return &AdvanceStatusResult{Found: true, Status: order.Status}, nil
}
