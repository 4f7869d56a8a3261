package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	ordersdomain "github.com/pustakahq/bookstore-api/internal/domains/orders/domain"
	ordersports "github.com/pustakahq/bookstore-api/internal/domains/orders/ports"
)

// PlaceOrderActivityName validates stock and commits the order atomically.
const PlaceOrderActivityName = "orders.activities.PlaceOrder"

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the order service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder runs the full stock-checked order placement and returns the
// receipt. Retries are safe up to the first committed attempt because the
// conditional stock decrement rejects rather than double-applies.
func (a *Activities) PlaceOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*ordersdomain.Receipt, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized", "userId", input.UserID)
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "userId", input.UserID, "items", len(input.Items))
	receipt, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "userId", input.UserID, "error", err)
		return nil, err
	}
	logger.Info("PlaceOrder activity completed", "orderId", receipt.OrderID)
	return receipt, nil
}
