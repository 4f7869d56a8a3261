package ports

import (
	"context"

	"github.com/pustakahq/bookstore-api/internal/domains/orders/domain"
)

// WorkflowOrchestrator exposes durable order placement. Implementations may
// run on a workflow engine or execute the service inline.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Receipt, error)
}
