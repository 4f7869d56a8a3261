package ports

import (
	"context"

	"github.com/pustakahq/bookstore-api/internal/domains/orders/domain"
)

// ItemInput is one requested (book, quantity) pair.
type ItemInput struct {
	BookID   string
	Quantity int
}

// PlaceOrderInput carries a full order request. UserID comes from the
// authenticated caller, never from the request body.
type PlaceOrderInput struct {
	UserID string
	Items  []ItemInput
}

// Service exposes the order engine and statistics aggregator to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Receipt, error)
	GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, userID string) ([]*domain.Order, error)
	ComputeStatistics(ctx context.Context) (*domain.Statistics, error)
}
