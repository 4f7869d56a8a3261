package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/pustakahq/bookstore-api/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// UnknownBookError reports an order item referencing a book that does not
// exist or is soft-deleted.
type UnknownBookError struct {
	BookID string
}

func (e *UnknownBookError) Error() string {
	return fmt.Sprintf("book %s does not exist or is deleted", e.BookID)
}

// InsufficientStockError reports a quantity exceeding the snapshot stock.
type InsufficientStockError struct {
	BookID    string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("book %s has insufficient stock: requested %d, available %d",
		e.BookID, e.Requested, e.Available)
}

// StockConflictError reports a conditional decrement that matched no row at
// commit time: a concurrent order consumed the stock after the snapshot read.
// The whole transaction was rolled back; the caller may retry.
type StockConflictError struct {
	BookID string
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("stock for book %s was consumed by a concurrent order", e.BookID)
}

// Inventory is the order engine's read view over the catalog's storage.
type Inventory interface {
	// SnapshotBooks batch-reads the referenced books, active rows only.
	// Missing ids are absent from the result, not an error.
	SnapshotBooks(ctx context.Context, ids []string) (map[string]*domain.BookSnapshot, error)
	// BookFacts resolves current price and genre per book for statistics,
	// soft-deleted books and genres included.
	BookFacts(ctx context.Context, ids []string) (map[string]domain.BookFacts, error)
}

// Repository persists the append-only order ledger.
type Repository interface {
	// CreateOrder atomically inserts the order with its items and applies a
	// conditional stock decrement per item. A decrement that matches no row
	// aborts the whole transaction and surfaces as *StockConflictError.
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	// ListAll returns every order with items, for the statistics full scan.
	ListAll(ctx context.Context) ([]*domain.Order, error)
}
