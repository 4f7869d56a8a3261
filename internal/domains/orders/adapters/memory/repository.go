package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/pustakahq/bookstore-api/internal/domains/orders/domain"
	"github.com/pustakahq/bookstore-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// StockStore is the inventory the in-memory ledger decrements against. The
// catalog's memory store satisfies it, so dev-mode orders see the same books
// the catalog API created.
type StockStore interface {
	ports.Inventory
	// TryDecrement applies all decrements atomically or none, reporting the
	// short book as *ports.StockConflictError.
	TryDecrement(ctx context.Context, quantities map[string]int) error
}

// Repository is the in-memory order ledger adapter.
type Repository struct {
	mu     sync.RWMutex
	stock  StockStore
	orders map[string]*domain.Order
}

func NewRepository(stock StockStore) *Repository {
	return &Repository{stock: stock, orders: map[string]*domain.Order{}}
}

// CreateOrder mirrors the postgres adapter's all-or-nothing semantics: the
// conditional decrement runs first and the ledger row appears only when every
// decrement succeeded.
func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	quantities := make(map[string]int, len(order.Items))
	for _, item := range order.Items {
		quantities[item.BookID] += item.Quantity
	}
	if err := r.stock.TryDecrement(ctx, quantities); err != nil {
		return nil, err
	}
	clone := *order
	clone.Items = append([]domain.LineItem(nil), order.Items...)
	clone.CreatedAt = time.Now()
	r.mu.Lock()
	r.orders[clone.ID] = &clone
	r.mu.Unlock()
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := cloneOrder(order)
	return clone, nil
}

func (r *Repository) ListByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			list = append(list, cloneOrder(order))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *Repository) ListAll(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		list = append(list, cloneOrder(order))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = append([]domain.LineItem(nil), order.Items...)
	return &clone
}
