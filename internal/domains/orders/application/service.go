package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pustakahq/bookstore-api/internal/domains/orders/domain"
	"github.com/pustakahq/bookstore-api/internal/domains/orders/ports"
)

// Service is the order engine plus the statistics aggregator.
type Service struct {
	repo      ports.Repository
	inventory ports.Inventory
}

// NewService wires the order engine with the ledger repository and the
// inventory read view.
func NewService(repo ports.Repository, inventory ports.Inventory) *Service {
	return &Service{repo: repo, inventory: inventory}
}

// PlaceOrder validates the request against a snapshot read, then hands the
// order to the repository for the atomic create-order/create-items/decrement
// transaction. The snapshot check is advisory: the repository re-enforces the
// stock invariant with a conditional decrement at commit time, so a losing
// race surfaces as *ports.StockConflictError rather than oversold inventory.
func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Receipt, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, mapError(domain.ErrEmptyUserID)
	}
	items, err := normalizeItems(input.Items)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.BookID)
	}
	snapshots, err := s.inventory.SnapshotBooks(ctx, ids)
	if err != nil {
		return nil, err
	}

	var totalPrice float64
	lines := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		snap, ok := snapshots[item.BookID]
		if !ok {
			return nil, &ports.UnknownBookError{BookID: item.BookID}
		}
		if item.Quantity > snap.StockQuantity {
			return nil, &ports.InsufficientStockError{
				BookID:    item.BookID,
				Requested: item.Quantity,
				Available: snap.StockQuantity,
			}
		}
		totalPrice += snap.Price * float64(item.Quantity)
		lines = append(lines, domain.LineItem{
			ID:       uuid.NewString(),
			BookID:   item.BookID,
			Quantity: item.Quantity,
		})
	}

	order, err := domain.NewOrder(uuid.NewString(), input.UserID, lines)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}
	return &domain.Receipt{
		OrderID:       saved.ID,
		TotalQuantity: saved.TotalQuantity(),
		TotalPrice:    totalPrice,
	}, nil
}

// GetOrder loads one order. Callers only ever see their own orders; a foreign
// order id reads as not found.
func (s *Service) GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ports.ErrNotFound
	}
	return order, nil
}

// ListOrders returns the caller's orders, newest first.
func (s *Service) ListOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ComputeStatistics runs the read-only full scan over the order ledger.
func (s *Service) ComputeStatistics(ctx context.Context) (*domain.Statistics, error) {
	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	ids := make([]string, 0)
	for _, order := range orders {
		for _, item := range order.Items {
			if !seen[item.BookID] {
				seen[item.BookID] = true
				ids = append(ids, item.BookID)
			}
		}
	}
	facts, err := s.inventory.BookFacts(ctx, ids)
	if err != nil {
		return nil, err
	}
	stats := domain.ComputeStatistics(orders, facts)
	return &stats, nil
}

// normalizeItems rejects malformed entries and merges duplicate book ids,
// summing quantities while preserving first-seen order.
func normalizeItems(items []ports.ItemInput) ([]ports.ItemInput, error) {
	if len(items) == 0 {
		return nil, mapError(domain.ErrEmptyOrder)
	}
	index := map[string]int{}
	merged := make([]ports.ItemInput, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: %w (book %s)", ErrInvalidInput, domain.ErrInvalidQuantity, item.BookID)
		}
		if _, err := uuid.Parse(item.BookID); err != nil {
			return nil, fmt.Errorf("%w: %w (%q)", ErrInvalidInput, domain.ErrInvalidBookID, item.BookID)
		}
		if at, ok := index[item.BookID]; ok {
			merged[at].Quantity += item.Quantity
			continue
		}
		index[item.BookID] = len(merged)
		merged = append(merged, item)
	}
	return merged, nil
}

var _ ports.Service = (*Service)(nil)
