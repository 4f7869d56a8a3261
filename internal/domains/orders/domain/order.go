package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrEmptyUserID     = errors.New("order user is required")
	ErrInvalidQuantity = errors.New("item quantity must be greater than zero")
	ErrInvalidBookID   = errors.New("item book id is malformed")
)

// LineItem is one (book, quantity) pairing within an order. The unit price is
// deliberately not stored; statistics read the book's live price.
type LineItem struct {
	ID       string
	BookID   string
	Quantity int
}

// Order is a single purchase event. Orders and their items are created
// together exactly once and never mutated afterwards.
type Order struct {
	ID        string
	UserID    string
	Items     []LineItem
	CreatedAt time.Time
}

// NewOrder validates and constructs an order aggregate. Item-level quantity
// and id-shape checks happen upstream where the offending entry can be named.
func NewOrder(id, userID string, items []LineItem) (*Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	return &Order{ID: id, UserID: userID, Items: items}, nil
}

// TotalQuantity sums the item quantities.
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// BookSnapshot is the pre-transaction view of a book used to validate an
// order and price its receipt. The snapshot is advisory: the authoritative
// stock check is the conditional decrement inside the write transaction.
type BookSnapshot struct {
	ID            string
	Title         string
	Price         float64
	StockQuantity int
}

// Receipt is what the caller gets back from a successful order.
type Receipt struct {
	OrderID       string
	TotalQuantity int
	TotalPrice    float64
}
