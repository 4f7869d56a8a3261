package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewOrder_RequiresUserAndItems(t *testing.T) {
	_, err := NewOrder("o1", "", []LineItem{{ID: "i1", BookID: "b1", Quantity: 1}})
	require.ErrorIs(t, err, ErrEmptyUserID)

	_, err = NewOrder("o1", "u1", nil)
	require.ErrorIs(t, err, ErrEmptyOrder)
}

func TestOrder_TotalQuantity(t *testing.T) {
	order, err := NewOrder("o1", "u1", []LineItem{
		{ID: "i1", BookID: "b1", Quantity: 2},
		{ID: "i2", BookID: "b2", Quantity: 3},
	})
	require.NoError(t, err)
	require.Equal(t, 5, order.TotalQuantity())
}
