package application

import (
	"errors"
	"fmt"

	"github.com/pustakahq/bookstore-api/internal/domains/orders/domain"
)

// ErrInvalidInput signals the request violated a domain invariant before any
// storage work happened.
var ErrInvalidInput = errors.New("invalid order input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyOrder) ||
		errors.Is(err, domain.ErrEmptyUserID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidBookID) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
