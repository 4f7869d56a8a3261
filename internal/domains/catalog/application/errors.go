package application

import (
	"errors"
	"fmt"

	"github.com/pustakahq/bookstore-api/internal/domains/catalog/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid catalog input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyGenreName) ||
		errors.Is(err, domain.ErrEmptyTitle) ||
		errors.Is(err, domain.ErrEmptyWriter) ||
		errors.Is(err, domain.ErrEmptyGenreID) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrNegativeStock) ||
		errors.Is(err, domain.ErrInvalidYear) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
