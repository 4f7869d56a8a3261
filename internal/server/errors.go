package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/pustakahq/bookstore-api/internal/domains/catalog/application"
	catalogports "github.com/pustakahq/bookstore-api/internal/domains/catalog/ports"
	ordersapp "github.com/pustakahq/bookstore-api/internal/domains/orders/application"
	ordersports "github.com/pustakahq/bookstore-api/internal/domains/orders/ports"
	usersapp "github.com/pustakahq/bookstore-api/internal/domains/users/application"
	usersports "github.com/pustakahq/bookstore-api/internal/domains/users/ports"
)

// statusFor maps the error kinds the application layers signal to HTTP
// status codes. Unknown errors are treated as internal faults.
func statusFor(err error) int {
	var unknownBook *ordersports.UnknownBookError
	var insufficient *ordersports.InsufficientStockError
	var conflict *ordersports.StockConflictError
	switch {
	case errors.Is(err, catalogports.ErrNotFound),
		errors.Is(err, ordersports.ErrNotFound),
		errors.Is(err, usersports.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usersports.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, ordersapp.ErrInvalidInput),
		errors.Is(err, usersapp.ErrInvalidInput),
		errors.Is(err, catalogports.ErrDuplicateName),
		errors.Is(err, catalogports.ErrDuplicateTitle),
		errors.Is(err, usersports.ErrDuplicateEmail),
		errors.As(err, &unknownBook),
		errors.As(err, &insufficient),
		errors.As(err, &conflict):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the mapped error response. Internal faults get a generic
// message so storage details never leak to clients.
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	respondError(c, status, message)
}
