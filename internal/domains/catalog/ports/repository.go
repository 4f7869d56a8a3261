package ports

import (
	"context"
	"errors"

	"github.com/pustakahq/bookstore-api/internal/domains/catalog/domain"
)

var (
	ErrNotFound       = errors.New("catalog record not found")
	ErrDuplicateName  = errors.New("an active genre with this name already exists")
	ErrDuplicateTitle = errors.New("an active book with this title already exists")
)

// ListParams carries pagination, search, and sorting for catalog listings.
// SortBy is expected to be pre-validated against the allow-list by the
// application service; repositories may trust it.
type ListParams struct {
	Page   int
	Limit  int
	Query  string
	SortBy string
	Desc   bool
}

// Offset derives the row offset from page/limit.
func (p ListParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Pagination bounds shared by services and transport.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Normalize clamps page and limit to their defaults. Sort keys are validated
// separately because each listing carries its own allow-list.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		p.Limit = DefaultLimit
	}
	return p
}

// GenreRepository persists genres with soft-delete semantics: deleted rows are
// invisible to every method here but remain referenced by historical orders.
type GenreRepository interface {
	Create(ctx context.Context, genre *domain.Genre) (*domain.Genre, error)
	GetByID(ctx context.Context, id string) (*domain.Genre, error)
	List(ctx context.Context, params ListParams) ([]*domain.Genre, int64, error)
	Update(ctx context.Context, genre *domain.Genre) (*domain.Genre, error)
	SoftDelete(ctx context.Context, id string) error
}

// BookRepository persists books with soft-delete semantics.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context, params ListParams) ([]*domain.Book, int64, error)
	Update(ctx context.Context, book *domain.Book) (*domain.Book, error)
	SoftDelete(ctx context.Context, id string) error
}
