package ports

import (
	"context"

	"github.com/pustakahq/bookstore-api/internal/domains/catalog/domain"
)

// GenreInput carries the mutable genre fields from transport.
type GenreInput struct {
	Name string
}

// BookInput carries the mutable book fields from transport. Pointer fields
// distinguish "not provided" from zero values on partial updates.
type BookInput struct {
	Title           *string
	Writer          *string
	Publisher       *string
	Description     *string
	PublicationYear *int
	Price           *float64
	StockQuantity   *int
	GenreID         *string
}

// Service exposes catalog use cases to adapters.
type Service interface {
	CreateGenre(ctx context.Context, input GenreInput) (*domain.Genre, error)
	ListGenres(ctx context.Context, params ListParams) ([]*domain.Genre, int64, error)
	GetGenre(ctx context.Context, id string) (*domain.Genre, error)
	UpdateGenre(ctx context.Context, id string, input GenreInput) (*domain.Genre, error)
	DeleteGenre(ctx context.Context, id string) error

	CreateBook(ctx context.Context, input BookInput) (*domain.Book, error)
	ListBooks(ctx context.Context, params ListParams) ([]*domain.Book, int64, error)
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	UpdateBook(ctx context.Context, id string, input BookInput) (*domain.Book, error)
	DeleteBook(ctx context.Context, id string) error
}
