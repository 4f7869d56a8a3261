package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pustakahq/bookstore-api/internal/domains/catalog/domain"
	"github.com/pustakahq/bookstore-api/internal/domains/catalog/ports"
)

// Service orchestrates the catalog bounded context use cases.
type Service struct {
	genres ports.GenreRepository
	books  ports.BookRepository
}

// NewService wires the catalog service with its repositories.
func NewService(genres ports.GenreRepository, books ports.BookRepository) *Service {
	return &Service{genres: genres, books: books}
}

// Allow-listed sort keys per listing. Anything else falls back to created_at.
var (
	genreSortKeys = map[string]bool{"name": true, "created_at": true}
	bookSortKeys  = map[string]bool{
		"title": true, "writer": true, "publisher": true,
		"publication_year": true, "price": true, "created_at": true,
	}
)

func sanitizeParams(params ports.ListParams, allowed map[string]bool) ports.ListParams {
	params = params.Normalize()
	if !allowed[params.SortBy] {
		params.SortBy = "created_at"
	}
	return params
}

// CreateGenre registers a new genre with an active-uniqueness check.
func (s *Service) CreateGenre(ctx context.Context, input ports.GenreInput) (*domain.Genre, error) {
	genre, err := domain.NewGenre(uuid.NewString(), input.Name)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.genres.Create(ctx, genre)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ListGenres returns a page of active genres plus the total count.
func (s *Service) ListGenres(ctx context.Context, params ports.ListParams) ([]*domain.Genre, int64, error) {
	genres, total, err := s.genres.List(ctx, sanitizeParams(params, genreSortKeys))
	if err != nil {
		return nil, 0, mapError(err)
	}
	return genres, total, nil
}

// GetGenre loads a single active genre.
func (s *Service) GetGenre(ctx context.Context, id string) (*domain.Genre, error) {
	genre, err := s.genres.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return genre, nil
}

// UpdateGenre renames a genre; active-uniqueness is re-checked by the repository.
func (s *Service) UpdateGenre(ctx context.Context, id string, input ports.GenreInput) (*domain.Genre, error) {
	genre, err := s.genres.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := genre.Rename(input.Name); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.genres.Update(ctx, genre)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// DeleteGenre soft-deletes a genre. Books keep their genre reference so
// historical orders and statistics stay intact.
func (s *Service) DeleteGenre(ctx context.Context, id string) error {
	return mapError(s.genres.SoftDelete(ctx, id))
}

// CreateBook registers a new book after checking the genre is active.
func (s *Service) CreateBook(ctx context.Context, input ports.BookInput) (*domain.Book, error) {
	book := &domain.Book{ID: uuid.NewString()}
	if err := applyBookInput(book, input); err != nil {
		return nil, mapError(err)
	}
	if err := book.Validate(); err != nil {
		return nil, mapError(err)
	}
	if err := s.requireActiveGenre(ctx, book.GenreID); err != nil {
		return nil, err
	}
	saved, err := s.books.Create(ctx, book)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ListBooks returns a page of active books plus the total count.
func (s *Service) ListBooks(ctx context.Context, params ports.ListParams) ([]*domain.Book, int64, error) {
	books, total, err := s.books.List(ctx, sanitizeParams(params, bookSortKeys))
	if err != nil {
		return nil, 0, mapError(err)
	}
	return books, total, nil
}

// GetBook loads a single active book.
func (s *Service) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return book, nil
}

// UpdateBook applies a partial mutation. A genre change is validated against
// the active genres; a direct stock write goes through the same non-negative
// invariant the order engine enforces.
func (s *Service) UpdateBook(ctx context.Context, id string, input ports.BookInput) (*domain.Book, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := applyBookInput(book, input); err != nil {
		return nil, mapError(err)
	}
	if input.GenreID != nil {
		if err := s.requireActiveGenre(ctx, book.GenreID); err != nil {
			return nil, err
		}
	}
	saved, err := s.books.Update(ctx, book)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// DeleteBook soft-deletes a book; historical order items keep referencing it.
func (s *Service) DeleteBook(ctx context.Context, id string) error {
	return mapError(s.books.SoftDelete(ctx, id))
}

// requireActiveGenre rejects book writes that point at a missing or
// soft-deleted genre. The miss surfaces as invalid input, not a 404 on the
// book operation itself.
func (s *Service) requireActiveGenre(ctx context.Context, genreID string) error {
	_, err := s.genres.GetByID(ctx, genreID)
	if err == nil {
		return nil
	}
	if errors.Is(err, ports.ErrNotFound) {
		return fmt.Errorf("%w: genre %s does not exist or is deleted", ErrInvalidInput, genreID)
	}
	return err
}

func applyBookInput(book *domain.Book, input ports.BookInput) error {
	if input.Title != nil {
		if err := book.Retitle(*input.Title); err != nil {
			return err
		}
	}
	if input.Writer != nil {
		if err := book.SetWriter(*input.Writer); err != nil {
			return err
		}
	}
	if input.Publisher != nil {
		book.Publisher = *input.Publisher
	}
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.PublicationYear != nil {
		if err := book.SetPublicationYear(*input.PublicationYear); err != nil {
			return err
		}
	}
	if input.Price != nil {
		if err := book.SetPrice(*input.Price); err != nil {
			return err
		}
	}
	if input.StockQuantity != nil {
		if err := book.SetStock(*input.StockQuantity); err != nil {
			return err
		}
	}
	if input.GenreID != nil {
		if err := book.SetGenre(*input.GenreID); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
