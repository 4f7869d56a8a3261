package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pustakahq/bookstore-api/internal/domains/catalog/domain"
	"github.com/pustakahq/bookstore-api/internal/domains/catalog/ports"
	ordersdomain "github.com/pustakahq/bookstore-api/internal/domains/orders/domain"
	ordersports "github.com/pustakahq/bookstore-api/internal/domains/orders/ports"
)

var _ ordersports.Inventory = (*Store)(nil)

// Store is the in-memory catalog used when no database is configured and in
// tests. It keeps soft-deleted rows around, mirroring the postgres adapter's
// gorm.DeletedAt semantics, and doubles as the order engine's inventory view
// so the dev fallback stays consistent across contexts.
type Store struct {
	mu     sync.RWMutex
	genres map[string]*genreEntry
	books  map[string]*bookEntry
}

type genreEntry struct {
	genre   domain.Genre
	deleted bool
}

type bookEntry struct {
	book    domain.Book
	deleted bool
}

func NewStore() *Store {
	return &Store{
		genres: map[string]*genreEntry{},
		books:  map[string]*bookEntry{},
	}
}

// GenreRepo exposes the store as a genre repository.
func (s *Store) GenreRepo() *GenreRepository { return &GenreRepository{store: s} }

// BookRepo exposes the store as a book repository.
func (s *Store) BookRepo() *BookRepository { return &BookRepository{store: s} }

// SnapshotBooks implements the order engine's inventory port: active books
// only, missing ids absent from the result.
func (s *Store) SnapshotBooks(_ context.Context, ids []string) (map[string]*ordersdomain.BookSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshots := make(map[string]*ordersdomain.BookSnapshot, len(ids))
	for _, id := range ids {
		entry, ok := s.books[id]
		if !ok || entry.deleted {
			continue
		}
		snapshots[id] = &ordersdomain.BookSnapshot{
			ID:            entry.book.ID,
			Title:         entry.book.Title,
			Price:         entry.book.Price,
			StockQuantity: entry.book.StockQuantity,
		}
	}
	return snapshots, nil
}

// BookFacts resolves price and genre per book for statistics, soft-deleted
// rows included.
func (s *Store) BookFacts(_ context.Context, ids []string) (map[string]ordersdomain.BookFacts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	facts := make(map[string]ordersdomain.BookFacts, len(ids))
	for _, id := range ids {
		entry, ok := s.books[id]
		if !ok {
			continue
		}
		fact := ordersdomain.BookFacts{Price: entry.book.Price, GenreID: entry.book.GenreID}
		if genre, ok := s.genres[entry.book.GenreID]; ok {
			fact.GenreName = genre.genre.Name
		}
		facts[id] = fact
	}
	return facts, nil
}

// TryDecrement applies a conditional multi-book stock decrement atomically:
// either every book still holds enough stock and all are decremented, or
// nothing changes and the short book is reported as a stock conflict.
func (s *Store) TryDecrement(_ context.Context, quantities map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, qty := range quantities {
		entry, ok := s.books[id]
		if !ok || entry.deleted || entry.book.StockQuantity < qty {
			return &ordersports.StockConflictError{BookID: id}
		}
	}
	for id, qty := range quantities {
		s.books[id].book.StockQuantity -= qty
	}
	return nil
}

// GenreRepository is the in-memory genre persistence adapter.
type GenreRepository struct {
	store *Store
}

var _ ports.GenreRepository = (*GenreRepository)(nil)

func (r *GenreRepository) Create(_ context.Context, genre *domain.Genre) (*domain.Genre, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.genres {
		if !entry.deleted && strings.EqualFold(entry.genre.Name, genre.Name) {
			return nil, ports.ErrDuplicateName
		}
	}
	clone := *genre
	now := time.Now()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	s.genres[clone.ID] = &genreEntry{genre: clone}
	out := clone
	return &out, nil
}

func (r *GenreRepository) GetByID(_ context.Context, id string) (*domain.Genre, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.genres[id]
	if !ok || entry.deleted {
		return nil, ports.ErrNotFound
	}
	clone := entry.genre
	return &clone, nil
}

func (r *GenreRepository) List(_ context.Context, params ports.ListParams) ([]*domain.Genre, int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]domain.Genre, 0, len(s.genres))
	for _, entry := range s.genres {
		if entry.deleted {
			continue
		}
		if params.Query != "" && !containsFold(entry.genre.Name, params.Query) {
			continue
		}
		matched = append(matched, entry.genre)
	}
	sort.Slice(matched, func(i, j int) bool {
		var less bool
		switch params.SortBy {
		case "name":
			less = matched[i].Name < matched[j].Name
		default:
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		if params.Desc {
			return !less
		}
		return less
	})
	total := int64(len(matched))
	page := paginate(len(matched), params)
	genres := make([]*domain.Genre, 0, len(page))
	for _, i := range page {
		clone := matched[i]
		genres = append(genres, &clone)
	}
	return genres, total, nil
}

func (r *GenreRepository) Update(_ context.Context, genre *domain.Genre) (*domain.Genre, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.genres[genre.ID]
	if !ok || entry.deleted {
		return nil, ports.ErrNotFound
	}
	for id, other := range s.genres {
		if id != genre.ID && !other.deleted && strings.EqualFold(other.genre.Name, genre.Name) {
			return nil, ports.ErrDuplicateName
		}
	}
	entry.genre.Name = genre.Name
	entry.genre.UpdatedAt = time.Now()
	clone := entry.genre
	return &clone, nil
}

func (r *GenreRepository) SoftDelete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.genres[id]
	if !ok || entry.deleted {
		return ports.ErrNotFound
	}
	entry.deleted = true
	return nil
}

// BookRepository is the in-memory book persistence adapter.
type BookRepository struct {
	store *Store
}

var _ ports.BookRepository = (*BookRepository)(nil)

func (r *BookRepository) Create(_ context.Context, book *domain.Book) (*domain.Book, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.books {
		if !entry.deleted && strings.EqualFold(entry.book.Title, book.Title) {
			return nil, ports.ErrDuplicateTitle
		}
	}
	clone := *book
	now := time.Now()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	s.books[clone.ID] = &bookEntry{book: clone}
	out := clone
	return &out, nil
}

func (r *BookRepository) GetByID(_ context.Context, id string) (*domain.Book, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.books[id]
	if !ok || entry.deleted {
		return nil, ports.ErrNotFound
	}
	clone := entry.book
	return &clone, nil
}

func (r *BookRepository) List(_ context.Context, params ports.ListParams) ([]*domain.Book, int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]domain.Book, 0, len(s.books))
	for _, entry := range s.books {
		if entry.deleted {
			continue
		}
		if params.Query != "" &&
			!containsFold(entry.book.Title, params.Query) &&
			!containsFold(entry.book.Writer, params.Query) &&
			!containsFold(entry.book.Publisher, params.Query) {
			continue
		}
		matched = append(matched, entry.book)
	}
	sort.Slice(matched, func(i, j int) bool {
		less := lessBook(matched[i], matched[j], params.SortBy)
		if params.Desc {
			return !less
		}
		return less
	})
	total := int64(len(matched))
	page := paginate(len(matched), params)
	books := make([]*domain.Book, 0, len(page))
	for _, i := range page {
		clone := matched[i]
		books = append(books, &clone)
	}
	return books, total, nil
}

func (r *BookRepository) Update(_ context.Context, book *domain.Book) (*domain.Book, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.books[book.ID]
	if !ok || entry.deleted {
		return nil, ports.ErrNotFound
	}
	for id, other := range s.books {
		if id != book.ID && !other.deleted && strings.EqualFold(other.book.Title, book.Title) {
			return nil, ports.ErrDuplicateTitle
		}
	}
	created := entry.book.CreatedAt
	entry.book = *book
	entry.book.CreatedAt = created
	entry.book.UpdatedAt = time.Now()
	clone := entry.book
	return &clone, nil
}

func (r *BookRepository) SoftDelete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.books[id]
	if !ok || entry.deleted {
		return ports.ErrNotFound
	}
	entry.deleted = true
	return nil
}

func lessBook(a, b domain.Book, sortBy string) bool {
	switch sortBy {
	case "title":
		return a.Title < b.Title
	case "writer":
		return a.Writer < b.Writer
	case "publisher":
		return a.Publisher < b.Publisher
	case "publication_year":
		return a.PublicationYear < b.PublicationYear
	case "price":
		return a.Price < b.Price
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func paginate(total int, params ports.ListParams) []int {
	start := params.Offset()
	if start >= total {
		return nil
	}
	end := start + params.Limit
	if params.Limit < 1 || end > total {
		end = total
	}
	indexes := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		indexes = append(indexes, i)
	}
	return indexes
}
