package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pustakahq/bookstore-api/internal/domains/catalog/domain"
	"github.com/pustakahq/bookstore-api/internal/domains/catalog/ports"
)

type fakeGenreRepo struct {
	genres     map[string]*domain.Genre
	lastParams ports.ListParams
}

func newFakeGenreRepo() *fakeGenreRepo {
	return &fakeGenreRepo{genres: map[string]*domain.Genre{}}
}

func (f *fakeGenreRepo) Create(_ context.Context, genre *domain.Genre) (*domain.Genre, error) {
	for _, existing := range f.genres {
		if strings.EqualFold(existing.Name, genre.Name) {
			return nil, ports.ErrDuplicateName
		}
	}
	clone := *genre
	f.genres[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (f *fakeGenreRepo) GetByID(_ context.Context, id string) (*domain.Genre, error) {
	if genre, ok := f.genres[id]; ok {
		clone := *genre
		return &clone, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeGenreRepo) List(_ context.Context, params ports.ListParams) ([]*domain.Genre, int64, error) {
	f.lastParams = params
	var out []*domain.Genre
	for _, genre := range f.genres {
		clone := *genre
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (f *fakeGenreRepo) Update(_ context.Context, genre *domain.Genre) (*domain.Genre, error) {
	if _, ok := f.genres[genre.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	clone := *genre
	f.genres[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (f *fakeGenreRepo) SoftDelete(_ context.Context, id string) error {
	if _, ok := f.genres[id]; !ok {
		return ports.ErrNotFound
	}
	delete(f.genres, id)
	return nil
}

type fakeBookRepo struct {
	books      map[string]*domain.Book
	lastParams ports.ListParams
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[string]*domain.Book{}}
}

func (f *fakeBookRepo) Create(_ context.Context, book *domain.Book) (*domain.Book, error) {
	for _, existing := range f.books {
		if strings.EqualFold(existing.Title, book.Title) {
			return nil, ports.ErrDuplicateTitle
		}
	}
	clone := *book
	f.books[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (f *fakeBookRepo) GetByID(_ context.Context, id string) (*domain.Book, error) {
	if book, ok := f.books[id]; ok {
		clone := *book
		return &clone, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeBookRepo) List(_ context.Context, params ports.ListParams) ([]*domain.Book, int64, error) {
	f.lastParams = params
	var out []*domain.Book
	for _, book := range f.books {
		clone := *book
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (f *fakeBookRepo) Update(_ context.Context, book *domain.Book) (*domain.Book, error) {
	if _, ok := f.books[book.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	clone := *book
	f.books[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (f *fakeBookRepo) SoftDelete(_ context.Context, id string) error {
	if _, ok := f.books[id]; !ok {
		return ports.ErrNotFound
	}
	delete(f.books, id)
	return nil
}

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func newCatalogFixture(t *testing.T) (*Service, *fakeGenreRepo, *fakeBookRepo, string) {
	t.Helper()
	genres := newFakeGenreRepo()
	books := newFakeBookRepo()
	svc := NewService(genres, books)
	genre, err := svc.CreateGenre(context.Background(), ports.GenreInput{Name: "Fantasy"})
	require.NoError(t, err)
	return svc, genres, books, genre.ID
}

func TestCreateGenre_TrimsAndRejectsEmptyName(t *testing.T) {
	svc := NewService(newFakeGenreRepo(), newFakeBookRepo())

	genre, err := svc.CreateGenre(context.Background(), ports.GenreInput{Name: "  History  "})
	require.NoError(t, err)
	require.Equal(t, "History", genre.Name)
	require.NotEmpty(t, genre.ID)

	_, err = svc.CreateGenre(context.Background(), ports.GenreInput{Name: "   "})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateGenre_DuplicateName(t *testing.T) {
	svc, _, _, _ := newCatalogFixture(t)

	_, err := svc.CreateGenre(context.Background(), ports.GenreInput{Name: "fantasy"})
	require.ErrorIs(t, err, ports.ErrDuplicateName)
}

func TestListGenres_SanitizesParams(t *testing.T) {
	svc, genres, _, _ := newCatalogFixture(t)

	_, _, err := svc.ListGenres(context.Background(), ports.ListParams{
		Page:   -2,
		Limit:  9999,
		SortBy: "password_hash",
		Desc:   true,
	})
	require.NoError(t, err)
	require.Equal(t, ports.DefaultPage, genres.lastParams.Page)
	require.Equal(t, ports.DefaultLimit, genres.lastParams.Limit)
	require.Equal(t, "created_at", genres.lastParams.SortBy)
	require.True(t, genres.lastParams.Desc)
}

func TestCreateBook_RequiresActiveGenre(t *testing.T) {
	svc, _, books, genreID := newCatalogFixture(t)

	input := ports.BookInput{
		Title:         strPtr("Dune"),
		Writer:        strPtr("Frank Herbert"),
		GenreID:       strPtr(genreID),
		Price:         floatPtr(12.5),
		StockQuantity: intPtr(10),
	}
	book, err := svc.CreateBook(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, "Dune", book.Title)
	require.Len(t, books.books, 1)

	input.Title = strPtr("Other")
	input.GenreID = strPtr("missing-genre")
	_, err = svc.CreateBook(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Contains(t, err.Error(), "missing-genre")
}

func TestCreateBook_ValidatesFields(t *testing.T) {
	svc, _, _, genreID := newCatalogFixture(t)

	_, err := svc.CreateBook(context.Background(), ports.BookInput{
		Writer:  strPtr("Anonymous"),
		GenreID: strPtr(genreID),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyTitle)

	_, err = svc.CreateBook(context.Background(), ports.BookInput{
		Title:   strPtr("Dune"),
		Writer:  strPtr("Frank Herbert"),
		GenreID: strPtr(genreID),
		Price:   floatPtr(-1),
	})
	require.ErrorIs(t, err, domain.ErrNegativePrice)

	_, err = svc.CreateBook(context.Background(), ports.BookInput{
		Title:         strPtr("Dune"),
		Writer:        strPtr("Frank Herbert"),
		GenreID:       strPtr(genreID),
		StockQuantity: intPtr(-5),
	})
	require.ErrorIs(t, err, domain.ErrNegativeStock)
}

func TestUpdateBook_PartialMutation(t *testing.T) {
	svc, _, _, genreID := newCatalogFixture(t)

	book, err := svc.CreateBook(context.Background(), ports.BookInput{
		Title:         strPtr("Dune"),
		Writer:        strPtr("Frank Herbert"),
		GenreID:       strPtr(genreID),
		Price:         floatPtr(12.5),
		StockQuantity: intPtr(10),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateBook(context.Background(), book.ID, ports.BookInput{
		Price: floatPtr(15),
	})
	require.NoError(t, err)
	require.InDelta(t, 15.0, updated.Price, 1e-9)
	require.Equal(t, "Dune", updated.Title)
	require.Equal(t, 10, updated.StockQuantity)
}

func TestUpdateBook_GenreChangeValidated(t *testing.T) {
	svc, _, _, genreID := newCatalogFixture(t)

	book, err := svc.CreateBook(context.Background(), ports.BookInput{
		Title:         strPtr("Dune"),
		Writer:        strPtr("Frank Herbert"),
		GenreID:       strPtr(genreID),
		Price:         floatPtr(12.5),
		StockQuantity: intPtr(10),
	})
	require.NoError(t, err)

	_, err = svc.UpdateBook(context.Background(), book.ID, ports.BookInput{
		GenreID: strPtr("nope"),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteGenre_NotFound(t *testing.T) {
	svc, _, _, _ := newCatalogFixture(t)
	err := svc.DeleteGenre(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
