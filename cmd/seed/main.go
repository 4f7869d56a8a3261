package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	catalogpostgres "github.com/pustakahq/bookstore-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/pustakahq/bookstore-api/internal/domains/catalog/application"
	catalogports "github.com/pustakahq/bookstore-api/internal/domains/catalog/ports"
	"github.com/pustakahq/bookstore-api/internal/platform/migrations"
	platformpostgres "github.com/pustakahq/bookstore-api/internal/platform/postgres"
)

// Development seeder. Populates a handful of genres and books so the API has
// data to serve right after first boot. Safe to re-run: duplicate titles and
// names are skipped.
func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	dsn := os.Getenv("POSTGRES_DSN")
	db, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		log.Fatalf("seed requires POSTGRES_DSN: %v", err)
	}
	if err := migrations.Run(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	catalog := catalogapp.NewService(
		catalogpostgres.NewGenreRepository(db),
		catalogpostgres.NewBookRepository(db),
	)

	genres := map[string]string{}
	for _, name := range []string{"Fantasy", "Science Fiction", "History", "Poetry"} {
		genre, err := catalog.CreateGenre(ctx, catalogports.GenreInput{Name: name})
		if err != nil {
			fmt.Printf("skipping genre %q: %v\n", name, err)
			continue
		}
		genres[name] = genre.ID
		fmt.Printf("created genre %q (%s)\n", name, genre.ID)
	}

	books := []struct {
		title, writer, genre string
		year                 int
		price                float64
		stock                int
	}{
		{"The Hobbit", "J.R.R. Tolkien", "Fantasy", 1937, 14.99, 50},
		{"Dune", "Frank Herbert", "Science Fiction", 1965, 12.50, 35},
		{"SPQR", "Mary Beard", "History", 2015, 18.00, 20},
		{"Leaves of Grass", "Walt Whitman", "Poetry", 1855, 9.75, 15},
	}
	for _, b := range books {
		genreID, ok := genres[b.genre]
		if !ok {
			fmt.Printf("skipping book %q: genre %q not seeded\n", b.title, b.genre)
			continue
		}
		input := catalogports.BookInput{
			Title:           &b.title,
			Writer:          &b.writer,
			GenreID:         &genreID,
			PublicationYear: &b.year,
			Price:           &b.price,
			StockQuantity:   &b.stock,
		}
		book, err := catalog.CreateBook(ctx, input)
		if err != nil {
			fmt.Printf("skipping book %q: %v\n", b.title, err)
			continue
		}
		fmt.Printf("created book %q (%s)\n", b.title, book.ID)
	}
}
