package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyTitle      = errors.New("book title is required")
	ErrEmptyWriter     = errors.New("book writer is required")
	ErrEmptyGenreID    = errors.New("book genre is required")
	ErrNegativePrice   = errors.New("price must not be negative")
	ErrNegativeStock   = errors.New("stock quantity must not be negative")
	ErrInvalidYear     = errors.New("publication year must be positive")
)

// Book is the catalog aggregate. StockQuantity is only mutated through the
// order engine's conditional decrement or an explicit catalog update.
type Book struct {
	ID              string
	Title           string
	Writer          string
	Publisher       string
	Description     string
	PublicationYear int
	Price           float64
	StockQuantity   int
	GenreID         string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook validates and constructs a book aggregate.
func NewBook(id, title, writer, genreID string) (*Book, error) {
	book := &Book{ID: id}
	if err := book.Retitle(title); err != nil {
		return nil, err
	}
	if err := book.SetWriter(writer); err != nil {
		return nil, err
	}
	if err := book.SetGenre(genreID); err != nil {
		return nil, err
	}
	return book, nil
}

// Retitle trims and validates the title.
func (b *Book) Retitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	b.Title = title
	return nil
}

// SetWriter trims and validates the writer.
func (b *Book) SetWriter(writer string) error {
	writer = strings.TrimSpace(writer)
	if writer == "" {
		return ErrEmptyWriter
	}
	b.Writer = writer
	return nil
}

// SetGenre points the book at a genre. Existence of the genre is checked by
// the application service against the genre repository.
func (b *Book) SetGenre(genreID string) error {
	genreID = strings.TrimSpace(genreID)
	if genreID == "" {
		return ErrEmptyGenreID
	}
	b.GenreID = genreID
	return nil
}

// SetPrice rejects negative prices.
func (b *Book) SetPrice(price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	b.Price = price
	return nil
}

// SetStock rejects negative quantities.
func (b *Book) SetStock(quantity int) error {
	if quantity < 0 {
		return ErrNegativeStock
	}
	b.StockQuantity = quantity
	return nil
}

// SetPublicationYear accepts zero (unknown) or a positive year.
func (b *Book) SetPublicationYear(year int) error {
	if year < 0 {
		return ErrInvalidYear
	}
	b.PublicationYear = year
	return nil
}

// Validate re-applies all invariants for persistence.
func (b *Book) Validate() error {
	if err := b.Retitle(b.Title); err != nil {
		return err
	}
	if err := b.SetWriter(b.Writer); err != nil {
		return err
	}
	if err := b.SetGenre(b.GenreID); err != nil {
		return err
	}
	if err := b.SetPrice(b.Price); err != nil {
		return err
	}
	if err := b.SetStock(b.StockQuantity); err != nil {
		return err
	}
	return b.SetPublicationYear(b.PublicationYear)
}
