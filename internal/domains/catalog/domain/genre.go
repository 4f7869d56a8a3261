package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyGenreName = errors.New("genre name is required")
)

// Genre groups books for browsing and sales statistics.
type Genre struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewGenre builds a genre ensuring the naming invariant.
func NewGenre(id, name string) (*Genre, error) {
	genre := &Genre{ID: id}
	if err := genre.Rename(name); err != nil {
		return nil, err
	}
	return genre, nil
}

// Rename trims and validates the genre name.
func (g *Genre) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyGenreName
	}
	g.Name = name
	return nil
}

// Validate re-applies invariants for persistence.
func (g *Genre) Validate() error {
	return g.Rename(g.Name)
}
