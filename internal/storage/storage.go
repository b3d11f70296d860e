package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samvad-hq/hero-data-service/internal/domain"
)

// Package storage persists the mock API's heroes.

// ErrNotFound is returned when a hero id has no record.
var ErrNotFound = errors.New("hero not found")

// Store is the hero repository backing the mock API.
type Store interface {
	Close() error
	List() ([]domain.Hero, error)
	Get(id int) (domain.Hero, error)
	// Search returns heroes whose name contains term, case-insensitively.
	Search(term string) ([]domain.Hero, error)
	// Create stores hero under the next free id and returns the stored record.
	Create(hero domain.Hero) (domain.Hero, error)
	Update(hero domain.Hero) error
	Delete(id int) (domain.Hero, error)
	// Seed loads heroes when the store is empty and reports how many were written.
	Seed(heroes []domain.Hero) (int, error)
}

// NewStore creates the configured storage backend.
func NewStore(typ, path string) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))

	switch typ {
	case "", "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}
