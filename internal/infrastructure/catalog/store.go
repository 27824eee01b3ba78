package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/lauraluxe/backend/internal/domain"
)

//go:embed seed.json
var seedData []byte

// catalogFile is the on-disk shape of a catalog seed file
type catalogFile struct {
	Products []domain.Product `json:"products"`
}

// Store holds the fixed product catalog. It is populated once at startup,
// never mutated afterwards, and therefore safe for concurrent reads.
type Store struct {
	products []domain.Product
	byID     map[string]domain.Product
}

// NewStore builds the catalog from the embedded seed set.
func NewStore() (*Store, error) {
	return newStore(seedData)
}

// NewStoreFromFile builds the catalog from a seed file on disk, overriding
// the embedded set. Used for local experimentation with a different blend.
func NewStoreFromFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return newStore(data)
}

func newStore(data []byte) (*Store, error) {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	if len(file.Products) == 0 {
		return nil, fmt.Errorf("%w: no products", domain.ErrInvalidCatalog)
	}

	byID := make(map[string]domain.Product, len(file.Products))
	for _, p := range file.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: product %q has no id", domain.ErrInvalidCatalog, p.Name)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %q", domain.ErrInvalidCatalog, p.ID)
		}
		if !domain.ValidCategory(p.Category) {
			return nil, fmt.Errorf("%w: product %q has unknown category %q", domain.ErrInvalidCatalog, p.ID, p.Category)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("%w: product %q has negative price", domain.ErrInvalidCatalog, p.ID)
		}
		byID[p.ID] = p
	}

	log.Printf("[CATALOG] Loaded %d products", len(file.Products))

	return &Store{
		products: file.Products,
		byID:     byID,
	}, nil
}

// List returns every product in catalog order.
func (s *Store) List() []domain.Product {
	products := make([]domain.Product, len(s.products))
	copy(products, s.products)
	return products
}

// Get resolves a single product by id.
func (s *Store) Get(id string) (domain.Product, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Projection returns the reduced catalog sent to the collaborator.
func (s *Store) Projection() []domain.CatalogEntry {
	entries := make([]domain.CatalogEntry, len(s.products))
	for i, p := range s.products {
		entries[i] = p.Project()
	}
	return entries
}
