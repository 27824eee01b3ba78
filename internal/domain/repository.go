package domain

import "context"

// CatalogRepository defines read access to the fixed product catalog.
// Implementations are immutable after startup and safe for concurrent use.
type CatalogRepository interface {
	// List returns every product in catalog order.
	List() []Product
	// Get resolves a single product by id.
	Get(id string) (Product, bool)
	// Projection returns the reduced catalog sent to the collaborator.
	Projection() []CatalogEntry
}

// GenerativeClient defines the interface for the external text-generation
// collaborator. The core depends only on submitting one prompt and getting
// one text string back.
type GenerativeClient interface {
	GenerateReply(ctx context.Context, systemInstruction, prompt string) (string, error)
}
