package domain

// Category classifies a perfume by its dominant scent family. The set is
// closed; filtering compares categories exactly, never fuzzily.
type Category string

const (
	CategoryFloral   Category = "Floral"
	CategoryWoody    Category = "Woody"
	CategoryOriental Category = "Oriental"
	CategoryFresh    Category = "Fresh"
	CategoryGourmand Category = "Gourmand"
)

// TabAll is the wildcard filter tab that passes every category.
const TabAll = "All"

// Categories lists the scent families in display order.
var Categories = []Category{
	CategoryFloral,
	CategoryWoody,
	CategoryOriental,
	CategoryFresh,
	CategoryGourmand,
}

// ValidCategory reports whether c is one of the known scent families.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Notes holds the three ordered note lists of a scent profile.
// Order matters for display, not for matching.
type Notes struct {
	Top    []string `json:"top"`
	Middle []string `json:"middle"`
	Base   []string `json:"base"`
}

// Product represents a single perfume in the catalog. Products are immutable
// and loaded once at startup from the seed set; they are never destroyed
// during a session.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Rating      float64  `json:"rating"`
	Notes       Notes    `json:"notes"`
}

// CatalogEntry is the reduced projection of a Product sent to the
// text-generation collaborator. Price, brand, image, description, and
// rating are deliberately omitted to keep the payload small.
type CatalogEntry struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Notes    Notes    `json:"notes"`
}

// Project reduces a product to its collaborator-facing projection.
func (p Product) Project() CatalogEntry {
	return CatalogEntry{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Notes:    p.Notes,
	}
}
