package usecase

import (
	"strings"

	"github.com/lauraluxe/backend/internal/domain"
)

// Filter returns the subsequence of products matching the active tab and
// search query. The tab "All" passes every category; any other tab keeps
// only products whose category equals it exactly. The query is matched
// case-insensitively as a substring of the product name or brand; an empty
// query passes everything. Both predicates combine with AND and the output
// preserves catalog order.
func Filter(products []domain.Product, tab, query string) []domain.Product {
	needle := strings.ToLower(query)

	var filtered []domain.Product
	for _, p := range products {
		if tab != domain.TabAll && p.Category != domain.Category(tab) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Brand), needle) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}
