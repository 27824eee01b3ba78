package usecase

import (
	"log"

	"github.com/lauraluxe/backend/internal/domain"
	"github.com/lauraluxe/backend/internal/infrastructure/session"
)

// AddHook is notified after a product is added to a cart. The aggregator
// emits the "the cart drawer should be shown" signal through it rather than
// storing any presentation state itself.
type AddHook func(sess *session.Session, line domain.CartLine)

// CartService applies cart operations to a browsing session, resolving
// product ids against the catalog. Ids that do not resolve are silently
// dropped, never surfaced as errors.
type CartService struct {
	catalog domain.CatalogRepository
	onAdd   AddHook
}

// NewCartService creates a cart service. The hook may be nil.
func NewCartService(catalog domain.CatalogRepository, onAdd AddHook) *CartService {
	return &CartService{
		catalog: catalog,
		onAdd:   onAdd,
	}
}

// Add increments the cart line for productID, creating it at quantity 1 on
// first add. It reports whether the id resolved; an unknown id leaves the
// cart unchanged.
func (s *CartService) Add(sess *session.Session, productID string) (domain.CartLine, bool) {
	product, ok := s.catalog.Get(productID)
	if !ok {
		log.Printf("[CART] Dropping add for unknown product id %q", productID)
		return domain.CartLine{}, false
	}

	line := sess.AddToCart(product)
	if s.onAdd != nil {
		s.onAdd(sess, line)
	}
	return line, true
}

// Remove deletes the line for productID. Removing an id with no line is a
// no-op.
func (s *CartService) Remove(sess *session.Session, productID string) {
	sess.RemoveFromCart(productID)
}

// Total sums price x quantity over the session's cart.
func (s *CartService) Total(sess *session.Session) float64 {
	return sess.CartTotal()
}
