package session

import (
	"strings"
	"sync"

	"github.com/lauraluxe/backend/internal/domain"
)

// Session is the per-browsing-session aggregate: cart lines, sommelier
// transcript, latest match set, and the presentation view state. All methods
// are safe for concurrent use; a late sommelier reply arriving after the
// panel was dismissed still applies cleanly.
type Session struct {
	ID string

	mu         sync.Mutex
	cart       []domain.CartLine
	transcript []domain.ChatTurn
	matches    []domain.Product
	awaiting   bool
	view       domain.ViewState
}

// New creates an empty session with the given id.
func New(id string) *Session {
	return &Session{
		ID:   id,
		view: domain.ViewState{ActiveTab: domain.TabAll},
	}
}

// AddToCart increments the line for p, creating it at quantity 1 on first
// add, and returns the resulting line.
func (s *Session) AddToCart(p domain.Product) domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].Product.ID == p.ID {
			s.cart[i].Quantity++
			return s.cart[i]
		}
	}

	line := domain.CartLine{Product: p, Quantity: 1}
	s.cart = append(s.cart, line)
	return line
}

// RemoveFromCart deletes the line for the given product id. Removing an
// unknown id is a no-op, not an error.
func (s *Session) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].Product.ID == productID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return
		}
	}
}

// CartLines returns a copy of the cart lines in insertion order.
func (s *Session) CartLines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]domain.CartLine, len(s.cart))
	copy(lines, s.cart)
	return lines
}

// CartTotal sums price x quantity over all lines. An empty cart totals 0.
func (s *Session) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, line := range s.cart {
		total += line.Product.Price * float64(line.Quantity)
	}
	return total
}

// CartCount returns the number of distinct lines, used for the bag badge.
func (s *Session) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cart)
}

// EnsureGreeting seeds the transcript with the fixed assistant greeting if
// no turn exists yet. It reports whether the greeting was added.
func (s *Session) EnsureGreeting(content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.transcript) > 0 {
		return false
	}
	s.transcript = append(s.transcript, domain.ChatTurn{
		Role:    domain.RoleAssistant,
		Content: content,
	})
	return true
}

// BeginSubmit validates and records a user turn and moves the session into
// the awaiting-reply state. A submit while a reply is outstanding is
// rejected with ErrSessionBusy; the second event is simply not taken.
func (s *Session) BeginSubmit(userText string) (string, error) {
	trimmed := strings.TrimSpace(userText)
	if trimmed == "" {
		return "", domain.ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.awaiting {
		return "", domain.ErrSessionBusy
	}
	s.awaiting = true
	s.transcript = append(s.transcript, domain.ChatTurn{
		Role:    domain.RoleUser,
		Content: trimmed,
	})
	return trimmed, nil
}

// CompleteSubmit appends the assistant turn, optionally replaces the match
// set wholesale, and returns the session to the idle state.
func (s *Session) CompleteSubmit(turn domain.ChatTurn, matches []domain.Product, replaceMatches bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcript = append(s.transcript, turn)
	if replaceMatches {
		s.matches = matches
	}
	s.awaiting = false
}

// Awaiting reports whether a collaborator reply is currently outstanding.
func (s *Session) Awaiting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaiting
}

// Transcript returns a copy of the chat turns in order.
func (s *Session) Transcript() []domain.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := make([]domain.ChatTurn, len(s.transcript))
	copy(turns, s.transcript)
	return turns
}

// Matches returns a copy of the latest resolved match set.
func (s *Session) Matches() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := make([]domain.Product, len(s.matches))
	copy(matches, s.matches)
	return matches
}

// View returns the current presentation view state.
func (s *Session) View() domain.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SetView replaces the presentation view state.
func (s *Session) SetView(v domain.ViewState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
}

// MarkCartShown flips the cart drawer visibility flag on. The cart
// aggregator emits this through its add hook; the flag itself lives in the
// view state, not in the aggregator.
func (s *Session) MarkCartShown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ShowCart = true
}
