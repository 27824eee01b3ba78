package domain

// CartLine is a (product, quantity) pair. The cart holds at most one line
// per product id, and a line's quantity is always at least 1; a line
// dropping to zero is removed, never retained.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Chat roles for transcript turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is a single utterance in a sommelier transcript. Turns are
// immutable once created and are only ever appended, never reordered or
// deleted within a session.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ViewState is the serializable presentation state of a browsing session:
// drawer visibility, active filter tab, and search text. It is owned by the
// presentation layer and carried here only so it can round-trip through the
// API; no core operation branches on it.
type ViewState struct {
	ShowCart      bool   `json:"showCart"`
	ShowSommelier bool   `json:"showSommelier"`
	ActiveTab     string `json:"activeTab"`
	SearchQuery   string `json:"searchQuery"`
}
