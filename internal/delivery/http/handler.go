package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lauraluxe/backend/internal/domain"
	"github.com/lauraluxe/backend/internal/infrastructure/session"
	"github.com/lauraluxe/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog   domain.CatalogRepository
	cart      *usecase.CartService
	sommelier *usecase.SommelierService
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog domain.CatalogRepository, cart *usecase.CartService, sommelier *usecase.SommelierService) *Handler {
	return &Handler{
		catalog:   catalog,
		cart:      cart,
		sommelier: sommelier,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "lauraluxe-backend",
		"version": "1.0.0",
	})
}

// ListCatalog returns the catalog filtered by tab and search query.
// Both parameters are optional; all inputs are valid by construction.
func (h *Handler) ListCatalog(c *gin.Context) {
	tab := c.DefaultQuery("tab", domain.TabAll)
	query := c.Query("q")

	products := usecase.Filter(h.catalog.List(), tab, query)
	if products == nil {
		products = []domain.Product{}
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns a single product by id
func (h *Handler) GetProduct(c *gin.Context) {
	product, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": domain.ErrProductNotFound.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, product)
}

// cartResponse renders the full cart state of a session
func cartResponse(sess *session.Session) gin.H {
	lines := sess.CartLines()
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return gin.H{
		"items": lines,
		"total": sess.CartTotal(),
		"count": sess.CartCount(),
	}
}

// GetCart returns the session's cart lines, total, and badge count
func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartResponse(sessionFrom(c)))
}

// addCartItemRequest is the body of a cart add request
type addCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// AddCartItem adds one unit of a product to the session's cart. An id that
// does not resolve against the catalog is dropped silently; the cart state
// is returned either way.
func (h *Handler) AddCartItem(c *gin.Context) {
	sess := sessionFrom(c)

	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "product_id is required",
		})
		return
	}

	_, added := h.cart.Add(sess, req.ProductID)

	resp := cartResponse(sess)
	resp["added"] = added
	c.JSON(http.StatusOK, resp)
}

// RemoveCartItem deletes the cart line for a product id. Removing an id
// with no line is a no-op, not an error.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	sess := sessionFrom(c)
	h.cart.Remove(sess, c.Param("id"))
	c.JSON(http.StatusOK, cartResponse(sess))
}

// GetSommelier returns the transcript and latest matches, seeding the
// greeting turn on first open of the panel.
func (h *Handler) GetSommelier(c *gin.Context) {
	sess := sessionFrom(c)
	h.sommelier.Greet(sess)

	matches := sess.Matches()
	if matches == nil {
		matches = []domain.Product{}
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": sess.Transcript(),
		"matches":  matches,
		"awaiting": sess.Awaiting(),
	})
}

// sommelierMessageRequest is the body of a sommelier submit
type sommelierMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// PostSommelierMessage submits one user turn to the recommendation session.
// An empty message is a 400 and a submit while a reply is outstanding is a
// 409; collaborator failures still answer 200 with the fallback turn.
func (h *Handler) PostSommelierMessage(c *gin.Context) {
	sess := sessionFrom(c)

	var req sommelierMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "message is required",
		})
		return
	}

	reply, err := h.sommelier.Submit(c.Request.Context(), sess, req.Message)
	switch err {
	case nil:
	case domain.ErrEmptyMessage:
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is empty"})
		return
	case domain.ErrSessionBusy:
		c.JSON(http.StatusConflict, gin.H{"error": "a reply is already in flight"})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	matches := sess.Matches()
	if matches == nil {
		matches = []domain.Product{}
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":   reply,
		"matches": matches,
	})
}

// GetViewState returns the session's presentation view state
func (h *Handler) GetViewState(c *gin.Context) {
	c.JSON(http.StatusOK, sessionFrom(c).View())
}

// PutViewState replaces the session's presentation view state
func (h *Handler) PutViewState(c *gin.Context) {
	sess := sessionFrom(c)

	var view domain.ViewState
	if err := c.ShouldBindJSON(&view); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid view state",
		})
		return
	}

	sess.SetView(view)
	c.JSON(http.StatusOK, sess.View())
}
