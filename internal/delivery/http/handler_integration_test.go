package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lauraluxe/backend/config"
	"github.com/lauraluxe/backend/internal/domain"
	"github.com/lauraluxe/backend/internal/infrastructure/catalog"
	"github.com/lauraluxe/backend/internal/infrastructure/session"
	"github.com/lauraluxe/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubGenClient is a scripted text-generation collaborator
type stubGenClient struct {
	reply string
	err   error
}

func (s *stubGenClient) GenerateReply(ctx context.Context, systemInstruction, prompt string) (string, error) {
	return s.reply, s.err
}

// setupTestRouter creates a router wired against the embedded seed catalog
// and the given collaborator stub
func setupTestRouter(t *testing.T, stub *stubGenClient) *gin.Engine {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:*"},
		},
	}

	store, err := catalog.NewStore()
	if err != nil {
		t.Fatalf("catalog.NewStore() error = %v", err)
	}

	sessions := session.NewStore(time.Minute)
	cart := usecase.NewCartService(store, func(sess *session.Session, _ domain.CartLine) {
		sess.MarkCartShown()
	})
	sommelier := usecase.NewSommelierService(store, stub)

	handler := NewHandler(store, cart, sommelier)
	return SetupRouter(cfg, handler, sessions)
}

// doJSON performs a request and decodes the JSON response body
func doJSON(t *testing.T, router *gin.Engine, method, path, sessionID, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
		}
	}
	return w, decoded
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := setupTestRouter(t, &stubGenClient{})

	w, resp := doJSON(t, router, "GET", "/health", "", "")
	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
	}
	if resp["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", resp["status"])
	}
	if resp["service"] != "lauraluxe-backend" {
		t.Errorf("service = %v, want lauraluxe-backend", resp["service"])
	}
}

func TestCatalogEndpoints(t *testing.T) {
	router := setupTestRouter(t, &stubGenClient{})

	t.Run("lists the full catalog by default", func(t *testing.T) {
		w, resp := doJSON(t, router, "GET", "/api/v1/catalog", "", "")
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200", w.Code)
		}
		if resp["count"] != float64(6) {
			t.Errorf("count = %v, want 6", resp["count"])
		}
	})

	t.Run("filters by tab", func(t *testing.T) {
		_, resp := doJSON(t, router, "GET", "/api/v1/catalog?tab=Woody", "", "")
		if resp["count"] != float64(1) {
			t.Errorf("count = %v, want 1", resp["count"])
		}
	})

	t.Run("filters by query", func(t *testing.T) {
		_, resp := doJSON(t, router, "GET", "/api/v1/catalog?q=aura", "", "")
		if resp["count"] != float64(6) {
			t.Errorf("count = %v, want 6 (brand match)", resp["count"])
		}

		_, resp = doJSON(t, router, "GET", "/api/v1/catalog?q=zzz", "", "")
		if resp["count"] != float64(0) {
			t.Errorf("count = %v, want 0", resp["count"])
		}
	})

	t.Run("returns a product by id", func(t *testing.T) {
		w, resp := doJSON(t, router, "GET", "/api/v1/catalog/2", "", "")
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200", w.Code)
		}
		if resp["name"] != "Santal Mystique" {
			t.Errorf("name = %v, want Santal Mystique", resp["name"])
		}
	})

	t.Run("unknown product is a 404", func(t *testing.T) {
		w, _ := doJSON(t, router, "GET", "/api/v1/catalog/99", "", "")
		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want 404", w.Code)
		}
	})
}

func TestCartEndpoints(t *testing.T) {
	router := setupTestRouter(t, &stubGenClient{})

	// Establish a session first
	w, _ := doJSON(t, router, "GET", "/api/v1/cart", "", "")
	sid := w.Header().Get(SessionHeader)
	if sid == "" {
		t.Fatal("no session id issued")
	}

	t.Run("add twice yields one line with quantity 2", func(t *testing.T) {
		doJSON(t, router, "POST", "/api/v1/cart/items", sid, `{"product_id": "1"}`)
		w, resp := doJSON(t, router, "POST", "/api/v1/cart/items", sid, `{"product_id": "1"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200", w.Code)
		}
		if resp["count"] != float64(1) {
			t.Errorf("count = %v, want 1", resp["count"])
		}
		// Midnight Bloom is 245
		if resp["total"] != float64(490) {
			t.Errorf("total = %v, want 490", resp["total"])
		}
		if resp["added"] != true {
			t.Errorf("added = %v, want true", resp["added"])
		}
	})

	t.Run("add marks the cart drawer as shown", func(t *testing.T) {
		_, view := doJSON(t, router, "GET", "/api/v1/view-state", sid, "")
		if view["showCart"] != true {
			t.Errorf("showCart = %v, want true after add", view["showCart"])
		}
	})

	t.Run("unknown product id is dropped silently", func(t *testing.T) {
		w, resp := doJSON(t, router, "POST", "/api/v1/cart/items", sid, `{"product_id": "99"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200", w.Code)
		}
		if resp["added"] != false {
			t.Errorf("added = %v, want false", resp["added"])
		}
		if resp["count"] != float64(1) {
			t.Errorf("count = %v, want unchanged 1", resp["count"])
		}
	})

	t.Run("missing body is a 400", func(t *testing.T) {
		w, _ := doJSON(t, router, "POST", "/api/v1/cart/items", sid, `{}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", w.Code)
		}
	})

	t.Run("remove deletes the line and removing again is a no-op", func(t *testing.T) {
		w, resp := doJSON(t, router, "DELETE", "/api/v1/cart/items/1", sid, "")
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200", w.Code)
		}
		if resp["count"] != float64(0) {
			t.Errorf("count = %v, want 0", resp["count"])
		}

		w, resp = doJSON(t, router, "DELETE", "/api/v1/cart/items/1", sid, "")
		if w.Code != http.StatusOK || resp["count"] != float64(0) {
			t.Errorf("repeat remove: status = %d count = %v, want 200/0", w.Code, resp["count"])
		}
	})

	t.Run("carts are isolated per session", func(t *testing.T) {
		w, resp := doJSON(t, router, "GET", "/api/v1/cart", "", "")
		other := w.Header().Get(SessionHeader)
		if other == sid {
			t.Fatal("expected a distinct session")
		}
		if resp["count"] != float64(0) {
			t.Errorf("fresh session cart count = %v, want 0", resp["count"])
		}
	})
}

func TestSommelierEndpoints(t *testing.T) {
	t.Run("first open seeds the greeting", func(t *testing.T) {
		router := setupTestRouter(t, &stubGenClient{})

		w, resp := doJSON(t, router, "GET", "/api/v1/sommelier", "", "")
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200", w.Code)
		}

		messages := resp["messages"].([]interface{})
		if len(messages) != 1 {
			t.Fatalf("messages = %d, want 1", len(messages))
		}
		first := messages[0].(map[string]interface{})
		if first["role"] != "assistant" {
			t.Errorf("role = %v, want assistant", first["role"])
		}
		if resp["awaiting"] != false {
			t.Errorf("awaiting = %v, want false", resp["awaiting"])
		}
		if len(resp["matches"].([]interface{})) != 0 {
			t.Errorf("matches = %v, want empty", resp["matches"])
		}
	})

	t.Run("submit strips the tag and returns matches", func(t *testing.T) {
		router := setupTestRouter(t, &stubGenClient{reply: "A lovely choice. [MATCH: 1, 3]"})

		w, resp := doJSON(t, router, "POST", "/api/v1/sommelier/messages", "", `{"message": "a rainy evening"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200", w.Code)
		}

		reply := resp["reply"].(map[string]interface{})
		if reply["content"] != "A lovely choice." {
			t.Errorf("reply = %v, want stripped text", reply["content"])
		}

		matches := resp["matches"].([]interface{})
		if len(matches) != 2 {
			t.Fatalf("matches = %d, want 2", len(matches))
		}
		ids := []string{
			matches[0].(map[string]interface{})["id"].(string),
			matches[1].(map[string]interface{})["id"].(string),
		}
		if ids[0] != "1" || ids[1] != "3" {
			t.Errorf("match ids = %v, want [1 3]", ids)
		}
	})

	t.Run("blank message is a 400", func(t *testing.T) {
		router := setupTestRouter(t, &stubGenClient{reply: "unused"})

		w, _ := doJSON(t, router, "POST", "/api/v1/sommelier/messages", "", `{"message": "   "}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", w.Code)
		}

		w, _ = doJSON(t, router, "POST", "/api/v1/sommelier/messages", "", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", w.Code)
		}
	})

	t.Run("collaborator failure answers 200 with the fallback turn", func(t *testing.T) {
		router := setupTestRouter(t, &stubGenClient{err: domain.ErrGenAIFailure})

		w, resp := doJSON(t, router, "POST", "/api/v1/sommelier/messages", "", `{"message": "anything"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200", w.Code)
		}
		reply := resp["reply"].(map[string]interface{})
		if !strings.Contains(reply["content"].(string), "digital atelier") {
			t.Errorf("reply = %v, want the atelier apology", reply["content"])
		}
	})
}

func TestViewStateEndpoints(t *testing.T) {
	router := setupTestRouter(t, &stubGenClient{})

	w, resp := doJSON(t, router, "GET", "/api/v1/view-state", "", "")
	sid := w.Header().Get(SessionHeader)
	if resp["activeTab"] != "All" {
		t.Errorf("activeTab = %v, want All", resp["activeTab"])
	}

	body := `{"showCart": false, "showSommelier": true, "activeTab": "Gourmand", "searchQuery": "cacao"}`
	w, resp = doJSON(t, router, "PUT", "/api/v1/view-state", sid, body)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}

	_, resp = doJSON(t, router, "GET", "/api/v1/view-state", sid, "")
	if resp["activeTab"] != "Gourmand" || resp["searchQuery"] != "cacao" || resp["showSommelier"] != true {
		t.Errorf("view state did not round-trip: %v", resp)
	}
}
