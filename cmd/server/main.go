package main

import (
	"fmt"
	"log"
	"os"

	"github.com/lauraluxe/backend/config"
	httpDelivery "github.com/lauraluxe/backend/internal/delivery/http"
	"github.com/lauraluxe/backend/internal/domain"
	"github.com/lauraluxe/backend/internal/infrastructure/catalog"
	"github.com/lauraluxe/backend/internal/infrastructure/genai"
	"github.com/lauraluxe/backend/internal/infrastructure/session"
	"github.com/lauraluxe/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting L'Aura Luxe Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize the catalog store (embedded seed unless a file override is set)
	var catalogStore *catalog.Store
	if cfg.Catalog.Path != "" {
		catalogStore, err = catalog.NewStoreFromFile(cfg.Catalog.Path)
	} else {
		catalogStore, err = catalog.NewStore()
	}
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	sessionStore := session.NewStore(cfg.Session.TTL)
	log.Printf("Session store: %s (TTL: %s)", cfg.Session.Store, cfg.Session.TTL)

	genaiClient := genai.NewClient(
		cfg.GenAI.APIKey,
		cfg.GenAI.BaseURL,
		cfg.GenAI.Model,
		cfg.GenAI.Temperature,
		cfg.GenAI.Timeout,
	)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		genaiClient.SetDebug(true)
		log.Printf("GenAI client debug mode enabled")
	}

	log.Printf("GenAI configured: %s model=%s temperature=%.1f timeout=%s",
		cfg.GenAI.BaseURL, cfg.GenAI.Model, cfg.GenAI.Temperature, cfg.GenAI.Timeout)

	// Initialize usecase layer. Adding to the cart signals the presentation
	// layer to show the cart drawer.
	cartService := usecase.NewCartService(catalogStore, func(sess *session.Session, _ domain.CartLine) {
		sess.MarkCartShown()
	})
	sommelierService := usecase.NewSommelierService(catalogStore, genaiClient)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(catalogStore, cartService, sommelierService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, sessionStore)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
