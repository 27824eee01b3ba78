package http

import (
	"github.com/gin-gonic/gin"
	"github.com/lauraluxe/backend/config"
	"github.com/lauraluxe/backend/internal/infrastructure/session"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, sessions *session.Store) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes, all scoped to the caller's browsing session
	v1 := router.Group("/api/v1")
	v1.Use(SessionMiddleware(sessions))
	{
		catalog := v1.Group("/catalog")
		{
			catalog.GET("", handler.ListCatalog)
			catalog.GET("/:id", handler.GetProduct)
		}

		cart := v1.Group("/cart")
		{
			cart.GET("", handler.GetCart)
			cart.POST("/items", handler.AddCartItem)
			cart.DELETE("/items/:id", handler.RemoveCartItem)
		}

		sommelier := v1.Group("/sommelier")
		{
			sommelier.GET("", handler.GetSommelier)
			sommelier.POST("/messages", handler.PostSommelierMessage)
		}

		v1.GET("/view-state", handler.GetViewState)
		v1.PUT("/view-state", handler.PutViewState)
	}

	return router
}
