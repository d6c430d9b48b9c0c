package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/middleware"
	"library-backend/pkg/container"
)

// SetupRouter wires every route. The authentication gate runs globally and
// decides per route template, so new routes are protected unless listed in
// middleware.PublicRoutes.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Authenticate(c.JWTManager, middleware.PublicRoutes),
	)

	router.GET("/health", healthCheckHandler(c))

	api := router.Group("/api")
	{
		setupAuthRoutes(api, c)
		setupBookRoutes(api, c)
		setupLoanRoutes(api, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(api *gin.RouterGroup, c *container.Container) {
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(c.AuthLimiter))
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(api *gin.RouterGroup, c *container.Container) {
	books := api.Group("/books")
	{
		// Public catalog
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/available", c.BookHandler.ListAvailableBooks)
		books.GET("/search", c.BookHandler.SearchBooks)
		books.GET("/:id", c.BookHandler.GetBook)

		// Authenticated
		books.GET("/export", c.BookHandler.ExportBooks)
		books.POST("", c.LendingHandler.AddBook)
		books.PUT("/:id", c.LendingHandler.UpdateBook)
		books.DELETE("/:id", c.LendingHandler.DeleteBook)
		books.POST("/:id/borrow", c.LendingHandler.Borrow)
		books.POST("/:id/return", c.LendingHandler.Return)
		books.GET("/:id/loans", c.LendingHandler.BookLoans)
	}
}

// ========================================
// LOAN ROUTES
// ========================================
func setupLoanRoutes(api *gin.RouterGroup, c *container.Container) {
	loans := api.Group("/loans")
	{
		loans.GET("/me", c.LendingHandler.MyLoans)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		services, healthy := appCtx.Health(c.Request.Context())

		status, code := "ok", http.StatusOK
		if !healthy {
			status, code = "unavailable", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  services,
		})
	}
}
