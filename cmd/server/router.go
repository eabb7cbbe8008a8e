package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ecofinds/ecofinds-api/internal/api"
	apiMiddleware "github.com/ecofinds/ecofinds-api/internal/api/middleware"
	"github.com/ecofinds/ecofinds-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes and middleware.
// It accepts the application dependencies to create handlers and register routes.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	listingHandler := api.NewListingHandler(app.listingService, app.logger)
	categoryHandler := api.NewCategoryHandler(app.listingService, app.logger)
	uploadHandler := api.NewUploadHandler(app.fileStore, app.config.Upload.MaxFileSize, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Listing endpoints
		r.Get("/listings", listingHandler.ListListings)
		r.Post("/listings", listingHandler.CreateListing)
		r.Get("/listings/{id}", listingHandler.GetListing)
		r.Put("/listings/{id}", listingHandler.UpdateListing)
		r.Delete("/listings/{id}", listingHandler.DeleteListing)

		// Category endpoints
		r.Get("/categories", categoryHandler.GetCategories)
		r.Get("/categories/{name}/count", categoryHandler.GetCategoryCount)

		// Search and stats
		r.Get("/search", listingHandler.SearchListings)
		r.Get("/stats", listingHandler.GetStats)

		// Image upload
		r.Post("/upload", uploadHandler.UploadFiles)
	})

	// Uploaded images are served back by filename
	r.Get("/uploads/{filename}", uploadHandler.ServeFile)

	// Root endpoint advertises the API surface
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
			"message": "Welcome to EcoFinds API",
			"version": "1.0.0",
			"endpoints": map[string]string{
				"listings":   "/api/listings",
				"categories": "/api/categories",
				"search":     "/api/search",
				"upload":     "/api/upload",
			},
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
