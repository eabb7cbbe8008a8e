package api

import (
	"log/slog"
	"net/http"

	"github.com/ecofinds/ecofinds-api/internal/api/shared"
	"github.com/ecofinds/ecofinds-api/internal/service"
	"github.com/go-chi/chi/v5"
)

// CategoryCountResponse is the per-category active listing count.
type CategoryCountResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	listingService *service.ListingService
	logger         *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(listingService *service.ListingService, logger *slog.Logger) *CategoryHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CategoryHandler")
	}

	return &CategoryHandler{
		listingService: listingService,
		logger:         logger.With(slog.String("component", "category_handler")),
	}
}

// GetCategories handles GET /api/categories requests.
// Responds with the bare array of seeded categories.
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.listingService.Categories(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, categories)
}

// GetCategoryCount handles GET /api/categories/{name}/count requests.
// The name is not checked against the category table: listings store
// category as a free-text tag, so an unknown name simply counts zero.
func (h *CategoryHandler) GetCategoryCount(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Category name is required")
		return
	}

	count, err := h.listingService.CategoryCount(r.Context(), name)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CategoryCountResponse{
		Category: name,
		Count:    count,
	})
}
