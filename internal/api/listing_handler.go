// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ecofinds/ecofinds-api/internal/api/shared"
	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/platform/logger"
	"github.com/ecofinds/ecofinds-api/internal/service"
	"github.com/go-chi/chi/v5"
)

// CreateListingRequest represents the request body for creating a listing.
// Price is a pointer so a missing field is distinguishable from zero.
type CreateListingRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	SellerName  string   `json:"seller_name"`
	SellerPhone string   `json:"seller_phone"`
	Images      []string `json:"images"`
}

// Validate checks required fields in the same order the API has always
// reported them, returning a *domain.ValidationError naming the first
// missing one.
func (req *CreateListingRequest) Validate() error {
	if req.Title == "" {
		return domain.NewValidationError("title", "is required")
	}
	if req.Description == "" {
		return domain.NewValidationError("description", "is required")
	}
	if req.Price == nil {
		return domain.NewValidationError("price", "is required")
	}
	if req.Category == "" {
		return domain.NewValidationError("category", "is required")
	}
	if req.Location == "" {
		return domain.NewValidationError("location", "is required")
	}
	if req.SellerName == "" {
		return domain.NewValidationError("seller_name", "is required")
	}
	if req.SellerPhone == "" {
		return domain.NewValidationError("seller_phone", "is required")
	}
	return nil
}

// UpdateListingRequest represents a partial update: only fields present
// in the JSON body are applied.
type UpdateListingRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Category    *string   `json:"category"`
	Location    *string   `json:"location"`
	SellerName  *string   `json:"seller_name"`
	SellerPhone *string   `json:"seller_phone"`
	Images      *[]string `json:"images"`
}

// ListListingsResponse is the paged index envelope.
type ListListingsResponse struct {
	Listings    []*domain.Listing `json:"listings"`
	Total       int               `json:"total"`
	Pages       int               `json:"pages"`
	CurrentPage int               `json:"current_page"`
	PerPage     int               `json:"per_page"`
	HasNext     bool              `json:"has_next"`
	HasPrev     bool              `json:"has_prev"`
}

// ListingEnvelope wraps a listing in the write endpoints' response shape.
type ListingEnvelope struct {
	Message string          `json:"message"`
	Listing *domain.Listing `json:"listing"`
}

// SearchResponse is the capped quick-search envelope.
type SearchResponse struct {
	Listings []*domain.Listing `json:"listings"`
	Total    int               `json:"total"`
	Query    string            `json:"query"`
}

// StatsResponse aggregates active-listing counts.
type StatsResponse struct {
	TotalListings int            `json:"total_listings"`
	Categories    map[string]int `json:"categories"`
	Locations     map[string]int `json:"locations"`
}

// ListingHandler handles listing-related HTTP requests.
type ListingHandler struct {
	listingService *service.ListingService
	logger         *slog.Logger
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listingService *service.ListingService, logger *slog.Logger) *ListingHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ListingHandler")
	}

	return &ListingHandler{
		listingService: listingService,
		logger:         logger.With(slog.String("component", "listing_handler")),
	}
}

// ListListings handles GET /api/listings requests.
// All filter, sort and paging parameters are optional; malformed
// numeric parameters are client errors.
func (h *ListingHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.listingService.List(r.Context(), *params)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListListingsResponse{
		Listings:    result.Listings,
		Total:       result.Total,
		Pages:       result.Pages,
		CurrentPage: result.CurrentPage,
		PerPage:     result.PerPage,
		HasNext:     result.HasNext,
		HasPrev:     result.HasPrev,
	})
}

// GetListing handles GET /api/listings/{id} requests.
// Soft-deleted listings are reported as missing.
func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	id, ok := listingID(w, r)
	if !ok {
		return
	}

	listing, err := h.listingService.GetActive(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, listing)
}

// CreateListing handles POST /api/listings requests.
func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateListingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := req.Validate(); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	listing, err := h.listingService.Create(r.Context(), service.CreateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		Location:    req.Location,
		SellerName:  req.SellerName,
		SellerPhone: req.SellerPhone,
		Images:      req.Images,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("listing created", slog.Int64("listing_id", listing.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, ListingEnvelope{
		Message: "Listing created successfully",
		Listing: listing,
	})
}

// UpdateListing handles PUT /api/listings/{id} requests.
// The body is a partial document; absent fields keep their values.
func (h *ListingHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	id, ok := listingID(w, r)
	if !ok {
		return
	}

	var req UpdateListingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	listing, err := h.listingService.Update(r.Context(), id, service.ListingUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Location:    req.Location,
		SellerName:  req.SellerName,
		SellerPhone: req.SellerPhone,
		Images:      req.Images,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListingEnvelope{
		Message: "Listing updated successfully",
		Listing: listing,
	})
}

// DeleteListing handles DELETE /api/listings/{id} requests.
// The delete is soft: the row stays in storage flagged inactive.
func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id, ok := listingID(w, r)
	if !ok {
		return
	}

	if err := h.listingService.SoftDelete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"message": "Listing deleted successfully",
	})
}

// SearchListings handles GET /api/search requests.
// An empty q returns an empty result set without touching the store.
func (h *ListingHandler) SearchListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	category := queryOrDefault(r, "category", "all")
	location := queryOrDefault(r, "location", "all")

	listings, err := h.listingService.Search(r.Context(), q, category, location)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SearchResponse{
		Listings: listings,
		Total:    len(listings),
		Query:    q,
	})
}

// GetStats handles GET /api/stats requests.
func (h *ListingHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.listingService.Stats(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StatsResponse{
		TotalListings: stats.TotalListings,
		Categories:    stats.Categories,
		Locations:     stats.Locations,
	})
}

// listingID extracts and parses the {id} path parameter, writing the
// error response itself when the value is missing or malformed.
func listingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid listing ID")
		return 0, false
	}
	return id, true
}

// parseListParams reads the index endpoint's query string. Numeric
// parameters that fail to parse are reported as client input errors.
func parseListParams(r *http.Request) (*service.ListParams, error) {
	query := r.URL.Query()

	params := &service.ListParams{
		Category: queryOrDefault(r, "category", "all"),
		Location: queryOrDefault(r, "location", "all"),
		Search:   query.Get("search"),
		Sort:     queryOrDefault(r, "sort", "newest"),
		Page:     1,
		PerPage:  service.DefaultPerPage,
	}

	if raw := query.Get("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, domain.NewValidationError("min_price", "must be a number")
		}
		params.MinPrice = &v
	}
	if raw := query.Get("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, domain.NewValidationError("max_price", "must be a number")
		}
		params.MaxPrice = &v
	}
	if raw := query.Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, domain.NewValidationError("page", "must be a number")
		}
		params.Page = v
	}
	if raw := query.Get("per_page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, domain.NewValidationError("per_page", "must be a number")
		}
		params.PerPage = v
	}

	return params, nil
}

func queryOrDefault(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}
