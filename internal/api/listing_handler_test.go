package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ecofinds/ecofinds-api/internal/mocks"
	"github.com/ecofinds/ecofinds-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the listing and category handlers onto a chi
// router backed by in-memory mock stores.
func newTestRouter(t *testing.T) (*chi.Mux, *mocks.MockListingStore) {
	t.Helper()

	listingStore := mocks.NewMockListingStore()
	svc := service.NewListingService(listingStore, mocks.NewMockCategoryStore(), nil)
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	listingHandler := NewListingHandler(svc, log)
	categoryHandler := NewCategoryHandler(svc, log)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", categoryHandler.GetCategories)
		r.Get("/categories/{name}/count", categoryHandler.GetCategoryCount)
		r.Get("/listings", listingHandler.ListListings)
		r.Post("/listings", listingHandler.CreateListing)
		r.Get("/listings/{id}", listingHandler.GetListing)
		r.Put("/listings/{id}", listingHandler.UpdateListing)
		r.Delete("/listings/{id}", listingHandler.DeleteListing)
		r.Get("/search", listingHandler.SearchListings)
		r.Get("/stats", listingHandler.GetStats)
	})
	return r, listingStore
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func createBody(overrides map[string]any) map[string]any {
	body := map[string]any{
		"title":        "iPhone 13 - Excellent condition",
		"description":  "Barely used iPhone 13 128GB.",
		"price":        45000,
		"category":     "mobiles",
		"location":     "mumbai",
		"seller_name":  "Rajesh Kumar",
		"seller_phone": "9876543210",
	}
	for k, v := range overrides {
		if v == nil {
			delete(body, k)
		} else {
			body[k] = v
		}
	}
	return body
}

func createListing(t *testing.T, router http.Handler, overrides map[string]any) int64 {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/listings", createBody(overrides))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp ListingEnvelope
	decodeBody(t, rec, &resp)
	require.NotNil(t, resp.Listing)
	return resp.Listing.ID
}

func TestCreateListingEndpoint(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/listings", createBody(nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp ListingEnvelope
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Listing created successfully", resp.Message)
	assert.True(t, resp.Listing.IsActive)
	assert.NotNil(t, resp.Listing.Images)
}

func TestCreateListingMissingSellerPhone(t *testing.T) {
	t.Parallel()
	router, listingStore := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/listings",
		createBody(map[string]any{"seller_phone": nil}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]any
	decodeBody(t, rec, &resp)
	assert.Contains(t, resp["error"], "seller_phone")

	// No row persisted.
	assert.Empty(t, listingStore.Listings)
}

func TestCreateListingMalformedBody(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/listings", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetListing(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	id := createListing(t, router, nil)

	rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/listings/%d", id), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/listings/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/listings/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteThenGetReturns404(t *testing.T) {
	t.Parallel()
	router, listingStore := newTestRouter(t)

	id := createListing(t, router, nil)

	rec := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/listings/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Reader sees a 404, but the row is still in storage.
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/listings/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, listingStore.Listings, id)

	// Deleting an unknown id is a 404.
	rec = doJSON(t, router, http.MethodDelete, "/api/listings/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateListingPartialEndpoint(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	id := createListing(t, router, nil)

	rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/listings/%d", id),
		map[string]any{"price": 40000})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListingEnvelope
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Listing updated successfully", resp.Message)
	assert.Equal(t, float64(40000), resp.Listing.Price)
	assert.Equal(t, "iPhone 13 - Excellent condition", resp.Listing.Title)

	rec = doJSON(t, router, http.MethodPut, "/api/listings/999", map[string]any{"price": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListListingsFilterAndSort(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	prices := []int{10000, 50000, 90000}
	categories := []string{"mobiles", "cars", "mobiles"}
	for i := range prices {
		createListing(t, router, map[string]any{"price": prices[i], "category": categories[i]})
	}

	rec := doJSON(t, router, http.MethodGet, "/api/listings?category=mobiles&sort=price-high", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListListingsResponse
	decodeBody(t, rec, &resp)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, float64(90000), resp.Listings[0].Price)
	assert.Equal(t, float64(10000), resp.Listings[1].Price)
}

func TestListListingsPaginationEnvelope(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	for i := 0; i < 5; i++ {
		createListing(t, router, nil)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/listings?page=2&per_page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListListingsResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, 3, resp.Pages)
	assert.Equal(t, 2, resp.CurrentPage)
	assert.Equal(t, 2, resp.PerPage)
	assert.True(t, resp.HasNext)
	assert.True(t, resp.HasPrev)

	// One page past the end: empty list, not an error.
	rec = doJSON(t, router, http.MethodGet, "/api/listings?page=4&per_page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &resp)
	assert.Empty(t, resp.Listings)
	assert.False(t, resp.HasNext)
}

func TestListListingsMalformedNumbers(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	for _, path := range []string{
		"/api/listings?min_price=abc",
		"/api/listings?max_price=12x",
		"/api/listings?page=one",
		"/api/listings?per_page=ten",
	} {
		rec := doJSON(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestSearchEndpoint(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	createListing(t, router, map[string]any{"title": "MacBook Air M1"})
	createListing(t, router, map[string]any{"title": "Honda City 2018"})

	rec := doJSON(t, router, http.MethodGet, "/api/search?q=macbook", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SearchResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "macbook", resp.Query)

	// Empty q short-circuits to an empty result.
	rec = doJSON(t, router, http.MethodGet, "/api/search", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &resp)
	assert.Zero(t, resp.Total)
	assert.NotNil(t, resp.Listings)
}

func TestStatsEndpoint(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	createListing(t, router, map[string]any{"category": "mobiles", "location": "mumbai"})
	createListing(t, router, map[string]any{"category": "cars", "location": "delhi"})

	rec := doJSON(t, router, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatsResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, 2, resp.TotalListings)
	assert.Equal(t, 1, resp.Categories["mobiles"])
	assert.Equal(t, 1, resp.Locations["delhi"])
}

func TestCategoriesEndpoint(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var categories []map[string]any
	decodeBody(t, rec, &categories)
	require.NotEmpty(t, categories)
	assert.Equal(t, "cars", categories[0]["name"])
}

func TestCategoryCountEndpoint(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	createListing(t, router, map[string]any{"category": "mobiles"})

	rec := doJSON(t, router, http.MethodGet, "/api/categories/mobiles/count", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CategoryCountResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "mobiles", resp.Category)
	assert.Equal(t, 1, resp.Count)
}

func TestHandlerContextPropagation(t *testing.T) {
	t.Parallel()

	// The handler must pass the request context through to the store.
	listingStore := mocks.NewMockListingStore()
	type key string
	seen := false
	listingStore.CountActiveFn = func(ctx context.Context, category string) (int, error) {
		seen = ctx.Value(key("marker")) == "yes"
		return 0, nil
	}
	svc := service.NewListingService(listingStore, mocks.NewMockCategoryStore(), nil)
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	handler := NewCategoryHandler(svc, log)

	r := chi.NewRouter()
	r.Get("/api/categories/{name}/count", handler.GetCategoryCount)

	req := httptest.NewRequest(http.MethodGet, "/api/categories/cars/count", nil)
	req = req.WithContext(context.WithValue(req.Context(), key("marker"), "yes"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, seen)
}
