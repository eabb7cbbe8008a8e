package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecofinds/ecofinds-api/internal/mocks"
	"github.com/ecofinds/ecofinds-api/internal/service"
)

func newSeedTestApp() (*application, *mocks.MockListingStore) {
	listingStore := mocks.NewMockListingStore()
	categoryStore := mocks.NewMockCategoryStore()
	logger := slog.Default()

	return &application{
		logger:         logger,
		listingStore:   listingStore,
		categoryStore:  categoryStore,
		listingService: service.NewListingService(listingStore, categoryStore, logger),
	}, listingStore
}

func TestSeedSampleListings(t *testing.T) {
	t.Parallel()

	app, listingStore := newSeedTestApp()

	require.NoError(t, app.seedSampleListings())
	assert.Len(t, listingStore.Listings, len(sampleListings))

	// A second boot must not duplicate the samples.
	require.NoError(t, app.seedSampleListings())
	assert.Len(t, listingStore.Listings, len(sampleListings))
}

func TestSeedSkipsTableWithOnlySoftDeletedRows(t *testing.T) {
	t.Parallel()

	app, listingStore := newSeedTestApp()
	require.NoError(t, app.seedSampleListings())

	// Soft-deleting every row leaves the table populated as far as the
	// seed gate is concerned; the next boot must not reseed.
	ctx := context.Background()
	for id := range listingStore.Listings {
		require.NoError(t, app.listingService.SoftDelete(ctx, id))
	}

	require.NoError(t, app.seedSampleListings())
	assert.Len(t, listingStore.Listings, len(sampleListings))
}
