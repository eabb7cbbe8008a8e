package main

import (
	"context"
	"fmt"

	"github.com/ecofinds/ecofinds-api/internal/service"
)

// sampleListings are inserted on first boot when seeding is enabled so
// a fresh install has something to browse.
var sampleListings = []service.CreateListingInput{
	{
		Title:       "iPhone 13 - Excellent condition",
		Description: "Barely used iPhone 13 128GB in mint condition. All accessories included. No scratches or dents.",
		Price:       45000,
		Category:    "mobiles",
		Location:    "mumbai",
		SellerName:  "Rajesh Kumar",
		SellerPhone: "9876543210",
	},
	{
		Title:       "Honda City 2018 - Well maintained",
		Description: "Honda City VTi CVT 2018 model. Single owner, full service history. AC, power steering, ABS.",
		Price:       850000,
		Category:    "cars",
		Location:    "bangalore",
		SellerName:  "Priya Sharma",
		SellerPhone: "8765432109",
	},
	{
		Title:       "MacBook Air M1 - Like new",
		Description: "MacBook Air M1 2021, 8GB RAM, 256GB SSD. Used for 6 months only. Box and charger included.",
		Price:       75000,
		Category:    "electronics",
		Location:    "delhi",
		SellerName:  "Amit Singh",
		SellerPhone: "7654321098",
	},
	{
		Title:       "Sofa Set - 3+2 seater",
		Description: "Beautiful fabric sofa set in excellent condition. Very comfortable and stylish. Smoke-free home.",
		Price:       25000,
		Category:    "furniture",
		Location:    "pune",
		SellerName:  "Meera Patel",
		SellerPhone: "6543210987",
	},
	{
		Title:       "Designer Sarees - Silk Collection",
		Description: "Collection of 5 designer silk sarees, barely worn. Perfect for weddings and festivals.",
		Price:       8000,
		Category:    "fashion",
		Location:    "chennai",
		SellerName:  "Lakshmi Iyer",
		SellerPhone: "5432109876",
	},
}

// seedSampleListings inserts the sample listings if the listings table
// is empty. Soft-deleted rows count as populated: a table whose every
// listing has been deleted was still seeded once and must not reseed.
func (app *application) seedSampleListings() error {
	ctx := context.Background()

	count, err := app.listingStore.CountAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to count existing listings: %w", err)
	}
	if count > 0 {
		app.logger.Debug("Skipping sample listings, table not empty", "count", count)
		return nil
	}

	for _, input := range sampleListings {
		if _, err := app.listingService.Create(ctx, input); err != nil {
			return fmt.Errorf("failed to seed listing %q: %w", input.Title, err)
		}
	}

	app.logger.Info("Sample listings seeded", "count", len(sampleListings))
	return nil
}
