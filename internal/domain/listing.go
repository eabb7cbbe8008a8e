package domain

import (
	"time"
)

// Listing represents a single marketplace item offered for sale.
// Category and location are free-text tags: they should match a known
// Category name but are deliberately not foreign-key enforced.
type Listing struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	SellerName  string    `json:"seller_name"`
	SellerPhone string    `json:"seller_phone"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	IsActive    bool      `json:"is_active"`
}

// NewListing creates a Listing from client-supplied fields. The ID is
// assigned by the store on insert. Returns a *ValidationError naming
// the first missing or invalid field.
func NewListing(
	title, description string,
	price float64,
	category, location, sellerName, sellerPhone string,
	images []string,
) (*Listing, error) {
	now := time.Now().UTC()
	listing := &Listing{
		Title:       title,
		Description: description,
		Price:       price,
		Category:    category,
		Location:    location,
		SellerName:  sellerName,
		SellerPhone: sellerPhone,
		Images:      images,
		CreatedAt:   now,
		UpdatedAt:   now,
		IsActive:    true,
	}
	if listing.Images == nil {
		listing.Images = []string{}
	}

	if err := listing.Validate(); err != nil {
		return nil, err
	}

	return listing, nil
}

// Validate checks the Listing's client-supplied fields in declaration
// order and returns a *ValidationError for the first failure.
func (l *Listing) Validate() error {
	if l.Title == "" {
		return NewValidationError("title", "must not be empty")
	}
	if l.Description == "" {
		return NewValidationError("description", "must not be empty")
	}
	if l.Price < 0 {
		return NewValidationError("price", "must not be negative")
	}
	if l.Category == "" {
		return NewValidationError("category", "must not be empty")
	}
	if l.Location == "" {
		return NewValidationError("location", "must not be empty")
	}
	if l.SellerName == "" {
		return NewValidationError("seller_name", "must not be empty")
	}
	if l.SellerPhone == "" {
		return NewValidationError("seller_phone", "must not be empty")
	}
	return nil
}

// Deactivate soft-deletes the listing. The transition is terminal:
// there is no way back to the active state. Calling it on an already
// inactive listing still refreshes UpdatedAt, matching the delete
// endpoint's idempotent-but-restamping behavior.
func (l *Listing) Deactivate() {
	l.IsActive = false
	l.UpdatedAt = time.Now().UTC()
}

// Touch refreshes the UpdatedAt timestamp. Every successful mutating
// update goes through here; CreatedAt is never changed after creation.
func (l *Listing) Touch() {
	l.UpdatedAt = time.Now().UTC()
}
