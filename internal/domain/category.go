package domain

// Category is static reference data describing a browseable section of
// the marketplace. Rows are seeded once at first boot and are not
// mutable through any exposed endpoint.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}
