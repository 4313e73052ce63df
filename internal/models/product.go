package models

// Product is a catalog item as returned by the product listing. It is
// read-only from the composer's point of view.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}
