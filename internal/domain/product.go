package domain

// Product represents a product in the storefront catalog.
//
// JSON field names follow the persisted layout of the stored collections,
// so data written by one storage backend can be read by another unchanged.
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	Image         string  `json:"image"`
	Rating        float64 `json:"rating"`
	Sold          int     `json:"sold"`
	Location      string  `json:"location"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
}

// CategoryItem represents a browsable product category. The ID doubles as
// the slug products reference through their Category field; nothing enforces
// referential integrity, so deleting a category orphans its products.
type CategoryItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// CartItem is a product placed in the cart together with its quantity.
// Product fields are embedded so the persisted form inlines them.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}
