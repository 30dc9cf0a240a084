package domain

// Product is catalog data owned by the backend. The client never mutates it;
// cart and checkout items reference products by id only.
type Product struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	FinalPrice      int64  `json:"final_price"`
	OriginalPrice   int64  `json:"original_price"`
	DiscountPercent int64  `json:"discount_percent"`
	InStock         bool   `json:"in_stock"`
	ImageUrl        string `json:"image_url"`
	Category        string `json:"category"`
	Material        string `json:"material"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Material struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type PriceRange struct {
	Label string `json:"label"`
	Min   int64  `json:"min"`
	Max   int64  `json:"max"`
}
