package domain

import "time"

// CartItem is a line in the server cart. ItemTotal and the price fields are
// server-computed; an optimistic copy carries ItemTotal 0 until the cart is
// refetched.
type CartItem struct {
	ID              int64     `json:"id"`
	ProductID       int64     `json:"product_id"`
	Name            string    `json:"name"`
	Quantity        int64     `json:"quantity"`
	SelectedVariant string    `json:"selected_variant,omitempty"`
	FinalPrice      int64     `json:"final_price"`
	OriginalPrice   int64     `json:"original_price"`
	ItemTotal       int64     `json:"item_total"`
	ImageUrl        string    `json:"image_url"`
	AddedAt         time.Time `json:"added_at"`
}

// Cart is the singleton per-session cart.
// Invariant: ItemCount == len(Items), TotalQuantity == sum of item quantities.
type Cart struct {
	ID             int64      `json:"id"`
	Items          []CartItem `json:"items"`
	ItemCount      int64      `json:"item_count"`
	TotalQuantity  int64      `json:"total_quantity"`
	Subtotal       int64      `json:"subtotal"`
	EstimatedTotal int64      `json:"estimated_total"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func EmptyCart() *Cart {
	return &Cart{Items: []CartItem{}}
}

// Clone returns a deep copy used as the pre-mutation snapshot for rollback.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Items = make([]CartItem, len(c.Items))
	copy(cp.Items, c.Items)
	return &cp
}

func (c *Cart) FindItem(productID int64) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

func (c *Cart) ProductIDs() IDSet {
	ids := make(IDSet, len(c.Items))
	for i := range c.Items {
		ids.Add(c.Items[i].ProductID)
	}
	return ids
}

// RecalculateCounters restores the count invariants after an optimistic
// local edit of Items.
func (c *Cart) RecalculateCounters() {
	c.ItemCount = int64(len(c.Items))

	var quantity int64
	for i := range c.Items {
		quantity += c.Items[i].Quantity
	}
	c.TotalQuantity = quantity
}
