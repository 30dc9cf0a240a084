package domain

import "time"

// CheckoutTotals is always a pure function of the selected items and the
// insurance set. It is recomputed, never incrementally patched.
type CheckoutTotals struct {
	Subtotal         int64 `json:"subtotal"`
	SelectedQuantity int64 `json:"selected_quantity"`
	InsuranceCost    int64 `json:"insurance_cost"`
	ShippingCost     int64 `json:"shipping_cost"`
	TotalAmount      int64 `json:"total_amount"`
	TotalDiscount    int64 `json:"total_discount"`
}

// CheckoutItem is a cart item resolved at snapshot time. Once frozen into a
// snapshot it no longer tracks the live cart.
type CheckoutItem struct {
	ProductID       int64  `json:"product_id"`
	Name            string `json:"name"`
	Quantity        int64  `json:"quantity"`
	SelectedVariant string `json:"selected_variant,omitempty"`
	FinalPrice      int64  `json:"final_price"`
	OriginalPrice   int64  `json:"original_price"`
	ItemTotal       int64  `json:"item_total"`
	ImageUrl        string `json:"image_url"`
}

// CheckoutSnapshot is the frozen cart subset created when the user enters
// checkout. Mutations to the live cart after this point do not propagate.
type CheckoutSnapshot struct {
	SelectedItems         IDSet          `json:"selected_items"`
	InsuranceEnabled      IDSet          `json:"insurance_enabled"`
	SelectedAddressID     int64          `json:"selected_address_id,omitempty"`
	SelectedPaymentMethod string         `json:"selected_payment_method,omitempty"`
	Totals                CheckoutTotals `json:"totals"`
	CartItems             []CheckoutItem `json:"cart_items"`
	Timestamp             time.Time      `json:"timestamp"`
}

func (s *CheckoutSnapshot) Clone() *CheckoutSnapshot {
	if s == nil {
		return nil
	}
	cp := *s
	cp.SelectedItems = s.SelectedItems.Clone()
	cp.InsuranceEnabled = s.InsuranceEnabled.Clone()
	cp.CartItems = make([]CheckoutItem, len(s.CartItems))
	copy(cp.CartItems, s.CartItems)
	return &cp
}

// CheckoutItemsFromCart resolves the cart lines referenced by selected into
// frozen checkout items.
func CheckoutItemsFromCart(cart *Cart, selected IDSet) []CheckoutItem {
	items := make([]CheckoutItem, 0, len(selected))
	for i := range cart.Items {
		it := &cart.Items[i]
		if !selected.Has(it.ProductID) {
			continue
		}
		items = append(items, CheckoutItem{
			ProductID:       it.ProductID,
			Name:            it.Name,
			Quantity:        it.Quantity,
			SelectedVariant: it.SelectedVariant,
			FinalPrice:      it.FinalPrice,
			OriginalPrice:   it.OriginalPrice,
			ItemTotal:       it.ItemTotal,
			ImageUrl:        it.ImageUrl,
		})
	}
	return items
}
