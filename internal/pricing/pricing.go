// Package pricing holds the single totals formula shared by the cart and
// checkout stores. Both stores must call Calculate instead of keeping their
// own copy of the math, so the two surfaces can never drift.
package pricing

import "github.com/NeerajGithb/furniture-client-sub000/internal/domain"

// Money is int64 minor units throughout.
const (
	// InsuranceRatePercent is the protection-plan surcharge applied per
	// insured line, rounded half-up on the line's item total.
	InsuranceRatePercent = 2

	// FreeShippingThreshold is the selected subtotal at which shipping
	// becomes free.
	FreeShippingThreshold = 5000

	// FlatShippingFee applies below the free threshold.
	FlatShippingFee = 40
)

// Line is the minimal item view the formula needs. Both CartItem and
// CheckoutItem convert into it.
type Line struct {
	ProductID     int64
	Quantity      int64
	FinalPrice    int64
	OriginalPrice int64
	ItemTotal     int64
}

func FromCartItems(items []domain.CartItem) []Line {
	lines := make([]Line, len(items))
	for i := range items {
		lines[i] = Line{
			ProductID:     items[i].ProductID,
			Quantity:      items[i].Quantity,
			FinalPrice:    items[i].FinalPrice,
			OriginalPrice: items[i].OriginalPrice,
			ItemTotal:     items[i].ItemTotal,
		}
	}
	return lines
}

func FromCheckoutItems(items []domain.CheckoutItem) []Line {
	lines := make([]Line, len(items))
	for i := range items {
		lines[i] = Line{
			ProductID:     items[i].ProductID,
			Quantity:      items[i].Quantity,
			FinalPrice:    items[i].FinalPrice,
			OriginalPrice: items[i].OriginalPrice,
			ItemTotal:     items[i].ItemTotal,
		}
	}
	return lines
}

// insuranceFor rounds ItemTotal * 2% half-up in integer arithmetic.
func insuranceFor(itemTotal int64) int64 {
	return (itemTotal*InsuranceRatePercent + 50) / 100
}

// Calculate is pure: the result depends only on the lines, the selection set
// and the insurance set. An empty selection yields the all-zero baseline.
// Lines outside selected are ignored entirely; insurance applies only to
// lines in both sets.
func Calculate(lines []Line, selected, insured domain.IDSet) domain.CheckoutTotals {
	var totals domain.CheckoutTotals

	for i := range lines {
		line := &lines[i]
		if !selected.Has(line.ProductID) {
			continue
		}

		totals.Subtotal += line.ItemTotal
		totals.SelectedQuantity += line.Quantity
		totals.TotalDiscount += (line.OriginalPrice - line.FinalPrice) * line.Quantity

		if insured.Has(line.ProductID) {
			totals.InsuranceCost += insuranceFor(line.ItemTotal)
		}
	}

	if totals.SelectedQuantity == 0 {
		return domain.CheckoutTotals{}
	}

	if totals.Subtotal < FreeShippingThreshold {
		totals.ShippingCost = FlatShippingFee
	}

	totals.TotalAmount = totals.Subtotal + totals.ShippingCost + totals.InsuranceCost
	return totals
}
