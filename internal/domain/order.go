package domain

import "time"

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusReturned   OrderStatus = "returned"
)

type OrderItem struct {
	ProductID     int64  `json:"product_id"`
	Name          string `json:"name"`
	Quantity      int64  `json:"quantity"`
	FinalPrice    int64  `json:"final_price"`
	OriginalPrice int64  `json:"original_price"`
	ItemTotal     int64  `json:"item_total"`
}

type Order struct {
	ID            int64       `json:"id"`
	OrderNumber   string      `json:"order_number"`
	Status        OrderStatus `json:"status"`
	Items         []OrderItem `json:"items"`
	Subtotal      int64       `json:"subtotal"`
	ShippingCost  int64       `json:"shipping_cost"`
	InsuranceCost int64       `json:"insurance_cost"`
	TotalDiscount int64       `json:"total_discount"`
	TotalAmount   int64       `json:"total_amount"`
	AddressID     int64       `json:"address_id"`
	PaymentMethod string      `json:"payment_method"`
	CreatedAt     time.Time   `json:"created_at"`
	PaidAt        *time.Time  `json:"paid_at,omitempty"`
	ShippedAt     *time.Time  `json:"shipped_at,omitempty"`
	DeliveredAt   *time.Time  `json:"delivered_at,omitempty"`
	CancelledAt   *time.Time  `json:"cancelled_at,omitempty"`
}

// PriceBreakdown is a read-only projection of an order's money fields.
type PriceBreakdown struct {
	Subtotal      int64 `json:"subtotal"`
	ShippingCost  int64 `json:"shipping_cost"`
	InsuranceCost int64 `json:"insurance_cost"`
	TotalDiscount int64 `json:"total_discount"`
	TotalAmount   int64 `json:"total_amount"`
}

// OrderSummary carries the list-view projection plus the client-side
// eligibility flags. Eligibility is a status whitelist, nothing more; the
// backend re-validates on submission.
type OrderSummary struct {
	ID          int64       `json:"id"`
	OrderNumber string      `json:"order_number"`
	Status      OrderStatus `json:"status"`
	ItemCount   int64       `json:"item_count"`
	TotalAmount int64       `json:"total_amount"`
	CanCancel   bool        `json:"can_cancel"`
	CanReturn   bool        `json:"can_return"`
	CreatedAt   time.Time   `json:"created_at"`
}

type TimelineEntry struct {
	Status OrderStatus `json:"status"`
	At     time.Time   `json:"at"`
}

var cancellableStatuses = map[OrderStatus]struct{}{
	OrderStatusNew:        {},
	OrderStatusPending:    {},
	OrderStatusProcessing: {},
}

func (o *Order) CanCancel() bool {
	_, ok := cancellableStatuses[o.Status]
	return ok
}

func (o *Order) CanReturn() bool {
	return o.Status == OrderStatusDelivered
}

func (o *Order) PriceBreakdown() PriceBreakdown {
	return PriceBreakdown{
		Subtotal:      o.Subtotal,
		ShippingCost:  o.ShippingCost,
		InsuranceCost: o.InsuranceCost,
		TotalDiscount: o.TotalDiscount,
		TotalAmount:   o.TotalAmount,
	}
}

func (o *Order) Summary() OrderSummary {
	var count int64
	for i := range o.Items {
		count += o.Items[i].Quantity
	}

	return OrderSummary{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		ItemCount:   count,
		TotalAmount: o.TotalAmount,
		CanCancel:   o.CanCancel(),
		CanReturn:   o.CanReturn(),
		CreatedAt:   o.CreatedAt,
	}
}

// Timeline projects the raw server timestamps into ordered status entries.
// Only reached states appear.
func (o *Order) Timeline() []TimelineEntry {
	entries := []TimelineEntry{{Status: OrderStatusNew, At: o.CreatedAt}}

	if o.PaidAt != nil {
		entries = append(entries, TimelineEntry{Status: OrderStatusProcessing, At: *o.PaidAt})
	}
	if o.ShippedAt != nil {
		entries = append(entries, TimelineEntry{Status: OrderStatusShipped, At: *o.ShippedAt})
	}
	if o.DeliveredAt != nil {
		entries = append(entries, TimelineEntry{Status: OrderStatusDelivered, At: *o.DeliveredAt})
	}
	if o.CancelledAt != nil {
		entries = append(entries, TimelineEntry{Status: OrderStatusCancelled, At: *o.CancelledAt})
	}

	return entries
}
