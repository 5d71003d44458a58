package domain

import "time"

// Delivery types accepted at checkout.
const (
	DeliveryPickup   = "pickup"
	DeliveryDelivery = "delivery"
)

// Order statuses. Monotonic progression is expected but not enforced:
// the operator API may set any status at any time.
const (
	OrderStatusNew        = "new"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusPreparing  = "preparing"
	OrderStatusDelivering = "delivering"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusNew, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusDelivering, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is an immutable snapshot of a completed checkout. Items are a deep
// copy of the cart lines at checkout time; only Status changes afterwards.
type Order struct {
	ID                string     `json:"id"`
	OrderNumber       int64      `json:"orderNumber"`
	UserChatID        int64      `json:"userChatId"`
	CustomerName      string     `json:"customerName"`
	Phone             string     `json:"phone"`
	Address           string     `json:"address,omitempty"`
	Comment           string     `json:"comment,omitempty"`
	DeliveryType      string     `json:"deliveryType"`
	DeliveryCostCents int64      `json:"deliveryCostCents"`
	Items             []CartLine `json:"items"`
	ItemsTotalCents   int64      `json:"itemsTotalCents"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// GrandTotalCents is items total plus delivery cost.
func (o Order) GrandTotalCents() int64 {
	return o.ItemsTotalCents + o.DeliveryCostCents
}
