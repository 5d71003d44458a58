package domain

// CartLine is one product's quantity and price snapshot in a user's cart.
// Name and unit price are captured when the line is first added and are not
// refreshed on later increments.
type CartLine struct {
	ProductID      string `json:"productId"`
	ProductName    string `json:"productName"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// LineTotalCents returns quantity times the snapshot unit price.
func (l CartLine) LineTotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}
