package inventory

import "time"

// Record tracks the stock pool for a single product. quantity_reserved is
// kept for a future hold-based checkout and is always 0 today; availability
// math honors it anyway.
type Record struct {
	ProductID        string `json:"product_id"`
	QuantityOnHand   int    `json:"quantity_on_hand"`
	QuantityReserved int    `json:"quantity_reserved"`
	Unlimited        bool   `json:"unlimited"`
	UpdatedAt        time.Time
}

// Available returns on-hand minus reserved. Meaningless for unlimited
// records; callers must check Unlimited first.
func (r *Record) Available() int {
	return r.QuantityOnHand - r.QuantityReserved
}

type SetStockParams struct {
	ProductID string
	SellerID  string
	Quantity  int
	Unlimited bool
}
