package product

import "time"

type Product struct {
	ID          string  `json:"id"`
	SellerID    string  `json:"seller_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
	Description *string `json:"description,omitempty"`
	ImageUrl    *string `json:"image_url,omitempty"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type GetProductOptions struct {
	ProductID     string
	OnlyAvailable bool
}

type UpdatePriceParams struct {
	ProductID string
	SellerID  string
	Price     float64
}

type SetStatusParams struct {
	ProductID string
	SellerID  string
	Status    string
}
