package cart

import "time"

type Cart struct {
	ID        uint `json:"id"`
	UserID    uint `json:"user_id"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem is one line of a cart. UnitPriceAtAdd is the display snapshot
// taken the first time the product was added; it is never refreshed on
// quantity merges and is NOT the price the eventual order is charged at —
// the order conversion engine re-reads the catalog.
type CartItem struct {
	ID             uint    `json:"id"`
	CartID         uint    `json:"cart_id"`
	ProductID      string  `json:"product_id"`
	Quantity       int     `json:"quantity"`
	UnitPriceAtAdd float64 `json:"unit_price_at_add"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// cartRow is the joined shape the view query produces.
type cartRow struct {
	ItemID         uint
	CartID         uint
	ProductID      string
	ProductName    string
	ProductStatus  string
	Quantity       int
	UnitPriceAtAdd float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CartLineView is one display line; LineTotal uses the add-time snapshot for
// browsing continuity.
type CartLineView struct {
	ProductID      string  `json:"product_id"`
	ProductName    string  `json:"product_name"`
	Quantity       int     `json:"quantity"`
	UnitPriceAtAdd float64 `json:"unit_price_at_add"`
	LineTotal      float64 `json:"line_total"`
}

type CartView struct {
	Lines     []*CartLineView `json:"lines"`
	Total     float64         `json:"total"`
	ItemCount int             `json:"item_count"`
}

type AddItemParams struct {
	UserID    uint
	ProductID string
	Quantity  int
}

type UpdateQuantityParams struct {
	UserID    uint
	ProductID string
	Quantity  int
}

type RemoveItemParams struct {
	UserID    uint
	ProductID string
}

type CreateItemParams struct {
	CartID         uint
	ProductID      string
	Quantity       int
	UnitPriceAtAdd float64
}
