package order

import "time"

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// ParseStatus accepts exactly the five recognized values. Sellers may move
// an order between any of them in any direction.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// Order is created once at checkout and immutable afterwards except for
// Status. Total and the line snapshots record what was actually charged.
type Order struct {
	ID              uint    `json:"id"`
	Number          string  `json:"number"`
	UserID          uint    `json:"user_id"`
	Total           float64 `json:"total"`
	Status          Status  `json:"status"`
	DeliveryAddress string  `json:"delivery_address"`
	PaymentRef      *string `json:"payment_ref,omitempty"`
	PlacedAt        time.Time
	UpdatedAt       time.Time
	Lines           []OrderLine `json:"lines"`
}

// OrderLine is an immutable snapshot taken at conversion time. ProductID is
// a lookup convenience only; ProductName and UnitPrice are authoritative for
// what this order means, whatever the catalog does later.
type OrderLine struct {
	ID          uint    `json:"id"`
	OrderID     uint    `json:"order_id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"line_total"`
	Position    int     `json:"position"`
}

type CreateFromCartParams struct {
	UserID          uint
	Number          string
	DeliveryAddress string
	PaymentRef      *string
}

type CreateSingleItemParams struct {
	UserID          uint
	ProductID       string
	Quantity        int
	Number          string
	DeliveryAddress string
	PaymentRef      *string
}

type ListParams struct {
	UserID uint
	Status *Status
	Limit  int32
	Page   int32
}
