package inventory

import (
	"errors"
	"fmt"
)

var (
	ErrInventoryNotFound = errors.New("inventory record not found")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrStockNotOwned     = errors.New("seller does not own this product")
)

// InsufficientStockError reports a requested quantity that exceeds what the
// ledger can currently cover.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf(
		"Insufficient stock for product: %s. Available: %d, Requested: %d",
		e.ProductID, e.Available, e.Requested,
	)
}
