package product

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrInvalidStatus   = errors.New("invalid product status")
)

// UnavailableError is returned when a product is referenced by a cart or
// checkout operation but its status is no longer AVAILABLE.
type UnavailableError struct {
	ProductID string
	Name      string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("Product is not available: %s", e.Name)
}
