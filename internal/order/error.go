package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidStatus = errors.New("invalid order status")
)
