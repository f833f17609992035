package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")

	// -- Resource State --
	ErrNotInCart = errors.New("product is not in the cart")
	ErrCartEmpty = errors.New("cart is empty")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
