package order

import "errors"

var (
	// ErrEmptyCart is returned before any write when checkout finds
	// nothing in the user's cart.
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

	// ErrNotFound means the order id does not exist.
	ErrNotFound = errors.New("order not found")

	// ErrInvalidStatus means the requested status value is unknown.
	ErrInvalidStatus = errors.New("invalid order status")
)
