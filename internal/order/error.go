package order

import "errors"

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrInvalidTransition      = errors.New("invalid order status transition")
	ErrConcurrentModification = errors.New("order was modified concurrently")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrNoItems                = errors.New("checkout requires at least one item")
	ErrInvalidQuantity        = errors.New("quantity must be greater than zero")
	ErrNegativeAmount         = errors.New("monetary amounts cannot be negative")
	ErrInvalidPaymentStatus   = errors.New("invalid payment status")
)
