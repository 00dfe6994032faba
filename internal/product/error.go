package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNameRequired    = errors.New("product name cannot be empty")
	ErrNegativePrice   = errors.New("product price cannot be negative")

	// ErrHotDealExists surfaces the one-hot-deal-per-supplier constraint the
	// store enforces with a partial unique index.
	ErrHotDealExists = errors.New("supplier already has an active hot deal")

	ErrUnauthorized = errors.New("not allowed to modify this product")
)
