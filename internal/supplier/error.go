package supplier

import "errors"

var (
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrNameRequired     = errors.New("supplier name cannot be empty")

	// ErrAlreadyDecided is returned when an approve or reject hits a supplier
	// that is no longer pending. The decision is one-shot.
	ErrAlreadyDecided = errors.New("supplier application already decided")
)
