package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrParentNotFound   = errors.New("parent category not found")
	ErrCyclicReference  = errors.New("parent assignment would create a circular reference")
	ErrNameRequired     = errors.New("category name cannot be empty")
)
