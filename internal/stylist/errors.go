package stylist

import "errors"

// Domain-specific errors for the stylist package.
var (
	ErrEmptyDescription = errors.New("event description is empty")
	ErrInvalidBudget    = errors.New("budget must be positive")
	ErrInvalidAge       = errors.New("age must be positive")
)
