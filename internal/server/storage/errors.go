package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that a user with this username or email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrCategoryNotFound indicates that category was not found
	ErrCategoryNotFound = errors.New("category not found")

	// ErrProductNotFound indicates that product was not found
	ErrProductNotFound = errors.New("product not found")

	// ErrOrderNotFound indicates that order was not found
	ErrOrderNotFound = errors.New("order not found")
)
