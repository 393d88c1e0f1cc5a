package service

import "errors"

var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when a versioned write lost to a concurrent edit
	ErrConflict = errors.New("record was modified by another user")

	// ErrLenderNotFound is returned when a product references a missing lender
	ErrLenderNotFound = errors.New("lender does not exist")

	// ErrLenderNotActive is returned when creating a product under a
	// deactivated lender
	ErrLenderNotActive = errors.New("lender is not active")

	// ErrInvalidCredentials is returned when authentication fails
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotActive is returned when a deactivated staff account logs in
	ErrUserNotActive = errors.New("user account is not active")

	// ErrValidation is returned when a request body fails structural validation
	ErrValidation = errors.New("request body is invalid")
)
