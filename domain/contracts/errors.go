package contracts

import "errors"

// Common errors for domain contracts
var (
	// ErrNotFound occurs when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrTenantScopeMismatch occurs when an entity belongs to a different client
	// than the one the request is scoped to.
	ErrTenantScopeMismatch = errors.New("entity belongs to a different client")
)
