package contracts

import (
	"context"

	"qadash/domain/qa"
)

// ClientRepository defines operations for Client (tenant) entities.
type ClientRepository interface {
	// GetByID retrieves a client by its ID.
	GetByID(ctx context.Context, clientID int64) (*qa.Client, error)

	// GetBySlug retrieves a client by its route slug.
	GetBySlug(ctx context.Context, slug string) (*qa.Client, error)

	// ListAll retrieves all clients.
	ListAll(ctx context.Context) ([]*qa.Client, error)
}

// UserRepository defines operations for dashboard accounts.
type UserRepository interface {
	// GetByEmail retrieves a user with their client slug resolved.
	GetByEmail(ctx context.Context, email string) (*qa.User, error)

	// GetByID retrieves a user with their client slug resolved.
	GetByID(ctx context.Context, userID int64) (*qa.User, error)
}
