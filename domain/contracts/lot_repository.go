package contracts

import (
	"context"

	"qadash/domain/qa"
)

// LotFilter narrows lot listings. Zero values mean "no constraint".
type LotFilter struct {
	Status qa.LotStatus
	Search string // substring match over style ref and factory
	Limit  int
}

// LotRepository defines operations for Lot entities scoped to one client.
type LotRepository interface {
	// GetByID retrieves a lot, enforcing tenant scope.
	GetByID(ctx context.Context, clientID, lotID int64) (*qa.Lot, error)

	// List retrieves lots for a client, newest first, honoring the filter.
	List(ctx context.Context, clientID int64, filter LotFilter) ([]*qa.Lot, error)

	// UpdateStatus transitions a lot's status.
	UpdateStatus(ctx context.Context, clientID, lotID int64, status qa.LotStatus) error

	// CountByStatus returns lot counts keyed by status for analytics.
	CountByStatus(ctx context.Context, clientID int64) (map[qa.LotStatus]int, error)
}
