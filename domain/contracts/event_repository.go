package contracts

import (
	"context"

	"qadash/domain/events"
)

// EventRepository defines operations for the raw server-pushed event feed.
// Decoding into typed variants is the feed service's job, not the repository's.
type EventRepository interface {
	// ListRecent retrieves the newest raw events for a client, newest first.
	ListRecent(ctx context.Context, clientID int64, limit int) ([]*events.RawFeedEvent, error)

	// Append stores a raw event.
	Append(ctx context.Context, event *events.RawFeedEvent) error

	// CountDefectsByType aggregates DEFECT_DETECTED payloads for analytics.
	CountDefectsByType(ctx context.Context, clientID int64) (map[string]int, error)
}
