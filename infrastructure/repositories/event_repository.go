package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"qadash/database"
	"qadash/domain/events"
	"qadash/logging"
)

// SQLEventRepository implements EventRepository over SQLite. Payloads are
// stored as JSON text and surfaced untyped; decoding happens at the feed
// service boundary.
type SQLEventRepository struct {
	*BaseRepository
	logger *logging.Logger
}

// NewSQLEventRepository creates an event repository.
func NewSQLEventRepository(db *database.Database) *SQLEventRepository {
	return &SQLEventRepository{
		BaseRepository: NewBaseRepository(db),
		logger:         logging.Default().WithComponent("event_repository"),
	}
}

// ListRecent retrieves the newest raw events for a client, newest first.
func (r *SQLEventRepository) ListRecent(ctx context.Context, clientID int64, limit int) ([]*events.RawFeedEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.Read().QueryContext(ctx, `
		SELECT id, client_id, type, payload, created_at
		FROM feed_events WHERE client_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?`, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query feed events: %w", err)
	}
	defer rows.Close()

	var result []*events.RawFeedEvent
	for rows.Next() {
		var (
			ev      events.RawFeedEvent
			payload string
		)
		if err := rows.Scan(&ev.ID, &ev.ClientID, &ev.Type, &payload, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feed event: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &ev.Payload); err != nil {
			// A corrupt payload degrades to an empty map; the decoder's
			// fallback text takes over from there.
			r.logger.Warn("Discarding unparseable event payload", "event_id", ev.ID, "error", err)
			ev.Payload = map[string]any{}
		}
		result = append(result, &ev)
	}
	return result, rows.Err()
}

// Append stores a raw event.
func (r *SQLEventRepository) Append(ctx context.Context, event *events.RawFeedEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}
	_, err = r.Write().ExecContext(ctx,
		"INSERT INTO feed_events (client_id, type, payload) VALUES (?, ?, ?)",
		event.ClientID, event.Type, string(payload))
	if err != nil {
		return fmt.Errorf("failed to insert feed event: %w", err)
	}
	return nil
}

// CountDefectsByType aggregates DEFECT_DETECTED payloads for analytics.
func (r *SQLEventRepository) CountDefectsByType(ctx context.Context, clientID int64) (map[string]int, error) {
	rows, err := r.Read().QueryContext(ctx, `
		SELECT COALESCE(json_extract(payload, '$.defectType'), 'unknown'), COUNT(*)
		FROM feed_events
		WHERE client_id = ? AND type = ?
		GROUP BY 1`, clientID, string(events.TypeDefectDetected))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate defects: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var defectType string
		var count int
		if err := rows.Scan(&defectType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan defect count: %w", err)
		}
		counts[defectType] = count
	}
	return counts, rows.Err()
}
