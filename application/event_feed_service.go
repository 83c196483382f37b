package application

import (
	"context"

	"qadash/domain/contracts"
	"qadash/domain/events"
	"qadash/logging"
)

// EventFeedService exposes the live event feed. Raw feed rows are decoded into
// typed variants at this boundary; rows with unrecognized types are dropped so
// downstream code never sees an unclassified event.
type EventFeedService struct {
	eventRepo contracts.EventRepository
	logger    *logging.Logger
}

// NewEventFeedService creates an event feed service.
func NewEventFeedService(eventRepo contracts.EventRepository) *EventFeedService {
	return &EventFeedService{
		eventRepo: eventRepo,
		logger:    logging.Default().WithComponent("event_feed"),
	}
}

// RecentEvents returns the most recent decoded events for a client, newest
// first. Limit <= 0 falls back to a sensible default.
func (s *EventFeedService) RecentEvents(ctx context.Context, clientID int64, limit int) ([]events.FeedEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	raws, err := s.eventRepo.ListRecent(ctx, clientID, limit)
	if err != nil {
		return nil, err
	}

	decoded := make([]events.FeedEvent, 0, len(raws))
	for _, raw := range raws {
		ev, ok := events.Decode(*raw)
		if !ok {
			s.logger.Debug("Skipping feed event with unknown type", "event_type", raw.Type, "event_id", raw.ID)
			continue
		}
		decoded = append(decoded, ev)
	}
	return decoded, nil
}

// Append persists a raw event for a client.
func (s *EventFeedService) Append(ctx context.Context, raw *events.RawFeedEvent) error {
	return s.eventRepo.Append(ctx, raw)
}
