package events

import (
	"sync"

	"qadash/domain/events"
	"qadash/logging"
)

// ReportEventBus provides type-safe event publishing and subscription for
// report and lot lifecycle events.
type ReportEventBus struct {
	mu     sync.RWMutex
	logger *logging.Logger

	reportCompletedHandlers  []func(events.ReportCompletedEvent)
	reportFailedHandlers     []func(events.ReportFailedEvent)
	lotStatusChangedHandlers []func(events.LotStatusChangedEvent)
}

// NewReportEventBus creates a new typed report event bus
func NewReportEventBus() *ReportEventBus {
	return &ReportEventBus{
		logger:                   logging.Default().WithComponent("report_event_bus"),
		reportCompletedHandlers:  make([]func(events.ReportCompletedEvent), 0),
		reportFailedHandlers:     make([]func(events.ReportFailedEvent), 0),
		lotStatusChangedHandlers: make([]func(events.LotStatusChangedEvent), 0),
	}
}

// Subscribe methods for each event type

func (bus *ReportEventBus) OnReportCompleted(handler func(events.ReportCompletedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.reportCompletedHandlers = append(bus.reportCompletedHandlers, handler)
}

func (bus *ReportEventBus) OnReportFailed(handler func(events.ReportFailedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.reportFailedHandlers = append(bus.reportFailedHandlers, handler)
}

func (bus *ReportEventBus) OnLotStatusChanged(handler func(events.LotStatusChangedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.lotStatusChangedHandlers = append(bus.lotStatusChangedHandlers, handler)
}

// Publish methods for each event type

func (bus *ReportEventBus) PublishReportCompleted(event events.ReportCompletedEvent) {
	bus.mu.RLock()
	handlers := make([]func(events.ReportCompletedEvent), len(bus.reportCompletedHandlers))
	copy(handlers, bus.reportCompletedHandlers)
	bus.mu.RUnlock()

	// Execute handlers asynchronously to avoid blocking the publisher
	for _, handler := range handlers {
		go func(h func(events.ReportCompletedEvent)) {
			defer func() {
				if r := recover(); r != nil {
					bus.logger.Error("Event handler panicked in ReportCompleted",
						"report_id", event.Report.ID,
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}

func (bus *ReportEventBus) PublishReportFailed(event events.ReportFailedEvent) {
	bus.mu.RLock()
	handlers := make([]func(events.ReportFailedEvent), len(bus.reportFailedHandlers))
	copy(handlers, bus.reportFailedHandlers)
	bus.mu.RUnlock()

	for _, handler := range handlers {
		go func(h func(events.ReportFailedEvent)) {
			defer func() {
				if r := recover(); r != nil {
					bus.logger.Error("Event handler panicked in ReportFailed",
						"report_id", event.Report.ID,
						"error", event.Error,
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}

func (bus *ReportEventBus) PublishLotStatusChanged(event events.LotStatusChangedEvent) {
	bus.mu.RLock()
	handlers := make([]func(events.LotStatusChangedEvent), len(bus.lotStatusChangedHandlers))
	copy(handlers, bus.lotStatusChangedHandlers)
	bus.mu.RUnlock()

	for _, handler := range handlers {
		go func(h func(events.LotStatusChangedEvent)) {
			defer func() {
				if r := recover(); r != nil {
					bus.logger.Error("Event handler panicked in LotStatusChanged",
						"lot_id", event.LotID,
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}
