package events

import (
	"fmt"

	"qadash/domain/events"
	"qadash/logging"
	"qadash/platform/notify"
)

// Broadcaster defines the live-update surface the handlers push to.
type Broadcaster interface {
	BroadcastReportListUpdate()
	BroadcastLotsUpdate()
}

// NotificationEventHandlers converts lifecycle events into toasts and
// live UI refreshes.
type NotificationEventHandlers struct {
	toasts      *notify.ToastCenter
	broadcaster Broadcaster
	logger      *logging.Logger
}

// NewNotificationEventHandlers creates event handlers for notifications
func NewNotificationEventHandlers(toasts *notify.ToastCenter, broadcaster Broadcaster) *NotificationEventHandlers {
	return &NotificationEventHandlers{
		toasts:      toasts,
		broadcaster: broadcaster,
		logger:      logging.Default().WithComponent("notification_events"),
	}
}

// RegisterHandlers registers all notification event handlers with the event bus
func (h *NotificationEventHandlers) RegisterHandlers(eventBus *ReportEventBus) {
	eventBus.OnReportCompleted(h.handleReportCompleted)
	eventBus.OnReportFailed(h.handleReportFailed)
	eventBus.OnLotStatusChanged(h.handleLotStatusChanged)
}

func (h *NotificationEventHandlers) handleReportCompleted(event events.ReportCompletedEvent) {
	reportID := "unknown"
	if event.Report != nil {
		reportID = event.Report.ID
	}
	h.logger.Info("Handling report completed event", "report_id", reportID)

	if event.Report != nil {
		// Same toast id as the failure path: a retried report updates the
		// existing toast in place instead of stacking a new one.
		h.toasts.Publish(notify.Toast{
			ID:          "report-" + event.Report.ID,
			Title:       "Report ready",
			Description: fmt.Sprintf("%s finished in %s", event.Report.FileName, event.Report.Duration()),
			ActionLabel: "Download",
			ActionHref:  event.Report.FileURL,
			Variant:     notify.VariantSuccess,
		})
	}

	h.broadcaster.BroadcastReportListUpdate()
}

func (h *NotificationEventHandlers) handleReportFailed(event events.ReportFailedEvent) {
	reportID := "unknown"
	if event.Report != nil {
		reportID = event.Report.ID
	}
	h.logger.Info("Handling report failed event", "report_id", reportID, "error", event.Error)

	if event.Report != nil {
		h.toasts.Publish(notify.Toast{
			ID:          "report-" + event.Report.ID,
			Title:       "Report failed",
			Description: event.Error,
			Variant:     notify.VariantDanger,
		})
	}

	h.broadcaster.BroadcastReportListUpdate()
}

func (h *NotificationEventHandlers) handleLotStatusChanged(event events.LotStatusChangedEvent) {
	h.logger.Info("Handling lot status changed event", "lot_id", event.LotID, "status", event.Status)

	h.toasts.Publish(notify.Toast{
		ID:          fmt.Sprintf("lot-%d", event.LotID),
		Title:       "Lot updated",
		Description: fmt.Sprintf("Lot %d is now %s", event.LotID, event.Status),
		Variant:     notify.VariantDefault,
	})

	h.broadcaster.BroadcastLotsUpdate()
}
