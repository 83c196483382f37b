package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qadash/domain/events"
	"qadash/domain/reports"
	"qadash/platform/notify"
)

type mockBroadcaster struct {
	reportListUpdates chan struct{}
	lotsUpdates       chan struct{}
}

func newMockBroadcaster() *mockBroadcaster {
	return &mockBroadcaster{
		reportListUpdates: make(chan struct{}, 4),
		lotsUpdates:       make(chan struct{}, 4),
	}
}

func (m *mockBroadcaster) BroadcastReportListUpdate() { m.reportListUpdates <- struct{}{} }
func (m *mockBroadcaster) BroadcastLotsUpdate()       { m.lotsUpdates <- struct{}{} }

func waitFor(t *testing.T, ch chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("%s was not triggered within timeout", what)
	}
}

func TestNotificationHandlers_ReportCompletedPublishesSuccessToast(t *testing.T) {
	toasts := notify.NewToastCenter()
	defer toasts.Close()
	broadcaster := newMockBroadcaster()
	eventBus := NewReportEventBus()

	handlers := NewNotificationEventHandlers(toasts, broadcaster)
	handlers.RegisterHandlers(eventBus)

	report := createTestReport(reports.ReportStatusCompleted)
	report.MarkCompleted("/data/reports/x.csv", "/files/x.csv", 1024, 3*time.Second)

	eventBus.PublishReportCompleted(events.ReportCompletedEvent{Report: report, Timestamp: time.Now()})

	waitFor(t, broadcaster.reportListUpdates, "report list update")

	active := toasts.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "report-"+report.ID, active[0].ID)
	assert.Equal(t, notify.VariantSuccess, active[0].Variant)
	assert.Equal(t, "Download", active[0].ActionLabel)
}

func TestNotificationHandlers_ReportFailedReplacesToastInPlace(t *testing.T) {
	toasts := notify.NewToastCenter()
	defer toasts.Close()
	broadcaster := newMockBroadcaster()
	eventBus := NewReportEventBus()

	handlers := NewNotificationEventHandlers(toasts, broadcaster)
	handlers.RegisterHandlers(eventBus)

	report := createTestReport(reports.ReportStatusFailed)

	eventBus.PublishReportFailed(events.ReportFailedEvent{
		Report:    report,
		Error:     "no lots in range",
		Timestamp: time.Now(),
	})
	waitFor(t, broadcaster.reportListUpdates, "report list update")

	// A later completion for the same report reuses the toast id
	eventBus.PublishReportCompleted(events.ReportCompletedEvent{Report: report, Timestamp: time.Now()})
	waitFor(t, broadcaster.reportListUpdates, "report list update")

	active := toasts.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "report-"+report.ID, active[0].ID)
}

func TestNotificationHandlers_LotStatusChangedBroadcastsLots(t *testing.T) {
	toasts := notify.NewToastCenter()
	defer toasts.Close()
	broadcaster := newMockBroadcaster()
	eventBus := NewReportEventBus()

	handlers := NewNotificationEventHandlers(toasts, broadcaster)
	handlers.RegisterHandlers(eventBus)

	eventBus.PublishLotStatusChanged(events.LotStatusChangedEvent{
		ClientID:  1,
		LotID:     7,
		Status:    "awaiting_approval",
		Timestamp: time.Now(),
	})

	waitFor(t, broadcaster.lotsUpdates, "lots update")
	require.Len(t, toasts.Active(), 1)
	assert.Equal(t, "lot-7", toasts.Active()[0].ID)
}
