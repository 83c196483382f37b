package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"qadash/domain/events"
	"qadash/domain/reports"
)

func createTestReport(status reports.ReportStatus) *reports.Report {
	report := reports.NewReport(1, nil, reports.ReportTypeLotSummary, "EN", nil)
	report.Status = status
	return report
}

func TestReportEventBus_PublishReportCompleted(t *testing.T) {
	// Arrange
	eventBus := NewReportEventBus()
	report := createTestReport(reports.ReportStatusCompleted)

	done := make(chan events.ReportCompletedEvent, 1)

	eventBus.OnReportCompleted(func(event events.ReportCompletedEvent) {
		done <- event
	})

	// Act
	testEvent := events.ReportCompletedEvent{
		Report:    report,
		Timestamp: time.Now(),
	}
	eventBus.PublishReportCompleted(testEvent)

	// Assert
	select {
	case receivedEvent := <-done:
		assert.Equal(t, report.ID, receivedEvent.Report.ID)
		assert.Equal(t, reports.ReportStatusCompleted, receivedEvent.Report.Status)
		assert.False(t, receivedEvent.Timestamp.IsZero())
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Handler was not called within timeout")
	}
}

func TestReportEventBus_PublishReportFailed(t *testing.T) {
	// Arrange
	eventBus := NewReportEventBus()
	report := createTestReport(reports.ReportStatusFailed)

	done := make(chan events.ReportFailedEvent, 1)

	eventBus.OnReportFailed(func(event events.ReportFailedEvent) {
		done <- event
	})

	// Act
	eventBus.PublishReportFailed(events.ReportFailedEvent{
		Report:    report,
		Error:     "generator exploded",
		Timestamp: time.Now(),
	})

	// Assert
	select {
	case receivedEvent := <-done:
		assert.Equal(t, report.ID, receivedEvent.Report.ID)
		assert.Equal(t, "generator exploded", receivedEvent.Error)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Handler was not called within timeout")
	}
}

func TestReportEventBus_PublishLotStatusChanged(t *testing.T) {
	// Arrange
	eventBus := NewReportEventBus()

	done := make(chan events.LotStatusChangedEvent, 1)

	eventBus.OnLotStatusChanged(func(event events.LotStatusChangedEvent) {
		done <- event
	})

	// Act
	eventBus.PublishLotStatusChanged(events.LotStatusChangedEvent{
		ClientID:  1,
		LotID:     42,
		Status:    "approved",
		Timestamp: time.Now(),
	})

	// Assert
	select {
	case receivedEvent := <-done:
		assert.Equal(t, int64(42), receivedEvent.LotID)
		assert.Equal(t, "approved", receivedEvent.Status)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Handler was not called within timeout")
	}
}

func TestReportEventBus_MultipleHandlersAllInvoked(t *testing.T) {
	eventBus := NewReportEventBus()
	report := createTestReport(reports.ReportStatusCompleted)

	first := make(chan struct{}, 1)
	second := make(chan struct{}, 1)

	eventBus.OnReportCompleted(func(events.ReportCompletedEvent) { first <- struct{}{} })
	eventBus.OnReportCompleted(func(events.ReportCompletedEvent) { second <- struct{}{} })

	eventBus.PublishReportCompleted(events.ReportCompletedEvent{Report: report, Timestamp: time.Now()})

	for _, ch := range []chan struct{}{first, second} {
		select {
		case <-ch:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("Handler was not called within timeout")
		}
	}
}

func TestReportEventBus_PanickingHandlerDoesNotBlockOthers(t *testing.T) {
	eventBus := NewReportEventBus()
	report := createTestReport(reports.ReportStatusCompleted)

	done := make(chan struct{}, 1)

	eventBus.OnReportCompleted(func(events.ReportCompletedEvent) { panic("handler bug") })
	eventBus.OnReportCompleted(func(events.ReportCompletedEvent) { done <- struct{}{} })

	eventBus.PublishReportCompleted(events.ReportCompletedEvent{Report: report, Timestamp: time.Now()})

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Surviving handler was not called within timeout")
	}
}
