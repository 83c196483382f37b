package events

import (
	"time"

	"qadash/domain/reports"
)

// ReportCompletedEvent represents a report generation that finished successfully
type ReportCompletedEvent struct {
	Report    *reports.Report
	Timestamp time.Time
}

// ReportFailedEvent represents a report generation that failed
type ReportFailedEvent struct {
	Report    *reports.Report
	Error     string
	Timestamp time.Time
}

// LotStatusChangedEvent represents a lot moving through the inspection flow
type LotStatusChangedEvent struct {
	ClientID  int64
	LotID     int64
	Status    string
	Timestamp time.Time
}

// ReportEventPublisher defines the interface for publishing report-related events.
type ReportEventPublisher interface {
	PublishReportCompleted(event ReportCompletedEvent)
	PublishReportFailed(event ReportFailedEvent)
	PublishLotStatusChanged(event LotStatusChangedEvent)
}
