package application

import (
	"context"

	"qadash/domain/reports"
)

// UpdateNotifier defines interface for update notifications.
type UpdateNotifier interface {
	NotifyReportUpdate()
}

// CreateReportRequest carries a report generation request.
type CreateReportRequest struct {
	ClientID   int64
	UserID     *int64
	Type       reports.ReportType
	Language   string
	Parameters map[string]string
}

// ReportService provides report lifecycle operations.
type ReportService interface {
	// CreateReport persists a PENDING report and starts generation asynchronously.
	CreateReport(ctx context.Context, req CreateReportRequest) (*reports.Report, error)

	// GetReport retrieves a report, enforcing tenant scope.
	GetReport(ctx context.Context, clientID int64, reportID string) (*reports.Report, error)

	// ListReports retrieves reports for a client, newest first.
	ListReports(ctx context.Context, clientID int64) ([]*reports.Report, error)

	// VerifyArtifact checks the stored artifact behind a report.
	VerifyArtifact(ctx context.Context, clientID int64, reportID string) (bool, int64, error)

	// SetUpdateNotifier wires live-update notifications.
	SetUpdateNotifier(notifier UpdateNotifier)
}
