package contracts

import (
	"context"
	"time"

	"qadash/domain/reports"
)

// ReportRepository defines operations for report lifecycle data.
type ReportRepository interface {
	// GetByID retrieves a report, enforcing tenant scope.
	GetByID(ctx context.Context, clientID int64, reportID string) (*reports.Report, error)

	// List retrieves reports for a client, newest first.
	List(ctx context.Context, clientID int64) ([]*reports.Report, error)

	// Create persists a new report.
	Create(ctx context.Context, report *reports.Report) error

	// Update persists lifecycle transitions and artifact metadata.
	Update(ctx context.Context, report *reports.Report) error

	// DeleteExpired removes reports whose artifacts expired before the cutoff.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
