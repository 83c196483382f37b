package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"qadash/database"
	"qadash/domain/contracts"
	"qadash/domain/reports"
)

// SQLReportRepository implements ReportRepository over SQLite.
type SQLReportRepository struct {
	*BaseRepository
}

// NewSQLReportRepository creates a report repository.
func NewSQLReportRepository(db *database.Database) *SQLReportRepository {
	return &SQLReportRepository{BaseRepository: NewBaseRepository(db)}
}

const reportColumns = `
	id, client_id, user_id, type, status, language, file_name,
	COALESCE(file_path, ''), COALESCE(file_url, ''), COALESCE(file_size, 0),
	parameters, generated_at, expires_at, COALESCE(error_message, ''),
	COALESCE(generation_time_ms, 0), created_at
`

func (r *SQLReportRepository) scanReport(scan func(dest ...any) error) (*reports.Report, error) {
	var (
		rep         reports.Report
		userID      sql.NullInt64
		reportType  string
		status      string
		params      string
		generatedAt sql.NullTime
		expiresAt   sql.NullTime
	)
	err := scan(
		&rep.ID, &rep.ClientID, &userID, &reportType, &status, &rep.Language,
		&rep.FileName, &rep.FilePath, &rep.FileURL, &rep.FileSize,
		&params, &generatedAt, &expiresAt, &rep.ErrorMessage,
		&rep.GenerationTimeMs, &rep.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rep.UserID = r.FromNullInt64ToPointer(userID)
	rep.Type = reports.ReportType(reportType)
	rep.Status = reports.ReportStatus(status)
	rep.GeneratedAt = r.FromNullTime(generatedAt)
	rep.ExpiresAt = r.FromNullTime(expiresAt)
	if err := json.Unmarshal([]byte(params), &rep.Parameters); err != nil {
		rep.Parameters = map[string]string{}
	}
	return &rep, nil
}

// GetByID retrieves a report, enforcing tenant scope.
func (r *SQLReportRepository) GetByID(ctx context.Context, clientID int64, reportID string) (*reports.Report, error) {
	row := r.Read().QueryRowContext(ctx,
		"SELECT "+reportColumns+" FROM reports WHERE id = ?", reportID)

	rep, err := r.scanReport(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contracts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan report: %w", err)
	}
	if rep.ClientID != clientID {
		return nil, contracts.ErrTenantScopeMismatch
	}
	return rep, nil
}

// List retrieves reports for a client, newest first.
func (r *SQLReportRepository) List(ctx context.Context, clientID int64) ([]*reports.Report, error) {
	rows, err := r.Read().QueryContext(ctx,
		"SELECT "+reportColumns+" FROM reports WHERE client_id = ? ORDER BY created_at DESC, id DESC",
		clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var result []*reports.Report
	for rows.Next() {
		rep, err := r.scanReport(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		result = append(result, rep)
	}
	return result, rows.Err()
}

// Create persists a new report.
func (r *SQLReportRepository) Create(ctx context.Context, report *reports.Report) error {
	params, err := json.Marshal(report.Parameters)
	if err != nil {
		return fmt.Errorf("failed to marshal report parameters: %w", err)
	}
	_, err = r.Write().ExecContext(ctx, `
		INSERT INTO reports (id, client_id, user_id, type, status, language, file_name, parameters)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID, report.ClientID, r.ToNullInt64(report.UserID),
		string(report.Type), string(report.Status), report.Language,
		report.FileName, string(params))
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// Update persists lifecycle transitions and artifact metadata.
func (r *SQLReportRepository) Update(ctx context.Context, report *reports.Report) error {
	res, err := r.Write().ExecContext(ctx, `
		UPDATE reports SET
			status = ?, file_path = ?, file_url = ?, file_size = ?,
			generated_at = ?, expires_at = ?, error_message = ?,
			generation_time_ms = ?
		WHERE id = ? AND client_id = ?`,
		string(report.Status), r.ToNullString(report.FilePath),
		r.ToNullString(report.FileURL), report.FileSize,
		r.ToNullTime(report.GeneratedAt), r.ToNullTime(report.ExpiresAt),
		r.ToNullString(report.ErrorMessage), report.GenerationTimeMs,
		report.ID, report.ClientID)
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check report update: %w", err)
	}
	if affected == 0 {
		return contracts.ErrNotFound
	}
	return nil
}

// DeleteExpired removes reports whose artifacts expired before the cutoff.
func (r *SQLReportRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.Write().ExecContext(ctx,
		"DELETE FROM reports WHERE expires_at IS NOT NULL AND expires_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired reports: %w", err)
	}
	return res.RowsAffected()
}
