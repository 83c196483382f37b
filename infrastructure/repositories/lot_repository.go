package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"qadash/database"
	"qadash/domain/contracts"
	"qadash/domain/qa"
)

// SQLLotRepository implements LotRepository over SQLite.
type SQLLotRepository struct {
	*BaseRepository
}

// NewSQLLotRepository creates a lot repository.
func NewSQLLotRepository(db *database.Database) *SQLLotRepository {
	return &SQLLotRepository{BaseRepository: NewBaseRepository(db)}
}

const lotColumns = `
	id, client_id, style_ref, COALESCE(factory, ''), status,
	garments_total, garments_done, defect_count, inspected_at, approved_at, created_at
`

func (r *SQLLotRepository) scanLot(scan func(dest ...any) error) (*qa.Lot, error) {
	var (
		lot         qa.Lot
		status      string
		inspectedAt sql.NullTime
		approvedAt  sql.NullTime
	)
	err := scan(
		&lot.ID, &lot.ClientID, &lot.StyleRef, &lot.Factory, &status,
		&lot.GarmentsTotal, &lot.GarmentsDone, &lot.DefectCount,
		&inspectedAt, &approvedAt, &lot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	lot.Status = qa.LotStatus(status)
	lot.InspectedAt = r.FromNullTime(inspectedAt)
	lot.ApprovedAt = r.FromNullTime(approvedAt)
	return &lot, nil
}

// GetByID retrieves a lot, enforcing tenant scope.
func (r *SQLLotRepository) GetByID(ctx context.Context, clientID, lotID int64) (*qa.Lot, error) {
	row := r.Read().QueryRowContext(ctx,
		"SELECT "+lotColumns+" FROM lots WHERE id = ?", lotID)

	lot, err := r.scanLot(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contracts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan lot: %w", err)
	}
	if lot.ClientID != clientID {
		return nil, contracts.ErrTenantScopeMismatch
	}
	return lot, nil
}

// List retrieves lots for a client, newest first, honoring the filter.
func (r *SQLLotRepository) List(ctx context.Context, clientID int64, filter contracts.LotFilter) ([]*qa.Lot, error) {
	query := "SELECT " + lotColumns + " FROM lots WHERE client_id = ?"
	args := []any{clientID}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, string(filter.Status))
	}
	if filter.Search != "" {
		query += " AND (style_ref LIKE ? OR factory LIKE ?)"
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.Read().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lots: %w", err)
	}
	defer rows.Close()

	var result []*qa.Lot
	for rows.Next() {
		lot, err := r.scanLot(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lot: %w", err)
		}
		result = append(result, lot)
	}
	return result, rows.Err()
}

// UpdateStatus transitions a lot's status.
func (r *SQLLotRepository) UpdateStatus(ctx context.Context, clientID, lotID int64, status qa.LotStatus) error {
	res, err := r.Write().ExecContext(ctx,
		"UPDATE lots SET status = ?, approved_at = CASE WHEN ? = 'approved' THEN CURRENT_TIMESTAMP ELSE approved_at END WHERE id = ? AND client_id = ?",
		string(status), string(status), lotID, clientID)
	if err != nil {
		return fmt.Errorf("failed to update lot status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check lot update: %w", err)
	}
	if affected == 0 {
		return contracts.ErrNotFound
	}
	return nil
}

// CountByStatus returns lot counts keyed by status for analytics.
func (r *SQLLotRepository) CountByStatus(ctx context.Context, clientID int64) (map[qa.LotStatus]int, error) {
	rows, err := r.Read().QueryContext(ctx,
		"SELECT status, COUNT(*) FROM lots WHERE client_id = ? GROUP BY status", clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to count lots: %w", err)
	}
	defer rows.Close()

	counts := make(map[qa.LotStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan lot count: %w", err)
		}
		counts[qa.LotStatus(status)] = count
	}
	return counts, rows.Err()
}
