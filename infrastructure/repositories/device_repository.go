package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"qadash/database"
	"qadash/domain/qa"
)

// SQLDeviceRepository implements DeviceRepository over SQLite.
type SQLDeviceRepository struct {
	*BaseRepository
}

// NewSQLDeviceRepository creates a device repository.
func NewSQLDeviceRepository(db *database.Database) *SQLDeviceRepository {
	return &SQLDeviceRepository{BaseRepository: NewBaseRepository(db)}
}

// ListDevices retrieves all devices for a client.
func (r *SQLDeviceRepository) ListDevices(ctx context.Context, clientID int64) ([]*qa.Device, error) {
	rows, err := r.Read().QueryContext(ctx, `
		SELECT id, client_id, name, COALESCE(location, ''), online, last_seen, created_at
		FROM devices WHERE client_id = ? ORDER BY name`, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query devices: %w", err)
	}
	defer rows.Close()

	var result []*qa.Device
	for rows.Next() {
		var (
			d        qa.Device
			online   int64
			lastSeen sql.NullTime
		)
		if err := rows.Scan(&d.ID, &d.ClientID, &d.Name, &d.Location, &online, &lastSeen, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		d.Online = online != 0
		d.LastSeen = r.FromNullTime(lastSeen)
		result = append(result, &d)
	}
	return result, rows.Err()
}

// GetActiveOperator returns the operator currently assigned to a device,
// or nil when no assignment is active.
func (r *SQLDeviceRepository) GetActiveOperator(ctx context.Context, deviceID int64) (*qa.Operator, error) {
	row := r.Read().QueryRowContext(ctx, `
		SELECT o.id, o.client_id, o.name, COALESCE(o.badge_code, ''), o.created_at
		FROM assignments a
		JOIN operators o ON o.id = a.operator_id
		WHERE a.device_id = ? AND a.ended_at IS NULL
		ORDER BY a.started_at DESC LIMIT 1`, deviceID)

	var op qa.Operator
	err := row.Scan(&op.ID, &op.ClientID, &op.Name, &op.BadgeCode, &op.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Expected absence, not an error
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan operator: %w", err)
	}
	return &op, nil
}

// ListDeviceCards retrieves devices paired with their active operators.
func (r *SQLDeviceRepository) ListDeviceCards(ctx context.Context, clientID int64) ([]*qa.DeviceCard, error) {
	devices, err := r.ListDevices(ctx, clientID)
	if err != nil {
		return nil, err
	}

	cards := make([]*qa.DeviceCard, 0, len(devices))
	for _, device := range devices {
		operator, err := r.GetActiveOperator(ctx, device.ID)
		if err != nil {
			return nil, err
		}
		cards = append(cards, &qa.DeviceCard{Device: device, Operator: operator})
	}
	return cards, nil
}
