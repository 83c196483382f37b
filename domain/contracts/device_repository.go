package contracts

import (
	"context"

	"qadash/domain/qa"
)

// DeviceRepository defines operations for devices, operators and assignments.
type DeviceRepository interface {
	// ListDevices retrieves all devices for a client.
	ListDevices(ctx context.Context, clientID int64) ([]*qa.Device, error)

	// GetActiveOperator returns the operator currently assigned to a device,
	// or nil when no assignment is active.
	GetActiveOperator(ctx context.Context, deviceID int64) (*qa.Operator, error)

	// ListDeviceCards retrieves devices paired with their active operators.
	ListDeviceCards(ctx context.Context, clientID int64) ([]*qa.DeviceCard, error)
}
