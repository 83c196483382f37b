package qa

import "time"

// Device is an edge inspection station reporting into the dashboard.
type Device struct {
	ID        int64
	ClientID  int64
	Name      string
	Location  string
	Online    bool
	LastSeen  *time.Time
	CreatedAt time.Time
}

// Operator is a factory-floor inspector.
type Operator struct {
	ID        int64
	ClientID  int64
	Name      string
	BadgeCode string
	CreatedAt time.Time
}

// Assignment binds an operator to a device for a shift. EndedAt is nil while
// the assignment is active; a device with no active assignment is a normal
// state, not an error.
type Assignment struct {
	ID         int64
	DeviceID   int64
	OperatorID int64
	StartedAt  time.Time
	EndedAt    *time.Time
}

// IsActive reports whether the assignment is still in effect.
func (a *Assignment) IsActive() bool {
	return a.EndedAt == nil
}

// DeviceCard pairs a device with its active operator, if any.
type DeviceCard struct {
	Device   *Device
	Operator *Operator // nil when no active assignment
}
