package qa

import "time"

// LotStatus represents where a production lot sits in the inspection flow.
type LotStatus string

const (
	LotStatusInspection       LotStatus = "inspection"
	LotStatusAwaitingApproval LotStatus = "awaiting_approval"
	LotStatusApproved         LotStatus = "approved"
	LotStatusRejected         LotStatus = "rejected"
	LotStatusShipped          LotStatus = "shipped"
)

// KnownLotStatuses lists every valid status in display order.
var KnownLotStatuses = []LotStatus{
	LotStatusInspection,
	LotStatusAwaitingApproval,
	LotStatusApproved,
	LotStatusRejected,
	LotStatusShipped,
}

// IsValidLotStatus reports whether s is a member of the closed status set.
func IsValidLotStatus(s string) bool {
	for _, known := range KnownLotStatuses {
		if string(known) == s {
			return true
		}
	}
	return false
}

// Lot is a production lot under quality inspection.
type Lot struct {
	ID            int64
	ClientID      int64
	StyleRef      string
	Factory       string
	Status        LotStatus
	GarmentsTotal int
	GarmentsDone  int
	DefectCount   int
	InspectedAt   *time.Time
	ApprovedAt    *time.Time
	CreatedAt     time.Time
}

// Progress returns inspection completion as a percentage in [0, 100].
func (l *Lot) Progress() int {
	if l.GarmentsTotal <= 0 {
		return 0
	}
	pct := l.GarmentsDone * 100 / l.GarmentsTotal
	if pct > 100 {
		pct = 100
	}
	return pct
}

// DefectRate returns defects per inspected garment, 0 when nothing was inspected.
func (l *Lot) DefectRate() float64 {
	if l.GarmentsDone <= 0 {
		return 0
	}
	return float64(l.DefectCount) / float64(l.GarmentsDone)
}

// IsActionable reports whether the lot is waiting on a dashboard user.
func (l *Lot) IsActionable() bool {
	return l.Status == LotStatusAwaitingApproval
}
