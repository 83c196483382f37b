package presenters

import (
	"fmt"

	"qadash/domain/qa"
)

// LotRowView is one row in the lots table.
type LotRowView struct {
	ID         int64
	Href       string
	StyleRef   string
	Factory    string
	Status     string
	StatusTone string
	Progress   int
	DefectRate string
	Actionable bool
	Created    string
}

// LotsPageVM is the view model for the lots page.
type LotsPageVM struct {
	Lots         []LotRowView
	StatusFilter string
	Search       string
	Statuses     []string
	Total        int
}

// LotPresenter transforms lot domain data for UI display.
type LotPresenter struct{}

// NewLotPresenter creates a lot presenter.
func NewLotPresenter() *LotPresenter {
	return &LotPresenter{}
}

// lotStatusLabels maps internal statuses to what the table shows.
var lotStatusLabels = map[qa.LotStatus]string{
	qa.LotStatusInspection:       "In Inspection",
	qa.LotStatusAwaitingApproval: "Awaiting Approval",
	qa.LotStatusApproved:         "Approved",
	qa.LotStatusRejected:         "Rejected",
	qa.LotStatusShipped:          "Shipped",
}

var lotStatusTones = map[qa.LotStatus]string{
	qa.LotStatusInspection:       "default",
	qa.LotStatusAwaitingApproval: "warning",
	qa.LotStatusApproved:         "success",
	qa.LotStatusRejected:         "danger",
	qa.LotStatusShipped:          "default",
}

// LotStatusLabel returns the display label for a status, falling back to the
// raw value for anything outside the known set.
func LotStatusLabel(status qa.LotStatus) string {
	if label, ok := lotStatusLabels[status]; ok {
		return label
	}
	return string(status)
}

// ToLotRow converts one lot to its table row.
func (p *LotPresenter) ToLotRow(clientSlug string, lot *qa.Lot) LotRowView {
	tone, ok := lotStatusTones[lot.Status]
	if !ok {
		tone = "default"
	}
	return LotRowView{
		ID:         lot.ID,
		Href:       fmt.Sprintf("/c/%s/lots/%d", clientSlug, lot.ID),
		StyleRef:   lot.StyleRef,
		Factory:    lot.Factory,
		Status:     LotStatusLabel(lot.Status),
		StatusTone: tone,
		Progress:   lot.Progress(),
		DefectRate: fmt.Sprintf("%.1f%%", lot.DefectRate()*100),
		Actionable: lot.IsActionable(),
		Created:    FormatRelativeTime(lot.CreatedAt),
	}
}

// ToLotsPage converts lot data to the lots page view model.
func (p *LotPresenter) ToLotsPage(clientSlug string, lots []*qa.Lot, statusFilter, search string) *LotsPageVM {
	rows := make([]LotRowView, 0, len(lots))
	for _, lot := range lots {
		rows = append(rows, p.ToLotRow(clientSlug, lot))
	}

	statuses := make([]string, 0, len(qa.KnownLotStatuses))
	for _, s := range qa.KnownLotStatuses {
		statuses = append(statuses, string(s))
	}

	return &LotsPageVM{
		Lots:         rows,
		StatusFilter: statusFilter,
		Search:       search,
		Statuses:     statuses,
		Total:        len(rows),
	}
}
