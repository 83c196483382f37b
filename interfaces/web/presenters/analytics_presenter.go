package presenters

import (
	"fmt"

	"qadash/application"
	"qadash/domain/qa"
)

// DefectBarView is one bar in the defect breakdown chart.
type DefectBarView struct {
	Label   string
	Count   int
	Percent int
}

// StatusCountView is one slice of the lot status distribution.
type StatusCountView struct {
	Label string
	Count int
	Tone  string
}

// AnalyticsPageVM is the view model for the analytics page.
type AnalyticsPageVM struct {
	TotalLots     int
	TotalDefects  int
	ActiveDevices int
	DefectRate    string
	StatusCounts  []StatusCountView
	DefectBars    []DefectBarView
}

// AnalyticsPresenter transforms analytics rollups for UI display.
type AnalyticsPresenter struct{}

// NewAnalyticsPresenter creates an analytics presenter.
func NewAnalyticsPresenter() *AnalyticsPresenter {
	return &AnalyticsPresenter{}
}

// ToAnalyticsPage converts the rollup to the analytics page view model.
// Returns safe defaults if data is nil.
func (p *AnalyticsPresenter) ToAnalyticsPage(data *application.AnalyticsSummary) *AnalyticsPageVM {
	if data == nil {
		return &AnalyticsPageVM{DefectRate: "0.0%"}
	}

	vm := &AnalyticsPageVM{
		TotalLots:     data.TotalLots,
		TotalDefects:  data.TotalDefects,
		ActiveDevices: data.ActiveDevices,
	}

	if data.TotalLots > 0 {
		vm.DefectRate = fmt.Sprintf("%.1f%%", float64(data.TotalDefects)/float64(data.TotalLots))
	} else {
		vm.DefectRate = "0.0%"
	}

	// Statuses render in their fixed display order, zeros included.
	for _, status := range qa.KnownLotStatuses {
		vm.StatusCounts = append(vm.StatusCounts, StatusCountView{
			Label: LotStatusLabel(status),
			Count: data.LotCounts[status],
			Tone:  lotStatusTones[status],
		})
	}

	maxCount := 0
	for _, d := range data.DefectCounts {
		if d.Count > maxCount {
			maxCount = d.Count
		}
	}
	for _, d := range data.DefectCounts {
		percent := 0
		if maxCount > 0 {
			percent = d.Count * 100 / maxCount
		}
		vm.DefectBars = append(vm.DefectBars, DefectBarView{
			Label:   d.DefectType,
			Count:   d.Count,
			Percent: percent,
		})
	}
	return vm
}
