package presenters

import (
	"qadash/application"
	"qadash/domain/events"
	"qadash/domain/reports"
	"qadash/interfaces/web/templates/components/ui"
)

// EventPresenterInterface defines the contract for banner presentation logic.
type EventPresenterInterface interface {
	// ToBanner converts one decoded feed event to its banner view.
	ToBanner(clientSlug string, event events.FeedEvent) *ui.BannerView
}

// ReportPresenterInterface defines the contract for report presentation logic.
type ReportPresenterInterface interface {
	// FormatReportStatus converts a report to its API view.
	FormatReportStatus(report *reports.Report) *ReportStatusView
}

// AnalyticsPresenterInterface defines the contract for analytics presentation logic.
type AnalyticsPresenterInterface interface {
	// ToAnalyticsPage converts the rollup to the analytics page view model.
	ToAnalyticsPage(data *application.AnalyticsSummary) *AnalyticsPageVM
}

// Ensure presenters implement their interfaces.
var (
	_ EventPresenterInterface     = (*EventPresenter)(nil)
	_ ReportPresenterInterface    = (*ReportPresenter)(nil)
	_ AnalyticsPresenterInterface = (*AnalyticsPresenter)(nil)
)
