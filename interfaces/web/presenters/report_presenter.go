package presenters

import (
	"qadash/domain/reports"
)

// ReportStatusView represents a report for API responses.
type ReportStatusView struct {
	ID               string            `json:"id"`
	Type             string            `json:"type"`
	Status           string            `json:"status"`
	Language         string            `json:"language"`
	FileName         string            `json:"fileName"`
	FileURL          string            `json:"fileUrl,omitempty"`
	FileSize         int64             `json:"fileSize,omitempty"`
	Parameters       map[string]string `json:"parameters,omitempty"`
	GeneratedAt      string            `json:"generatedAt,omitempty"`
	ExpiresAt        string            `json:"expiresAt,omitempty"`
	ErrorMessage     string            `json:"errorMessage,omitempty"`
	GenerationTimeMs int64             `json:"generationTimeMs,omitempty"`
	CreatedAt        string            `json:"createdAt"`
	IsTerminal       bool              `json:"isTerminal"`
}

// ReportListView represents a list of reports for API responses.
type ReportListView struct {
	Reports []*ReportStatusView `json:"reports"`
}

// ReportRowView is one row in the reports table.
type ReportRowView struct {
	ID        string
	Type      string
	Status    string
	Tone      string
	FileName  string
	FileSize  string
	Created   string
	Download  string
	CanFetch  bool
	ErrorText string
}

// ReportsPageVM is the view model for the reports page.
type ReportsPageVM struct {
	Reports []ReportRowView
	Types   []string
}

// ReportPresenter transforms report domain data into JSON views and table rows.
type ReportPresenter struct{}

// NewReportPresenter creates a report presenter.
func NewReportPresenter() *ReportPresenter {
	return &ReportPresenter{}
}

const apiTimeFormat = "2006-01-02T15:04:05Z07:00"

// FormatReportStatus converts a report to its API view.
func (p *ReportPresenter) FormatReportStatus(report *reports.Report) *ReportStatusView {
	if report == nil {
		return nil
	}

	view := &ReportStatusView{
		ID:               report.ID,
		Type:             string(report.Type),
		Status:           string(report.Status),
		Language:         report.Language,
		FileName:         report.FileName,
		FileURL:          report.FileURL,
		FileSize:         report.FileSize,
		Parameters:       report.Parameters,
		ErrorMessage:     report.ErrorMessage,
		GenerationTimeMs: report.GenerationTimeMs,
		CreatedAt:        report.CreatedAt.Format(apiTimeFormat),
		IsTerminal:       report.IsTerminal(),
	}
	if report.GeneratedAt != nil {
		view.GeneratedAt = report.GeneratedAt.Format(apiTimeFormat)
	}
	if report.ExpiresAt != nil {
		view.ExpiresAt = report.ExpiresAt.Format(apiTimeFormat)
	}
	return view
}

// FormatReportList converts reports to the API list view.
func (p *ReportPresenter) FormatReportList(items []*reports.Report) *ReportListView {
	views := make([]*ReportStatusView, 0, len(items))
	for _, r := range items {
		views = append(views, p.FormatReportStatus(r))
	}
	return &ReportListView{Reports: views}
}

var reportStatusTones = map[reports.ReportStatus]string{
	reports.ReportStatusPending:    "default",
	reports.ReportStatusProcessing: "default",
	reports.ReportStatusCompleted:  "success",
	reports.ReportStatusReady:      "success",
	reports.ReportStatusFailed:     "danger",
}

// ToReportsPage converts reports to the reports page view model.
func (p *ReportPresenter) ToReportsPage(items []*reports.Report) *ReportsPageVM {
	rows := make([]ReportRowView, 0, len(items))
	for _, r := range items {
		tone := reportStatusTones[r.Status]
		if tone == "" {
			tone = "default"
		}
		rows = append(rows, ReportRowView{
			ID:        r.ID,
			Type:      string(r.Type),
			Status:    string(r.Status),
			Tone:      tone,
			FileName:  r.FileName,
			FileSize:  FormatFileSize(r.FileSize),
			Created:   FormatRelativeTime(r.CreatedAt),
			Download:  r.FileURL,
			CanFetch:  r.Succeeded(),
			ErrorText: r.ErrorMessage,
		})
	}
	return &ReportsPageVM{
		Reports: rows,
		Types:   []string{string(reports.ReportTypeLotSummary), string(reports.ReportTypeDefectAnalysis)},
	}
}
