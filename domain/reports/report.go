package reports

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReportStatus is the report lifecycle state as exposed over the API.
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "PENDING"
	ReportStatusProcessing ReportStatus = "PROCESSING"
	ReportStatusCompleted  ReportStatus = "COMPLETED"
	ReportStatusReady      ReportStatus = "READY"
	ReportStatusFailed     ReportStatus = "FAILED"
)

// ReportType identifies a registered generator.
type ReportType string

const (
	ReportTypeLotSummary     ReportType = "lot_summary"
	ReportTypeDefectAnalysis ReportType = "defect_analysis"
)

// DefaultLanguage is applied when a request does not specify one.
const DefaultLanguage = "EN"

// RetentionPeriod is how long generated artifacts remain downloadable.
const RetentionPeriod = 30 * 24 * time.Hour

// Report represents a generated (or in-flight) export for one tenant.
type Report struct {
	ID               string
	ClientID         int64
	UserID           *int64 // nullable: reports survive account deletion
	Type             ReportType
	Status           ReportStatus
	Language         string
	FileName         string
	FilePath         string
	FileURL          string
	FileSize         int64
	Parameters       map[string]string
	GeneratedAt      *time.Time
	ExpiresAt        *time.Time
	ErrorMessage     string
	GenerationTimeMs int64
	CreatedAt        time.Time
}

// NewReport creates a PENDING report with a generated id and derived file name.
func NewReport(clientID int64, userID *int64, reportType ReportType, language string, params map[string]string) *Report {
	if language == "" {
		language = DefaultLanguage
	}
	if params == nil {
		params = map[string]string{}
	}
	id := uuid.NewString()
	return &Report{
		ID:         id,
		ClientID:   clientID,
		UserID:     userID,
		Type:       reportType,
		Status:     ReportStatusPending,
		Language:   language,
		FileName:   fmt.Sprintf("%s-%s.csv", reportType, id),
		Parameters: params,
		CreatedAt:  time.Now(),
	}
}

// IsTerminal reports whether the lifecycle has finished, either way.
func (r *Report) IsTerminal() bool {
	switch r.Status {
	case ReportStatusCompleted, ReportStatusReady, ReportStatusFailed:
		return true
	}
	return false
}

// Succeeded reports whether the artifact is available for download.
func (r *Report) Succeeded() bool {
	return r.Status == ReportStatusCompleted || r.Status == ReportStatusReady
}

// MarkProcessing transitions a pending report into generation.
func (r *Report) MarkProcessing() {
	r.Status = ReportStatusProcessing
}

// MarkCompleted records the artifact and generation stats.
func (r *Report) MarkCompleted(filePath, fileURL string, fileSize int64, took time.Duration) {
	now := time.Now()
	expires := now.Add(RetentionPeriod)
	r.Status = ReportStatusCompleted
	r.FilePath = filePath
	r.FileURL = fileURL
	r.FileSize = fileSize
	r.GeneratedAt = &now
	r.ExpiresAt = &expires
	r.GenerationTimeMs = took.Milliseconds()
	r.ErrorMessage = ""
}

// MarkFailed records the failure reason for API consumers.
func (r *Report) MarkFailed(reason string, took time.Duration) {
	r.Status = ReportStatusFailed
	r.ErrorMessage = reason
	r.GenerationTimeMs = took.Milliseconds()
}

// Duration returns the recorded generation time.
func (r *Report) Duration() time.Duration {
	return time.Duration(r.GenerationTimeMs) * time.Millisecond
}
