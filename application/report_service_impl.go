package application

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"qadash/domain/contracts"
	"qadash/domain/events"
	"qadash/domain/reports"
	"qadash/infrastructure/storage"
	"qadash/logging"
)

// ReportServiceImpl implements report lifecycle orchestration.
type ReportServiceImpl struct {
	reportRepo contracts.ReportRepository
	registry   *ReportGeneratorRegistry
	store      storage.ArtifactStore
	eventBus   events.ReportEventPublisher
	notifier   UpdateNotifier
	appCtx     context.Context
	logger     *logging.Logger
}

// NewReportService creates a report service. appCtx bounds background
// generation so shutdown cancels in-flight work.
func NewReportService(
	appCtx context.Context,
	reportRepo contracts.ReportRepository,
	registry *ReportGeneratorRegistry,
	store storage.ArtifactStore,
	eventBus events.ReportEventPublisher,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		reportRepo: reportRepo,
		registry:   registry,
		store:      store,
		eventBus:   eventBus,
		appCtx:     appCtx,
		logger:     logging.Default().WithComponent("report_service"),
	}
}

// SetUpdateNotifier wires live-update notifications.
func (s *ReportServiceImpl) SetUpdateNotifier(notifier UpdateNotifier) {
	s.notifier = notifier
}

// CreateReport persists a PENDING report and starts generation asynchronously.
func (s *ReportServiceImpl) CreateReport(ctx context.Context, req CreateReportRequest) (*reports.Report, error) {
	generator, err := s.registry.GetGenerator(req.Type)
	if err != nil {
		return nil, fmt.Errorf("cannot create report: %w", err)
	}

	report := reports.NewReport(req.ClientID, req.UserID, req.Type, req.Language, req.Parameters)
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to persist report: %w", err)
	}

	s.logger.Report("Report created", report.ID)
	go s.generateAsync(report, generator)

	return report, nil
}

// generateAsync runs the PENDING -> PROCESSING -> terminal transition.
func (s *ReportServiceImpl) generateAsync(report *reports.Report, generator ReportGenerator) {
	started := time.Now()
	ctx := s.appCtx

	report.MarkProcessing()
	if err := s.reportRepo.Update(ctx, report); err != nil {
		s.logger.ReportError("Failed to mark report processing", err, report.ID)
		return
	}
	s.notifyUpdate()

	var buf bytes.Buffer
	if err := generator.Generate(ctx, report, &buf); err != nil {
		s.failReport(ctx, report, err, time.Since(started))
		return
	}

	path, size, err := s.store.Save(report.ClientID, report.FileName, &buf)
	if err != nil {
		s.failReport(ctx, report, err, time.Since(started))
		return
	}

	fileURL := fmt.Sprintf("/api/reports/%s/download", report.ID)
	report.MarkCompleted(path, fileURL, size, time.Since(started))
	if err := s.reportRepo.Update(ctx, report); err != nil {
		s.logger.ReportError("Failed to mark report completed", err, report.ID)
		return
	}

	s.logger.Report("Report generated", report.ID)
	s.eventBus.PublishReportCompleted(events.ReportCompletedEvent{
		Report:    report,
		Timestamp: time.Now(),
	})
	s.notifyUpdate()
}

func (s *ReportServiceImpl) failReport(ctx context.Context, report *reports.Report, cause error, took time.Duration) {
	s.logger.ReportError("Report generation failed", cause, report.ID)

	report.MarkFailed(cause.Error(), took)
	if err := s.reportRepo.Update(ctx, report); err != nil {
		s.logger.ReportError("Failed to mark report failed", err, report.ID)
	}

	s.eventBus.PublishReportFailed(events.ReportFailedEvent{
		Report:    report,
		Error:     cause.Error(),
		Timestamp: time.Now(),
	})
	s.notifyUpdate()
}

func (s *ReportServiceImpl) notifyUpdate() {
	if s.notifier != nil {
		s.notifier.NotifyReportUpdate()
	}
}

// GetReport retrieves a report, enforcing tenant scope.
func (s *ReportServiceImpl) GetReport(ctx context.Context, clientID int64, reportID string) (*reports.Report, error) {
	return s.reportRepo.GetByID(ctx, clientID, reportID)
}

// ListReports retrieves reports for a client, newest first.
func (s *ReportServiceImpl) ListReports(ctx context.Context, clientID int64) ([]*reports.Report, error) {
	return s.reportRepo.List(ctx, clientID)
}

// VerifyArtifact checks the stored artifact behind a report.
func (s *ReportServiceImpl) VerifyArtifact(ctx context.Context, clientID int64, reportID string) (bool, int64, error) {
	report, err := s.reportRepo.GetByID(ctx, clientID, reportID)
	if err != nil {
		return false, 0, err
	}
	if report.FilePath == "" {
		return false, 0, nil
	}
	return s.store.Exists(report.FilePath)
}
