package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"qadash/domain/contracts"
	"qadash/domain/events"
	"qadash/domain/reports"
	"qadash/test/mocks"
)

// stubGenerator writes fixed content or fails, for lifecycle tests.
type stubGenerator struct {
	content string
	err     error
}

func (g *stubGenerator) Generate(_ context.Context, _ *reports.Report, out io.Writer) error {
	if g.err != nil {
		return g.err
	}
	_, err := io.Copy(out, strings.NewReader(g.content))
	return err
}

func newTestReportService(t *testing.T, gen ReportGenerator) (*ReportServiceImpl, *mocks.MockReportRepository, *mocks.MockArtifactStore, *mocks.MockReportEventPublisher) {
	t.Helper()

	registry := NewReportGeneratorRegistry()
	if gen != nil {
		registry.RegisterGenerator(reports.ReportTypeLotSummary, gen)
	}

	repo := &mocks.MockReportRepository{}
	store := &mocks.MockArtifactStore{}
	bus := &mocks.MockReportEventPublisher{}

	svc := NewReportService(context.Background(), repo, registry, store, bus)
	return svc, repo, store, bus
}

func TestReportService_CreateReport_Success(t *testing.T) {
	// Arrange
	svc, repo, store, bus := newTestReportService(t, &stubGenerator{content: "lot,defects\nL1,3\n"})

	repo.On("Create", mock.Anything, mock.AnythingOfType("*reports.Report")).Return(nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*reports.Report")).Return(nil)
	store.On("Save", int64(7), mock.AnythingOfType("string"), mock.Anything).
		Return("/artifacts/7/report.csv", int64(18), nil)

	completed := make(chan events.ReportCompletedEvent, 1)
	bus.On("PublishReportCompleted", mock.AnythingOfType("events.ReportCompletedEvent")).
		Run(func(args mock.Arguments) {
			completed <- args.Get(0).(events.ReportCompletedEvent)
		}).Return()

	// Act
	report, err := svc.CreateReport(context.Background(), CreateReportRequest{
		ClientID: 7,
		Type:     reports.ReportTypeLotSummary,
	})

	// Assert: creation returns a pending report immediately
	require.NoError(t, err)
	assert.Equal(t, reports.ReportStatusPending, report.Status)
	assert.Equal(t, reports.DefaultLanguage, report.Language)
	assert.NotEmpty(t, report.ID)
	assert.Contains(t, report.FileName, string(reports.ReportTypeLotSummary))
	assert.True(t, strings.HasSuffix(report.FileName, ".csv"))

	// Assert: background generation completes and publishes
	select {
	case event := <-completed:
		assert.Equal(t, reports.ReportStatusCompleted, event.Report.Status)
		assert.Equal(t, "/artifacts/7/report.csv", event.Report.FilePath)
		assert.Equal(t, "/api/reports/"+report.ID+"/download", event.Report.FileURL)
		assert.Equal(t, int64(18), event.Report.FileSize)
		require.NotNil(t, event.Report.GeneratedAt)
		require.NotNil(t, event.Report.ExpiresAt)
		assert.WithinDuration(t, event.Report.GeneratedAt.Add(reports.RetentionPeriod), *event.Report.ExpiresAt, time.Second)
	case <-time.After(2 * time.Second):
		t.Fatal("Expected ReportCompletedEvent was not published")
	}

	repo.AssertExpectations(t)
	store.AssertExpectations(t)
	bus.AssertExpectations(t)
}

func TestReportService_CreateReport_UnknownType(t *testing.T) {
	svc, _, _, _ := newTestReportService(t, nil)

	report, err := svc.CreateReport(context.Background(), CreateReportRequest{
		ClientID: 1,
		Type:     reports.ReportType("bogus"),
	})

	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestReportService_CreateReport_GeneratorFailure(t *testing.T) {
	// Arrange
	svc, repo, _, bus := newTestReportService(t, &stubGenerator{err: errors.New("upstream query failed")})

	repo.On("Create", mock.Anything, mock.AnythingOfType("*reports.Report")).Return(nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*reports.Report")).Return(nil)

	failed := make(chan events.ReportFailedEvent, 1)
	bus.On("PublishReportFailed", mock.AnythingOfType("events.ReportFailedEvent")).
		Run(func(args mock.Arguments) {
			failed <- args.Get(0).(events.ReportFailedEvent)
		}).Return()

	// Act
	_, err := svc.CreateReport(context.Background(), CreateReportRequest{
		ClientID: 1,
		Type:     reports.ReportTypeLotSummary,
	})
	require.NoError(t, err)

	// Assert: failure surfaces through the bus with the cause recorded
	select {
	case event := <-failed:
		assert.Equal(t, reports.ReportStatusFailed, event.Report.Status)
		assert.Equal(t, "upstream query failed", event.Report.ErrorMessage)
		assert.Equal(t, "upstream query failed", event.Error)
	case <-time.After(2 * time.Second):
		t.Fatal("Expected ReportFailedEvent was not published")
	}

	bus.AssertNotCalled(t, "PublishReportCompleted", mock.Anything)
}

func TestReportService_CreateReport_StoreFailure(t *testing.T) {
	svc, repo, store, bus := newTestReportService(t, &stubGenerator{content: "data"})

	repo.On("Create", mock.Anything, mock.AnythingOfType("*reports.Report")).Return(nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*reports.Report")).Return(nil)
	store.On("Save", int64(1), mock.AnythingOfType("string"), mock.Anything).
		Return("", int64(0), errors.New("disk full"))

	failed := make(chan events.ReportFailedEvent, 1)
	bus.On("PublishReportFailed", mock.AnythingOfType("events.ReportFailedEvent")).
		Run(func(args mock.Arguments) {
			failed <- args.Get(0).(events.ReportFailedEvent)
		}).Return()

	_, err := svc.CreateReport(context.Background(), CreateReportRequest{
		ClientID: 1,
		Type:     reports.ReportTypeLotSummary,
	})
	require.NoError(t, err)

	select {
	case event := <-failed:
		assert.Equal(t, "disk full", event.Error)
	case <-time.After(2 * time.Second):
		t.Fatal("Expected ReportFailedEvent was not published")
	}
}

func TestReportService_VerifyArtifact(t *testing.T) {
	svc, repo, store, _ := newTestReportService(t, nil)

	stored := &reports.Report{
		ID:       "r-1",
		ClientID: 3,
		Status:   reports.ReportStatusCompleted,
		FilePath: "/artifacts/3/r-1.csv",
	}
	repo.On("GetByID", mock.Anything, int64(3), "r-1").Return(stored, nil)
	store.On("Exists", "/artifacts/3/r-1.csv").Return(true, int64(512), nil)

	exists, size, err := svc.VerifyArtifact(context.Background(), 3, "r-1")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int64(512), size)
}

func TestReportService_VerifyArtifact_NoFileYet(t *testing.T) {
	svc, repo, _, _ := newTestReportService(t, nil)

	pending := &reports.Report{ID: "r-2", ClientID: 3, Status: reports.ReportStatusPending}
	repo.On("GetByID", mock.Anything, int64(3), "r-2").Return(pending, nil)

	exists, size, err := svc.VerifyArtifact(context.Background(), 3, "r-2")

	require.NoError(t, err)
	assert.False(t, exists)
	assert.Zero(t, size)
}

func TestReportService_GetReport_TenantScope(t *testing.T) {
	svc, repo, _, _ := newTestReportService(t, nil)

	repo.On("GetByID", mock.Anything, int64(9), "r-3").Return(nil, contracts.ErrNotFound)

	report, err := svc.GetReport(context.Background(), 9, "r-3")

	assert.Nil(t, report)
	assert.ErrorIs(t, err, contracts.ErrNotFound)
}
