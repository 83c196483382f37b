package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"qadash/application"
	"qadash/domain/contracts"
	"qadash/domain/reports"
	"qadash/platform/notify"
	"qadash/test/mocks"
)

// MockReportService implements application.ReportService for handler tests.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) CreateReport(ctx context.Context, req application.CreateReportRequest) (*reports.Report, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reports.Report), args.Error(1)
}

func (m *MockReportService) GetReport(ctx context.Context, clientID int64, reportID string) (*reports.Report, error) {
	args := m.Called(ctx, clientID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reports.Report), args.Error(1)
}

func (m *MockReportService) ListReports(ctx context.Context, clientID int64) ([]*reports.Report, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reports.Report), args.Error(1)
}

func (m *MockReportService) VerifyArtifact(ctx context.Context, clientID int64, reportID string) (bool, int64, error) {
	args := m.Called(ctx, clientID, reportID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockReportService) SetUpdateNotifier(notifier application.UpdateNotifier) {
	m.Called(notifier)
}

func testSessionContext(r *http.Request) *http.Request {
	session := &application.Session{
		Token:      "test-token",
		UserID:     42,
		ClientID:   7,
		ClientSlug: "acme",
		Email:      "qa@acme.test",
	}
	return r.WithContext(context.WithValue(r.Context(), sessionContextKey, session))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

func newTestReportHandlers(service application.ReportService) (*ReportHandlers, *notify.ToastCenter) {
	center := notify.NewToastCenter()
	return NewReportHandlers(service, &mocks.MockArtifactStore{}, center), center
}

func TestReportHandlers_CreateReport_Accepted(t *testing.T) {
	service := &MockReportService{}
	handlers, center := newTestReportHandlers(service)
	defer center.Close()

	pending := reports.NewReport(7, nil, reports.ReportTypeLotSummary, "", nil)
	service.On("CreateReport", mock.Anything, mock.MatchedBy(func(req application.CreateReportRequest) bool {
		return req.ClientID == 7 && req.Type == reports.ReportTypeLotSummary
	})).Return(pending, nil)

	body := strings.NewReader(`{"type": "lot_summary"}`)
	req := httptest.NewRequest("POST", "/api/reports", body)
	req.Header.Set("Content-Type", "application/json")
	req = testSessionContext(req)
	rec := httptest.NewRecorder()

	handlers.CreateReport(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)

	var view map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "PENDING", view["status"])
	assert.Equal(t, pending.ID, view["id"])
}

func TestReportHandlers_CreateReport_MissingType(t *testing.T) {
	service := &MockReportService{}
	handlers, center := newTestReportHandlers(service)
	defer center.Close()

	req := testSessionContext(httptest.NewRequest("POST", "/api/reports", strings.NewReader("")))
	rec := httptest.NewRecorder()

	handlers.CreateReport(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	service.AssertNotCalled(t, "CreateReport", mock.Anything, mock.Anything)
}

func TestReportHandlers_GetReport_NotFound(t *testing.T) {
	service := &MockReportService{}
	handlers, center := newTestReportHandlers(service)
	defer center.Close()

	service.On("GetReport", mock.Anything, int64(7), "missing").Return(nil, contracts.ErrNotFound)

	req := testSessionContext(httptest.NewRequest("GET", "/api/reports/missing", nil))
	req = withURLParam(req, "reportID", "missing")
	rec := httptest.NewRecorder()

	handlers.GetReport(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportHandlers_VerifyReport(t *testing.T) {
	service := &MockReportService{}
	handlers, center := newTestReportHandlers(service)
	defer center.Close()

	service.On("VerifyArtifact", mock.Anything, int64(7), "r-1").Return(true, int64(2048), nil)

	req := testSessionContext(httptest.NewRequest("GET", "/api/reports/r-1/verify", nil))
	req = withURLParam(req, "reportID", "r-1")
	rec := httptest.NewRecorder()

	handlers.VerifyReport(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var result map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, true, result["exists"])
	assert.Equal(t, float64(2048), result["size"])
}

func TestReportHandlers_DownloadReport_NotReady(t *testing.T) {
	service := &MockReportService{}
	handlers, center := newTestReportHandlers(service)
	defer center.Close()

	processing := &reports.Report{ID: "r-2", ClientID: 7, Status: reports.ReportStatusProcessing}
	service.On("GetReport", mock.Anything, int64(7), "r-2").Return(processing, nil)

	req := testSessionContext(httptest.NewRequest("GET", "/api/reports/r-2/download", nil))
	req = withURLParam(req, "reportID", "r-2")
	rec := httptest.NewRecorder()

	handlers.DownloadReport(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestReportHandlers_DismissToast_UnknownIDIsNoOp(t *testing.T) {
	service := &MockReportService{}
	handlers, center := newTestReportHandlers(service)
	defer center.Close()

	req := testSessionContext(httptest.NewRequest("DELETE", "/api/toasts/nope", nil))
	req = withURLParam(req, "toastID", "nope")
	rec := httptest.NewRecorder()

	handlers.DismissToast(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestReportHandlers_PaletteResults_Filtered(t *testing.T) {
	service := &MockReportService{}
	handlers, center := newTestReportHandlers(service)
	defer center.Close()

	req := testSessionContext(httptest.NewRequest("GET", "/c/acme/palette?q=lot", nil))
	rec := httptest.NewRecorder()

	handlers.PaletteResults(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lots")
	assert.NotContains(t, rec.Body.String(), "Devices")
}
