package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"qadash/application"
	"qadash/domain/contracts"
	"qadash/domain/reports"
	"qadash/infrastructure/storage"
	"qadash/interfaces/web/presenters"
	"qadash/interfaces/web/shell"
	"qadash/interfaces/web/templates/components/ui"
	"qadash/logging"
	"qadash/platform/notify"
)

// ReportHandlers handles the report lifecycle API plus the toast dismiss and
// palette filter endpoints that ride on the same API surface.
type ReportHandlers struct {
	reportService   application.ReportService
	store           storage.ArtifactStore
	toastCenter     *notify.ToastCenter
	reportPresenter *presenters.ReportPresenter
	logger          *logging.Logger
}

// NewReportHandlers creates the report handlers.
func NewReportHandlers(
	reportService application.ReportService,
	store storage.ArtifactStore,
	toastCenter *notify.ToastCenter,
) *ReportHandlers {
	return &ReportHandlers{
		reportService:   reportService,
		store:           store,
		toastCenter:     toastCenter,
		reportPresenter: presenters.NewReportPresenter(),
		logger:          logging.Default().WithComponent("report_handler"),
	}
}

// CreateReport accepts a generation request and answers 202 with the pending
// report; generation continues in the background.
func (h *ReportHandlers) CreateReport(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())

	req := application.CreateReportRequest{
		ClientID: session.ClientID,
		UserID:   &session.UserID,
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Type       string            `json:"type"`
			Language   string            `json:"language"`
			Parameters map[string]string `json:"parameters"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		req.Type = reports.ReportType(body.Type)
		req.Language = body.Language
		req.Parameters = body.Parameters
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form data", http.StatusBadRequest)
			return
		}
		req.Type = reports.ReportType(r.FormValue("type"))
		req.Language = r.FormValue("language")
	}

	if req.Type == "" {
		http.Error(w, "missing report type", http.StatusBadRequest)
		return
	}

	report, err := h.reportService.CreateReport(r.Context(), req)
	if err != nil {
		h.logger.Error("Failed to create report", "type", req.Type, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(h.reportPresenter.FormatReportStatus(report))
}

// GetReport returns one report's status view.
func (h *ReportHandlers) GetReport(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	reportID := chi.URLParam(r, "reportID")

	report, err := h.reportService.GetReport(r.Context(), session.ClientID, reportID)
	if err != nil {
		if errors.Is(err, contracts.ErrNotFound) {
			http.Error(w, "Report not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to get report", "report_id", reportID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.reportPresenter.FormatReportStatus(report))
}

// ListReports returns all reports for the session's client.
func (h *ReportHandlers) ListReports(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())

	items, err := h.reportService.ListReports(r.Context(), session.ClientID)
	if err != nil {
		h.logger.Error("Failed to list reports", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.reportPresenter.FormatReportList(items))
}

// VerifyReport reports whether the artifact behind a report exists and its size.
func (h *ReportHandlers) VerifyReport(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	reportID := chi.URLParam(r, "reportID")

	exists, size, err := h.reportService.VerifyArtifact(r.Context(), session.ClientID, reportID)
	if err != nil {
		if errors.Is(err, contracts.ErrNotFound) {
			http.Error(w, "Report not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to verify artifact", "report_id", reportID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"exists": exists, "size": size})
}

// DownloadReport streams the artifact for a completed report.
func (h *ReportHandlers) DownloadReport(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	reportID := chi.URLParam(r, "reportID")

	report, err := h.reportService.GetReport(r.Context(), session.ClientID, reportID)
	if err != nil {
		if errors.Is(err, contracts.ErrNotFound) {
			http.Error(w, "Report not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to get report", "report_id", reportID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if !report.Succeeded() {
		http.Error(w, "Report is not ready", http.StatusConflict)
		return
	}

	file, err := h.store.Open(report.FilePath)
	if err != nil {
		h.logger.Error("Failed to open artifact", "report_id", reportID, "error", err)
		http.Error(w, "Artifact unavailable", http.StatusNotFound)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.FileName+`"`)
	io.Copy(w, file)
}

// DismissToast removes a toast from the process-wide queue. Unknown ids are a
// defined no-op.
func (h *ReportHandlers) DismissToast(w http.ResponseWriter, r *http.Request) {
	h.toastCenter.Dismiss(chi.URLParam(r, "toastID"))
	w.WriteHeader(http.StatusNoContent)
}

// PaletteResults serves the filtered command list fragment.
func (h *ReportHandlers) PaletteResults(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())

	commands := shell.Commands(shell.NavItems(session.ClientSlug))
	filtered := shell.FilterCommands(commands, r.URL.Query().Get("q"))
	RenderResponse(r.Context(), w, r, ui.PaletteResults(filtered))
}
