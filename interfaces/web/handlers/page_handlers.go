package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"qadash/application"
	"qadash/domain/contracts"
	"qadash/interfaces/web/presenters"
	"qadash/interfaces/web/shell"
	"qadash/interfaces/web/templates/components/ui"
	"qadash/interfaces/web/templates/pages"
	"qadash/logging"
)

// PageHandlers serves the tenant-scoped dashboard pages and their HTMX
// fragments.
type PageHandlers struct {
	clientService      *application.ClientService
	lotService         *application.LotService
	feedService        *application.EventFeedService
	analyticsService   *application.AnalyticsService
	reportService      application.ReportService
	deviceRepo         contracts.DeviceRepository
	lotPresenter       *presenters.LotPresenter
	eventPresenter     *presenters.EventPresenter
	reportPresenter    *presenters.ReportPresenter
	analyticsPresenter *presenters.AnalyticsPresenter
	devicePresenter    *presenters.DevicePresenter
	logger             *logging.Logger
}

// NewPageHandlers creates the page handlers.
func NewPageHandlers(
	clientService *application.ClientService,
	lotService *application.LotService,
	feedService *application.EventFeedService,
	analyticsService *application.AnalyticsService,
	reportService application.ReportService,
	deviceRepo contracts.DeviceRepository,
) *PageHandlers {
	return &PageHandlers{
		clientService:      clientService,
		lotService:         lotService,
		feedService:        feedService,
		analyticsService:   analyticsService,
		reportService:      reportService,
		deviceRepo:         deviceRepo,
		lotPresenter:       presenters.NewLotPresenter(),
		eventPresenter:     presenters.NewEventPresenter(),
		reportPresenter:    presenters.NewReportPresenter(),
		analyticsPresenter: presenters.NewAnalyticsPresenter(),
		devicePresenter:    presenters.NewDevicePresenter(),
		logger:             logging.Default().WithComponent("page_handler"),
	}
}

// pageShell builds the layout state for the current request.
func (h *PageHandlers) pageShell(r *http.Request, active string, crumbs ...shell.Breadcrumb) pages.Shell {
	session := SessionFrom(r.Context())
	sh := pages.Shell{
		ClientSlug:  session.ClientSlug,
		ClientName:  session.ClientSlug,
		Active:      active,
		Breadcrumbs: crumbs,
	}
	client, err := h.clientService.GetByID(r.Context(), session.ClientID)
	if err != nil {
		// Fall back to the slug; the page still renders
		h.logger.Warn("Failed to load client for shell", "client_id", session.ClientID, "error", err)
		return sh
	}
	sh.ClientName = client.Name
	return sh
}

// FeedPage renders the live event feed.
func (h *PageHandlers) FeedPage(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	sh := h.pageShell(r, "Live Feed", shell.Breadcrumb{Label: "Live Feed", Href: "/c/" + session.ClientSlug + "/feed"})

	feed, err := h.feedService.RecentEvents(r.Context(), session.ClientID, 50)
	if err != nil {
		h.logger.Error("Failed to load event feed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	banners := h.eventPresenter.ToBanners(session.ClientSlug, feed)
	RenderResponse(r.Context(), w, r, pages.Layout(sh, "Live Feed", pages.Feed(sh, banners)))
}

// FeedBanners serves the banner strip fragment for HTMX refreshes.
func (h *PageHandlers) FeedBanners(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())

	feed, err := h.feedService.RecentEvents(r.Context(), session.ClientID, 50)
	if err != nil {
		h.logger.Error("Failed to load event feed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	banners := h.eventPresenter.ToBanners(session.ClientSlug, feed)
	RenderResponse(r.Context(), w, r, ui.BannerStrip(banners))
}

// sh builds a minimal shell for fragment rendering.
func sh(clientSlug, active string) pages.Shell {
	return pages.Shell{ClientSlug: clientSlug, ClientName: clientSlug, Active: active}
}

// LotsPage renders the lots table page.
func (h *PageHandlers) LotsPage(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	shellState := h.pageShell(r, "Lots", shell.Breadcrumb{Label: "Lots", Href: "/c/" + session.ClientSlug + "/lots"})

	vm, err := h.lotsViewModel(r)
	if err != nil {
		h.logger.Error("Failed to load lots", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	RenderResponse(r.Context(), w, r, pages.Layout(shellState, "Lots", pages.Lots(shellState, vm)))
}

// LotsTable serves the lots table fragment for filter changes and SSE refreshes.
func (h *PageHandlers) LotsTable(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())

	vm, err := h.lotsViewModel(r)
	if err != nil {
		h.logger.Error("Failed to load lots", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	RenderResponse(r.Context(), w, r, pages.LotsTable(sh(session.ClientSlug, "Lots"), vm))
}

func (h *PageHandlers) lotsViewModel(r *http.Request) (*presenters.LotsPageVM, error) {
	session := SessionFrom(r.Context())
	status := r.URL.Query().Get("status")
	search := r.URL.Query().Get("search")

	lots, err := h.lotService.ListLots(r.Context(), session.ClientID, status, search)
	if err != nil {
		return nil, err
	}
	return h.lotPresenter.ToLotsPage(session.ClientSlug, lots, status, search), nil
}

// LotDetailPage renders one lot.
func (h *PageHandlers) LotDetailPage(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())

	lotID, err := strconv.ParseInt(chi.URLParam(r, "lotID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid lot id", http.StatusBadRequest)
		return
	}

	lot, err := h.lotService.GetLot(r.Context(), session.ClientID, lotID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	shellState := h.pageShell(r, "Lots", shell.LotBreadcrumbs(session.ClientSlug, lotID)...)
	row := h.lotPresenter.ToLotRow(session.ClientSlug, lot)
	RenderResponse(r.Context(), w, r, pages.Layout(shellState, row.StyleRef, pages.LotDetail(shellState, row)))
}

// ApproveLot handles the approval action on a lot detail page.
func (h *PageHandlers) ApproveLot(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())

	lotID, err := strconv.ParseInt(chi.URLParam(r, "lotID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid lot id", http.StatusBadRequest)
		return
	}

	if err := h.lotService.ApproveLot(r.Context(), session.ClientID, lotID); err != nil {
		h.logger.Error("Failed to approve lot", "lot_id", lotID, "error", err)
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReportsPage renders the reports page.
func (h *PageHandlers) ReportsPage(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	shellState := h.pageShell(r, "Reports", shell.Breadcrumb{Label: "Reports", Href: "/c/" + session.ClientSlug + "/reports"})

	items, err := h.reportService.ListReports(r.Context(), session.ClientID)
	if err != nil {
		h.logger.Error("Failed to list reports", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	vm := h.reportPresenter.ToReportsPage(items)
	RenderResponse(r.Context(), w, r, pages.Layout(shellState, "Reports", pages.Reports(shellState, vm)))
}

// ReportsTable serves the reports table fragment for SSE refreshes.
func (h *PageHandlers) ReportsTable(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())

	items, err := h.reportService.ListReports(r.Context(), session.ClientID)
	if err != nil {
		h.logger.Error("Failed to list reports", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	vm := h.reportPresenter.ToReportsPage(items)
	RenderResponse(r.Context(), w, r, pages.ReportsTable(sh(session.ClientSlug, "Reports"), vm))
}

// AnalyticsPage renders the analytics rollup.
func (h *PageHandlers) AnalyticsPage(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	shellState := h.pageShell(r, "Analytics", shell.Breadcrumb{Label: "Analytics", Href: "/c/" + session.ClientSlug + "/analytics"})

	summary, err := h.analyticsService.Summary(r.Context(), session.ClientID)
	if err != nil {
		h.logger.Error("Failed to compute analytics", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	vm := h.analyticsPresenter.ToAnalyticsPage(summary)
	RenderResponse(r.Context(), w, r, pages.Layout(shellState, "Analytics", pages.Analytics(shellState, vm)))
}

// DevicesPage renders the devices grid.
func (h *PageHandlers) DevicesPage(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	shellState := h.pageShell(r, "Devices", shell.Breadcrumb{Label: "Devices", Href: "/c/" + session.ClientSlug + "/devices"})

	cards, err := h.deviceRepo.ListDeviceCards(r.Context(), session.ClientID)
	if err != nil {
		h.logger.Error("Failed to list devices", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	vm := h.devicePresenter.ToDevicesPage(cards)
	RenderResponse(r.Context(), w, r, pages.Layout(shellState, "Devices", pages.Devices(shellState, vm)))
}
