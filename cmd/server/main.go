package main

import (
	"context"
	"encoding/json"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/joho/godotenv"

	"qadash/application"
	"qadash/database"
	"qadash/domain/contracts"
	"qadash/domain/reports"
	"qadash/infrastructure/config"
	"qadash/infrastructure/repositories"
	"qadash/infrastructure/storage"
	"qadash/interfaces/web/handlers"
	templates "qadash/interfaces/web/templates"
	"qadash/logging"
	"qadash/platform/events"
	"qadash/platform/notify"
)

func main() {
	// Create app-wide context for graceful shutdown
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	loadEnvironment()
	cfg := config.LoadAppConfigFromEnv()

	logger := initializeLogging(cfg)

	db := initializeDatabase(cfg, logger)
	defer db.Close()

	deps := buildDependencies(appCtx, cfg, db, logger)
	defer deps.ToastCenter.Close()

	router := setupRoutes(deps, cfg)
	startServer(router, cfg.HTTPAddr, logger, deps, appCancel)
}

// RepositoryBundle holds all repository implementations.
type RepositoryBundle struct {
	ClientRepo contracts.ClientRepository
	UserRepo   contracts.UserRepository
	LotRepo    contracts.LotRepository
	DeviceRepo contracts.DeviceRepository
	EventRepo  contracts.EventRepository
	ReportRepo contracts.ReportRepository
}

// ApplicationServices holds application services.
type ApplicationServices struct {
	AuthService      *application.AuthService
	ClientService    *application.ClientService
	LotService       *application.LotService
	FeedService      *application.EventFeedService
	AnalyticsService *application.AnalyticsService
	ReportService    application.ReportService
	EventBus         *events.ReportEventBus
}

// PresentationLayer groups all presentation components.
type PresentationLayer struct {
	AuthHandlers   *handlers.AuthHandlers
	PageHandlers   *handlers.PageHandlers
	ReportHandlers *handlers.ReportHandlers
	AuthGuard      *handlers.AuthMiddleware
	TenantGuard    *handlers.TenantMiddleware
	SSEManager     *handlers.SSEManager
}

// Dependencies holds all application dependencies organized by layer.
type Dependencies struct {
	DB           *database.Database
	Logger       *logging.Logger
	ToastCenter  *notify.ToastCenter
	Repos        *RepositoryBundle
	Services     *ApplicationServices
	Presentation *PresentationLayer
}

func loadEnvironment() {
	if err := godotenv.Load(); err != nil {
		println("No .env file found, using environment variables")
	} else {
		println("Loaded configuration from .env file")
	}
}

func initializeLogging(cfg *config.AppConfig) *logging.Logger {
	logger := logging.NewLogger(cfg.Logging)
	logging.SetDefault(logger)

	logger.Info("Application starting",
		"log_level", cfg.Logging.Level,
		"log_format", cfg.Logging.Format,
		"db_path", cfg.Database.Path,
	)
	return logger
}

func initializeDatabase(cfg *config.AppConfig, logger *logging.Logger) *database.Database {
	db, err := database.New(*cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	return db
}

func buildRepositories(db *database.Database) *RepositoryBundle {
	return &RepositoryBundle{
		ClientRepo: repositories.NewSQLClientRepository(db),
		UserRepo:   repositories.NewSQLUserRepository(db),
		LotRepo:    repositories.NewSQLLotRepository(db),
		DeviceRepo: repositories.NewSQLDeviceRepository(db),
		EventRepo:  repositories.NewSQLEventRepository(db),
		ReportRepo: repositories.NewSQLReportRepository(db),
	}
}

func buildApplicationServices(appCtx context.Context, cfg *config.AppConfig, store storage.ArtifactStore, repos *RepositoryBundle) *ApplicationServices {
	eventBus := events.NewReportEventBus()

	registry := application.NewReportGeneratorRegistry()
	registry.RegisterGenerator(reports.ReportTypeLotSummary, application.NewLotSummaryGenerator(repos.LotRepo))
	registry.RegisterGenerator(reports.ReportTypeDefectAnalysis, application.NewDefectAnalysisGenerator(repos.EventRepo))

	reportService := application.NewReportService(appCtx, repos.ReportRepo, registry, store, eventBus)

	return &ApplicationServices{
		AuthService:      application.NewAuthService(repos.UserRepo, cfg.SessionTTL),
		ClientService:    application.NewClientService(repos.ClientRepo),
		LotService:       application.NewLotService(repos.LotRepo, eventBus),
		FeedService:      application.NewEventFeedService(repos.EventRepo),
		AnalyticsService: application.NewAnalyticsService(repos.LotRepo, repos.EventRepo, repos.DeviceRepo),
		ReportService:    reportService,
		EventBus:         eventBus,
	}
}

func buildPresentationLayer(appCtx context.Context, toastCenter *notify.ToastCenter, store storage.ArtifactStore, repos *RepositoryBundle, services *ApplicationServices) *PresentationLayer {
	sseManager := handlers.NewSSEManager(appCtx, toastCenter)

	pageHandlers := handlers.NewPageHandlers(
		services.ClientService,
		services.LotService,
		services.FeedService,
		services.AnalyticsService,
		services.ReportService,
		repos.DeviceRepo,
	)
	reportHandlers := handlers.NewReportHandlers(services.ReportService, store, toastCenter)
	authHandlers := handlers.NewAuthHandlers(services.AuthService)

	// Wire up live-update notifications
	services.ReportService.SetUpdateNotifier(sseManager)

	notificationHandlers := events.NewNotificationEventHandlers(toastCenter, sseManager)
	notificationHandlers.RegisterHandlers(services.EventBus)

	return &PresentationLayer{
		AuthHandlers:   authHandlers,
		PageHandlers:   pageHandlers,
		ReportHandlers: reportHandlers,
		AuthGuard:      handlers.NewAuthMiddleware(services.AuthService),
		TenantGuard:    handlers.NewTenantMiddleware(),
		SSEManager:     sseManager,
	}
}

func buildDependencies(appCtx context.Context, cfg *config.AppConfig, db *database.Database, logger *logging.Logger) *Dependencies {
	toastCenter := notify.NewToastCenter()

	store, err := storage.NewFileStore(cfg.ArtifactRoot)
	if err != nil {
		logger.Error("Failed to initialize artifact store", "error", err)
		os.Exit(1)
	}

	repos := buildRepositories(db)
	services := buildApplicationServices(appCtx, cfg, store, repos)
	presentation := buildPresentationLayer(appCtx, toastCenter, store, repos, services)

	return &Dependencies{
		DB:           db,
		Logger:       logger,
		ToastCenter:  toastCenter,
		Repos:        repos,
		Services:     services,
		Presentation: presentation,
	}
}

func setupRoutes(deps *Dependencies, cfg *config.AppConfig) *chi.Mux {
	r := chi.NewRouter()

	setupHTTPLogging(r, deps, cfg)
	r.Use(middleware.Recoverer)

	mountStaticAssets(r)
	setupSystemRoutes(r, deps)
	setupAuthRoutes(r, deps)
	setupTenantRoutes(r, deps)
	setupAPIRoutes(r, deps)

	return r
}

func setupHTTPLogging(r *chi.Mux, deps *Dependencies, cfg *config.AppConfig) {
	if cfg.HTTPLogPath == "" {
		return
	}

	logFile, err := os.OpenFile(cfg.HTTPLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		deps.Logger.Error("Failed to open HTTP log file", "error", err, "path", cfg.HTTPLogPath)
		return
	}
	// Note: logFile is not closed here as it needs to stay open for the server lifetime

	httpLogger := httplog.NewLogger("qadash", httplog.Options{
		Writer: logFile,
		JSON:   true,
	})
	r.Use(httplog.RequestLogger(httpLogger))

	deps.Logger.Info("HTTP request logging enabled", "path", cfg.HTTPLogPath)
}

func mountStaticAssets(r chi.Router) {
	sub, _ := fs.Sub(templates.Assets, "assets")
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(sub))))
}

func setupSystemRoutes(r *chi.Mux, deps *Dependencies) {
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		stats, err := deps.DB.Health()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		response := map[string]interface{}{
			"status":   "ok",
			"database": stats,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	})

	r.Get("/events", deps.Presentation.SSEManager.HandleSSEConnection)
}

func setupAuthRoutes(r *chi.Mux, deps *Dependencies) {
	r.Get("/login", deps.Presentation.AuthHandlers.LoginPage)
	r.Post("/login", deps.Presentation.AuthHandlers.Login)
	r.Post("/logout", deps.Presentation.AuthHandlers.Logout)
	r.Post("/api/login", deps.Presentation.AuthHandlers.APILogin)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/login", http.StatusSeeOther)
	})
}

func setupTenantRoutes(r *chi.Mux, deps *Dependencies) {
	p := deps.Presentation

	r.Route("/c/{clientSlug}", func(r chi.Router) {
		r.Use(p.AuthGuard.RequireSession)
		r.Use(p.TenantGuard.RequireTenant)

		r.Get("/feed", p.PageHandlers.FeedPage)
		r.Get("/feed/banners", p.PageHandlers.FeedBanners)

		r.Get("/lots", p.PageHandlers.LotsPage)
		r.Get("/lots/table", p.PageHandlers.LotsTable)
		r.Get("/lots/{lotID}", p.PageHandlers.LotDetailPage)
		r.Post("/lots/{lotID}/approve", p.PageHandlers.ApproveLot)

		r.Get("/reports", p.PageHandlers.ReportsPage)
		r.Get("/reports/table", p.PageHandlers.ReportsTable)

		r.Get("/analytics", p.PageHandlers.AnalyticsPage)
		r.Get("/devices", p.PageHandlers.DevicesPage)

		r.Get("/palette", p.ReportHandlers.PaletteResults)
	})
}

func setupAPIRoutes(r *chi.Mux, deps *Dependencies) {
	p := deps.Presentation

	r.Route("/api", func(r chi.Router) {
		r.Use(p.AuthGuard.RequireSession)

		r.Post("/reports", p.ReportHandlers.CreateReport)
		r.Get("/reports", p.ReportHandlers.ListReports)
		r.Get("/reports/{reportID}", p.ReportHandlers.GetReport)
		r.Get("/reports/{reportID}/verify", p.ReportHandlers.VerifyReport)
		r.Get("/reports/{reportID}/download", p.ReportHandlers.DownloadReport)

		r.Delete("/toasts/{toastID}", p.ReportHandlers.DismissToast)
	})
}

func startServer(router *chi.Mux, addr string, logger *logging.Logger, deps *Dependencies, appCancel context.CancelFunc) {
	server := &http.Server{Addr: addr, Handler: router}

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sig
		logger.Info("Shutdown signal received")

		// Cancel app-wide context first to signal all services to shutdown
		appCancel()

		logger.Info("Closing SSE connections...")
		deps.Presentation.SSEManager.CloseAll()

		logger.Info("Stopping toast center...")
		deps.ToastCenter.Close()

		shutdownCtx, cancel := context.WithTimeout(serverCtx, 30*time.Second)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				logger.Error("Graceful shutdown timed out, forcing exit")
				os.Exit(1)
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
			os.Exit(1)
		}
		serverStopCtx()
	}()

	logger.Info("Server starting", "address", addr)
	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}

	<-serverCtx.Done()
	logger.Info("Server stopped")
}
