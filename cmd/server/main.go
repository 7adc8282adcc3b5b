package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ignisguard/server/internal"
	"github.com/ignisguard/server/internal/auth"
	"github.com/ignisguard/server/internal/handler"
	"github.com/ignisguard/server/internal/metrics"
	"github.com/ignisguard/server/internal/middleware"
	"github.com/ignisguard/server/internal/repository"
	"github.com/ignisguard/server/internal/service"
	"github.com/ignisguard/server/internal/storage"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database connection
	db, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	// Run migrations
	if err := internal.RunMigrations(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database ready")

	// Initialize repository
	repo := repository.NewRepository(db)

	// Initialize blob storage for evidence photos
	store, err := newStorage(cfg, logger)
	if err != nil {
		return fmt.Errorf("storage initialization failed: %w", err)
	}
	logger.Info("Storage ready", "provider", cfg.StorageProvider)

	// Initialize services
	userService := service.NewUserService(repo, logger)
	assetService := service.NewAssetService(repo, cfg.BaseURL, logger)
	inspectionService := service.NewInspectionService(repo, logger)
	statsService := service.NewStatsService(repo, logger)
	reportService := service.NewReportService(repo, logger)
	evidenceService := service.NewEvidenceService(store, service.NewImagingProcessor(), cfg.EvidenceMaxBytes, logger)

	// Token issuer for bearer auth
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize middleware
	authMw := middleware.NewAuthMiddleware(tokens)
	loggingMw := middleware.NewRequestLoggingMiddleware(logger)
	metricsAuthMw := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService, tokens, logger)
	assetHandler := handler.NewAssetHandler(assetService, inspectionService, logger)
	inspectionHandler := handler.NewInspectionHandler(inspectionService, logger)
	statsHandler := handler.NewStatsHandler(statsService, logger)
	reportHandler := handler.NewReportHandler(reportService, evidenceService, logger)
	uploadHandler := handler.NewUploadHandler(evidenceService, cfg.EvidenceMaxBytes, logger)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics, basic-auth guarded
	mux.Handle("GET /metrics", metricsAuthMw.Handler(promhttp.Handler()))

	// Middleware stacks
	requireUser := middleware.Stack(authMw.WithPrincipal, authMw.RequirePrincipal)
	requireAdmin := middleware.Stack(authMw.WithPrincipal, authMw.RequirePrincipal, authMw.RequireAdmin)

	// Auth (login is public, registration is admin-driven)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("POST /api/auth/register", requireAdmin(http.HandlerFunc(authHandler.Register)))

	// Asset registry
	mux.Handle("GET /api/assets", requireUser(http.HandlerFunc(assetHandler.List)))
	mux.Handle("POST /api/assets", requireAdmin(http.HandlerFunc(assetHandler.Create)))
	mux.Handle("GET /api/assets/{id}", requireUser(http.HandlerFunc(assetHandler.Get)))
	mux.Handle("PUT /api/assets/{id}", requireAdmin(http.HandlerFunc(assetHandler.Update)))
	mux.Handle("DELETE /api/assets/{id}", requireAdmin(http.HandlerFunc(assetHandler.Delete)))
	mux.Handle("GET /api/assets/serial/{serial}", requireUser(http.HandlerFunc(assetHandler.GetBySerial)))
	mux.Handle("GET /api/assets/serial/{serial}/lock", requireUser(http.HandlerFunc(inspectionHandler.LockStatus)))
	mux.Handle("GET /api/assets/{id}/inspections", requireUser(http.HandlerFunc(inspectionHandler.History)))

	// Inspections
	mux.Handle("POST /api/inspections", requireUser(http.HandlerFunc(inspectionHandler.Record)))
	mux.Handle("PUT /api/inspections/{id}", requireAdmin(http.HandlerFunc(inspectionHandler.Revise)))
	mux.Handle("GET /api/inspections/{id}", requireUser(http.HandlerFunc(inspectionHandler.Get)))

	// Statistics
	mux.Handle("GET /api/stats/me", requireUser(http.HandlerFunc(statsHandler.Mine)))
	mux.Handle("GET /api/stats/fleet", requireAdmin(http.HandlerFunc(statsHandler.Fleet)))

	// Compliance reports
	mux.Handle("GET /api/reports/compliance", requireUser(http.HandlerFunc(reportHandler.Compliance)))
	mux.Handle("GET /api/reports/compliance.csv", requireUser(http.HandlerFunc(reportHandler.ComplianceCSV)))
	mux.Handle("GET /api/reports/compliance.pdf", requireUser(http.HandlerFunc(reportHandler.CompliancePDF)))

	// Evidence photos
	mux.Handle("POST /api/uploads/evidence", requireUser(http.HandlerFunc(uploadHandler.UploadEvidence)))
	mux.Handle("GET /files/{key...}", requireUser(http.HandlerFunc(uploadHandler.ServeFile)))

	// Outer middleware: request logging and HTTP metrics
	root := middleware.Stack(loggingMw.Handler, metrics.Middleware)(mux)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: root,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
		}
	}()

	<-sigChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

// newStorage selects the blob storage backend from configuration.
func newStorage(cfg *internal.Config, logger *slog.Logger) (storage.Storage, error) {
	switch cfg.StorageProvider {
	case storage.ProviderS3:
		return storage.NewS3Storage(storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			BucketName:      cfg.S3BucketName,
			PublicURL:       cfg.S3PublicURL,
		}, logger)
	case storage.ProviderLocal:
		return storage.NewLocalStorage(storage.LocalConfig{
			BasePath: cfg.LocalStoragePath,
			BaseURL:  cfg.LocalStorageURL,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.StorageProvider)
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
