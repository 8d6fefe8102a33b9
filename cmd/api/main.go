package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"

	"github.com/sahyog/freightbook-api/internal/config"
	"github.com/sahyog/freightbook-api/internal/database"
	"github.com/sahyog/freightbook-api/internal/handlers"
	"github.com/sahyog/freightbook-api/internal/jobs"
	"github.com/sahyog/freightbook-api/internal/middleware"
	"github.com/sahyog/freightbook-api/internal/repository"
	"github.com/sahyog/freightbook-api/internal/services"
	"github.com/sahyog/freightbook-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Apply pending schema migrations
	if err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("Migrations applied")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs)

	// Initialize handlers
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", h.Health.Index)

		// Transport records
		records := v1.Group("/records")
		{
			records.GET("", h.Record.Index)
			records.POST("", h.Record.Create)
			records.GET("/export/csv", h.Record.ExportCSV)
			records.GET("/export/xlsx", h.Record.ExportXLSX)
			records.GET("/:record_id", h.Record.Show)
			records.PUT("/:record_id", h.Record.Update)
			records.DELETE("/:record_id", h.Record.Delete)
			records.GET("/:record_id/allocations", h.Record.Allocations)
		}

		// Company balances and payment allocation
		companies := v1.Group("/companies")
		{
			companies.GET("/summaries", h.Company.Summaries)
			companies.GET("/overview", h.Company.Overview)
			companies.POST("/allocate", h.Company.Allocate)
			companies.GET("/statement_pdf", h.Company.StatementPDF)
		}

		// Lump sum payments
		lumpSums := v1.Group("/lump_sums")
		{
			lumpSums.GET("", h.LumpSum.Index)
			lumpSums.POST("", h.LumpSum.Create)
			lumpSums.GET("/:lump_sum_id", h.LumpSum.Show)
			lumpSums.DELETE("/:lump_sum_id", h.LumpSum.Delete)
			lumpSums.GET("/:lump_sum_id/allocations", h.LumpSum.Allocations)
			lumpSums.POST("/:lump_sum_id/allocate", h.LumpSum.Allocate)
		}

		// Lump sum slices applied to one record
		v1.GET("/allocations/record/:record_id", h.Record.Allocations)

		// Entry-form suggestion lists
		options := v1.Group("/options")
		{
			options.GET("/trucks", h.Option.Trucks)
			options.POST("/trucks", h.Option.AddTruck)
			options.GET("/transports", h.Option.Transports)
			options.POST("/transports", h.Option.AddTransport)
			options.GET("/destinations", h.Option.Destinations)
			options.POST("/destinations", h.Option.AddDestination)
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Refresh the company balance cache every 15 minutes
	worker.ScheduleEvery(15*time.Minute, func(ctx context.Context) error {
		logger.Info("[Job] Refreshing balance cache...")
		_, err := svcs.Balance.RefreshCache(ctx)
		return err
	})

	// Backfill the suggestion lists from existing records every 6 hours,
	// with a run at startup to pick up rows entered before the lists existed
	worker.ScheduleEveryImmediate(6*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Syncing saved options...")
		return svcs.Record.SyncSavedOptions(ctx)
	})

	logger.Info("Scheduled recurring jobs")
}
