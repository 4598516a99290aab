package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/archive"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/auth"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/cache"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/modules/dashboard/handlers"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/modules/dashboard/repositories"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/modules/dashboard/services"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/shared/database"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/shared/metrics"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/shared/utils"

	_ "github.com/MuhamadAgungGumelar/studio-dashboard-be/cmd/dashboard-api/docs"
)

// @title Studio Dashboard API
// @version 1.0
// @description Reporting API for the studio management dashboard
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env, cfg.LogLevel)
	metrics.Init()
	log.Printf("🚀 Starting dashboard-api on port %s", cfg.Port)

	if cfg.JWTSecret == "" {
		log.Fatal("❌ JWT_SECRET is required")
	}

	clock, err := analytics.LoadClock(cfg.Timezone)
	if err != nil {
		log.Fatalf("❌ Invalid APP_TIMEZONE %q: %v", cfg.Timezone, err)
	}
	log.Printf("🕒 Reporting time zone: %s", clock.Location())

	db := database.NewDB(cfg.DatabaseURL, cfg.IsProduction())
	defer db.Close()

	reportCache := newReportCache(cfg)
	defer reportCache.Close()

	// Repositories
	analyticsRepo := repositories.NewAnalyticsRepo(db.GORM, cfg.Timezone)
	snapshotRepo := repositories.NewSnapshotRepo(db.GORM)

	// Services
	auditService := audit.NewService(db.GORM)
	analyticsService := services.NewAnalyticsService(analyticsRepo, clock, reportCache, services.Options{
		CacheTTL:    cfg.ReportCacheTTL,
		Concurrency: cfg.AnalyticsConcurrency,
		Currency:    cfg.Currency,
	})
	snapshotService := services.NewSnapshotService(analyticsService, snapshotRepo, auditService)
	exportService := services.NewExportService(analyticsService, export.NewService(), auditService).
		WithArchive(newArchive(cfg), cfg.ArchiveFolder)
	jwtService := auth.NewJWTService(cfg.JWTSecret, 0)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db.DB, "dashboard-api")
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	exportHandler := handlers.NewExportHandler(exportService, func() string {
		return clock.Now().Format("20060102-150405")
	})
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService)
	auditHandler := handlers.NewAuditHandler(auditService)

	app := fiber.New(fiber.Config{
		AppName: "Studio Dashboard API",
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check and metrics
	app.Get("/health", healthHandler.GetHealth)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Analytics routes
	analyticsGroup := app.Group("/analytics", auth.AuthMiddleware(jwtService))
	analyticsHandler.Register(analyticsGroup)
	analyticsGroup.Get("/export", exportHandler.ExportDashboard)
	analyticsGroup.Get("/snapshots", snapshotHandler.ListSnapshots)

	// Audit routes
	app.Get("/audit-logs", auth.AuthMiddleware(jwtService), auth.RequireRole(auth.RoleAdmin), auditHandler.GetLogs)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down dashboard-api...")
		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Shutdown error: %v", err)
		}
	}()

	log.Printf("📊 Dashboard API listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// newReportCache connects to Redis when REDIS_URL is set. A connection failure
// disables caching rather than stopping the API.
func newReportCache(cfg *config.Config) cache.Cache {
	if cfg.RedisURL == "" || cfg.ReportCacheTTL <= 0 {
		log.Println("⚠️  Report cache disabled")
		return cache.NoopCache{}
	}
	redisCache, err := cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("⚠️  Report cache disabled: %v", err)
		return cache.NoopCache{}
	}
	log.Printf("🗄️  Report cache enabled (ttl %s)", cfg.ReportCacheTTL)
	return redisCache
}

func newArchive(cfg *config.Config) archive.Provider {
	provider, err := archive.New(archive.Config{
		Provider:            cfg.ArchiveProvider,
		LocalDir:            cfg.ArchiveDir,
		S3Region:            cfg.AWSRegion,
		S3Bucket:            cfg.S3Bucket,
		S3AccessKeyID:       cfg.AWSAccessKeyID,
		S3SecretAccessKey:   cfg.AWSSecretAccessKey,
		CloudinaryCloudName: cfg.CloudinaryCloudName,
		CloudinaryAPIKey:    cfg.CloudinaryAPIKey,
		CloudinaryAPISecret: cfg.CloudinaryAPISecret,
	})
	if err != nil {
		log.Fatalf("❌ Invalid export archive config: %v", err)
	}
	if provider == nil {
		log.Println("⚠️  Export archive disabled")
		return nil
	}
	log.Printf("📦 Export archive: %s", provider.Name())
	return provider
}
