package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/auth"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/cache"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/scheduler"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/modules/dashboard/repositories"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/modules/dashboard/services"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/shared/database"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/shared/metrics"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/shared/utils"
)

const (
	jobSnapshot       = "kpi-snapshot"
	jobAuditRetention = "audit-retention"

	// Daily at 03:30:00
	auditRetentionCron = "0 30 3 * * *"
)

func main() {
	once := flag.Bool("once", false, "Capture one KPI snapshot and exit")
	flag.Parse()

	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env, cfg.LogLevel)
	metrics.Init()
	log.Println("🚀 Starting dashboard worker...")

	clock, err := analytics.LoadClock(cfg.Timezone)
	if err != nil {
		log.Fatalf("❌ Invalid APP_TIMEZONE %q: %v", cfg.Timezone, err)
	}

	db := database.NewDB(cfg.DatabaseURL, cfg.IsProduction())
	defer db.Close()

	// Snapshots always read fresh figures, so the worker runs without a cache.
	auditService := audit.NewService(db.GORM)
	analyticsService := services.NewAnalyticsService(
		repositories.NewAnalyticsRepo(db.GORM, cfg.Timezone),
		clock,
		cache.NoopCache{},
		services.Options{Concurrency: cfg.AnalyticsConcurrency, Currency: cfg.Currency},
	)
	snapshotService := services.NewSnapshotService(analyticsService, repositories.NewSnapshotRepo(db.GORM), auditService)

	if *once {
		captureSnapshot(context.Background(), snapshotService)
		return
	}

	sched := scheduler.New(clock.Location())

	if err := sched.AddJob(jobSnapshot, cfg.SnapshotCron, func(ctx context.Context) {
		captureSnapshot(ctx, snapshotService)
	}); err != nil {
		log.Fatalf("❌ Invalid SNAPSHOT_CRON %q: %v", cfg.SnapshotCron, err)
	}

	if cfg.AuditRetentionDays > 0 {
		if err := sched.AddJob(jobAuditRetention, auditRetentionCron, func(ctx context.Context) {
			if _, err := auditService.DeleteOldLogs(auth.SystemContext(ctx), cfg.AuditRetentionDays); err != nil {
				utils.LogError("Audit retention failed", err, nil)
			}
		}); err != nil {
			log.Fatalf("❌ Failed to schedule audit retention: %v", err)
		}
	} else {
		log.Println("⚠️  Audit retention disabled (AUDIT_RETENTION_DAYS <= 0)")
	}

	sched.Start()
	for _, name := range sched.Jobs() {
		if next, ok := sched.NextRun(name); ok {
			log.Printf("📅 %s next run at %s", name, next.Format("2006-01-02 15:04:05 MST"))
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down worker...")
	sched.Stop()
}

func captureSnapshot(ctx context.Context, snapshotService *services.SnapshotService) {
	snapshot, err := snapshotService.Capture(ctx)
	if err != nil {
		utils.LogError("KPI snapshot failed", err, nil)
		return
	}
	log.Printf("📸 Captured KPI snapshot %s for %s", snapshot.ID, snapshot.PeriodStart.Format("2006-01-02"))
}
