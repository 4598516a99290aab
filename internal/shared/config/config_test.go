package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "LOG_LEVEL", "APP_TIMEZONE", "CURRENCY_SYMBOL",
		"ANALYTICS_CONCURRENCY", "REDIS_URL", "REPORT_CACHE_TTL_SECONDS", "SNAPSHOT_CRON", "AUDIT_RETENTION_DAYS",
		"EXPORT_ARCHIVE_PROVIDER", "EXPORT_ARCHIVE_FOLDER", "EXPORT_ARCHIVE_DIR"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "$", cfg.Currency)
	assert.Equal(t, 5, cfg.AnalyticsConcurrency)
	assert.Equal(t, 120*time.Second, cfg.ReportCacheTTL)
	assert.Equal(t, "0 5 0 * * *", cfg.SnapshotCron)
	assert.Equal(t, 90, cfg.AuditRetentionDays)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, "none", cfg.ArchiveProvider)
	assert.Equal(t, "exports", cfg.ArchiveFolder)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("APP_TIMEZONE", "America/New_York")
	t.Setenv("ANALYTICS_CONCURRENCY", "3")
	t.Setenv("REPORT_CACHE_TTL_SECONDS", "not-a-number")

	cfg := LoadConfig()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.Equal(t, 3, cfg.AnalyticsConcurrency)
	assert.Equal(t, 120*time.Second, cfg.ReportCacheTTL)
}
