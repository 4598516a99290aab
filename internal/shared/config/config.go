package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL          string
	Port                 string
	Env                  string
	LogLevel             string
	JWTSecret            string
	Timezone             string
	Currency             string
	AnalyticsConcurrency int
	RedisURL             string
	ReportCacheTTL       time.Duration
	SnapshotCron         string
	AuditRetentionDays   int

	// Export archive
	ArchiveProvider     string
	ArchiveFolder       string
	ArchiveDir          string
	AWSRegion           string
	S3Bucket            string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		Port:                 os.Getenv("PORT"),
		Env:                  os.Getenv("ENV"),
		LogLevel:             os.Getenv("LOG_LEVEL"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		Timezone:             os.Getenv("APP_TIMEZONE"),
		Currency:             os.Getenv("CURRENCY_SYMBOL"),
		AnalyticsConcurrency: intEnv("ANALYTICS_CONCURRENCY", 5),
		RedisURL:             os.Getenv("REDIS_URL"),
		ReportCacheTTL:       time.Duration(intEnv("REPORT_CACHE_TTL_SECONDS", 120)) * time.Second,
		SnapshotCron:         os.Getenv("SNAPSHOT_CRON"),
		AuditRetentionDays:   intEnv("AUDIT_RETENTION_DAYS", 90),

		ArchiveProvider:     os.Getenv("EXPORT_ARCHIVE_PROVIDER"),
		ArchiveFolder:       os.Getenv("EXPORT_ARCHIVE_FOLDER"),
		ArchiveDir:          os.Getenv("EXPORT_ARCHIVE_DIR"),
		AWSRegion:           os.Getenv("AWS_REGION"),
		S3Bucket:            os.Getenv("S3_BUCKET"),
		AWSAccessKeyID:      os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey:  os.Getenv("AWS_SECRET_ACCESS_KEY"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	if cfg.Currency == "" {
		cfg.Currency = "$"
	}
	if cfg.AnalyticsConcurrency < 1 {
		cfg.AnalyticsConcurrency = 5
	}
	if cfg.SnapshotCron == "" {
		// Daily at 00:05:00
		cfg.SnapshotCron = "0 5 0 * * *"
	}

	if cfg.ArchiveProvider == "" {
		cfg.ArchiveProvider = "none"
	}
	if cfg.ArchiveFolder == "" {
		cfg.ArchiveFolder = "exports"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "./storage/exports"
	}

	return cfg
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return v
}
