package archive

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
)

// Provider names accepted by New.
const (
	ProviderNone       = "none"
	ProviderLocal      = "local"
	ProviderS3         = "s3"
	ProviderCloudinary = "cloudinary"
)

// Result describes a stored file
type Result struct {
	Provider string `json:"provider"`
	Key      string `json:"key"`      // provider-specific identifier
	Location string `json:"location"` // URL or path to retrieve the file
	Size     int64  `json:"size"`
}

// Provider keeps a copy of every exported report
type Provider interface {
	// Store writes data under key, replacing any existing object
	Store(ctx context.Context, key, contentType string, data []byte) (*Result, error)

	// Delete removes a stored object by key
	Delete(ctx context.Context, key string) error

	// Name returns the provider name
	Name() string
}

// Config selects and configures a provider
type Config struct {
	Provider string

	LocalDir string

	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

// New builds the configured provider. It returns nil for ProviderNone.
func New(cfg Config) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderNone:
		return nil, nil
	case ProviderLocal:
		if cfg.LocalDir == "" {
			return nil, fmt.Errorf("archive: local provider needs a directory")
		}
		return NewLocalProvider(cfg.LocalDir)
	case ProviderS3:
		if cfg.S3Bucket == "" || cfg.S3Region == "" {
			return nil, fmt.Errorf("archive: s3 provider needs a bucket and region")
		}
		return NewS3Provider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, cfg.S3Region, cfg.S3Bucket)
	case ProviderCloudinary:
		return NewCloudinaryProvider(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	default:
		return nil, fmt.Errorf("archive: unknown provider %q", cfg.Provider)
	}
}

// ObjectKey places a file under folder/YYYY/MM so archives stay browsable by month.
func ObjectKey(folder, filename string, at time.Time) string {
	if folder == "" {
		folder = "exports"
	}
	return path.Join(strings.Trim(folder, "/"), at.Format("2006"), at.Format("01"), path.Base(filename))
}
