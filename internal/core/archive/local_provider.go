package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalProvider stores files on the local filesystem
type LocalProvider struct {
	basePath string
}

// NewLocalProvider creates basePath if needed
func NewLocalProvider(basePath string) (*LocalProvider, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &LocalProvider{basePath: basePath}, nil
}

func (p *LocalProvider) Store(ctx context.Context, key, contentType string, data []byte) (*Result, error) {
	filePath := p.path(key)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	return &Result{
		Provider: ProviderLocal,
		Key:      key,
		Location: filePath,
		Size:     int64(len(data)),
	}, nil
}

func (p *LocalProvider) Delete(ctx context.Context, key string) error {
	if err := os.Remove(p.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (p *LocalProvider) Name() string {
	return ProviderLocal
}

func (p *LocalProvider) path(key string) string {
	return filepath.Join(p.basePath, filepath.FromSlash(key))
}
