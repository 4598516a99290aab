package archive

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryProvider stores files as raw Cloudinary assets
type CloudinaryProvider struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryProvider(cloudName, apiKey, apiSecret string) (*CloudinaryProvider, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryProvider{cld: cld}, nil
}

// Store uploads data as a raw asset. Raw public IDs keep their extension.
func (p *CloudinaryProvider) Store(ctx context.Context, key, contentType string, data []byte) (*Result, error) {
	result, err := p.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     key,
		ResourceType: "raw",
		Overwrite:    api.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("failed to upload to Cloudinary: %s", result.Error.Message)
	}

	return &Result{
		Provider: ProviderCloudinary,
		Key:      result.PublicID,
		Location: result.SecureURL,
		Size:     int64(result.Bytes),
	}, nil
}

func (p *CloudinaryProvider) Delete(ctx context.Context, key string) error {
	result, err := p.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     key,
		ResourceType: "raw",
	})
	if err != nil {
		return fmt.Errorf("failed to delete from Cloudinary: %w", err)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("failed to delete from Cloudinary: %s", result.Result)
	}
	return nil
}

func (p *CloudinaryProvider) Name() string {
	return ProviderCloudinary
}

