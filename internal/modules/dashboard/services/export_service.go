package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/archive"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/auth"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/shared/metrics"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/shared/utils"
)

// ExportAuditor records exports
type ExportAuditor interface {
	LogExport(ctx context.Context, export audit.ExportEntry, req audit.RequestInfo) error
}

// ExportService renders the dashboard to a downloadable file
type ExportService struct {
	analytics *AnalyticsService
	exporter  *export.Service
	auditor   ExportAuditor

	archive       archive.Provider
	archiveFolder string
}

func NewExportService(analyticsSvc *AnalyticsService, exporter *export.Service, auditor ExportAuditor) *ExportService {
	return &ExportService{analytics: analyticsSvc, exporter: exporter, auditor: auditor}
}

// WithArchive keeps a copy of every export in provider under folder.
// A nil provider disables archiving.
func (s *ExportService) WithArchive(provider archive.Provider, folder string) *ExportService {
	s.archive = provider
	s.archiveFolder = folder
	return s
}

// Export builds the full dashboard and renders it in format. The export is
// audited; an audit failure is logged and does not fail the download.
func (s *ExportService) Export(ctx context.Context, format export.Format, req audit.RequestInfo) (*export.File, error) {
	user, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	dashboard, err := s.analytics.Dashboard(ctx)
	if err != nil {
		return nil, err
	}

	report := BuildReport(dashboard, user.Email, s.analytics.currency)
	file, err := s.exporter.Export(report, format)
	metrics.ExportDone(string(format), err)
	if err != nil {
		return nil, fmt.Errorf("failed to export dashboard: %w", err)
	}

	entry := audit.ExportEntry{Format: string(format), Sections: len(report.Sections)}
	if stored := s.store(ctx, dashboard.GeneratedAt, file); stored != nil {
		entry.Archive = stored.Location
	}

	if s.auditor != nil {
		if err := s.auditor.LogExport(ctx, entry, req); err != nil {
			utils.LogWarn("Failed to audit export", map[string]interface{}{
				"user_id": user.ID,
				"format":  string(format),
				"error":   err.Error(),
			})
		}
	}

	utils.LogInfo("Dashboard exported", map[string]interface{}{
		"user_id":  user.ID,
		"format":   string(format),
		"sections": len(report.Sections),
		"bytes":    len(file.Data),
		"archive":  entry.Archive,
	})
	return file, nil
}

// store archives file when a provider is configured. Failures are logged only.
func (s *ExportService) store(ctx context.Context, at time.Time, file *export.File) *archive.Result {
	if s.archive == nil {
		return nil
	}

	key := archive.ObjectKey(s.archiveFolder, "dashboard-"+at.Format("20060102-150405")+file.Extension, at)
	result, err := s.archive.Store(ctx, key, file.ContentType, file.Data)
	if err != nil {
		utils.LogWarn("Failed to archive export", map[string]interface{}{
			"provider": s.archive.Name(),
			"key":      key,
			"error":    err.Error(),
		})
		return nil
	}
	return result
}
