package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/auth"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/modules/dashboard/models"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/modules/dashboard/repositories"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/shared/utils"
	"gorm.io/datatypes"
)

const (
	defaultSnapshotLimit = 30
	maxSnapshotLimit     = 366
)

// AuditLogger records audit entries
type AuditLogger interface {
	Log(ctx context.Context, entry *audit.AuditLog) error
}

// SnapshotService captures and lists daily KPI snapshots
type SnapshotService struct {
	analytics *AnalyticsService
	repo      repositories.SnapshotRepo
	auditor   AuditLogger
}

func NewSnapshotService(analyticsSvc *AnalyticsService, repo repositories.SnapshotRepo, auditor AuditLogger) *SnapshotService {
	return &SnapshotService{analytics: analyticsSvc, repo: repo, auditor: auditor}
}

// Capture computes the current KPIs under the system identity and stores them
func (s *SnapshotService) Capture(ctx context.Context) (*models.AnalyticsSnapshot, error) {
	ctx = auth.SystemContext(ctx)

	report, err := s.analytics.GetKPIs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute KPIs: %w", err)
	}

	payload, err := json.Marshal(report.Stats)
	if err != nil {
		return nil, fmt.Errorf("failed to encode KPIs: %w", err)
	}

	snapshot := &models.AnalyticsSnapshot{
		Kind:        models.SnapshotKindKPI,
		PeriodStart: analytics.MonthToDate(s.analytics.clock.Now()).Start,
		Payload:     datatypes.JSON(payload),
	}
	if err := s.repo.Create(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}

	if s.auditor != nil {
		system, _ := auth.UserFromContext(ctx)
		err := s.auditor.Log(ctx, &audit.AuditLog{
			UserID:      system.ID,
			Role:        system.Role,
			Action:      audit.ActionSnapshot,
			Entity:      audit.EntitySnapshot,
			EntityID:    snapshot.ID.String(),
			Description: "Captured daily KPI snapshot",
		})
		if err != nil {
			utils.LogWarn("Failed to audit snapshot", map[string]interface{}{"error": err.Error()})
		}
	}

	utils.LogInfo("KPI snapshot captured", map[string]interface{}{
		"snapshot_id":  snapshot.ID.String(),
		"period_start": snapshot.PeriodStart.Format("2006-01-02"),
	})
	return snapshot, nil
}

// List returns the newest snapshots first
func (s *SnapshotService) List(ctx context.Context, filter models.SnapshotFilter) ([]models.AnalyticsSnapshot, error) {
	if _, err := auth.RequireUser(ctx); err != nil {
		return nil, err
	}
	if filter.Limit < 1 {
		filter.Limit = defaultSnapshotLimit
	}
	if filter.Limit > maxSnapshotLimit {
		filter.Limit = maxSnapshotLimit
	}
	return s.repo.List(ctx, filter)
}
