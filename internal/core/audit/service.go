package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/auth"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/shared/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Service provides audit logging functionality
type Service struct {
	db *gorm.DB
}

// NewService creates a new audit service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Log creates a new audit log entry
func (s *Service) Log(ctx context.Context, entry *AuditLog) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

// LogExport records a dashboard export by the user in ctx
func (s *Service) LogExport(ctx context.Context, export ExportEntry, req RequestInfo) error {
	metadata := map[string]interface{}{"format": export.Format, "sections": export.Sections}
	if export.Archive != "" {
		metadata["archive"] = export.Archive
	}

	entry := &AuditLog{
		Action:      ActionExport,
		Entity:      EntityDashboard,
		EntityID:    export.Format,
		IPAddress:   req.IPAddress,
		Endpoint:    req.Endpoint,
		Description: fmt.Sprintf("Exported dashboard as %s", export.Format),
		Metadata:    toJSON(metadata),
	}
	if user, ok := auth.UserFromContext(ctx); ok {
		entry.UserID = user.ID
		entry.Role = user.Role
	}
	return s.Log(ctx, entry)
}

// GetLogs retrieves audit logs with filtering, newest first
func (s *Service) GetLogs(ctx context.Context, filter Filter) (*LogPage, error) {
	query := s.db.WithContext(ctx).Model(&AuditLog{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.Entity != "" {
		query = query.Where("entity = ?", filter.Entity)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count audit logs: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}

	var logs []AuditLog
	if err := query.
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to get audit logs: %w", err)
	}

	totalPages := int(totalCount) / filter.PageSize
	if int(totalCount)%filter.PageSize > 0 {
		totalPages++
	}

	return &LogPage{
		Logs:       logs,
		TotalCount: totalCount,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// DeleteOldLogs deletes audit logs older than daysToKeep days and returns how many were removed
func (s *Service) DeleteOldLogs(ctx context.Context, daysToKeep int) (int64, error) {
	if daysToKeep < 1 {
		return 0, fmt.Errorf("daysToKeep must be at least 1")
	}

	cutoff := time.Now().AddDate(0, 0, -daysToKeep)

	result := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&AuditLog{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete old audit logs: %w", result.Error)
	}

	utils.LogInfo("Deleted old audit logs", map[string]interface{}{
		"deleted":      result.RowsAffected,
		"days_to_keep": daysToKeep,
	})
	return result.RowsAffected, nil
}

func toJSON(value interface{}) datatypes.JSON {
	data, err := json.Marshal(value)
	if err != nil {
		utils.LogWarn("Failed to serialize audit metadata", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return datatypes.JSON(data)
}
