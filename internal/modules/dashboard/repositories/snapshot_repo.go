package repositories

import (
	"context"

	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/modules/dashboard/models"
	"gorm.io/gorm"
)

// SnapshotRepo interface defines snapshot persistence
type SnapshotRepo interface {
	Create(ctx context.Context, snapshot *models.AnalyticsSnapshot) error
	List(ctx context.Context, filter models.SnapshotFilter) ([]models.AnalyticsSnapshot, error)
}

type snapshotRepo struct {
	db *gorm.DB
}

// NewSnapshotRepo creates a new snapshot repository
func NewSnapshotRepo(db *gorm.DB) SnapshotRepo {
	return &snapshotRepo{db: db}
}

// Create inserts a new snapshot
func (r *snapshotRepo) Create(ctx context.Context, snapshot *models.AnalyticsSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

// List returns the newest snapshots first
func (r *snapshotRepo) List(ctx context.Context, filter models.SnapshotFilter) ([]models.AnalyticsSnapshot, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var snapshots []models.AnalyticsSnapshot
	if err := query.Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}
