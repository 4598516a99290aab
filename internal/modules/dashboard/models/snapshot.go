package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SnapshotKindKPI is the daily KPI capture.
const SnapshotKindKPI = "kpis"

// AnalyticsSnapshot stores a report payload captured by the scheduler
type AnalyticsSnapshot struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Kind        string         `gorm:"type:varchar(50);not null;index:idx_snapshots_kind" json:"kind"`
	PeriodStart time.Time      `gorm:"not null" json:"period_start"`
	Payload     datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name
func (AnalyticsSnapshot) TableName() string {
	return "analytics_snapshots"
}

// BeforeCreate sets UUID before creating
func (s *AnalyticsSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SnapshotFilter narrows snapshot listings
type SnapshotFilter struct {
	Kind  string
	Limit int
}
