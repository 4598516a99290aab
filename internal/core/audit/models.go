package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Audited actions.
const (
	ActionExport   = "export"
	ActionSnapshot = "snapshot"
)

// Audited entities.
const (
	EntityDashboard = "dashboard"
	EntitySnapshot  = "analytics_snapshot"
)

// AuditLog records who exported or captured which report
type AuditLog struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	UserID string `json:"user_id" gorm:"type:text;index"`
	Role   string `json:"role,omitempty" gorm:"type:text"`

	Action   string `json:"action" gorm:"type:text;not null;index"`
	Entity   string `json:"entity" gorm:"type:text;not null;index"`
	EntityID string `json:"entity_id,omitempty" gorm:"type:text;index"`

	IPAddress string `json:"ip_address,omitempty" gorm:"type:text"`
	Endpoint  string `json:"endpoint,omitempty" gorm:"type:text"`

	Description string         `json:"description,omitempty" gorm:"type:text"`
	Metadata    datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// TableName specifies the table name
func (AuditLog) TableName() string {
	return "audit_logs"
}

// ExportEntry describes one dashboard export
type ExportEntry struct {
	Format   string
	Sections int
	Archive  string // where a copy was stored, if anywhere
}

// Filter narrows an audit log query
type Filter struct {
	UserID    string
	Action    string
	Entity    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

// LogPage is a paginated audit log response
type LogPage struct {
	Logs       []AuditLog `json:"logs"`
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// RequestInfo carries request metadata for an audit entry
type RequestInfo struct {
	IPAddress string
	Endpoint  string
}
