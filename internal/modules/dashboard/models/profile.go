package models

import (
	"time"

	"github.com/google/uuid"
)

type ProfileRole string

const (
	RoleClient    ProfileRole = "client"
	RoleAssistant ProfileRole = "assistant"
	RoleAdmin     ProfileRole = "admin"
)

// Profile is a person known to the studio: a client or a staff member
type Profile struct {
	ID        uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Role      ProfileRole `gorm:"type:varchar(20);not null;default:'client'" json:"role"`
	FirstName string      `gorm:"type:varchar(100)" json:"first_name"`
	LastName  string      `gorm:"type:varchar(100)" json:"last_name"`
	Source    *string     `gorm:"type:varchar(100)" json:"source,omitempty"` // acquisition channel
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name
func (Profile) TableName() string {
	return "profiles"
}
