package models

import (
	"github.com/google/uuid"
)

// Service is a bookable offering. Category is one of lash, jewelry,
// crochet or consulting.
type Service struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Category   string    `gorm:"type:varchar(20);not null" json:"category"`
	PriceCents int64     `gorm:"not null;default:0" json:"price_cents"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
}

// TableName specifies the table name
func (Service) TableName() string {
	return "services"
}
