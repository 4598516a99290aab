package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatus is the lifecycle state of a booking. Transitions happen
// outside the reporting layer.
type BookingStatus string

const (
	BookingStatusScheduled BookingStatus = "scheduled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// FinalizedStatuses are the only statuses counted toward attendance rates.
var FinalizedStatuses = []BookingStatus{
	BookingStatusCompleted,
	BookingStatusNoShow,
	BookingStatusCancelled,
}

// Booking represents a client appointment with a staff member for a service
type Booking struct {
	ID                 uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ClientID           uuid.UUID     `gorm:"type:uuid;not null;index:idx_bookings_client" json:"client_id"`
	StaffID            uuid.UUID     `gorm:"type:uuid;not null;index:idx_bookings_staff" json:"staff_id"`
	ServiceID          uuid.UUID     `gorm:"type:uuid;not null" json:"service_id"`
	StartTime          time.Time     `gorm:"not null;index:idx_bookings_start" json:"start_time"`
	Status             BookingStatus `gorm:"type:varchar(20);not null;default:'scheduled'" json:"status"`
	TotalPriceCents    int64         `gorm:"not null;default:0" json:"total_price_cents"`
	CancellationReason *string       `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name
func (Booking) TableName() string {
	return "bookings"
}

// BeforeCreate sets UUID before creating
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
