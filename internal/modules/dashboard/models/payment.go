package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// Payment represents money received from a client. Revenue reports use the
// paid timestamp and fall back to created_at when it is missing.
type Payment struct {
	ID          uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ClientID    uuid.UUID     `gorm:"type:uuid;not null;index:idx_payments_client" json:"client_id"`
	BookingID   *uuid.UUID    `gorm:"type:uuid" json:"booking_id,omitempty"`
	AmountCents int64         `gorm:"not null;default:0" json:"amount_cents"`
	Status      PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaidAt      *time.Time    `json:"paid_at,omitempty"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name
func (Payment) TableName() string {
	return "payments"
}

// BeforeCreate sets UUID before creating
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
