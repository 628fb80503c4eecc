package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking status constants
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Customer segment constants used for fairness pricing.
const (
	SegmentYouth      = "youth"
	SegmentNonProfit  = "non_profit"
	SegmentRegular    = "regular"
	SegmentCorporate  = "corporate"
	SegmentTournament = "tournament"
)

type Booking struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	UUID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_bookings_uuid" json:"uuid"`
	AssetID uint      `gorm:"not null;index:idx_bookings_asset_id" json:"asset_id"`
	Asset   Asset     `gorm:"foreignKey:AssetID;references:ID" json:"asset,omitempty"`

	CustomerName    string  `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail   *string `gorm:"size:255" json:"customer_email,omitempty"`
	CustomerSegment string  `gorm:"size:32;not null;index:idx_bookings_segment" json:"customer_segment"`

	BookingDate   time.Time `gorm:"type:date;not null;index:idx_bookings_booking_date" json:"booking_date"`
	TimeSlot      string    `gorm:"size:64;not null" json:"time_slot"`
	DurationHours float64   `gorm:"type:numeric(4,1);not null" json:"duration_hours"`

	RatePerHour float64 `gorm:"type:numeric(10,2);not null" json:"rate_per_hour"`
	TotalAmount float64 `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	// PriceFactors records the quote waterfall that produced the rate, for auditability
	PriceFactors json.RawMessage `gorm:"type:jsonb" json:"price_factors,omitempty"`

	Status    string    `gorm:"size:32;not null;default:'confirmed';index:idx_bookings_status" json:"status"`
	CreatedBy *string   `gorm:"size:255" json:"created_by,omitempty"`
	Notes     *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BeforeCreate ensures UUID is set for Booking
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.UUID == uuid.Nil {
		b.UUID = uuid.New()
	}
	return nil
}

func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// BookingFilter represents filter criteria for booking queries
type BookingFilter struct {
	ID              *uint      `json:"id,omitempty"`
	UUID            *uuid.UUID `json:"uuid,omitempty"`
	AssetID         *uint      `json:"asset_id,omitempty"`
	CustomerSegment *string    `json:"customer_segment,omitempty"`
	Status          *string    `json:"status,omitempty"`
	DateFrom        *time.Time `json:"date_from,omitempty"`
	DateTo          *time.Time `json:"date_to,omitempty"`
	TimeSlot        *string    `json:"time_slot,omitempty"`
}
