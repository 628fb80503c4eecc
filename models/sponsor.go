package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Sponsor status constants
const (
	SponsorStatusProspect = "prospect"
	SponsorStatusActive   = "active"
	SponsorStatusLapsed   = "lapsed"
)

type Sponsor struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UUID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_sponsors_uuid" json:"uuid"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Industry *string   `gorm:"size:128" json:"industry,omitempty"`

	ContactName  *string `gorm:"size:255" json:"contact_name,omitempty"`
	ContactEmail *string `gorm:"size:255" json:"contact_email,omitempty"`
	ContactPhone *string `gorm:"size:32" json:"contact_phone,omitempty"`

	Status      string   `gorm:"size:32;not null;default:'prospect';index:idx_sponsors_status" json:"status"`
	Tier        *string  `gorm:"size:32" json:"tier,omitempty"`
	AnnualValue *float64 `gorm:"type:numeric(12,2)" json:"annual_value,omitempty"`

	// Objectives the sponsor cares about (brand awareness, youth programs, ...)
	Objectives pq.StringArray `gorm:"type:text[]" json:"objectives,omitempty"`

	ContractStart *time.Time `gorm:"type:date" json:"contract_start,omitempty"`
	ContractEnd   *time.Time `gorm:"type:date" json:"contract_end,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Sponsor) TableName() string {
	return "sponsors"
}

// BeforeCreate ensures UUID is set for Sponsor
func (s *Sponsor) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == uuid.Nil {
		s.UUID = uuid.New()
	}
	return nil
}

// SponsorFilter represents filter criteria for sponsor queries
type SponsorFilter struct {
	ID       *uint      `json:"id,omitempty"`
	UUID     *uuid.UUID `json:"uuid,omitempty"`
	Status   *string    `json:"status,omitempty"`
	Industry *string    `json:"industry,omitempty"`
	Tier     *string    `json:"tier,omitempty"`
}
