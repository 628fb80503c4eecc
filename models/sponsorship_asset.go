package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sponsorship asset status constants
const (
	SponsorshipAssetAvailable = "available"
	SponsorshipAssetReserved  = "reserved"
	SponsorshipAssetSold      = "sold"
)

// SponsorshipAsset is one sellable inventory item (naming rights, signage,
// digital placements) that bundles are built from.
type SponsorshipAsset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UUID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_sponsorship_assets_uuid" json:"uuid"`
	SponsorID *uint     `gorm:"index:idx_sponsorship_assets_sponsor_id" json:"sponsor_id,omitempty"`
	Sponsor   *Sponsor  `gorm:"foreignKey:SponsorID;references:ID" json:"sponsor,omitempty"`

	Name        string  `gorm:"size:255;not null" json:"name"`
	Category    string  `gorm:"size:64;not null;index:idx_sponsorship_assets_category" json:"category"`
	AnnualValue float64 `gorm:"type:numeric(12,2);not null" json:"annual_value"`
	Impressions *int    `json:"impressions,omitempty"`

	Status    string     `gorm:"size:32;not null;default:'available';index:idx_sponsorship_assets_status" json:"status"`
	StartDate *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (SponsorshipAsset) TableName() string {
	return "sponsorship_assets"
}

// BeforeCreate ensures UUID is set for SponsorshipAsset
func (a *SponsorshipAsset) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == uuid.Nil {
		a.UUID = uuid.New()
	}
	return nil
}

// SponsorshipAssetFilter represents filter criteria for sponsorship inventory queries
type SponsorshipAssetFilter struct {
	ID        *uint      `json:"id,omitempty"`
	UUID      *uuid.UUID `json:"uuid,omitempty"`
	SponsorID *uint      `json:"sponsor_id,omitempty"`
	Category  *string    `json:"category,omitempty"`
	Status    *string    `json:"status,omitempty"`
}
