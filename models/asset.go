// Package models contains domain entities and business models for the facility management platform
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Asset type constants mirror the rate table keys.
const (
	AssetTypeTurfFull = "turf_full"
	AssetTypeTurfHalf = "turf_half"
	AssetTypeCourt    = "court"
	AssetTypeGolfBay  = "golf_bay"
	AssetTypeSuite    = "suite"
)

type Asset struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UUID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_assets_uuid" json:"uuid"`
	SiteID   string    `gorm:"size:64;not null;index:idx_assets_site_id" json:"site_id"`
	Type     string    `gorm:"size:64;not null;index:idx_assets_type" json:"asset_type"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Capacity *int      `json:"capacity,omitempty"`
	SquareFt *int      `json:"square_footage,omitempty"`

	// Per-daypart hourly rates, overriding the platform rate table when set
	HourlyRatePrime    *float64 `gorm:"type:numeric(10,2)" json:"hourly_rate_prime,omitempty"`
	HourlyRateStandard *float64 `gorm:"type:numeric(10,2)" json:"hourly_rate_standard,omitempty"`
	HourlyRateOffPeak  *float64 `gorm:"type:numeric(10,2)" json:"hourly_rate_offpeak,omitempty"`

	Amenities pq.StringArray `gorm:"type:text[]" json:"amenities,omitempty"`
	IsActive  *bool          `gorm:"default:true;index:idx_assets_is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Asset) TableName() string {
	return "assets"
}

// BeforeCreate ensures UUID is set for Asset
func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == uuid.Nil {
		a.UUID = uuid.New()
	}
	return nil
}

// AssetFilter represents filter criteria for asset queries
type AssetFilter struct {
	ID       *uint      `json:"id,omitempty"`
	UUID     *uuid.UUID `json:"uuid,omitempty"`
	SiteID   *string    `json:"site_id,omitempty"`
	Type     *string    `json:"asset_type,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
}
