package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contract status constants
const (
	ContractStatusDraft    = "draft"
	ContractStatusProposed = "proposed"
	ContractStatusSigned   = "signed"
	ContractStatusExpired  = "expired"
	ContractStatusDeclined = "declined"
)

// Contract is a sponsorship bundle proposal tying a sponsor to a set of
// inventory items, with the bundle discount applied at proposal time.
type Contract struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UUID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_contracts_uuid" json:"uuid"`
	SponsorID uint      `gorm:"not null;index:idx_contracts_sponsor_id" json:"sponsor_id"`
	Sponsor   Sponsor   `gorm:"foreignKey:SponsorID;references:ID" json:"sponsor,omitempty"`

	Title string `gorm:"size:255;not null" json:"title"`
	// AssetItems snapshots the bundled inventory at proposal time
	AssetItems json.RawMessage `gorm:"type:jsonb" json:"asset_items,omitempty"`

	ListValue       float64 `gorm:"type:numeric(12,2);not null" json:"list_value"`
	DiscountPercent float64 `gorm:"type:numeric(5,2);not null;default:0" json:"discount_percent"`
	TotalValue      float64 `gorm:"type:numeric(12,2);not null" json:"total_value"`

	Status    string     `gorm:"size:32;not null;default:'draft';index:idx_contracts_status" json:"status"`
	StartDate *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	SignedAt  *time.Time `json:"signed_at,omitempty"`
	CreatedBy *string    `gorm:"size:255" json:"created_by,omitempty"`
	Notes     *string    `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Contract) TableName() string {
	return "contracts"
}

// BeforeCreate ensures UUID is set for Contract
func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	return nil
}

func (c *Contract) IsSigned() bool {
	return c.Status == ContractStatusSigned
}

// ContractFilter represents filter criteria for contract queries
type ContractFilter struct {
	ID        *uint      `json:"id,omitempty"`
	UUID      *uuid.UUID `json:"uuid,omitempty"`
	SponsorID *uint      `json:"sponsor_id,omitempty"`
	Status    *string    `json:"status,omitempty"`
}
