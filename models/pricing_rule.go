package models

import (
	"encoding/json"
	"time"
)

// Pricing document kinds
const (
	PricingDocumentRates      = "rates"
	PricingDocumentGuardrails = "guardrails"
)

// PricingRule stores a versioned pricing configuration document (rate tables
// or guardrail policy) as JSONB. Kind is not unique; the latest row (by
// version, then created_at) is the active document.
// Table: pricing_rules
type PricingRule struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	Kind     string          `gorm:"size:32;not null;index:idx_pricing_rules_kind" json:"kind"`
	Version  int             `gorm:"not null;index:idx_pricing_rules_version" json:"version"`
	Document json.RawMessage `gorm:"type:jsonb;not null" json:"document"`

	UpdatedBy *string   `gorm:"size:255" json:"updated_by,omitempty"`
	Comment   *string   `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_pricing_rules_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (PricingRule) TableName() string {
	return "pricing_rules"
}

type PricingRuleFilter struct {
	Kind    *string `json:"kind,omitempty"`
	Version *int    `json:"version,omitempty"`
}
