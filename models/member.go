package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Membership tier constants
const (
	MemberTierBasic    = "basic"
	MemberTierPlus     = "plus"
	MemberTierPremium  = "premium"
	MemberTierFounders = "founders"
)

// Member status constants
const (
	MemberStatusActive   = "active"
	MemberStatusLapsed   = "lapsed"
	MemberStatusArchived = "archived"
)

type Member struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UUID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_members_uuid" json:"uuid"`
	MemberNumber string    `gorm:"size:32;not null;uniqueIndex:uk_members_member_number" json:"member_number"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        *string   `gorm:"size:255;index:idx_members_email" json:"email,omitempty"`
	Phone        *string   `gorm:"size:32" json:"phone,omitempty"`

	Tier           string  `gorm:"size:32;not null;default:'basic';index:idx_members_tier" json:"tier"`
	CreditsBalance float64 `gorm:"type:numeric(10,2);not null;default:0" json:"credits_balance"`

	JoinDate    time.Time `gorm:"type:date;not null" json:"join_date"`
	Status      string    `gorm:"size:32;not null;default:'active';index:idx_members_status" json:"status"`
	HouseholdID *string   `gorm:"size:64;index:idx_members_household_id" json:"household_id,omitempty"`
	Notes       *string   `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

// BeforeCreate ensures UUID is set for Member
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.UUID == uuid.Nil {
		m.UUID = uuid.New()
	}
	return nil
}

func (m *Member) IsActive() bool {
	return m.Status == MemberStatusActive
}

// MemberFilter represents filter criteria for member queries
type MemberFilter struct {
	ID           *uint      `json:"id,omitempty"`
	UUID         *uuid.UUID `json:"uuid,omitempty"`
	MemberNumber *string    `json:"member_number,omitempty"`
	Tier         *string    `json:"tier,omitempty"`
	Status       *string    `json:"status,omitempty"`
	HouseholdID  *string    `json:"household_id,omitempty"`
	JoinedAfter  *time.Time `json:"joined_after,omitempty"`
	JoinedBefore *time.Time `json:"joined_before,omitempty"`
}
