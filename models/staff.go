package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff role constants
const (
	StaffRoleAdmin   = "admin"
	StaffRoleBoard   = "board"
	StaffRoleStaff   = "staff"
	StaffRoleSponsor = "sponsor"
)

type Staff struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UUID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_staff_uuid;index:idx_staff_uuid" json:"uuid"`
	Username     string    `gorm:"size:255;not null;uniqueIndex:uk_staff_username;index:idx_staff_username" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`

	FullName string  `gorm:"size:255;not null" json:"full_name"`
	Email    *string `gorm:"size:255;index:idx_staff_email" json:"email,omitempty"`
	Role     string  `gorm:"size:32;not null;default:'staff';index:idx_staff_role" json:"role"`

	IsActive    *bool      `gorm:"default:true;index:idx_staff_is_active" json:"is_active"`
	CreatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_staff_created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
	LastLoginAt *time.Time `gorm:"index:idx_staff_last_login_at" json:"last_login_at,omitempty"`
}

func (Staff) TableName() string {
	return "staff"
}

// BeforeCreate ensures UUID is set for Staff
func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == uuid.Nil {
		s.UUID = uuid.New()
	}
	return nil
}

func (s *Staff) IsAdmin() bool {
	return s.Role == StaffRoleAdmin
}

// CanManageRates reports whether the role may change rate tables and guardrails.
func (s *Staff) CanManageRates() bool {
	return s.Role == StaffRoleAdmin || s.Role == StaffRoleBoard
}

// StaffFilter represents filter criteria for staff queries
type StaffFilter struct {
	ID              *uint
	UUID            *uuid.UUID
	Username        *string
	Role            *string
	IsActive        *bool
	CreatedAfter    *time.Time
	CreatedBefore   *time.Time
	LastLoginAfter  *time.Time
	LastLoginBefore *time.Time
}
