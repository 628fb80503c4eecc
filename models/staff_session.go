package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/skillshot/sportai/utils"
)

type StaffSession struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	CorrelationID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_staff_sessions_correlation_id" json:"correlation_id"` // Groups related session records
	StaffID        uint            `gorm:"not null;index:idx_staff_sessions_staff_id" json:"staff_id"`
	Staff          Staff           `gorm:"foreignKey:StaffID;references:ID" json:"staff,omitempty"`
	SessionToken   string          `gorm:"size:255;not null;uniqueIndex:idx_staff_sessions_session_token" json:"-"` // Never serialize token
	RefreshToken   *string         `gorm:"size:255;uniqueIndex:idx_staff_sessions_refresh_token" json:"-"`          // Never serialize refresh token
	DeviceInfo     json.RawMessage `gorm:"type:jsonb" json:"device_info,omitempty"`
	IPAddress      *string         `gorm:"type:inet;index:idx_staff_sessions_ip_address" json:"ip_address,omitempty"`
	UserAgent      *string         `gorm:"type:text" json:"user_agent,omitempty"`
	IsActive       *bool           `gorm:"default:true;index:idx_staff_sessions_is_active" json:"is_active"`
	CreatedAt      time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	LastAccessedAt time.Time       `gorm:"default:CURRENT_TIMESTAMP;index:idx_staff_sessions_last_accessed" json:"last_accessed_at"`
	ExpiresAt      time.Time       `gorm:"not null;index:idx_staff_sessions_expires_at" json:"expires_at"`
}

func (StaffSession) TableName() string {
	return "staff_sessions"
}

// StaffSessionFilter represents filter criteria for session queries
type StaffSessionFilter struct {
	ID             *uint
	CorrelationID  *uuid.UUID
	StaffID        *uint
	IsActive       *bool
	IPAddress      *string
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
	ExpiresAfter   *time.Time
	ExpiresBefore  *time.Time
	AccessedAfter  *time.Time
	AccessedBefore *time.Time
	IsExpired      *bool // Helper to filter expired sessions
}

func (s *StaffSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

func (s *StaffSession) IsValid() bool {
	return utils.IsTrue(s.IsActive) && !s.IsExpired()
}

// DeviceInfo represents the structure for device information
type DeviceInfo struct {
	Platform   string `json:"platform,omitempty"`
	Browser    string `json:"browser,omitempty"`
	Version    string `json:"version,omitempty"`
	OS         string `json:"os,omitempty"`
	DeviceType string `json:"device_type,omitempty"`
	IsMobile   bool   `json:"is_mobile,omitempty"`
}
