package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Technology package labels for sensor-equipped pods
const (
	TechPackageHitTrax         = "hittrax"
	TechPackageRapsodo         = "rapsodo"
	TechPackageTrackMan        = "trackman"
	TechPackageShotTracking    = "shot_tracking"
	TechPackageGPSTracking     = "gps_tracking"
	TechPackageHighSpeedCamera = "high_speed_camera"
	TechPackageVideoAnalysis   = "video_analysis"
)

// PodDataRetentionDefaultDays is the default captured-data retention window
const PodDataRetentionDefaultDays = 365

// PodConfig holds the sensor and access configuration of one training pod.
// A pod maps one-to-one onto a bookable asset.
type PodConfig struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	UUID              uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uk_pod_configs_uuid" json:"uuid"`
	AssetID           uint           `gorm:"not null;uniqueIndex:uk_pod_configs_asset_id" json:"asset_id"`
	Asset             Asset          `gorm:"foreignKey:AssetID;references:ID" json:"asset,omitempty"`
	TechPackages      pq.StringArray `gorm:"type:text[]" json:"tech_packages"`
	TierAccess        pq.StringArray `gorm:"type:text[]" json:"tier_access"`
	PremiumCharge     float64        `gorm:"type:numeric(10,2);default:0" json:"premium_charge"`
	DataRetentionDays int            `gorm:"default:365" json:"data_retention_days"`
	AICoachingEnabled *bool          `gorm:"default:true" json:"ai_coaching_enabled"`
	UpdatedBy         *string        `gorm:"size:64" json:"updated_by,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (PodConfig) TableName() string {
	return "pod_configs"
}

// BeforeCreate ensures UUID is set for PodConfig
func (p *PodConfig) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	return nil
}

// AllowsTier reports whether the tier may use the pod without the premium
// charge. An empty access list opens the pod to every tier.
func (p *PodConfig) AllowsTier(tier string) bool {
	if len(p.TierAccess) == 0 {
		return true
	}
	for _, t := range p.TierAccess {
		if t == tier {
			return true
		}
	}
	return false
}

// PodConfigFilter represents filter criteria for pod configuration queries
type PodConfigFilter struct {
	ID      *uint      `json:"id,omitempty"`
	UUID    *uuid.UUID `json:"uuid,omitempty"`
	AssetID *uint      `json:"asset_id,omitempty"`
}

// PerformanceSession is one captured training measurement: a single metric
// value recorded for an athlete inside a pod.
type PerformanceSession struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UUID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_performance_sessions_uuid" json:"uuid"`
	AssetID     uint      `gorm:"not null;index:idx_performance_sessions_asset_id" json:"asset_id"`
	Asset       Asset     `gorm:"foreignKey:AssetID;references:ID" json:"asset,omitempty"`
	AthleteName string    `gorm:"size:255;not null;index:idx_performance_sessions_athlete" json:"athlete_name"`
	Sport       string    `gorm:"size:64;not null" json:"sport"`
	Metric      string    `gorm:"size:64;not null;index:idx_performance_sessions_metric" json:"metric"`
	Value       float64   `gorm:"type:numeric(10,2);not null" json:"value"`
	Unit        string    `gorm:"size:32" json:"unit"`
	RecordedAt  time.Time `gorm:"not null;index:idx_performance_sessions_recorded_at" json:"recorded_at"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (PerformanceSession) TableName() string {
	return "performance_sessions"
}

// BeforeCreate ensures UUID is set for PerformanceSession
func (s *PerformanceSession) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == uuid.Nil {
		s.UUID = uuid.New()
	}
	return nil
}

// PerformanceSessionFilter represents filter criteria for session queries
type PerformanceSessionFilter struct {
	ID             *uint      `json:"id,omitempty"`
	UUID           *uuid.UUID `json:"uuid,omitempty"`
	AssetID        *uint      `json:"asset_id,omitempty"`
	AthleteName    *string    `json:"athlete_name,omitempty"`
	Sport          *string    `json:"sport,omitempty"`
	Metric         *string    `json:"metric,omitempty"`
	RecordedAfter  *time.Time `json:"recorded_after,omitempty"`
	RecordedBefore *time.Time `json:"recorded_before,omitempty"`
}
