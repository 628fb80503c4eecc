package dto

// ConfigurePodRequest sets the technology and access configuration of a pod
type ConfigurePodRequest struct {
	AssetUUID         string   `json:"asset_uuid" validate:"required,uuid4"`
	TechPackages      []string `json:"tech_packages" validate:"required,min=1,dive,oneof=hittrax rapsodo trackman shot_tracking gps_tracking high_speed_camera video_analysis"`
	TierAccess        []string `json:"tier_access" validate:"omitempty,dive,oneof=basic plus premium founders"`
	PremiumCharge     float64  `json:"premium_charge" validate:"omitempty,min=0"`
	DataRetentionDays *int     `json:"data_retention_days,omitempty" validate:"omitempty,min=30,max=3650"`
	AICoachingEnabled *bool    `json:"ai_coaching_enabled,omitempty"`
}

// PodConfigDTO is the pod configuration representation in API responses
type PodConfigDTO struct {
	ID                uint     `json:"id"`
	UUID              string   `json:"uuid"`
	AssetUUID         string   `json:"asset_uuid,omitempty"`
	AssetName         string   `json:"asset_name,omitempty"`
	TechPackages      []string `json:"tech_packages"`
	TierAccess        []string `json:"tier_access"`
	PremiumCharge     float64  `json:"premium_charge"`
	DataRetentionDays int      `json:"data_retention_days"`
	AICoachingEnabled *bool    `json:"ai_coaching_enabled"`
	UpdatedBy         *string  `json:"updated_by,omitempty"`
	UpdatedAt         string   `json:"updated_at"`
}

// PodConfigResponse wraps a single pod configuration
type PodConfigResponse struct {
	Message string       `json:"message"`
	Config  PodConfigDTO `json:"config"`
}

// RecordSessionRequest captures one athlete measurement from a pod
type RecordSessionRequest struct {
	AssetUUID   string  `json:"asset_uuid" validate:"required,uuid4"`
	AthleteName string  `json:"athlete_name" validate:"required,min=2,max=255"`
	Sport       string  `json:"sport" validate:"required,min=2,max=64"`
	Metric      string  `json:"metric" validate:"required,min=2,max=64"`
	Value       float64 `json:"value" validate:"required"`
	Unit        string  `json:"unit" validate:"omitempty,max=32"`
	RecordedAt  *string `json:"recorded_at,omitempty"`
}

// PerformanceSessionDTO is the session representation in API responses
type PerformanceSessionDTO struct {
	ID          uint    `json:"id"`
	UUID        string  `json:"uuid"`
	AssetUUID   string  `json:"asset_uuid,omitempty"`
	AssetName   string  `json:"asset_name,omitempty"`
	AthleteName string  `json:"athlete_name"`
	Sport       string  `json:"sport"`
	Metric      string  `json:"metric"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit,omitempty"`
	RecordedAt  string  `json:"recorded_at"`
}

// PerformanceSessionResponse wraps a single recorded session
type PerformanceSessionResponse struct {
	Message string                `json:"message"`
	Session PerformanceSessionDTO `json:"session"`
}

// LeaderboardEntryDTO is one ranked row of a metric leaderboard
type LeaderboardEntryDTO struct {
	Rank         int     `json:"rank"`
	AthleteName  string  `json:"athlete_name"`
	BestValue    float64 `json:"best_value"`
	Unit         string  `json:"unit,omitempty"`
	SessionCount int64   `json:"session_count"`
}

// LeaderboardResponse ranks athletes by their best value for one metric
type LeaderboardResponse struct {
	Message string                `json:"message"`
	Metric  string                `json:"metric"`
	Days    int                   `json:"days"`
	Entries []LeaderboardEntryDTO `json:"entries"`
}
