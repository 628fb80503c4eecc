package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/repository"
	"github.com/skillshot/sportai/utils"
	"gorm.io/gorm"
)

const (
	leaderboardDefaultDays  = 30
	leaderboardDefaultLimit = 10
	leaderboardMaxLimit     = 100
)

// PerformanceFlow manages sensor pod configuration, captured athlete
// measurements and metric leaderboards
type PerformanceFlow interface {
	ConfigurePod(ctx context.Context, req *dto.ConfigurePodRequest, staffID *uint, metadata *ClientMetadata) (*dto.PodConfigResponse, error)
	GetPodConfig(ctx context.Context, assetUUID string) (*dto.PodConfigResponse, error)
	RecordSession(ctx context.Context, req *dto.RecordSessionRequest, staffID *uint, metadata *ClientMetadata) (*dto.PerformanceSessionResponse, error)
	Leaderboard(ctx context.Context, metric string, days, limit int) (*dto.LeaderboardResponse, error)
}

// PerformanceFlowImpl implements the performance business flow
type PerformanceFlowImpl struct {
	podRepo     repository.PodConfigRepository
	sessionRepo repository.PerformanceSessionRepository
	assetRepo   repository.AssetRepository
	auditRepo   repository.AuditLogRepository
	db          *gorm.DB
}

// NewPerformanceFlow creates a new performance flow instance
func NewPerformanceFlow(
	podRepo repository.PodConfigRepository,
	sessionRepo repository.PerformanceSessionRepository,
	assetRepo repository.AssetRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) PerformanceFlow {
	return &PerformanceFlowImpl{
		podRepo:     podRepo,
		sessionRepo: sessionRepo,
		assetRepo:   assetRepo,
		auditRepo:   auditRepo,
		db:          db,
	}
}

// ConfigurePod creates or replaces the pod configuration of an asset
func (f *PerformanceFlowImpl) ConfigurePod(ctx context.Context, req *dto.ConfigurePodRequest, staffID *uint, metadata *ClientMetadata) (*dto.PodConfigResponse, error) {
	asset, err := f.assetByUUID(ctx, req.AssetUUID)
	if err != nil {
		return nil, err
	}

	if req.PremiumCharge < 0 {
		return nil, NewBusinessError("POD_PREMIUM_CHARGE_INVALID", "Premium charge cannot be negative", ErrPremiumChargeInvalid)
	}

	retention := models.PodDataRetentionDefaultDays
	if req.DataRetentionDays != nil {
		retention = *req.DataRetentionDays
		if retention < 30 || retention > 3650 {
			return nil, NewBusinessError("POD_RETENTION_OUT_OF_RANGE", "Data retention must be between 30 and 3650 days", ErrRetentionOutOfRange)
		}
	}

	for _, tech := range req.TechPackages {
		if !isKnownTechPackage(tech) {
			return nil, NewBusinessErrorf("POD_TECH_PACKAGE_UNKNOWN", "Unknown technology package %q", ErrUnknownTechPackage, tech)
		}
	}

	var updatedBy *string
	if staffID != nil {
		s := fmt.Sprintf("staff:%d", *staffID)
		updatedBy = &s
	}

	var cfg *models.PodConfig
	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		existing, err := f.podRepo.ByAssetID(txCtx, asset.ID)
		if err != nil {
			return err
		}

		if existing != nil {
			existing.TechPackages = req.TechPackages
			existing.TierAccess = req.TierAccess
			existing.PremiumCharge = req.PremiumCharge
			existing.DataRetentionDays = retention
			if req.AICoachingEnabled != nil {
				existing.AICoachingEnabled = req.AICoachingEnabled
			}
			existing.UpdatedBy = updatedBy
			existing.UpdatedAt = utils.UTCNow()
			cfg = existing
			return f.podRepo.Update(txCtx, existing)
		}

		aiCoaching := req.AICoachingEnabled
		if aiCoaching == nil {
			aiCoaching = utils.ToPtr(true)
		}
		cfg = &models.PodConfig{
			AssetID:           asset.ID,
			TechPackages:      req.TechPackages,
			TierAccess:        req.TierAccess,
			PremiumCharge:     req.PremiumCharge,
			DataRetentionDays: retention,
			AICoachingEnabled: aiCoaching,
			UpdatedBy:         updatedBy,
			CreatedAt:         utils.UTCNow(),
			UpdatedAt:         utils.UTCNow(),
		}
		return f.podRepo.Save(txCtx, cfg)
	})
	if err != nil {
		return nil, NewBusinessError("POD_CONFIG_SAVE_FAILED", "Failed to save pod configuration", err)
	}

	f.logPodConfigured(ctx, staffID, asset, req.TechPackages, metadata)

	out := ToPodConfigDTO(*cfg)
	out.AssetUUID = asset.UUID.String()
	out.AssetName = asset.Name

	return &dto.PodConfigResponse{
		Message: "Pod configuration saved successfully",
		Config:  out,
	}, nil
}

// GetPodConfig returns the pod configuration attached to an asset
func (f *PerformanceFlowImpl) GetPodConfig(ctx context.Context, assetUUID string) (*dto.PodConfigResponse, error) {
	asset, err := f.assetByUUID(ctx, assetUUID)
	if err != nil {
		return nil, err
	}

	cfg, err := f.podRepo.ByAssetID(ctx, asset.ID)
	if err != nil {
		return nil, NewBusinessError("POD_CONFIG_LOOKUP_FAILED", "Failed to look up pod configuration", err)
	}
	if cfg == nil {
		return nil, NewBusinessError("POD_CONFIG_NOT_FOUND", "Pod configuration not found", ErrPodConfigNotFound)
	}

	out := ToPodConfigDTO(*cfg)
	out.AssetUUID = asset.UUID.String()
	out.AssetName = asset.Name

	return &dto.PodConfigResponse{
		Message: "Pod configuration retrieved successfully",
		Config:  out,
	}, nil
}

// RecordSession captures one athlete measurement from a configured pod
func (f *PerformanceFlowImpl) RecordSession(ctx context.Context, req *dto.RecordSessionRequest, staffID *uint, metadata *ClientMetadata) (*dto.PerformanceSessionResponse, error) {
	asset, err := f.assetByUUID(ctx, req.AssetUUID)
	if err != nil {
		return nil, err
	}

	if req.Value <= 0 {
		return nil, NewBusinessError("SESSION_VALUE_INVALID", "Metric value must be greater than zero", ErrMetricValueInvalid)
	}

	recordedAt := utils.UTCNow()
	if req.RecordedAt != nil {
		recordedAt, err = time.Parse(time.RFC3339, *req.RecordedAt)
		if err != nil {
			return nil, NewBusinessError("SESSION_RECORDED_AT_INVALID", "Recorded time must be RFC 3339", err)
		}
		recordedAt = recordedAt.UTC()
	}
	if recordedAt.After(utils.UTCNow()) {
		return nil, NewBusinessError("SESSION_RECORDED_AT_FUTURE", "Recorded time cannot be in the future", ErrRecordedAtInFuture)
	}

	session := &models.PerformanceSession{
		AssetID:     asset.ID,
		AthleteName: strings.TrimSpace(req.AthleteName),
		Sport:       strings.ToLower(strings.TrimSpace(req.Sport)),
		Metric:      strings.ToLower(strings.TrimSpace(req.Metric)),
		Value:       req.Value,
		Unit:        req.Unit,
		RecordedAt:  recordedAt,
		CreatedAt:   utils.UTCNow(),
	}

	if err := f.sessionRepo.Save(ctx, session); err != nil {
		return nil, NewBusinessError("SESSION_SAVE_FAILED", "Failed to record session", err)
	}

	out := ToPerformanceSessionDTO(*session)
	out.AssetUUID = asset.UUID.String()
	out.AssetName = asset.Name

	return &dto.PerformanceSessionResponse{
		Message: "Session recorded successfully",
		Session: out,
	}, nil
}

// Leaderboard ranks athletes by their best value for one metric over a
// trailing window of days
func (f *PerformanceFlowImpl) Leaderboard(ctx context.Context, metric string, days, limit int) (*dto.LeaderboardResponse, error) {
	metric = strings.ToLower(strings.TrimSpace(metric))
	if metric == "" {
		return nil, NewBusinessError("LEADERBOARD_METRIC_REQUIRED", "Leaderboard metric is required", nil)
	}

	if days < 1 || days > 365 {
		days = leaderboardDefaultDays
	}
	if limit < 1 || limit > leaderboardMaxLimit {
		limit = leaderboardDefaultLimit
	}

	now := utils.UTCNow()
	rows, err := f.sessionRepo.Leaderboard(ctx, metric, now.AddDate(0, 0, -days), now, limit)
	if err != nil {
		return nil, NewBusinessError("LEADERBOARD_QUERY_FAILED", "Failed to build leaderboard", err)
	}

	entries := make([]dto.LeaderboardEntryDTO, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, dto.LeaderboardEntryDTO{
			Rank:         i + 1,
			AthleteName:  row.AthleteName,
			BestValue:    row.BestValue,
			Unit:         row.Unit,
			SessionCount: row.SessionCount,
		})
	}

	return &dto.LeaderboardResponse{
		Message: "Leaderboard retrieved successfully",
		Metric:  metric,
		Days:    days,
		Entries: entries,
	}, nil
}

func (f *PerformanceFlowImpl) assetByUUID(ctx context.Context, assetUUID string) (*models.Asset, error) {
	id, err := uuid.Parse(assetUUID)
	if err != nil {
		return nil, NewBusinessError("ASSET_UUID_INVALID", "Asset identifier is invalid", err)
	}
	asset, err := f.assetRepo.ByUUID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("ASSET_LOOKUP_FAILED", "Failed to look up asset", err)
	}
	if asset == nil {
		return nil, NewBusinessError("ASSET_NOT_FOUND", "Asset not found", ErrAssetNotFound)
	}
	return asset, nil
}

func isKnownTechPackage(tech string) bool {
	switch tech {
	case models.TechPackageHitTrax,
		models.TechPackageRapsodo,
		models.TechPackageTrackMan,
		models.TechPackageShotTracking,
		models.TechPackageGPSTracking,
		models.TechPackageHighSpeedCamera,
		models.TechPackageVideoAnalysis:
		return true
	}
	return false
}

func (f *PerformanceFlowImpl) logPodConfigured(ctx context.Context, staffID *uint, asset *models.Asset, techPackages []string, metadata *ClientMetadata) {
	description := fmt.Sprintf("Pod configuration updated for asset %s", asset.Name)
	success := true
	metadataJSON, _ := json.Marshal(map[string]any{
		"pod":  asset.Name,
		"tech": techPackages,
	})

	entry := &models.AuditLog{
		StaffID:     staffID,
		Action:      models.AuditActionPodConfigUpdated,
		Description: &description,
		Metadata:    metadataJSON,
		Success:     &success,
	}
	if metadata != nil {
		if metadata.IPAddress != "" {
			entry.IPAddress = &metadata.IPAddress
		}
		if metadata.UserAgent != "" {
			entry.UserAgent = &metadata.UserAgent
		}
		if metadata.RequestID != "" {
			entry.RequestID = &metadata.RequestID
		}
	}
	_ = f.auditRepo.Save(ctx, entry)
}
