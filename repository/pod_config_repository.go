package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/skillshot/sportai/models"
	"gorm.io/gorm"
)

// PodConfigRepositoryImpl implements PodConfigRepository interface
type PodConfigRepositoryImpl struct {
	*BaseRepository[models.PodConfig, models.PodConfigFilter]
}

// NewPodConfigRepository creates a new pod configuration repository
func NewPodConfigRepository(db *gorm.DB) PodConfigRepository {
	return &PodConfigRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PodConfig, models.PodConfigFilter](db),
	}
}

// ByUUID retrieves a pod configuration by UUID
func (r *PodConfigRepositoryImpl) ByUUID(ctx context.Context, id uuid.UUID) (*models.PodConfig, error) {
	db := r.getDB(ctx)

	var cfg models.PodConfig
	err := db.Where("uuid = ?", id).First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find pod config by UUID: %w", err)
	}

	return &cfg, nil
}

// ByAssetID retrieves the pod configuration attached to an asset
func (r *PodConfigRepositoryImpl) ByAssetID(ctx context.Context, assetID uint) (*models.PodConfig, error) {
	db := r.getDB(ctx)

	var cfg models.PodConfig
	err := db.Where("asset_id = ?", assetID).First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find pod config by asset ID: %w", err)
	}

	return &cfg, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *PodConfigRepositoryImpl) applyFilter(db *gorm.DB, filter models.PodConfigFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.AssetID != nil {
		db = db.Where("asset_id = ?", *filter.AssetID)
	}
	return db
}

// ByFilter retrieves pod configurations based on filter criteria
func (r *PodConfigRepositoryImpl) ByFilter(ctx context.Context, filter models.PodConfigFilter, orderBy string, limit, offset int) ([]*models.PodConfig, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PodConfig{}), filter)

	if orderBy == "" {
		orderBy = "updated_at DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var configs []*models.PodConfig
	if err := query.Find(&configs).Error; err != nil {
		return nil, fmt.Errorf("failed to find pod configs by filter: %w", err)
	}
	return configs, nil
}

// Count returns the number of pod configurations matching the filter
func (r *PodConfigRepositoryImpl) Count(ctx context.Context, filter models.PodConfigFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PodConfig{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count pod configs: %w", err)
	}
	return count, nil
}

// Exists checks if any pod configuration matching the filter exists
func (r *PodConfigRepositoryImpl) Exists(ctx context.Context, filter models.PodConfigFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
