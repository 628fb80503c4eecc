package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/skillshot/sportai/models"
	"gorm.io/gorm"
)

// AssetRepositoryImpl implements AssetRepository interface
type AssetRepositoryImpl struct {
	*BaseRepository[models.Asset, models.AssetFilter]
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &AssetRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Asset, models.AssetFilter](db),
	}
}

// ByUUID retrieves an asset by UUID
func (r *AssetRepositoryImpl) ByUUID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	db := r.getDB(ctx)

	var asset models.Asset
	err := db.Where("uuid = ?", id).First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find asset by UUID: %w", err)
	}

	return &asset, nil
}

// ListActive retrieves all active assets ordered by site and name
func (r *AssetRepositoryImpl) ListActive(ctx context.Context) ([]*models.Asset, error) {
	db := r.getDB(ctx)

	var assets []*models.Asset
	err := db.Where("is_active = ?", true).
		Order("site_id, name").
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active assets: %w", err)
	}

	return assets, nil
}

// ListBySite retrieves all assets for a site
func (r *AssetRepositoryImpl) ListBySite(ctx context.Context, siteID string) ([]*models.Asset, error) {
	db := r.getDB(ctx)

	var assets []*models.Asset
	err := db.Where("site_id = ?", siteID).
		Order("name").
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assets by site: %w", err)
	}

	return assets, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *AssetRepositoryImpl) applyFilter(db *gorm.DB, filter models.AssetFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.SiteID != nil {
		db = db.Where("site_id = ?", *filter.SiteID)
	}
	if filter.Type != nil {
		db = db.Where("type = ?", *filter.Type)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	return db
}

// ByFilter retrieves assets based on filter criteria
func (r *AssetRepositoryImpl) ByFilter(ctx context.Context, filter models.AssetFilter, orderBy string, limit, offset int) ([]*models.Asset, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Asset{}), filter)

	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var assets []*models.Asset
	if err := query.Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("failed to find assets by filter: %w", err)
	}
	return assets, nil
}

// Count returns the number of assets matching the filter
func (r *AssetRepositoryImpl) Count(ctx context.Context, filter models.AssetFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Asset{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count assets: %w", err)
	}
	return count, nil
}

// Exists checks if any asset matching the filter exists
func (r *AssetRepositoryImpl) Exists(ctx context.Context, filter models.AssetFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
