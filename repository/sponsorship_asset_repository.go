package repository

import (
	"context"
	"fmt"

	"github.com/skillshot/sportai/models"
	"gorm.io/gorm"
)

// SponsorshipAssetRepositoryImpl implements SponsorshipAssetRepository interface
type SponsorshipAssetRepositoryImpl struct {
	*BaseRepository[models.SponsorshipAsset, models.SponsorshipAssetFilter]
}

// NewSponsorshipAssetRepository creates a new sponsorship inventory repository
func NewSponsorshipAssetRepository(db *gorm.DB) SponsorshipAssetRepository {
	return &SponsorshipAssetRepositoryImpl{
		BaseRepository: NewBaseRepository[models.SponsorshipAsset, models.SponsorshipAssetFilter](db),
	}
}

// ListAvailable retrieves all unsold inventory items
func (r *SponsorshipAssetRepositoryImpl) ListAvailable(ctx context.Context) ([]*models.SponsorshipAsset, error) {
	db := r.getDB(ctx)

	var items []*models.SponsorshipAsset
	err := db.Where("status = ?", models.SponsorshipAssetAvailable).
		Order("category, annual_value DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list available sponsorship assets: %w", err)
	}

	return items, nil
}

// ListByIDs retrieves inventory items by their IDs
func (r *SponsorshipAssetRepositoryImpl) ListByIDs(ctx context.Context, ids []uint) ([]*models.SponsorshipAsset, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	db := r.getDB(ctx)

	var items []*models.SponsorshipAsset
	err := db.Where("id IN ?", ids).Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sponsorship assets by IDs: %w", err)
	}

	return items, nil
}

// MarkStatus transitions a set of inventory items to a new status, optionally assigning a sponsor
func (r *SponsorshipAssetRepositoryImpl) MarkStatus(ctx context.Context, ids []uint, status string, sponsorID *uint) error {
	if len(ids) == 0 {
		return nil
	}

	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	updates := map[string]any{"status": status}
	if sponsorID != nil {
		updates["sponsor_id"] = *sponsorID
	}

	err = db.Model(&models.SponsorshipAsset{}).
		Where("id IN ?", ids).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to mark sponsorship asset status: %w", err)
	}

	return nil
}

// applyFilter applies filter conditions to the GORM query
func (r *SponsorshipAssetRepositoryImpl) applyFilter(db *gorm.DB, filter models.SponsorshipAssetFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.SponsorID != nil {
		db = db.Where("sponsor_id = ?", *filter.SponsorID)
	}
	if filter.Category != nil {
		db = db.Where("category = ?", *filter.Category)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	return db
}

// ByFilter retrieves inventory items based on filter criteria
func (r *SponsorshipAssetRepositoryImpl) ByFilter(ctx context.Context, filter models.SponsorshipAssetFilter, orderBy string, limit, offset int) ([]*models.SponsorshipAsset, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.SponsorshipAsset{}), filter)

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

	var items []*models.SponsorshipAsset
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to find sponsorship assets by filter: %w", err)
	}
	return items, nil
}

// Count returns the number of inventory items matching the filter
func (r *SponsorshipAssetRepositoryImpl) Count(ctx context.Context, filter models.SponsorshipAssetFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.SponsorshipAsset{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count sponsorship assets: %w", err)
	}
	return count, nil
}

// Exists checks if any inventory item matching the filter exists
func (r *SponsorshipAssetRepositoryImpl) Exists(ctx context.Context, filter models.SponsorshipAssetFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
