package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/skillshot/sportai/models"
	"gorm.io/gorm"
)

// SponsorRepositoryImpl implements SponsorRepository interface
type SponsorRepositoryImpl struct {
	*BaseRepository[models.Sponsor, models.SponsorFilter]
}

// NewSponsorRepository creates a new sponsor repository
func NewSponsorRepository(db *gorm.DB) SponsorRepository {
	return &SponsorRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Sponsor, models.SponsorFilter](db),
	}
}

// ByUUID retrieves a sponsor by UUID
func (r *SponsorRepositoryImpl) ByUUID(ctx context.Context, id uuid.UUID) (*models.Sponsor, error) {
	db := r.getDB(ctx)

	var sponsor models.Sponsor
	err := db.Where("uuid = ?", id).First(&sponsor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find sponsor by UUID: %w", err)
	}

	return &sponsor, nil
}

// ListByStatus retrieves sponsors in a given lifecycle status
func (r *SponsorRepositoryImpl) ListByStatus(ctx context.Context, status string) ([]*models.Sponsor, error) {
	db := r.getDB(ctx)

	var sponsors []*models.Sponsor
	err := db.Where("status = ?", status).
		Order("name").
		Find(&sponsors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sponsors by status: %w", err)
	}

	return sponsors, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *SponsorRepositoryImpl) applyFilter(db *gorm.DB, filter models.SponsorFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.Industry != nil {
		db = db.Where("industry = ?", *filter.Industry)
	}
	if filter.Tier != nil {
		db = db.Where("tier = ?", *filter.Tier)
	}
	return db
}

// ByFilter retrieves sponsors based on filter criteria
func (r *SponsorRepositoryImpl) ByFilter(ctx context.Context, filter models.SponsorFilter, orderBy string, limit, offset int) ([]*models.Sponsor, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Sponsor{}), filter)

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

	var sponsors []*models.Sponsor
	if err := query.Find(&sponsors).Error; err != nil {
		return nil, fmt.Errorf("failed to find sponsors by filter: %w", err)
	}
	return sponsors, nil
}

// Count returns the number of sponsors matching the filter
func (r *SponsorRepositoryImpl) Count(ctx context.Context, filter models.SponsorFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Sponsor{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count sponsors: %w", err)
	}
	return count, nil
}

// Exists checks if any sponsor matching the filter exists
func (r *SponsorRepositoryImpl) Exists(ctx context.Context, filter models.SponsorFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
