package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/skillshot/sportai/models"
	"gorm.io/gorm"
)

// ContractRepositoryImpl implements ContractRepository interface
type ContractRepositoryImpl struct {
	*BaseRepository[models.Contract, models.ContractFilter]
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *gorm.DB) ContractRepository {
	return &ContractRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Contract, models.ContractFilter](db),
	}
}

// ByUUID retrieves a contract by UUID with its sponsor preloaded
func (r *ContractRepositoryImpl) ByUUID(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	db := r.getDB(ctx)

	var contract models.Contract
	err := db.Where("uuid = ?", id).
		Preload("Sponsor").
		First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find contract by UUID: %w", err)
	}

	return &contract, nil
}

// ListBySponsor retrieves all contracts for a sponsor, newest first
func (r *ContractRepositoryImpl) ListBySponsor(ctx context.Context, sponsorID uint) ([]*models.Contract, error) {
	db := r.getDB(ctx)

	var contracts []*models.Contract
	err := db.Where("sponsor_id = ?", sponsorID).
		Order("created_at DESC").
		Find(&contracts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts by sponsor: %w", err)
	}

	return contracts, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *ContractRepositoryImpl) applyFilter(db *gorm.DB, filter models.ContractFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.SponsorID != nil {
		db = db.Where("sponsor_id = ?", *filter.SponsorID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	return db
}

// ByFilter retrieves contracts based on filter criteria
func (r *ContractRepositoryImpl) ByFilter(ctx context.Context, filter models.ContractFilter, orderBy string, limit, offset int) ([]*models.Contract, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Contract{}), filter)

	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	query = query.Order(orderBy).Preload("Sponsor")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var contracts []*models.Contract
	if err := query.Find(&contracts).Error; err != nil {
		return nil, fmt.Errorf("failed to find contracts by filter: %w", err)
	}
	return contracts, nil
}

// Count returns the number of contracts matching the filter
func (r *ContractRepositoryImpl) Count(ctx context.Context, filter models.ContractFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Contract{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count contracts: %w", err)
	}
	return count, nil
}

// Exists checks if any contract matching the filter exists
func (r *ContractRepositoryImpl) Exists(ctx context.Context, filter models.ContractFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
