package repository

import (
	"context"
	"fmt"

	"github.com/skillshot/sportai/models"
	"gorm.io/gorm"
)

// PricingRuleRepositoryImpl implements PricingRuleRepository interface
type PricingRuleRepositoryImpl struct {
	*BaseRepository[models.PricingRule, models.PricingRuleFilter]
}

// NewPricingRuleRepository creates a new repository for versioned pricing documents
func NewPricingRuleRepository(db *gorm.DB) PricingRuleRepository {
	return &PricingRuleRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PricingRule, models.PricingRuleFilter](db),
	}
}

// LatestByKind returns the active document for a kind (highest version wins,
// newest row breaking ties).
func (r *PricingRuleRepositoryImpl) LatestByKind(ctx context.Context, kind string) (*models.PricingRule, error) {
	db := r.getDB(ctx)

	var rows []*models.PricingRule
	err := db.Raw(`
		SELECT DISTINCT ON (kind) id, kind, version, document, updated_by, comment, created_at, updated_at
		FROM pricing_rules
		WHERE kind = ?
		ORDER BY kind, version DESC, created_at DESC
	`, kind).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load latest pricing document: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	return rows[0], nil
}

// HistoryByKind returns document versions for a kind, newest first
func (r *PricingRuleRepositoryImpl) HistoryByKind(ctx context.Context, kind string, limit, offset int) ([]*models.PricingRule, error) {
	db := r.getDB(ctx)

	query := db.Where("kind = ?", kind).
		Order("version DESC, created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.PricingRule
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load pricing document history: %w", err)
	}
	return rows, nil
}

// NextVersion returns the version number the next document of a kind should carry
func (r *PricingRuleRepositoryImpl) NextVersion(ctx context.Context, kind string) (int, error) {
	db := r.getDB(ctx)

	var maxVersion int
	err := db.Raw(`
		SELECT COALESCE(MAX(version), 0)
		FROM pricing_rules
		WHERE kind = ?
	`, kind).Scan(&maxVersion).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute next pricing document version: %w", err)
	}

	return maxVersion + 1, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *PricingRuleRepositoryImpl) applyFilter(db *gorm.DB, filter models.PricingRuleFilter) *gorm.DB {
	if filter.Kind != nil {
		db = db.Where("kind = ?", *filter.Kind)
	}
	if filter.Version != nil {
		db = db.Where("version = ?", *filter.Version)
	}
	return db
}

// ByFilter retrieves pricing documents based on filter criteria
func (r *PricingRuleRepositoryImpl) ByFilter(ctx context.Context, filter models.PricingRuleFilter, orderBy string, limit, offset int) ([]*models.PricingRule, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PricingRule{}), filter)

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

	var rows []*models.PricingRule
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find pricing documents by filter: %w", err)
	}
	return rows, nil
}

// Count returns the number of pricing documents matching the filter
func (r *PricingRuleRepositoryImpl) Count(ctx context.Context, filter models.PricingRuleFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PricingRule{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count pricing documents: %w", err)
	}
	return count, nil
}

// Exists checks if any pricing document matching the filter exists
func (r *PricingRuleRepositoryImpl) Exists(ctx context.Context, filter models.PricingRuleFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
