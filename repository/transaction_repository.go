package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/skillshot/sportai/models"
	"gorm.io/gorm"
)

// TransactionRepositoryImpl implements TransactionRepository interface
type TransactionRepositoryImpl struct {
	*BaseRepository[models.Transaction, models.TransactionFilter]
}

// NewTransactionRepository creates a new ledger repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &TransactionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Transaction, models.TransactionFilter](db),
	}
}

// ByCorrelationID retrieves all ledger entries sharing a correlation ID, oldest first
func (r *TransactionRepositoryImpl) ByCorrelationID(ctx context.Context, correlationID uuid.UUID) ([]*models.Transaction, error) {
	db := r.getDB(ctx)

	var txs []*models.Transaction
	err := db.Where("correlation_id = ?", correlationID).
		Order("created_at ASC").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions by correlation ID: %w", err)
	}

	return txs, nil
}

// SumCompletedByType sums completed entries of a type within a time window
func (r *TransactionRepositoryImpl) SumCompletedByType(ctx context.Context, txType models.TransactionType, from, to time.Time) (float64, error) {
	db := r.getDB(ctx)

	var total float64
	err := db.Raw(`
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE type = ? AND status = ? AND created_at BETWEEN ? AND ?
	`, txType, models.TransactionStatusCompleted, from, to).Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum transactions by type: %w", err)
	}

	return total, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *TransactionRepositoryImpl) applyFilter(db *gorm.DB, filter models.TransactionFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.CorrelationID != nil {
		db = db.Where("correlation_id = ?", *filter.CorrelationID)
	}
	if filter.Type != nil {
		db = db.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.MemberID != nil {
		db = db.Where("member_id = ?", *filter.MemberID)
	}
	if filter.SponsorID != nil {
		db = db.Where("sponsor_id = ?", *filter.SponsorID)
	}
	if filter.BookingID != nil {
		db = db.Where("booking_id = ?", *filter.BookingID)
	}
	if filter.ContractID != nil {
		db = db.Where("contract_id = ?", *filter.ContractID)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at <= ?", *filter.CreatedBefore)
	}
	return db
}

// ByFilter retrieves ledger entries based on filter criteria
func (r *TransactionRepositoryImpl) ByFilter(ctx context.Context, filter models.TransactionFilter, orderBy string, limit, offset int) ([]*models.Transaction, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Transaction{}), filter)

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

	var txs []*models.Transaction
	if err := query.Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("failed to find transactions by filter: %w", err)
	}
	return txs, nil
}

// Count returns the number of ledger entries matching the filter
func (r *TransactionRepositoryImpl) Count(ctx context.Context, filter models.TransactionFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Transaction{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// Exists checks if any ledger entry matching the filter exists
func (r *TransactionRepositoryImpl) Exists(ctx context.Context, filter models.TransactionFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
