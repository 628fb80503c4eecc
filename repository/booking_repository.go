package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/skillshot/sportai/models"
	"gorm.io/gorm"
)

// BookingRepositoryImpl implements BookingRepository interface
type BookingRepositoryImpl struct {
	*BaseRepository[models.Booking, models.BookingFilter]
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &BookingRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Booking, models.BookingFilter](db),
	}
}

// ByUUID retrieves a booking by UUID with its asset preloaded
func (r *BookingRepositoryImpl) ByUUID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	db := r.getDB(ctx)

	var booking models.Booking
	err := db.Where("uuid = ?", id).
		Preload("Asset").
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find booking by UUID: %w", err)
	}

	return &booking, nil
}

// ListByAssetAndDate retrieves non-cancelled bookings for an asset on a date
func (r *BookingRepositoryImpl) ListByAssetAndDate(ctx context.Context, assetID uint, date time.Time) ([]*models.Booking, error) {
	db := r.getDB(ctx)

	var bookings []*models.Booking
	err := db.Where("asset_id = ? AND booking_date = ? AND status <> ?",
		assetID, date.Format("2006-01-02"), models.BookingStatusCancelled).
		Order("time_slot").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by asset and date: %w", err)
	}

	return bookings, nil
}

// HasConflict reports whether a non-cancelled booking already holds the slot
func (r *BookingRepositoryImpl) HasConflict(ctx context.Context, assetID uint, date time.Time, timeSlot string) (bool, error) {
	db := r.getDB(ctx)

	var count int64
	err := db.Model(&models.Booking{}).
		Where("asset_id = ? AND booking_date = ? AND time_slot = ? AND status <> ?",
			assetID, date.Format("2006-01-02"), timeSlot, models.BookingStatusCancelled).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check booking conflict: %w", err)
	}

	return count > 0, nil
}

// RevenueBySegment aggregates confirmed booking revenue per customer segment
func (r *BookingRepositoryImpl) RevenueBySegment(ctx context.Context, from, to time.Time) ([]*SegmentRevenueRow, error) {
	db := r.getDB(ctx)

	var rows []*SegmentRevenueRow
	err := db.Raw(`
		SELECT customer_segment,
		       COUNT(*) AS booking_count,
		       COALESCE(SUM(duration_hours), 0) AS total_hours,
		       COALESCE(SUM(total_amount), 0) AS total_revenue
		FROM bookings
		WHERE status = ? AND booking_date BETWEEN ? AND ?
		GROUP BY customer_segment
		ORDER BY total_revenue DESC
	`, models.BookingStatusConfirmed, from.Format("2006-01-02"), to.Format("2006-01-02")).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue by segment: %w", err)
	}

	return rows, nil
}

// UtilizationByAsset aggregates booked hours and revenue per asset
func (r *BookingRepositoryImpl) UtilizationByAsset(ctx context.Context, from, to time.Time) ([]*AssetUtilizationRow, error) {
	db := r.getDB(ctx)

	var rows []*AssetUtilizationRow
	err := db.Raw(`
		SELECT a.id AS asset_id,
		       a.name AS asset_name,
		       a.type AS asset_type,
		       COUNT(b.id) AS booking_count,
		       COALESCE(SUM(b.duration_hours), 0) AS booked_hours,
		       COALESCE(SUM(b.total_amount), 0) AS total_revenue
		FROM assets a
		LEFT JOIN bookings b
		  ON b.asset_id = a.id
		 AND b.status = ?
		 AND b.booking_date BETWEEN ? AND ?
		GROUP BY a.id, a.name, a.type
		ORDER BY booked_hours DESC
	`, models.BookingStatusConfirmed, from.Format("2006-01-02"), to.Format("2006-01-02")).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate utilization by asset: %w", err)
	}

	return rows, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *BookingRepositoryImpl) applyFilter(db *gorm.DB, filter models.BookingFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.AssetID != nil {
		db = db.Where("asset_id = ?", *filter.AssetID)
	}
	if filter.CustomerSegment != nil {
		db = db.Where("customer_segment = ?", *filter.CustomerSegment)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.DateFrom != nil {
		db = db.Where("booking_date >= ?", filter.DateFrom.Format("2006-01-02"))
	}
	if filter.DateTo != nil {
		db = db.Where("booking_date <= ?", filter.DateTo.Format("2006-01-02"))
	}
	if filter.TimeSlot != nil {
		db = db.Where("time_slot = ?", *filter.TimeSlot)
	}
	return db
}

// ByFilter retrieves bookings based on filter criteria
func (r *BookingRepositoryImpl) ByFilter(ctx context.Context, filter models.BookingFilter, orderBy string, limit, offset int) ([]*models.Booking, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Booking{}), filter)

	if orderBy == "" {
		orderBy = "booking_date DESC, time_slot"
	}
	query = query.Order(orderBy).Preload("Asset")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var bookings []*models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by filter: %w", err)
	}
	return bookings, nil
}

// Count returns the number of bookings matching the filter
func (r *BookingRepositoryImpl) Count(ctx context.Context, filter models.BookingFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Booking{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

// Exists checks if any booking matching the filter exists
func (r *BookingRepositoryImpl) Exists(ctx context.Context, filter models.BookingFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
