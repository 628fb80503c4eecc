package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/skillshot/sportai/models"
	"gorm.io/gorm"
)

// PerformanceSessionRepositoryImpl implements PerformanceSessionRepository interface
type PerformanceSessionRepositoryImpl struct {
	*BaseRepository[models.PerformanceSession, models.PerformanceSessionFilter]
}

// NewPerformanceSessionRepository creates a new performance session repository
func NewPerformanceSessionRepository(db *gorm.DB) PerformanceSessionRepository {
	return &PerformanceSessionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PerformanceSession, models.PerformanceSessionFilter](db),
	}
}

// Leaderboard aggregates the best value per athlete for one metric inside the
// window, ranked best first
func (r *PerformanceSessionRepositoryImpl) Leaderboard(ctx context.Context, metric string, from, to time.Time, limit int) ([]*LeaderboardRow, error) {
	db := r.getDB(ctx)

	var rows []*LeaderboardRow
	err := db.Model(&models.PerformanceSession{}).
		Select("athlete_name, MAX(value) AS best_value, MAX(unit) AS unit, COUNT(*) AS session_count").
		Where("metric = ? AND recorded_at >= ? AND recorded_at < ?", metric, from, to).
		Group("athlete_name").
		Order("best_value DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard: %w", err)
	}

	return rows, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *PerformanceSessionRepositoryImpl) applyFilter(db *gorm.DB, filter models.PerformanceSessionFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.AssetID != nil {
		db = db.Where("asset_id = ?", *filter.AssetID)
	}
	if filter.AthleteName != nil {
		db = db.Where("athlete_name = ?", *filter.AthleteName)
	}
	if filter.Sport != nil {
		db = db.Where("sport = ?", *filter.Sport)
	}
	if filter.Metric != nil {
		db = db.Where("metric = ?", *filter.Metric)
	}
	if filter.RecordedAfter != nil {
		db = db.Where("recorded_at >= ?", *filter.RecordedAfter)
	}
	if filter.RecordedBefore != nil {
		db = db.Where("recorded_at < ?", *filter.RecordedBefore)
	}
	return db
}

// ByFilter retrieves performance sessions based on filter criteria
func (r *PerformanceSessionRepositoryImpl) ByFilter(ctx context.Context, filter models.PerformanceSessionFilter, orderBy string, limit, offset int) ([]*models.PerformanceSession, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PerformanceSession{}), filter)

	if orderBy == "" {
		orderBy = "recorded_at DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var sessions []*models.PerformanceSession
	if err := query.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to find performance sessions by filter: %w", err)
	}
	return sessions, nil
}

// Count returns the number of performance sessions matching the filter
func (r *PerformanceSessionRepositoryImpl) Count(ctx context.Context, filter models.PerformanceSessionFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PerformanceSession{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count performance sessions: %w", err)
	}
	return count, nil
}

// Exists checks if any performance session matching the filter exists
func (r *PerformanceSessionRepositoryImpl) Exists(ctx context.Context, filter models.PerformanceSessionFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
