package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/utils"
	"gorm.io/gorm"
)

// StaffSessionRepositoryImpl implements StaffSessionRepository interface
type StaffSessionRepositoryImpl struct {
	*BaseRepository[models.StaffSession, models.StaffSessionFilter]
}

// NewStaffSessionRepository creates a new staff session repository
func NewStaffSessionRepository(db *gorm.DB) StaffSessionRepository {
	return &StaffSessionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.StaffSession, models.StaffSessionFilter](db),
	}
}

// BySessionToken retrieves an active, unexpired session by session token
func (r *StaffSessionRepositoryImpl) BySessionToken(ctx context.Context, token string) (*models.StaffSession, error) {
	db := r.getDB(ctx)

	var session models.StaffSession
	err := db.Where("session_token = ? AND is_active = ? AND expires_at > ?",
		token, true, time.Now()).
		Preload("Staff").
		First(&session).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find session by token: %w", err)
	}

	return &session, nil
}

// ByRefreshToken retrieves an active, unexpired session by refresh token
func (r *StaffSessionRepositoryImpl) ByRefreshToken(ctx context.Context, token string) (*models.StaffSession, error) {
	db := r.getDB(ctx)

	var session models.StaffSession
	err := db.Where("refresh_token = ? AND is_active = ? AND expires_at > ?",
		token, true, time.Now()).
		Preload("Staff").
		First(&session).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find session by refresh token: %w", err)
	}

	return &session, nil
}

// ListActiveSessionsByStaff retrieves all active sessions for a staff account
func (r *StaffSessionRepositoryImpl) ListActiveSessionsByStaff(ctx context.Context, staffID uint) ([]*models.StaffSession, error) {
	filter := models.StaffSessionFilter{
		StaffID:  &staffID,
		IsActive: utils.ToPtr(true),
	}

	sessions, err := r.ByFilter(ctx, filter, "created_at DESC", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list active sessions by staff: %w", err)
	}

	// Filter out expired sessions
	var activeSessions []*models.StaffSession
	now := time.Now()
	for _, session := range sessions {
		if session.ExpiresAt.After(now) {
			activeSessions = append(activeSessions, session)
		}
	}

	return activeSessions, nil
}

// ExpireSession creates a new expired session record (insert-only approach)
func (r *StaffSessionRepositoryImpl) ExpireSession(ctx context.Context, sessionID uint) error {
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

	// Find the session to expire
	var session models.StaffSession
	err = db.Last(&session, sessionID).Error
	if err != nil {
		return fmt.Errorf("failed to find session to expire: %w", err)
	}

	// Create new expired session record
	expiredSession := models.StaffSession{
		CorrelationID:  session.CorrelationID,
		StaffID:        session.StaffID,
		SessionToken:   session.SessionToken + "_expired",
		RefreshToken:   nil, // Clear refresh token on expiration
		DeviceInfo:     session.DeviceInfo,
		IPAddress:      session.IPAddress,
		UserAgent:      session.UserAgent,
		IsActive:       utils.ToPtr(false),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: time.Now(),
		ExpiresAt:      time.Now(), // Mark as expired now
	}

	err = db.Create(&expiredSession).Error
	if err != nil {
		return fmt.Errorf("failed to create expired session record: %w", err)
	}

	return nil
}

// ExpireAllStaffSessions deactivates every session for a staff account
func (r *StaffSessionRepositoryImpl) ExpireAllStaffSessions(ctx context.Context, staffID uint) error {
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

	err = db.Model(&models.StaffSession{}).
		Where("staff_id = ? AND is_active = ?", staffID, true).
		Updates(map[string]any{
			"is_active":  false,
			"expires_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to expire staff sessions: %w", err)
	}

	return nil
}

// CleanupExpiredSessions deactivates sessions whose expiry has passed
func (r *StaffSessionRepositoryImpl) CleanupExpiredSessions(ctx context.Context) error {
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

	err = db.Model(&models.StaffSession{}).
		Where("is_active = ? AND expires_at <= ?", true, time.Now()).
		UpdateColumn("is_active", false).Error
	if err != nil {
		return fmt.Errorf("failed to cleanup expired sessions: %w", err)
	}

	return nil
}

// applyFilter applies filter conditions to the GORM query
func (r *StaffSessionRepositoryImpl) applyFilter(db *gorm.DB, filter models.StaffSessionFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.CorrelationID != nil {
		db = db.Where("correlation_id = ?", *filter.CorrelationID)
	}
	if filter.StaffID != nil {
		db = db.Where("staff_id = ?", *filter.StaffID)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IPAddress != nil {
		db = db.Where("ip_address = ?", *filter.IPAddress)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at <= ?", *filter.CreatedBefore)
	}
	if filter.ExpiresAfter != nil {
		db = db.Where("expires_at >= ?", *filter.ExpiresAfter)
	}
	if filter.ExpiresBefore != nil {
		db = db.Where("expires_at <= ?", *filter.ExpiresBefore)
	}
	if filter.AccessedAfter != nil {
		db = db.Where("last_accessed_at >= ?", *filter.AccessedAfter)
	}
	if filter.AccessedBefore != nil {
		db = db.Where("last_accessed_at <= ?", *filter.AccessedBefore)
	}
	if filter.IsExpired != nil && *filter.IsExpired {
		db = db.Where("expires_at <= ?", time.Now())
	}
	return db
}

// ByFilter retrieves sessions based on filter criteria
func (r *StaffSessionRepositoryImpl) ByFilter(ctx context.Context, filter models.StaffSessionFilter, orderBy string, limit, offset int) ([]*models.StaffSession, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.StaffSession{}), filter)

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

	var sessions []*models.StaffSession
	if err := query.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to find sessions by filter: %w", err)
	}
	return sessions, nil
}

// Count returns the number of sessions matching the filter
func (r *StaffSessionRepositoryImpl) Count(ctx context.Context, filter models.StaffSessionFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.StaffSession{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

// Exists checks if any session matching the filter exists
func (r *StaffSessionRepositoryImpl) Exists(ctx context.Context, filter models.StaffSessionFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
