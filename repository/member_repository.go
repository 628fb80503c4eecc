package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/skillshot/sportai/models"
	"gorm.io/gorm"
)

// MemberRepositoryImpl implements MemberRepository interface
type MemberRepositoryImpl struct {
	*BaseRepository[models.Member, models.MemberFilter]
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &MemberRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Member, models.MemberFilter](db),
	}
}

// ByUUID retrieves a member by UUID
func (r *MemberRepositoryImpl) ByUUID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	db := r.getDB(ctx)

	var member models.Member
	err := db.Where("uuid = ?", id).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find member by UUID: %w", err)
	}

	return &member, nil
}

// ByMemberNumber retrieves a member by their unique member number
func (r *MemberRepositoryImpl) ByMemberNumber(ctx context.Context, memberNumber string) (*models.Member, error) {
	db := r.getDB(ctx)

	var member models.Member
	err := db.Where("member_number = ?", memberNumber).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find member by member number: %w", err)
	}

	return &member, nil
}

// AdjustCredits atomically adds delta to a member's credits balance.
// The balance is never allowed to go negative.
func (r *MemberRepositoryImpl) AdjustCredits(ctx context.Context, memberID uint, delta float64) error {
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

	result := db.Model(&models.Member{}).
		Where("id = ? AND credits_balance + ? >= 0", memberID, delta).
		UpdateColumn("credits_balance", gorm.Expr("credits_balance + ?", delta))
	if result.Error != nil {
		err = fmt.Errorf("failed to adjust member credits: %w", result.Error)
		return err
	}
	if result.RowsAffected == 0 {
		err = fmt.Errorf("insufficient credits for member %d", memberID)
		return err
	}

	return nil
}

// TierCounts returns the number of active members per tier
func (r *MemberRepositoryImpl) TierCounts(ctx context.Context) (map[string]int64, error) {
	db := r.getDB(ctx)

	type row struct {
		Tier  string `json:"tier"`
		Count int64  `json:"count"`
	}
	var rows []row
	err := db.Raw(`
		SELECT tier, COUNT(*) AS count
		FROM members
		WHERE status = ?
		GROUP BY tier
	`, models.MemberStatusActive).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count members by tier: %w", err)
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Tier] = r.Count
	}
	return out, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *MemberRepositoryImpl) applyFilter(db *gorm.DB, filter models.MemberFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.MemberNumber != nil {
		db = db.Where("member_number = ?", *filter.MemberNumber)
	}
	if filter.Tier != nil {
		db = db.Where("tier = ?", *filter.Tier)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.HouseholdID != nil {
		db = db.Where("household_id = ?", *filter.HouseholdID)
	}
	if filter.JoinedAfter != nil {
		db = db.Where("join_date >= ?", filter.JoinedAfter.Format("2006-01-02"))
	}
	if filter.JoinedBefore != nil {
		db = db.Where("join_date <= ?", filter.JoinedBefore.Format("2006-01-02"))
	}
	return db
}

// ByFilter retrieves members based on filter criteria
func (r *MemberRepositoryImpl) ByFilter(ctx context.Context, filter models.MemberFilter, orderBy string, limit, offset int) ([]*models.Member, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Member{}), filter)

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

	var members []*models.Member
	if err := query.Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to find members by filter: %w", err)
	}
	return members, nil
}

// Count returns the number of members matching the filter
func (r *MemberRepositoryImpl) Count(ctx context.Context, filter models.MemberFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Member{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

// Exists checks if any member matching the filter exists
func (r *MemberRepositoryImpl) Exists(ctx context.Context, filter models.MemberFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
