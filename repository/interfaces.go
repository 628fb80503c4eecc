// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/skillshot/sportai/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// AssetRepository defines operations for bookable facility assets
type AssetRepository interface {
	Repository[models.Asset, models.AssetFilter]
	ByUUID(ctx context.Context, uuid uuid.UUID) (*models.Asset, error)
	ListActive(ctx context.Context) ([]*models.Asset, error)
	ListBySite(ctx context.Context, siteID string) ([]*models.Asset, error)
}

// BookingRepository defines operations for bookings and booking aggregates
type BookingRepository interface {
	Repository[models.Booking, models.BookingFilter]
	ByUUID(ctx context.Context, uuid uuid.UUID) (*models.Booking, error)
	ListByAssetAndDate(ctx context.Context, assetID uint, date time.Time) ([]*models.Booking, error)
	HasConflict(ctx context.Context, assetID uint, date time.Time, timeSlot string) (bool, error)
	RevenueBySegment(ctx context.Context, from, to time.Time) ([]*SegmentRevenueRow, error)
	UtilizationByAsset(ctx context.Context, from, to time.Time) ([]*AssetUtilizationRow, error)
}

// SegmentRevenueRow is a revenue aggregate grouped by customer segment
type SegmentRevenueRow struct {
	CustomerSegment string  `json:"customer_segment"`
	BookingCount    int64   `json:"booking_count"`
	TotalHours      float64 `json:"total_hours"`
	TotalRevenue    float64 `json:"total_revenue"`
}

// AssetUtilizationRow is a booked-hours aggregate grouped by asset
type AssetUtilizationRow struct {
	AssetID      uint    `json:"asset_id"`
	AssetName    string  `json:"asset_name"`
	AssetType    string  `json:"asset_type"`
	BookingCount int64   `json:"booking_count"`
	BookedHours  float64 `json:"booked_hours"`
	TotalRevenue float64 `json:"total_revenue"`
}

// MemberRepository defines operations for members
type MemberRepository interface {
	Repository[models.Member, models.MemberFilter]
	ByUUID(ctx context.Context, uuid uuid.UUID) (*models.Member, error)
	ByMemberNumber(ctx context.Context, memberNumber string) (*models.Member, error)
	AdjustCredits(ctx context.Context, memberID uint, delta float64) error
	TierCounts(ctx context.Context) (map[string]int64, error)
}

// SponsorRepository defines operations for sponsors
type SponsorRepository interface {
	Repository[models.Sponsor, models.SponsorFilter]
	ByUUID(ctx context.Context, uuid uuid.UUID) (*models.Sponsor, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Sponsor, error)
}

// SponsorshipAssetRepository defines operations for sponsorship inventory
type SponsorshipAssetRepository interface {
	Repository[models.SponsorshipAsset, models.SponsorshipAssetFilter]
	ListAvailable(ctx context.Context) ([]*models.SponsorshipAsset, error)
	ListByIDs(ctx context.Context, ids []uint) ([]*models.SponsorshipAsset, error)
	MarkStatus(ctx context.Context, ids []uint, status string, sponsorID *uint) error
}

// ContractRepository defines operations for sponsorship contracts
type ContractRepository interface {
	Repository[models.Contract, models.ContractFilter]
	ByUUID(ctx context.Context, uuid uuid.UUID) (*models.Contract, error)
	ListBySponsor(ctx context.Context, sponsorID uint) ([]*models.Contract, error)
}

// TransactionRepository defines operations for the financial ledger
type TransactionRepository interface {
	Repository[models.Transaction, models.TransactionFilter]
	ByCorrelationID(ctx context.Context, correlationID uuid.UUID) ([]*models.Transaction, error)
	SumCompletedByType(ctx context.Context, txType models.TransactionType, from, to time.Time) (float64, error)
}

// AuditLogRepository defines operations for audit logs
type AuditLogRepository interface {
	Repository[models.AuditLog, models.AuditLogFilter]
	ListByStaff(ctx context.Context, staffID uint, limit, offset int) ([]*models.AuditLog, error)
	ListByAction(ctx context.Context, action string, limit, offset int) ([]*models.AuditLog, error)
	ListFailedActions(ctx context.Context, limit, offset int) ([]*models.AuditLog, error)
	ListGovernanceEvents(ctx context.Context, limit, offset int) ([]*models.AuditLog, error)
}

// StaffRepository defines operations for staff accounts
type StaffRepository interface {
	Repository[models.Staff, models.StaffFilter]
	ByUUID(ctx context.Context, uuid uuid.UUID) (*models.Staff, error)
	ByUsername(ctx context.Context, username string) (*models.Staff, error)
	UpdatePassword(ctx context.Context, staffID uint, passwordHash string) error
	UpdateLastLogin(ctx context.Context, staffID uint, at time.Time) error
}

// StaffSessionRepository defines operations for staff sessions
type StaffSessionRepository interface {
	Repository[models.StaffSession, models.StaffSessionFilter]
	BySessionToken(ctx context.Context, token string) (*models.StaffSession, error)
	ByRefreshToken(ctx context.Context, token string) (*models.StaffSession, error)
	ListActiveSessionsByStaff(ctx context.Context, staffID uint) ([]*models.StaffSession, error)
	ExpireSession(ctx context.Context, sessionID uint) error
	ExpireAllStaffSessions(ctx context.Context, staffID uint) error
	CleanupExpiredSessions(ctx context.Context) error
}

// PodConfigRepository defines operations for training pod configurations
type PodConfigRepository interface {
	Repository[models.PodConfig, models.PodConfigFilter]
	ByUUID(ctx context.Context, uuid uuid.UUID) (*models.PodConfig, error)
	ByAssetID(ctx context.Context, assetID uint) (*models.PodConfig, error)
}

// PerformanceSessionRepository defines operations for captured athlete measurements
type PerformanceSessionRepository interface {
	Repository[models.PerformanceSession, models.PerformanceSessionFilter]
	Leaderboard(ctx context.Context, metric string, from, to time.Time, limit int) ([]*LeaderboardRow, error)
}

// LeaderboardRow is a best-value aggregate grouped by athlete for one metric
type LeaderboardRow struct {
	AthleteName  string  `json:"athlete_name"`
	BestValue    float64 `json:"best_value"`
	Unit         string  `json:"unit"`
	SessionCount int64   `json:"session_count"`
}

// PricingRuleRepository defines operations for versioned pricing documents
type PricingRuleRepository interface {
	Repository[models.PricingRule, models.PricingRuleFilter]
	LatestByKind(ctx context.Context, kind string) (*models.PricingRule, error)
	HistoryByKind(ctx context.Context, kind string, limit, offset int) ([]*models.PricingRule, error)
	NextVersion(ctx context.Context, kind string) (int, error)
}
