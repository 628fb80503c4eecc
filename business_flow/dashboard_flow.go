package businessflow

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/config"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/repository"
	"github.com/skillshot/sportai/utils"
)

// DashboardFlow builds the cached operational overview
type DashboardFlow interface {
	Snapshot(ctx context.Context) (*dto.DashboardResponse, error)
}

// DashboardFlowImpl implements the dashboard business flow
type DashboardFlowImpl struct {
	assetRepo       repository.AssetRepository
	bookingRepo     repository.BookingRepository
	memberRepo      repository.MemberRepository
	sponsorRepo     repository.SponsorRepository
	inventoryRepo   repository.SponsorshipAssetRepository
	contractRepo    repository.ContractRepository
	transactionRepo repository.TransactionRepository
	rc              *redis.Client
	cacheConfig     *config.CacheConfig
}

// NewDashboardFlow creates a new dashboard flow instance
func NewDashboardFlow(
	assetRepo repository.AssetRepository,
	bookingRepo repository.BookingRepository,
	memberRepo repository.MemberRepository,
	sponsorRepo repository.SponsorRepository,
	inventoryRepo repository.SponsorshipAssetRepository,
	contractRepo repository.ContractRepository,
	transactionRepo repository.TransactionRepository,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
) DashboardFlow {
	return &DashboardFlowImpl{
		assetRepo:       assetRepo,
		bookingRepo:     bookingRepo,
		memberRepo:      memberRepo,
		sponsorRepo:     sponsorRepo,
		inventoryRepo:   inventoryRepo,
		contractRepo:    contractRepo,
		transactionRepo: transactionRepo,
		rc:              rc,
		cacheConfig:     cacheConfig,
	}
}

// Snapshot returns the operational overview, served from redis when fresh
func (f *DashboardFlowImpl) Snapshot(ctx context.Context) (*dto.DashboardResponse, error) {
	if f.rc != nil {
		cacheKey := redisKey(*f.cacheConfig, utils.DashboardSnapshotCacheKey)
		if bs, err := f.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
			var snapshot dto.DashboardSnapshot
			if err := json.Unmarshal(bs, &snapshot); err == nil {
				return &dto.DashboardResponse{
					Message:   "Dashboard retrieved successfully",
					FromCache: true,
					Snapshot:  snapshot,
				}, nil
			}
		}
	}

	snapshot, err := f.buildSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if f.rc != nil {
		if bs, err := json.Marshal(snapshot); err == nil {
			cacheKey := redisKey(*f.cacheConfig, utils.DashboardSnapshotCacheKey)
			_ = f.rc.Set(ctx, cacheKey, bs, utils.DashboardSnapshotCacheTTL).Err()
		}
	}

	return &dto.DashboardResponse{
		Message:   "Dashboard retrieved successfully",
		FromCache: false,
		Snapshot:  *snapshot,
	}, nil
}

func (f *DashboardFlowImpl) buildSnapshot(ctx context.Context) (*dto.DashboardSnapshot, error) {
	now := utils.UTCNow()
	today := now.Truncate(24 * time.Hour)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	activeAssets, err := f.assetRepo.Count(ctx, models.AssetFilter{IsActive: utils.ToPtr(true)})
	if err != nil {
		return nil, NewBusinessError("DASHBOARD_BUILD_FAILED", "Failed to count assets", err)
	}

	confirmed := models.BookingStatusConfirmed
	bookingsToday, err := f.bookingRepo.Count(ctx, models.BookingFilter{
		Status:   &confirmed,
		DateFrom: &today,
		DateTo:   &today,
	})
	if err != nil {
		return nil, NewBusinessError("DASHBOARD_BUILD_FAILED", "Failed to count bookings", err)
	}

	revenueMonth, err := f.transactionRepo.SumCompletedByType(ctx, models.TransactionTypeBookingCharge, monthStart, now)
	if err != nil {
		return nil, NewBusinessError("DASHBOARD_BUILD_FAILED", "Failed to sum monthly revenue", err)
	}

	activeStatus := models.MemberStatusActive
	activeMembers, err := f.memberRepo.Count(ctx, models.MemberFilter{Status: &activeStatus})
	if err != nil {
		return nil, NewBusinessError("DASHBOARD_BUILD_FAILED", "Failed to count members", err)
	}

	tierCounts, err := f.memberRepo.TierCounts(ctx)
	if err != nil {
		return nil, NewBusinessError("DASHBOARD_BUILD_FAILED", "Failed to count member tiers", err)
	}

	sponsorActive := models.SponsorStatusActive
	activeSponsors, err := f.sponsorRepo.Count(ctx, models.SponsorFilter{Status: &sponsorActive})
	if err != nil {
		return nil, NewBusinessError("DASHBOARD_BUILD_FAILED", "Failed to count sponsors", err)
	}

	proposed := models.ContractStatusProposed
	openContracts, err := f.contractRepo.Count(ctx, models.ContractFilter{Status: &proposed})
	if err != nil {
		return nil, NewBusinessError("DASHBOARD_BUILD_FAILED", "Failed to count contracts", err)
	}

	available := models.SponsorshipAssetAvailable
	availableInventory, err := f.inventoryRepo.Count(ctx, models.SponsorshipAssetFilter{Status: &available})
	if err != nil {
		return nil, NewBusinessError("DASHBOARD_BUILD_FAILED", "Failed to count inventory", err)
	}

	return &dto.DashboardSnapshot{
		GeneratedAt:        now.Format(time.RFC3339),
		ActiveAssets:       activeAssets,
		BookingsToday:      bookingsToday,
		RevenueMonth:       revenueMonth,
		ActiveMembers:      activeMembers,
		MembersByTier:      tierCounts,
		ActiveSponsors:     activeSponsors,
		OpenContracts:      openContracts,
		AvailableInventory: availableInventory,
	}, nil
}
