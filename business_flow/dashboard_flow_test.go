package businessflow

import (
	"context"
	"testing"

	"github.com/skillshot/sportai/config"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardSnapshotAggregatesCounts(t *testing.T) {
	assets := &fakeAssetRepo{}
	assets.items = []*models.Asset{
		{ID: 1, Name: "Court 1", IsActive: utils.ToPtr(true)},
		{ID: 2, Name: "Court 2", IsActive: utils.ToPtr(true)},
	}

	members := &fakeMemberRepo{}
	members.items = []*models.Member{
		{ID: 1, MemberNumber: "M-00000001", Tier: models.MemberTierBasic, Status: models.MemberStatusActive},
		{ID: 2, MemberNumber: "M-00000002", Tier: models.MemberTierBasic, Status: models.MemberStatusActive},
		{ID: 3, MemberNumber: "M-00000003", Tier: models.MemberTierPremium, Status: models.MemberStatusLapsed},
	}

	ledger := &fakeTransactionRepo{}
	ledger.items = []*models.Transaction{
		{ID: 1, Type: models.TransactionTypeBookingCharge, Status: models.TransactionStatusCompleted, Amount: 500},
		{ID: 2, Type: models.TransactionTypeBookingCharge, Status: models.TransactionStatusCompleted, Amount: 250},
		{ID: 3, Type: models.TransactionTypeSponsorshipFee, Status: models.TransactionStatusCompleted, Amount: 10000},
	}

	flow := NewDashboardFlow(
		assets,
		&fakeBookingRepo{},
		members,
		&fakeSponsorRepo{},
		&fakeInventoryRepo{},
		&fakeContractRepo{},
		ledger,
		nil,
		&config.CacheConfig{},
	)

	resp, err := flow.Snapshot(context.Background())
	require.NoError(t, err)

	assert.False(t, resp.FromCache)
	assert.Equal(t, int64(2), resp.Snapshot.ActiveAssets)
	assert.Equal(t, int64(3), resp.Snapshot.ActiveMembers)
	assert.InDelta(t, 750.0, resp.Snapshot.RevenueMonth, 1e-6)
	assert.Equal(t, int64(2), resp.Snapshot.MembersByTier[models.MemberTierBasic])
	assert.Equal(t, int64(1), resp.Snapshot.MembersByTier[models.MemberTierPremium])
	assert.NotEmpty(t, resp.Snapshot.GeneratedAt)
}
