package businessflow

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type membershipFixture struct {
	flow    MembershipFlow
	members *fakeMemberRepo
	ledger  *fakeTransactionRepo
	audit   *fakeAuditRepo
}

func newMembershipFixture() *membershipFixture {
	f := &membershipFixture{
		members: &fakeMemberRepo{},
		ledger:  &fakeTransactionRepo{},
		audit:   &fakeAuditRepo{},
	}
	f.flow = NewMembershipFlow(f.members, f.ledger, f.audit, nil)
	return f
}

func TestCreateMemberGeneratesMemberNumber(t *testing.T) {
	f := newMembershipFixture()

	resp, err := f.flow.CreateMember(context.Background(), &dto.CreateMemberRequest{
		Name: "Casey Morgan",
		Tier: models.MemberTierPlus,
	}, nil, nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.Member.MemberNumber, "M-"))
	assert.Len(t, resp.Member.MemberNumber, 10)
	assert.Equal(t, models.MemberStatusActive, resp.Member.Status)
	assert.Equal(t, models.MemberTierPlus, resp.Member.Tier)
	require.Len(t, f.members.items, 1)

	// enrollment is recorded in the audit trail
	require.Len(t, f.audit.items, 1)
	assert.Equal(t, models.AuditActionMemberUpdated, f.audit.items[0].Action)
}

func TestGetMemberInvalidUUID(t *testing.T) {
	f := newMembershipFixture()

	_, err := f.flow.GetMember(context.Background(), "not-a-uuid")

	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "MEMBER_UUID_INVALID", be.Code)
}

func TestGetMemberNotFound(t *testing.T) {
	f := newMembershipFixture()

	_, err := f.flow.GetMember(context.Background(), uuid.New().String())

	assert.True(t, IsMemberNotFound(err))
}

func TestUpdateMemberAppliesPartialUpdate(t *testing.T) {
	f := newMembershipFixture()
	member := &models.Member{
		ID:           1,
		UUID:         uuid.New(),
		MemberNumber: "M-AB12CD34",
		Name:         "Casey Morgan",
		Tier:         models.MemberTierBasic,
		Status:       models.MemberStatusActive,
		JoinDate:     utils.UTCNow(),
	}
	f.members.items = []*models.Member{member}

	resp, err := f.flow.UpdateMember(context.Background(), member.UUID.String(), &dto.UpdateMemberRequest{
		Tier:   utils.ToPtr(models.MemberTierPremium),
		Status: utils.ToPtr(models.MemberStatusLapsed),
	}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, models.MemberTierPremium, resp.Member.Tier)
	assert.Equal(t, models.MemberStatusLapsed, resp.Member.Status)
	// untouched fields survive the partial update
	assert.Equal(t, "Casey Morgan", resp.Member.Name)
	assert.Equal(t, "M-AB12CD34", resp.Member.MemberNumber)
}

func TestListMembersPaginationDefaults(t *testing.T) {
	f := newMembershipFixture()

	resp, err := f.flow.ListMembers(context.Background(), &dto.ListMembersRequest{Page: -2, PageSize: 1000})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 20, resp.Pagination.PageSize)
}

func TestAdjustCreditsRejectsZeroDelta(t *testing.T) {
	f := newMembershipFixture()
	member := &models.Member{ID: 1, UUID: uuid.New(), MemberNumber: "M-AB12CD34", Status: models.MemberStatusActive, JoinDate: utils.UTCNow()}
	f.members.items = []*models.Member{member}

	_, err := f.flow.AdjustCredits(context.Background(), member.UUID.String(), &dto.AdjustCreditsRequest{
		Delta:  0,
		Reason: "no-op",
	}, nil, nil)

	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "MEMBER_CREDITS_DELTA_ZERO", be.Code)
}

func TestAdjustCreditsRejectsArchivedMember(t *testing.T) {
	f := newMembershipFixture()
	member := &models.Member{ID: 1, UUID: uuid.New(), MemberNumber: "M-AB12CD34", Status: models.MemberStatusArchived, JoinDate: utils.UTCNow()}
	f.members.items = []*models.Member{member}

	_, err := f.flow.AdjustCredits(context.Background(), member.UUID.String(), &dto.AdjustCreditsRequest{
		Delta:  50,
		Reason: "loyalty grant",
	}, nil, nil)

	assert.ErrorIs(t, err, ErrMemberArchived)
}

func TestMembershipOverviewAggregatesTiersAndCredits(t *testing.T) {
	f := newMembershipFixture()
	f.members.items = []*models.Member{
		{ID: 1, UUID: uuid.New(), MemberNumber: "M-11111111", Tier: models.MemberTierBasic, Status: models.MemberStatusActive, JoinDate: utils.UTCNow()},
		{ID: 2, UUID: uuid.New(), MemberNumber: "M-22222222", Tier: models.MemberTierBasic, Status: models.MemberStatusActive, JoinDate: utils.UTCNow()},
		{ID: 3, UUID: uuid.New(), MemberNumber: "M-33333333", Tier: models.MemberTierPremium, Status: models.MemberStatusActive, JoinDate: utils.UTCNow()},
	}
	f.ledger.items = []*models.Transaction{
		{ID: 1, Type: models.TransactionTypeCreditsGrant, Status: models.TransactionStatusCompleted, Amount: 200},
		{ID: 2, Type: models.TransactionTypeCreditsRedemption, Status: models.TransactionStatusCompleted, Amount: -75},
		{ID: 3, Type: models.TransactionTypeBookingCharge, Status: models.TransactionStatusCompleted, Amount: 500},
	}

	resp, err := f.flow.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.TotalMembers)
	assert.Equal(t, int64(3), resp.ActiveMembers)
	assert.Equal(t, int64(2), resp.MembersByTier[models.MemberTierBasic])
	assert.Equal(t, int64(1), resp.MembersByTier[models.MemberTierPremium])
	assert.InDelta(t, 200, resp.CreditsGranted, 1e-6)
	assert.InDelta(t, -75, resp.CreditsRedeemed, 1e-6)
	assert.NotEmpty(t, resp.GeneratedAt)
}
