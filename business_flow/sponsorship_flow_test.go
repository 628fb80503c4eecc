package businessflow

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sponsorshipFixture struct {
	flow      SponsorshipFlow
	sponsors  *fakeSponsorRepo
	inventory *fakeInventoryRepo
	contracts *fakeContractRepo
	ledger    *fakeTransactionRepo
	audit     *fakeAuditRepo
}

func newSponsorshipFixture() *sponsorshipFixture {
	f := &sponsorshipFixture{
		sponsors:  &fakeSponsorRepo{},
		inventory: &fakeInventoryRepo{},
		contracts: &fakeContractRepo{},
		ledger:    &fakeTransactionRepo{},
		audit:     &fakeAuditRepo{},
	}
	f.flow = NewSponsorshipFlow(f.sponsors, f.inventory, f.contracts, f.ledger, f.audit, nil)
	return f
}

func TestBundleDiscountFor(t *testing.T) {
	tests := []struct {
		name      string
		itemCount int
		listValue float64
		want      float64
	}{
		{"single small item", 1, 10000, 0},
		{"two items below value threshold", 2, 99999.99, 0},
		{"three items", 3, 10000, 10},
		{"four items", 4, 50000, 10},
		{"five items", 5, 10000, 15},
		{"value threshold beats small count", 2, 100000, 8},
		{"count discount beats value discount", 3, 250000, 10},
		{"large bundle keeps the top rate", 6, 500000, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, bundleDiscountFor(tt.itemCount, tt.listValue), 1e-9)
		})
	}
}

func TestCreateSponsorStartsAsProspect(t *testing.T) {
	f := newSponsorshipFixture()

	resp, err := f.flow.CreateSponsor(context.Background(), &dto.CreateSponsorRequest{
		Name:     "Northside Dental",
		Industry: utils.ToPtr("healthcare"),
	})
	require.NoError(t, err)

	assert.Equal(t, models.SponsorStatusProspect, resp.Sponsor.Status)
	assert.Equal(t, "Northside Dental", resp.Sponsor.Name)
	require.Len(t, f.sponsors.items, 1)
}

func TestListSponsorsFiltersByStatus(t *testing.T) {
	f := newSponsorshipFixture()
	f.sponsors.items = []*models.Sponsor{
		{ID: 1, UUID: uuid.New(), Name: "Active Co", Status: models.SponsorStatusActive},
		{ID: 2, UUID: uuid.New(), Name: "Prospect Co", Status: models.SponsorStatusProspect},
	}

	resp, err := f.flow.ListSponsors(context.Background(), utils.ToPtr(models.SponsorStatusActive))
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Active Co", resp.Items[0].Name)

	all, err := f.flow.ListSponsors(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
}

func TestListInventoryAvailableOnly(t *testing.T) {
	f := newSponsorshipFixture()
	f.inventory.items = []*models.SponsorshipAsset{
		{ID: 1, UUID: uuid.New(), Name: "Field Naming Rights", Status: models.SponsorshipAssetAvailable},
		{ID: 2, UUID: uuid.New(), Name: "Scoreboard Signage", Status: models.SponsorshipAssetSold},
	}

	resp, err := f.flow.ListInventory(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Field Naming Rights", resp.Items[0].Name)

	all, err := f.flow.ListInventory(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
}

func TestProposeBundleRejectsEmptySelection(t *testing.T) {
	f := newSponsorshipFixture()

	_, err := f.flow.ProposeBundle(context.Background(), &dto.ProposeBundleRequest{
		SponsorUUID: uuid.New().String(),
		Title:       "Empty bundle",
	}, nil, nil)

	assert.ErrorIs(t, err, ErrBundleEmptySelection)
}

func TestProposeBundleUnknownSponsor(t *testing.T) {
	f := newSponsorshipFixture()

	_, err := f.flow.ProposeBundle(context.Background(), &dto.ProposeBundleRequest{
		SponsorUUID: uuid.New().String(),
		Title:       "Spring package",
		AssetIDs:    []uint{1},
	}, nil, nil)

	assert.True(t, IsSponsorNotFound(err))
}

func TestProposeBundleInconsistentDates(t *testing.T) {
	f := newSponsorshipFixture()
	sponsor := &models.Sponsor{ID: 1, UUID: uuid.New(), Name: "Dates Co", Status: models.SponsorStatusProspect}
	f.sponsors.items = []*models.Sponsor{sponsor}

	_, err := f.flow.ProposeBundle(context.Background(), &dto.ProposeBundleRequest{
		SponsorUUID: sponsor.UUID.String(),
		Title:       "Backwards dates",
		AssetIDs:    []uint{1},
		StartDate:   utils.ToPtr("2026-12-01"),
		EndDate:     utils.ToPtr("2026-01-01"),
	}, nil, nil)

	assert.ErrorIs(t, err, ErrContractDatesInconsistent)
}

func TestProposeBundleMissingInventory(t *testing.T) {
	f := newSponsorshipFixture()
	sponsor := &models.Sponsor{ID: 1, UUID: uuid.New(), Name: "Missing Co", Status: models.SponsorStatusProspect}
	f.sponsors.items = []*models.Sponsor{sponsor}
	f.inventory.items = []*models.SponsorshipAsset{
		{ID: 1, Name: "Dasher Board", Status: models.SponsorshipAssetAvailable, AnnualValue: 5000},
	}

	_, err := f.flow.ProposeBundle(context.Background(), &dto.ProposeBundleRequest{
		SponsorUUID: sponsor.UUID.String(),
		Title:       "Bundle with a ghost item",
		AssetIDs:    []uint{1, 99},
	}, nil, nil)

	assert.ErrorIs(t, err, ErrInventoryNotFound)
}

func TestProposeBundleRejectsReservedInventory(t *testing.T) {
	f := newSponsorshipFixture()
	sponsor := &models.Sponsor{ID: 1, UUID: uuid.New(), Name: "Reserved Co", Status: models.SponsorStatusProspect}
	f.sponsors.items = []*models.Sponsor{sponsor}
	f.inventory.items = []*models.SponsorshipAsset{
		{ID: 1, Name: "Entry Arch", Status: models.SponsorshipAssetReserved, AnnualValue: 12000},
	}

	_, err := f.flow.ProposeBundle(context.Background(), &dto.ProposeBundleRequest{
		SponsorUUID: sponsor.UUID.String(),
		Title:       "Contested bundle",
		AssetIDs:    []uint{1},
	}, nil, nil)

	assert.True(t, IsInventoryUnavailable(err))
}

func TestSignContractInvalidUUID(t *testing.T) {
	f := newSponsorshipFixture()

	_, err := f.flow.SignContract(context.Background(), "not-a-uuid", nil, nil)

	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "CONTRACT_UUID_INVALID", be.Code)
}

func TestSignContractNotFound(t *testing.T) {
	f := newSponsorshipFixture()

	_, err := f.flow.SignContract(context.Background(), uuid.New().String(), nil, nil)

	assert.True(t, IsContractNotFound(err))
}

func TestSignContractAlreadySigned(t *testing.T) {
	f := newSponsorshipFixture()
	contract := &models.Contract{ID: 1, UUID: uuid.New(), SponsorID: 1, Status: models.ContractStatusSigned}
	f.contracts.items = []*models.Contract{contract}

	_, err := f.flow.SignContract(context.Background(), contract.UUID.String(), nil, nil)

	assert.True(t, IsContractAlreadySigned(err))
}

func TestSignContractDeclinedIsNotSignable(t *testing.T) {
	f := newSponsorshipFixture()
	contract := &models.Contract{ID: 1, UUID: uuid.New(), SponsorID: 1, Status: models.ContractStatusDeclined}
	f.contracts.items = []*models.Contract{contract}

	_, err := f.flow.SignContract(context.Background(), contract.UUID.String(), nil, nil)

	assert.True(t, IsContractNotProposed(err))
}

func TestListContractsUnknownSponsor(t *testing.T) {
	f := newSponsorshipFixture()

	_, err := f.flow.ListContracts(context.Background(), utils.ToPtr(uuid.New().String()))

	assert.True(t, IsSponsorNotFound(err))
}

func TestListContractsBySponsor(t *testing.T) {
	f := newSponsorshipFixture()
	sponsor := &models.Sponsor{ID: 7, UUID: uuid.New(), Name: "Scoped Co", Status: models.SponsorStatusActive}
	f.sponsors.items = []*models.Sponsor{sponsor}
	f.contracts.items = []*models.Contract{
		{ID: 1, UUID: uuid.New(), SponsorID: 7, Title: "Mine", Status: models.ContractStatusProposed},
		{ID: 2, UUID: uuid.New(), SponsorID: 8, Title: "Someone else's", Status: models.ContractStatusProposed},
	}

	resp, err := f.flow.ListContracts(context.Background(), utils.ToPtr(sponsor.UUID.String()))
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Mine", resp.Items[0].Title)
}
