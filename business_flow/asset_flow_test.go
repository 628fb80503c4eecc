package businessflow

import (
	"context"
	"testing"

	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAssetDefaultsToActive(t *testing.T) {
	repo := &fakeAssetRepo{}
	flow := NewAssetFlow(repo)

	resp, err := flow.CreateAsset(context.Background(), &dto.CreateAssetRequest{
		SiteID:   "main",
		Type:     models.AssetTypeGolfBay,
		Name:     "Golf Bay 3",
		Capacity: utils.ToPtr(6),
	})
	require.NoError(t, err)

	assert.Equal(t, "Golf Bay 3", resp.Asset.Name)
	assert.True(t, utils.IsTrue(resp.Asset.IsActive))
	require.Len(t, repo.items, 1)
}

func TestListAssetsReturnsAll(t *testing.T) {
	repo := &fakeAssetRepo{}
	repo.items = []*models.Asset{
		{ID: 1, SiteID: "main", Type: models.AssetTypeCourt, Name: "Court 1", IsActive: utils.ToPtr(true)},
		{ID: 2, SiteID: "annex", Type: models.AssetTypeSuite, Name: "Suite A", IsActive: utils.ToPtr(false)},
	}
	flow := NewAssetFlow(repo)

	resp, err := flow.ListAssets(context.Background(), nil, false)
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
}
