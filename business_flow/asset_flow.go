package businessflow

import (
	"context"

	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/repository"
	"github.com/skillshot/sportai/utils"
)

// AssetFlow manages the bookable asset registry
type AssetFlow interface {
	CreateAsset(ctx context.Context, req *dto.CreateAssetRequest) (*dto.AssetResponse, error)
	ListAssets(ctx context.Context, siteID *string, activeOnly bool) (*dto.ListAssetsResponse, error)
}

// AssetFlowImpl implements the asset business flow
type AssetFlowImpl struct {
	assetRepo repository.AssetRepository
}

// NewAssetFlow creates a new asset flow instance
func NewAssetFlow(assetRepo repository.AssetRepository) AssetFlow {
	return &AssetFlowImpl{assetRepo: assetRepo}
}

// CreateAsset registers a bookable asset
func (f *AssetFlowImpl) CreateAsset(ctx context.Context, req *dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	asset := &models.Asset{
		SiteID:             req.SiteID,
		Type:               req.Type,
		Name:               req.Name,
		Capacity:           req.Capacity,
		SquareFt:           req.SquareFt,
		HourlyRatePrime:    req.HourlyRatePrime,
		HourlyRateStandard: req.HourlyRateStandard,
		HourlyRateOffPeak:  req.HourlyRateOffPeak,
		Amenities:          req.Amenities,
		IsActive:           utils.ToPtr(true),
		CreatedAt:          utils.UTCNow(),
		UpdatedAt:          utils.UTCNow(),
	}

	if err := f.assetRepo.Save(ctx, asset); err != nil {
		return nil, NewBusinessError("ASSET_CREATE_FAILED", "Failed to create asset", err)
	}

	return &dto.AssetResponse{
		Message: "Asset registered successfully",
		Asset:   ToAssetDTO(*asset),
	}, nil
}

// ListAssets lists assets, optionally scoped by site or activity
func (f *AssetFlowImpl) ListAssets(ctx context.Context, siteID *string, activeOnly bool) (*dto.ListAssetsResponse, error) {
	filter := models.AssetFilter{SiteID: siteID}
	if activeOnly {
		filter.IsActive = utils.ToPtr(true)
	}

	rows, err := f.assetRepo.ByFilter(ctx, filter, "site_id ASC, name ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("ASSET_LIST_FAILED", "Failed to list assets", err)
	}

	items := make([]dto.AssetDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, ToAssetDTO(*row))
	}

	return &dto.ListAssetsResponse{
		Message: "Assets retrieved successfully",
		Items:   items,
	}, nil
}
