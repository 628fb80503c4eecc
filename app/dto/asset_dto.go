package dto

// CreateAssetRequest registers a bookable asset
type CreateAssetRequest struct {
	SiteID             string   `json:"site_id" validate:"required,min=1,max=64"`
	Type               string   `json:"asset_type" validate:"required,min=2,max=64"`
	Name               string   `json:"name" validate:"required,min=2,max=255"`
	Capacity           *int     `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	SquareFt           *int     `json:"square_footage,omitempty" validate:"omitempty,gt=0"`
	HourlyRatePrime    *float64 `json:"hourly_rate_prime,omitempty" validate:"omitempty,gt=0"`
	HourlyRateStandard *float64 `json:"hourly_rate_standard,omitempty" validate:"omitempty,gt=0"`
	HourlyRateOffPeak  *float64 `json:"hourly_rate_offpeak,omitempty" validate:"omitempty,gt=0"`
	Amenities          []string `json:"amenities,omitempty" validate:"omitempty,dive,min=1"`
}

// AssetDTO is the asset representation in API responses
type AssetDTO struct {
	ID                 uint     `json:"id"`
	UUID               string   `json:"uuid"`
	SiteID             string   `json:"site_id"`
	Type               string   `json:"asset_type"`
	Name               string   `json:"name"`
	Capacity           *int     `json:"capacity,omitempty"`
	SquareFt           *int     `json:"square_footage,omitempty"`
	HourlyRatePrime    *float64 `json:"hourly_rate_prime,omitempty"`
	HourlyRateStandard *float64 `json:"hourly_rate_standard,omitempty"`
	HourlyRateOffPeak  *float64 `json:"hourly_rate_offpeak,omitempty"`
	Amenities          []string `json:"amenities,omitempty"`
	IsActive           *bool    `json:"is_active"`
	CreatedAt          string   `json:"created_at"`
}

// AssetResponse wraps a single asset
type AssetResponse struct {
	Message string   `json:"message"`
	Asset   AssetDTO `json:"asset"`
}

// ListAssetsResponse lists assets
type ListAssetsResponse struct {
	Message string     `json:"message"`
	Items   []AssetDTO `json:"items"`
}
