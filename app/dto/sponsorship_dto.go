package dto

// CreateSponsorRequest represents the payload to register a sponsor
type CreateSponsorRequest struct {
	Name         string   `json:"name" validate:"required,min=2,max=255"`
	Industry     *string  `json:"industry,omitempty" validate:"omitempty,max=128"`
	ContactName  *string  `json:"contact_name,omitempty" validate:"omitempty,max=255"`
	ContactEmail *string  `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone *string  `json:"contact_phone,omitempty" validate:"omitempty,max=32"`
	Tier         *string  `json:"tier,omitempty" validate:"omitempty,max=32"`
	AnnualValue  *float64 `json:"annual_value,omitempty" validate:"omitempty,gte=0"`
	Objectives   []string `json:"objectives,omitempty" validate:"omitempty,dive,min=2"`
}

// SponsorDTO is the sponsor representation in API responses
type SponsorDTO struct {
	ID           uint     `json:"id"`
	UUID         string   `json:"uuid"`
	Name         string   `json:"name"`
	Industry     *string  `json:"industry,omitempty"`
	ContactName  *string  `json:"contact_name,omitempty"`
	ContactEmail *string  `json:"contact_email,omitempty"`
	ContactPhone *string  `json:"contact_phone,omitempty"`
	Status       string   `json:"status"`
	Tier         *string  `json:"tier,omitempty"`
	AnnualValue  *float64 `json:"annual_value,omitempty"`
	Objectives   []string `json:"objectives,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

// SponsorResponse wraps a single sponsor
type SponsorResponse struct {
	Message string     `json:"message"`
	Sponsor SponsorDTO `json:"sponsor"`
}

// ListSponsorsResponse lists sponsors
type ListSponsorsResponse struct {
	Message string       `json:"message"`
	Items   []SponsorDTO `json:"items"`
}

// CreateSponsorshipAssetRequest adds an inventory item to the sellable catalog
type CreateSponsorshipAssetRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	Category    string  `json:"category" validate:"required,min=2,max=64"`
	AnnualValue float64 `json:"annual_value" validate:"required,gt=0"`
	Impressions *int    `json:"impressions,omitempty" validate:"omitempty,gte=0"`
}

// SponsorshipAssetDTO is the inventory item representation in API responses
type SponsorshipAssetDTO struct {
	ID          uint    `json:"id"`
	UUID        string  `json:"uuid"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	AnnualValue float64 `json:"annual_value"`
	Impressions *int    `json:"impressions,omitempty"`
	Status      string  `json:"status"`
	SponsorID   *uint   `json:"sponsor_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// ListSponsorshipAssetsResponse lists sellable inventory
type ListSponsorshipAssetsResponse struct {
	Message string                `json:"message"`
	Items   []SponsorshipAssetDTO `json:"items"`
}

// ProposeBundleRequest builds a discounted contract from selected inventory
type ProposeBundleRequest struct {
	SponsorUUID string  `json:"sponsor_uuid" validate:"required,uuid4"`
	Title       string  `json:"title" validate:"required,min=3,max=255"`
	AssetIDs    []uint  `json:"asset_ids" validate:"required,min=1,dive,min=1"`
	StartDate   *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ContractDTO is the contract representation in API responses
type ContractDTO struct {
	ID              uint                  `json:"id"`
	UUID            string                `json:"uuid"`
	SponsorUUID     string                `json:"sponsor_uuid"`
	SponsorName     string                `json:"sponsor_name"`
	Title           string                `json:"title"`
	Items           []SponsorshipAssetDTO `json:"items,omitempty"`
	ListValue       float64               `json:"list_value"`
	DiscountPercent float64               `json:"discount_percent"`
	TotalValue      float64               `json:"total_value"`
	Status          string                `json:"status"`
	StartDate       *string               `json:"start_date,omitempty"`
	EndDate         *string               `json:"end_date,omitempty"`
	SignedAt        *string               `json:"signed_at,omitempty"`
	CreatedAt       string                `json:"created_at"`
}

// ContractResponse wraps a single contract
type ContractResponse struct {
	Message  string      `json:"message"`
	Contract ContractDTO `json:"contract"`
}

// ListContractsResponse lists contracts for a sponsor
type ListContractsResponse struct {
	Message string        `json:"message"`
	Items   []ContractDTO `json:"items"`
}
