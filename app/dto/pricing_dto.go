package dto

// QuoteRequest represents the payload to price a prospective booking.
// LeadTimeDays is optional; when omitted it is derived from the booking date.
type QuoteRequest struct {
	AssetType       string  `json:"asset_type" validate:"required"`
	BookingDate     string  `json:"booking_date" validate:"required,datetime=2006-01-02"`
	TimeSlot        string  `json:"time_slot" validate:"required"`
	DurationHours   float64 `json:"duration_hours" validate:"required,gt=0"`
	CustomerSegment string  `json:"customer_segment" validate:"required"`
	LeadTimeDays    *int    `json:"lead_time_days,omitempty" validate:"omitempty,min=0"`
}

// PriceFactorDTO is one step of the quote waterfall
type PriceFactorDTO struct {
	Name        string  `json:"factor"`
	Impact      float64 `json:"impact"`
	Explanation string  `json:"explanation"`
}

// QuoteResponse represents a computed price quote
type QuoteResponse struct {
	AssetType       string           `json:"asset_type"`
	BookingDate     string           `json:"booking_date"`
	TimeSlot        string           `json:"time_slot"`
	DurationHours   float64          `json:"duration_hours"`
	CustomerSegment string           `json:"customer_segment"`
	LeadTimeDays    int              `json:"lead_time_days"`
	BaseRate        float64          `json:"base_rate"`
	DynamicRate     float64          `json:"dynamic_rate"`
	FinalPrice      float64          `json:"final_price"`
	AdjustmentPct   float64          `json:"adjustment_pct"`
	Factors         []PriceFactorDTO `json:"factors"`
}

// UpdateRatesRequest replaces the active rate configuration with a new version
type UpdateRatesRequest struct {
	BaseRates         map[string]map[string]float64 `json:"base_rates" validate:"required,min=1"`
	DemandMultipliers map[string]float64            `json:"demand_multipliers" validate:"required,min=1"`
	LeadTimeDiscounts map[string]float64            `json:"lead_time_discounts" validate:"required,min=1"`
	SegmentRates      map[string]float64            `json:"segment_rates" validate:"required,min=1"`
	Comment           *string                       `json:"comment,omitempty" validate:"omitempty,max=500"`
}

// UpdateGuardrailsRequest replaces the active guardrail policy with a new version
type UpdateGuardrailsRequest struct {
	MaxPriceChangePercent   float64 `json:"max_price_change_percent" validate:"required,gt=0,lte=100"`
	MaxSurgeFactor          float64 `json:"max_surge_factor" validate:"required,gte=1"`
	MinDiscountFloor        float64 `json:"min_discount_floor" validate:"required,gt=0,lte=1"`
	MinLeadTimeHours        int     `json:"min_lead_time_hours" validate:"min=0"`
	MinCommunityHoursWeekly int     `json:"min_community_hours_weekly" validate:"min=0"`
	Comment                 *string `json:"comment,omitempty" validate:"omitempty,max=500"`
}

// PricingConfigResponse returns the active rate tables and guardrail policy
type PricingConfigResponse struct {
	RatesVersion      int                           `json:"rates_version"`
	GuardrailsVersion int                           `json:"guardrails_version"`
	BaseRates         map[string]map[string]float64 `json:"base_rates"`
	DemandMultipliers map[string]float64            `json:"demand_multipliers"`
	LeadTimeDiscounts map[string]float64            `json:"lead_time_discounts"`
	SegmentRates      map[string]float64            `json:"segment_rates"`
	Guardrails        GuardrailsDTO                 `json:"guardrails"`
}

// GuardrailsDTO mirrors the active guardrail policy
type GuardrailsDTO struct {
	MaxPriceChangePercent   float64 `json:"max_price_change_percent"`
	MaxSurgeFactor          float64 `json:"max_surge_factor"`
	MinDiscountFloor        float64 `json:"min_discount_floor"`
	MinLeadTimeHours        int     `json:"min_lead_time_hours"`
	MinCommunityHoursWeekly int     `json:"min_community_hours_weekly"`
}

// UpdatePricingConfigResponse acknowledges a new configuration version
type UpdatePricingConfigResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Version int    `json:"version"`
}

// PricingHistoryItem is one version of a pricing configuration document
type PricingHistoryItem struct {
	Kind      string  `json:"kind"`
	Version   int     `json:"version"`
	UpdatedBy *string `json:"updated_by,omitempty"`
	Comment   *string `json:"comment,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// PricingHistoryResponse lists configuration versions, newest first
type PricingHistoryResponse struct {
	Message string               `json:"message"`
	Items   []PricingHistoryItem `json:"items"`
}
