package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/config"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/pricing"
	"github.com/skillshot/sportai/repository"
	"github.com/skillshot/sportai/utils"
	"gorm.io/gorm"
)

// PricingFlow quotes bookings and manages the versioned pricing configuration.
type PricingFlow interface {
	Quote(ctx context.Context, req *dto.QuoteRequest) (*dto.QuoteResponse, error)
	GetConfig(ctx context.Context) (*dto.PricingConfigResponse, error)
	UpdateRates(ctx context.Context, req *dto.UpdateRatesRequest, staffID uint, metadata *ClientMetadata) (*dto.UpdatePricingConfigResponse, error)
	UpdateGuardrails(ctx context.Context, req *dto.UpdateGuardrailsRequest, staffID uint, metadata *ClientMetadata) (*dto.UpdatePricingConfigResponse, error)
	History(ctx context.Context, kind string, page, pageSize int) (*dto.PricingHistoryResponse, error)

	// ActiveTables exposes the current configuration to other flows
	ActiveTables(ctx context.Context) (pricing.Tables, pricing.Guardrails, error)
}

// PricingFlowImpl implements the pricing business flow
type PricingFlowImpl struct {
	pricingRuleRepo repository.PricingRuleRepository
	auditRepo       repository.AuditLogRepository
	rc              *redis.Client
	cacheConfig     *config.CacheConfig
	db              *gorm.DB
}

// NewPricingFlow creates a new pricing flow instance
func NewPricingFlow(
	pricingRuleRepo repository.PricingRuleRepository,
	auditRepo repository.AuditLogRepository,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
	db *gorm.DB,
) PricingFlow {
	return &PricingFlowImpl{
		pricingRuleRepo: pricingRuleRepo,
		auditRepo:       auditRepo,
		rc:              rc,
		cacheConfig:     cacheConfig,
		db:              db,
	}
}

// Quote computes a price for a prospective booking using the active configuration
func (f *PricingFlowImpl) Quote(ctx context.Context, req *dto.QuoteRequest) (*dto.QuoteResponse, error) {
	bookingDate, err := time.Parse("2006-01-02", req.BookingDate)
	if err != nil {
		return nil, NewBusinessError("QUOTE_DATE_INVALID", "Booking date is invalid", err)
	}

	leadTimeDays := leadTimeDaysFor(bookingDate, req.LeadTimeDays)

	tables, guardrails, err := f.ActiveTables(ctx)
	if err != nil {
		return nil, NewBusinessError("QUOTE_CONFIG_LOAD_FAILED", "Failed to load pricing configuration", err)
	}

	quote := pricing.Calculate(pricing.Input{
		AssetType:       req.AssetType,
		BookingDate:     bookingDate,
		TimeSlot:        req.TimeSlot,
		DurationHours:   req.DurationHours,
		CustomerSegment: req.CustomerSegment,
		LeadTimeDays:    leadTimeDays,
	}, tables, guardrails)

	return &dto.QuoteResponse{
		AssetType:       req.AssetType,
		BookingDate:     req.BookingDate,
		TimeSlot:        req.TimeSlot,
		DurationHours:   req.DurationHours,
		CustomerSegment: req.CustomerSegment,
		LeadTimeDays:    leadTimeDays,
		BaseRate:        quote.BaseRate,
		DynamicRate:     quote.DynamicRate,
		FinalPrice:      quote.FinalPrice,
		AdjustmentPct:   quote.AdjustmentPct,
		Factors:         ToPriceFactorDTOs(quote.Factors),
	}, nil
}

// GetConfig returns the active rate tables and guardrail policy with their versions
func (f *PricingFlowImpl) GetConfig(ctx context.Context) (*dto.PricingConfigResponse, error) {
	tables, ratesVersion, err := f.loadRatesDocument(ctx)
	if err != nil {
		return nil, NewBusinessError("PRICING_CONFIG_LOAD_FAILED", "Failed to load rate configuration", err)
	}

	guardrails, guardrailsVersion, err := f.loadGuardrailsDocument(ctx)
	if err != nil {
		return nil, NewBusinessError("PRICING_CONFIG_LOAD_FAILED", "Failed to load guardrail policy", err)
	}

	out := &dto.PricingConfigResponse{
		RatesVersion:      ratesVersion,
		GuardrailsVersion: guardrailsVersion,
		BaseRates:         make(map[string]map[string]float64, len(tables.Rates)),
		DemandMultipliers: make(map[string]float64, len(tables.DemandMultipliers)),
		LeadTimeDiscounts: make(map[string]float64, len(tables.LeadTimeDiscounts)),
		SegmentRates:      make(map[string]float64, len(tables.Segments)),
		Guardrails: dto.GuardrailsDTO{
			MaxPriceChangePercent:   guardrails.MaxPriceChangePercent,
			MaxSurgeFactor:          guardrails.MaxSurgeFactor,
			MinDiscountFloor:        guardrails.MinDiscountFloor,
			MinLeadTimeHours:        guardrails.MinLeadTimeHours,
			MinCommunityHoursWeekly: guardrails.MinCommunityHoursWeekly,
		},
	}
	for asset, rates := range tables.Rates {
		out.BaseRates[asset] = make(map[string]float64, len(rates))
		for daypart, rate := range rates {
			out.BaseRates[asset][string(daypart)] = rate
		}
	}
	for level, factor := range tables.DemandMultipliers {
		out.DemandMultipliers[string(level)] = factor
	}
	for bucket, factor := range tables.LeadTimeDiscounts {
		out.LeadTimeDiscounts[string(bucket)] = factor
	}
	for segment, factor := range tables.Segments {
		out.SegmentRates[segment] = factor
	}

	return out, nil
}

// UpdateRates stores a new rate table version and invalidates the cache
func (f *PricingFlowImpl) UpdateRates(ctx context.Context, req *dto.UpdateRatesRequest, staffID uint, metadata *ClientMetadata) (*dto.UpdatePricingConfigResponse, error) {
	tables := pricing.Tables{
		Rates:             make(pricing.RateTable, len(req.BaseRates)),
		DemandMultipliers: make(pricing.DemandMultiplierTable, len(req.DemandMultipliers)),
		LeadTimeDiscounts: make(pricing.LeadTimeDiscountTable, len(req.LeadTimeDiscounts)),
		Segments:          make(pricing.SegmentTable, len(req.SegmentRates)),
	}
	for asset, rates := range req.BaseRates {
		tables.Rates[asset] = make(map[pricing.Daypart]float64, len(rates))
		for daypart, rate := range rates {
			if rate <= 0 {
				return nil, NewBusinessError("PRICING_RATE_INVALID", "Rate values must be greater than zero", ErrRateValueInvalid)
			}
			tables.Rates[asset][pricing.Daypart(daypart)] = rate
		}
	}
	for level, factor := range req.DemandMultipliers {
		if factor <= 0 {
			return nil, NewBusinessError("PRICING_RATE_INVALID", "Demand multipliers must be greater than zero", ErrRateValueInvalid)
		}
		tables.DemandMultipliers[pricing.DemandLevel(level)] = factor
	}
	for bucket, factor := range req.LeadTimeDiscounts {
		if factor <= 0 {
			return nil, NewBusinessError("PRICING_RATE_INVALID", "Lead time discounts must be greater than zero", ErrRateValueInvalid)
		}
		tables.LeadTimeDiscounts[bucket] = factor
	}
	for segment, factor := range req.SegmentRates {
		if factor <= 0 {
			return nil, NewBusinessError("PRICING_RATE_INVALID", "Segment rates must be greater than zero", ErrRateValueInvalid)
		}
		tables.Segments[segment] = factor
	}

	version, err := f.saveDocument(ctx, models.PricingDocumentRates, tables, staffID, req.Comment)
	if err != nil {
		f.logGovernanceAction(ctx, staffID, models.AuditActionRatesUpdated, fmt.Sprintf("Rate update failed: %v", err), false, metadata)
		return nil, NewBusinessError("PRICING_RATES_SAVE_FAILED", "Failed to save rate configuration", err)
	}

	f.invalidateCache(ctx, utils.PricingRatesCacheKey)
	f.logGovernanceAction(ctx, staffID, models.AuditActionRatesUpdated, fmt.Sprintf("Rate tables updated to version %d", version), true, metadata)

	return &dto.UpdatePricingConfigResponse{
		Message: "Rate tables updated successfully",
		Kind:    models.PricingDocumentRates,
		Version: version,
	}, nil
}

// UpdateGuardrails stores a new guardrail policy version and invalidates the cache
func (f *PricingFlowImpl) UpdateGuardrails(ctx context.Context, req *dto.UpdateGuardrailsRequest, staffID uint, metadata *ClientMetadata) (*dto.UpdatePricingConfigResponse, error) {
	if req.MinDiscountFloor <= 0 || req.MinDiscountFloor > 1 || req.MaxSurgeFactor < 1 || req.MaxPriceChangePercent <= 0 {
		return nil, NewBusinessError("PRICING_GUARDRAIL_INVALID", "Guardrail band is invalid", ErrGuardrailBandInvalid)
	}

	guardrails := pricing.Guardrails{
		MaxPriceChangePercent:   req.MaxPriceChangePercent,
		MaxSurgeFactor:          req.MaxSurgeFactor,
		MinDiscountFloor:        req.MinDiscountFloor,
		MinLeadTimeHours:        req.MinLeadTimeHours,
		MinCommunityHoursWeekly: req.MinCommunityHoursWeekly,
	}

	version, err := f.saveDocument(ctx, models.PricingDocumentGuardrails, guardrails, staffID, req.Comment)
	if err != nil {
		f.logGovernanceAction(ctx, staffID, models.AuditActionGuardrailsUpdated, fmt.Sprintf("Guardrail update failed: %v", err), false, metadata)
		return nil, NewBusinessError("PRICING_GUARDRAILS_SAVE_FAILED", "Failed to save guardrail policy", err)
	}

	f.invalidateCache(ctx, utils.PricingGuardrailsCacheKey)
	f.logGovernanceAction(ctx, staffID, models.AuditActionGuardrailsUpdated, fmt.Sprintf("Guardrail policy updated to version %d", version), true, metadata)

	return &dto.UpdatePricingConfigResponse{
		Message: "Guardrail policy updated successfully",
		Kind:    models.PricingDocumentGuardrails,
		Version: version,
	}, nil
}

// History lists configuration versions for a document kind
func (f *PricingFlowImpl) History(ctx context.Context, kind string, page, pageSize int) (*dto.PricingHistoryResponse, error) {
	if kind != models.PricingDocumentRates && kind != models.PricingDocumentGuardrails {
		return nil, NewBusinessError("PRICING_HISTORY_KIND_INVALID", "Unknown pricing document kind", ErrPricingDocumentNotFound)
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	rows, err := f.pricingRuleRepo.HistoryByKind(ctx, kind, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("PRICING_HISTORY_LOAD_FAILED", "Failed to load pricing history", err)
	}

	items := make([]dto.PricingHistoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.PricingHistoryItem{
			Kind:      row.Kind,
			Version:   row.Version,
			UpdatedBy: row.UpdatedBy,
			Comment:   row.Comment,
			CreatedAt: row.CreatedAt.Format(time.RFC3339),
		})
	}

	return &dto.PricingHistoryResponse{
		Message: "Pricing history retrieved successfully",
		Items:   items,
	}, nil
}

// ActiveTables loads the active rate tables and guardrail policy, cache first
func (f *PricingFlowImpl) ActiveTables(ctx context.Context) (pricing.Tables, pricing.Guardrails, error) {
	tables, _, err := f.loadRatesDocument(ctx)
	if err != nil {
		return pricing.Tables{}, pricing.Guardrails{}, err
	}
	guardrails, _, err := f.loadGuardrailsDocument(ctx)
	if err != nil {
		return pricing.Tables{}, pricing.Guardrails{}, err
	}
	return tables, guardrails, nil
}

func (f *PricingFlowImpl) loadRatesDocument(ctx context.Context) (pricing.Tables, int, error) {
	if f.rc != nil {
		cacheKey := redisKey(*f.cacheConfig, utils.PricingRatesCacheKey)
		if bs, err := f.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
			var cached cachedDocument[pricing.Tables]
			if err := json.Unmarshal(bs, &cached); err == nil {
				return cached.Document, cached.Version, nil
			}
		}
	}

	row, err := f.pricingRuleRepo.LatestByKind(ctx, models.PricingDocumentRates)
	if err != nil {
		return pricing.Tables{}, 0, err
	}
	if row == nil {
		return pricing.DefaultTables(), 0, nil
	}

	var tables pricing.Tables
	if err := json.Unmarshal(row.Document, &tables); err != nil {
		return pricing.Tables{}, 0, fmt.Errorf("failed to decode rate document: %w", err)
	}

	f.cacheDocument(ctx, utils.PricingRatesCacheKey, tables, row.Version)

	return tables, row.Version, nil
}

func (f *PricingFlowImpl) loadGuardrailsDocument(ctx context.Context) (pricing.Guardrails, int, error) {
	if f.rc != nil {
		cacheKey := redisKey(*f.cacheConfig, utils.PricingGuardrailsCacheKey)
		if bs, err := f.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
			var cached cachedDocument[pricing.Guardrails]
			if err := json.Unmarshal(bs, &cached); err == nil {
				return cached.Document, cached.Version, nil
			}
		}
	}

	row, err := f.pricingRuleRepo.LatestByKind(ctx, models.PricingDocumentGuardrails)
	if err != nil {
		return pricing.Guardrails{}, 0, err
	}
	if row == nil {
		return pricing.DefaultGuardrails(), 0, nil
	}

	var guardrails pricing.Guardrails
	if err := json.Unmarshal(row.Document, &guardrails); err != nil {
		return pricing.Guardrails{}, 0, fmt.Errorf("failed to decode guardrail document: %w", err)
	}

	f.cacheDocument(ctx, utils.PricingGuardrailsCacheKey, guardrails, row.Version)

	return guardrails, row.Version, nil
}

type cachedDocument[T any] struct {
	Version  int `json:"version"`
	Document T   `json:"document"`
}

func (f *PricingFlowImpl) cacheDocument(ctx context.Context, key string, document any, version int) {
	if f.rc == nil {
		return
	}
	bs, err := json.Marshal(cachedDocument[any]{Version: version, Document: document})
	if err != nil {
		return
	}
	_ = f.rc.Set(ctx, redisKey(*f.cacheConfig, key), bs, utils.PricingConfigCacheTTL).Err()
}

func (f *PricingFlowImpl) invalidateCache(ctx context.Context, key string) {
	if f.rc == nil {
		return
	}
	_ = f.rc.Del(ctx, redisKey(*f.cacheConfig, key)).Err()
}

func (f *PricingFlowImpl) saveDocument(ctx context.Context, kind string, document any, staffID uint, comment *string) (int, error) {
	bs, err := json.Marshal(document)
	if err != nil {
		return 0, fmt.Errorf("failed to encode pricing document: %w", err)
	}

	var version int
	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		version, err = f.pricingRuleRepo.NextVersion(txCtx, kind)
		if err != nil {
			return err
		}

		updatedBy := fmt.Sprintf("staff:%d", staffID)
		row := &models.PricingRule{
			Kind:      kind,
			Version:   version,
			Document:  bs,
			UpdatedBy: &updatedBy,
			Comment:   comment,
			CreatedAt: utils.UTCNow(),
			UpdatedAt: utils.UTCNow(),
		}
		return f.pricingRuleRepo.Save(txCtx, row)
	})
	if err != nil {
		return 0, err
	}

	return version, nil
}

func (f *PricingFlowImpl) logGovernanceAction(ctx context.Context, staffID uint, action, description string, success bool, metadata *ClientMetadata) {
	entry := &models.AuditLog{
		StaffID:     &staffID,
		Action:      action,
		Description: &description,
		Success:     &success,
	}
	if metadata != nil {
		if metadata.IPAddress != "" {
			entry.IPAddress = &metadata.IPAddress
		}
		if metadata.UserAgent != "" {
			entry.UserAgent = &metadata.UserAgent
		}
		if metadata.RequestID != "" {
			entry.RequestID = &metadata.RequestID
		}
	}
	_ = f.auditRepo.Save(ctx, entry)
}

// leadTimeDaysFor uses the explicit lead time when provided, otherwise derives
// it as the calendar-date difference between today and the booking date, so a
// booking exactly 30 days out stays in the 30_days bucket all day long.
func leadTimeDaysFor(bookingDate time.Time, explicit *int) int {
	if explicit != nil {
		return *explicit
	}
	today := utils.UTCNow().Truncate(24 * time.Hour)
	days := int(bookingDate.Truncate(24*time.Hour).Sub(today).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days
}
