package businessflow

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/config"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/pricing"
	"github.com/skillshot/sportai/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPricingFlowForTest(rules *fakePricingRuleRepo) PricingFlow {
	return NewPricingFlow(rules, &fakeAuditRepo{}, nil, &config.CacheConfig{}, nil)
}

func TestQuoteFallsBackToDefaults(t *testing.T) {
	flow := newPricingFlowForTest(&fakePricingRuleRepo{})

	// 2026-03-04 is a Wednesday, so the prime slot is medium demand.
	resp, err := flow.Quote(context.Background(), &dto.QuoteRequest{
		AssetType:       "turf_full",
		BookingDate:     "2026-03-04",
		TimeSlot:        "6pm-9pm (Prime)",
		DurationHours:   2,
		CustomerSegment: "corporate",
		LeadTimeDays:    utils.ToPtr(10),
	})
	require.NoError(t, err)

	assert.InDelta(t, 275.0, resp.BaseRate, 1e-6)
	assert.InDelta(t, 316.25, resp.DynamicRate, 1e-6)
	assert.InDelta(t, 632.50, resp.FinalPrice, 1e-6)
	assert.InDelta(t, 15.0, resp.AdjustmentPct, 1e-6)
	assert.Equal(t, 10, resp.LeadTimeDays)
	assert.NotEmpty(t, resp.Factors)
}

func TestQuoteRejectsInvalidDate(t *testing.T) {
	flow := newPricingFlowForTest(&fakePricingRuleRepo{})

	_, err := flow.Quote(context.Background(), &dto.QuoteRequest{
		AssetType:       "court",
		BookingDate:     "03/04/2026",
		TimeSlot:        "9am-12pm",
		DurationHours:   1,
		CustomerSegment: "regular",
	})

	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "QUOTE_DATE_INVALID", be.Code)
}

func TestQuoteDerivesLeadTimeWhenOmitted(t *testing.T) {
	flow := newPricingFlowForTest(&fakePricingRuleRepo{})
	date := utils.UTCNow().AddDate(0, 0, 45)

	resp, err := flow.Quote(context.Background(), &dto.QuoteRequest{
		AssetType:       "court",
		BookingDate:     date.Format("2006-01-02"),
		TimeSlot:        "9am-12pm",
		DurationHours:   1,
		CustomerSegment: "regular",
	})
	require.NoError(t, err)

	// the lead time is a calendar-date difference, stable across the day
	assert.Equal(t, 45, resp.LeadTimeDays)
}

func TestGetConfigReturnsStoredDocumentAndVersion(t *testing.T) {
	tables := pricing.DefaultTables()
	tables.Rates["turf_full"][pricing.DaypartPrime] = 300
	doc, err := json.Marshal(tables)
	require.NoError(t, err)

	rules := &fakePricingRuleRepo{}
	rules.items = []*models.PricingRule{
		{Kind: models.PricingDocumentRates, Version: 3, Document: doc, CreatedAt: utils.UTCNow()},
	}
	flow := newPricingFlowForTest(rules)

	resp, err := flow.GetConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, resp.RatesVersion)
	assert.Equal(t, 0, resp.GuardrailsVersion)
	assert.InDelta(t, 300.0, resp.BaseRates["turf_full"]["prime"], 1e-6)
	// guardrails fall back to the shipped defaults when no document exists
	assert.InDelta(t, 25.0, resp.Guardrails.MaxPriceChangePercent, 1e-6)
}

func TestActiveTablesPrefersLatestVersion(t *testing.T) {
	older := pricing.DefaultTables()
	newer := pricing.DefaultTables()
	newer.Rates["court"][pricing.DaypartOffPeak] = 99

	olderDoc, err := json.Marshal(older)
	require.NoError(t, err)
	newerDoc, err := json.Marshal(newer)
	require.NoError(t, err)

	rules := &fakePricingRuleRepo{}
	rules.items = []*models.PricingRule{
		{Kind: models.PricingDocumentRates, Version: 1, Document: olderDoc},
		{Kind: models.PricingDocumentRates, Version: 2, Document: newerDoc},
	}
	flow := newPricingFlowForTest(rules)

	tables, _, err := flow.ActiveTables(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 99.0, tables.Rates["court"][pricing.DaypartOffPeak], 1e-6)
}

func TestUpdateRatesRejectsNonPositiveValues(t *testing.T) {
	flow := newPricingFlowForTest(&fakePricingRuleRepo{})

	_, err := flow.UpdateRates(context.Background(), &dto.UpdateRatesRequest{
		BaseRates:         map[string]map[string]float64{"court": {"prime": 0}},
		DemandMultipliers: map[string]float64{"high": 1.25},
		LeadTimeDiscounts: map[string]float64{"30_days": 0.95},
		SegmentRates:      map[string]float64{"regular": 1.0},
	}, 1, nil)

	assert.ErrorIs(t, err, ErrRateValueInvalid)
}

func TestUpdateRatesRejectsNegativeMultiplier(t *testing.T) {
	flow := newPricingFlowForTest(&fakePricingRuleRepo{})

	_, err := flow.UpdateRates(context.Background(), &dto.UpdateRatesRequest{
		BaseRates:         map[string]map[string]float64{"court": {"prime": 45}},
		DemandMultipliers: map[string]float64{"high": -1},
		LeadTimeDiscounts: map[string]float64{"30_days": 0.95},
		SegmentRates:      map[string]float64{"regular": 1.0},
	}, 1, nil)

	assert.ErrorIs(t, err, ErrRateValueInvalid)
}

func TestUpdateRatesStoresNewVersion(t *testing.T) {
	rules := &fakePricingRuleRepo{}
	flow := newPricingFlowForTest(rules)

	resp, err := flow.UpdateRates(context.Background(), &dto.UpdateRatesRequest{
		BaseRates:         map[string]map[string]float64{"court": {"prime": 85, "standard": 65}},
		DemandMultipliers: map[string]float64{"high": 1.25, "medium": 1.1, "low": 0.95},
		LeadTimeDiscounts: map[string]float64{"30_days": 0.95, "60_days": 0.92, "90_days": 0.88},
		SegmentRates:      map[string]float64{"regular": 1.0, "youth": 0.85},
	}, 1, nil)
	require.NoError(t, err)

	assert.Equal(t, models.PricingDocumentRates, resp.Kind)
	assert.Equal(t, 1, resp.Version)
	require.Len(t, rules.items, 1)

	// the stored document round-trips through the active configuration
	tables, _, err := flow.ActiveTables(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 85.0, tables.Rates["court"][pricing.DaypartPrime], 1e-6)
	assert.InDelta(t, 0.92, tables.LeadTimeDiscounts[pricing.LeadTimeBucket60], 1e-6)

	factor, ok := tables.LeadTimeDiscounts.Factor(75)
	assert.True(t, ok)
	assert.InDelta(t, 0.92, factor, 1e-6)
}

func TestUpdateGuardrailsRejectsInvalidBand(t *testing.T) {
	flow := newPricingFlowForTest(&fakePricingRuleRepo{})

	tests := []struct {
		name string
		req  dto.UpdateGuardrailsRequest
	}{
		{"zero discount floor", dto.UpdateGuardrailsRequest{MaxPriceChangePercent: 25, MaxSurgeFactor: 1.5, MinDiscountFloor: 0}},
		{"floor above one", dto.UpdateGuardrailsRequest{MaxPriceChangePercent: 25, MaxSurgeFactor: 1.5, MinDiscountFloor: 1.2}},
		{"surge below one", dto.UpdateGuardrailsRequest{MaxPriceChangePercent: 25, MaxSurgeFactor: 0.5, MinDiscountFloor: 0.7}},
		{"zero price change", dto.UpdateGuardrailsRequest{MaxPriceChangePercent: 0, MaxSurgeFactor: 1.5, MinDiscountFloor: 0.7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := flow.UpdateGuardrails(context.Background(), &tt.req, 1, nil)
			assert.ErrorIs(t, err, ErrGuardrailBandInvalid)
		})
	}
}

func TestHistoryRejectsUnknownKind(t *testing.T) {
	flow := newPricingFlowForTest(&fakePricingRuleRepo{})

	_, err := flow.History(context.Background(), "surcharges", 1, 20)

	assert.True(t, IsPricingDocumentNotFound(err))
}

func TestHistoryListsVersionsForKind(t *testing.T) {
	rules := &fakePricingRuleRepo{}
	rules.items = []*models.PricingRule{
		{Kind: models.PricingDocumentRates, Version: 2, UpdatedBy: utils.ToPtr("staff:1"), CreatedAt: utils.UTCNow()},
		{Kind: models.PricingDocumentRates, Version: 1, CreatedAt: utils.UTCNow().Add(-time.Hour)},
		{Kind: models.PricingDocumentGuardrails, Version: 1, CreatedAt: utils.UTCNow()},
	}
	flow := newPricingFlowForTest(rules)

	resp, err := flow.History(context.Background(), models.PricingDocumentRates, 0, 0)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, models.PricingDocumentRates, resp.Items[0].Kind)
}

func TestLeadTimeDaysFor(t *testing.T) {
	explicit := 42
	assert.Equal(t, 42, leadTimeDaysFor(utils.UTCNow(), &explicit))

	// past dates clamp to zero instead of going negative
	assert.Equal(t, 0, leadTimeDaysFor(utils.UTCNow().AddDate(0, 0, -3), nil))

	// a booking exactly 30 days out keeps its discount bucket all day
	assert.Equal(t, 30, leadTimeDaysFor(utils.UTCNow().AddDate(0, 0, 30), nil))
	assert.Equal(t, 90, leadTimeDaysFor(utils.UTCNow().AddDate(0, 0, 90).Truncate(24*time.Hour), nil))
}
