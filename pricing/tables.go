// Package pricing implements the dynamic pricing engine: a pure calculation
// over immutable rate, demand, lead-time, and segment tables bounded by
// board-approved guardrails. The package performs no I/O and keeps no state;
// callers may invoke it concurrently as long as the tables are not mutated.
package pricing

import (
	"strings"

	"github.com/skillshot/sportai/utils"
)

// Daypart categorizes a time slot into a pricing bucket.
type Daypart string

const (
	DaypartPrime    Daypart = "prime"
	DaypartStandard Daypart = "standard"
	DaypartOffPeak  Daypart = "off_peak"
)

// DemandLevel classifies expected demand for a booking date and slot.
type DemandLevel string

const (
	DemandHigh   DemandLevel = "high"
	DemandMedium DemandLevel = "medium"
	DemandLow    DemandLevel = "low"
)

// Lead-time bucket keys. Longest qualifying bucket wins.
const (
	LeadTimeBucket30 = "30_days"
	LeadTimeBucket60 = "60_days"
	LeadTimeBucket90 = "90_days"
)

// RateTable maps asset type -> daypart -> base hourly rate.
type RateTable map[string]map[Daypart]float64

// BaseRate returns the configured hourly rate for the asset/daypart pair.
// Unknown combinations resolve to the default rate instead of failing, so
// an incomplete rate table never breaks quoting.
func (t RateTable) BaseRate(assetType string, daypart Daypart) float64 {
	if byDaypart, ok := t[assetType]; ok {
		if rate, ok := byDaypart[daypart]; ok {
			return rate
		}
	}
	return utils.DefaultBaseRate
}

// DemandMultiplierTable maps a demand level to a multiplicative factor.
type DemandMultiplierTable map[DemandLevel]float64

// Factor returns the multiplier for the level, defaulting to 1.0 when the
// level is not configured.
func (t DemandMultiplierTable) Factor(level DemandLevel) float64 {
	if f, ok := t[level]; ok {
		return f
	}
	return 1.0
}

// LeadTimeDiscountTable maps lead-time bucket keys to discount factors <= 1.0.
type LeadTimeDiscountTable map[string]float64

// Factor selects the discount for the longest bucket the lead time qualifies
// for. The second return value is false when the lead time is under 30 days
// and no bucket applies.
func (t LeadTimeDiscountTable) Factor(leadTimeDays int) (float64, bool) {
	if leadTimeDays < 30 {
		return 1.0, false
	}
	key := LeadTimeBucket30
	switch {
	case leadTimeDays >= 90:
		key = LeadTimeBucket90
	case leadTimeDays >= 60:
		key = LeadTimeBucket60
	}
	if f, ok := t[key]; ok {
		return f, true
	}
	return 1.0, true
}

// SegmentTable maps a customer segment to a fairness multiplier.
type SegmentTable map[string]float64

// Factor returns the multiplier for the segment, defaulting to 1.0 for
// unknown segments so their impact is zero.
func (t SegmentTable) Factor(segment string) float64 {
	if f, ok := t[segment]; ok {
		return f
	}
	return 1.0
}

// Tables bundles the four configuration tables a calculation reads.
type Tables struct {
	Rates             RateTable             `json:"base_rates"`
	DemandMultipliers DemandMultiplierTable `json:"demand_multipliers"`
	LeadTimeDiscounts LeadTimeDiscountTable `json:"lead_time_discounts"`
	Segments          SegmentTable          `json:"segments"`
}

// Guardrails holds the board-approved policy limits. Only
// MaxPriceChangePercent participates in clamping; the remaining fields are
// policy knobs surfaced to governance and validation.
type Guardrails struct {
	MaxPriceChangePercent   float64 `json:"max_price_change_percent"`
	MaxSurgeFactor          float64 `json:"max_surge_factor"`
	MinDiscountFloor        float64 `json:"min_discount_floor"`
	MinLeadTimeHours        int     `json:"min_lead_time_hours"`
	MinCommunityHoursWeekly int     `json:"min_community_hours_weekly"`
}

// Clamp bounds price into [base*(1-g), base*(1+g)] where g is the maximum
// price change fraction.
func (g Guardrails) Clamp(price, baseRate float64) float64 {
	maxChange := g.MaxPriceChangePercent / 100
	maxPrice := baseRate * (1 + maxChange)
	minPrice := baseRate * (1 - maxChange)
	if price > maxPrice {
		return maxPrice
	}
	if price < minPrice {
		return minPrice
	}
	return price
}

// NormalizeAssetKey converts a display label like "Turf - Full Field" into
// the snake_case key form used by the rate table ("turf_full_field").
func NormalizeAssetKey(label string) string {
	key := strings.ToLower(label)
	key = strings.ReplaceAll(key, " - ", "_")
	key = strings.ReplaceAll(key, " ", "_")
	return key
}

// DaypartForSlot derives the pricing bucket from a time slot label: slots
// marked "Prime" are prime, early-morning and late-night slots are off-peak,
// everything else is standard.
func DaypartForSlot(slot string) Daypart {
	switch {
	case strings.Contains(slot, "Prime"):
		return DaypartPrime
	case strings.Contains(slot, "6am"), strings.Contains(slot, "9pm"):
		return DaypartOffPeak
	default:
		return DaypartStandard
	}
}
