package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	// 2026-03-04 is a Wednesday, 2026-03-07 a Saturday.
	weekday = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	weekend = time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
)

func factorByName(q Quote, name string) (Factor, bool) {
	for _, f := range q.Factors {
		if f.Name == name {
			return f, true
		}
	}
	return Factor{}, false
}

func TestCalculateCorporatePrimeScenario(t *testing.T) {
	in := Input{
		AssetType:       "turf_full",
		BookingDate:     weekday,
		TimeSlot:        "6pm-9pm (Prime)",
		DurationHours:   2,
		CustomerSegment: "corporate",
		LeadTimeDays:    10,
	}
	q := Calculate(in, DefaultTables(), DefaultGuardrails())

	assert.InDelta(t, 275.0, q.BaseRate, 1e-6)

	// Weekday prime slot is medium demand at multiplier 1.0, so no demand
	// factor is recorded.
	_, ok := factorByName(q, "Medium Demand")
	assert.False(t, ok)

	// Corporate adjustment is computed off the base rate: 275 * 0.15.
	seg, ok := factorByName(q, "Corporate Rate")
	require.True(t, ok)
	assert.InDelta(t, 41.25, seg.Impact, 1e-6)

	assert.InDelta(t, 316.25, q.DynamicRate, 1e-6)
	assert.LessOrEqual(t, q.DynamicRate, 275*1.25)
	assert.InDelta(t, 632.50, q.FinalPrice, 1e-6)
	assert.InDelta(t, 15.0, q.AdjustmentPct, 1e-6)

	_, ok = factorByName(q, "Guardrail Cap")
	assert.False(t, ok)
}

func TestCalculateEarlyBookingHitsGuardrailFloor(t *testing.T) {
	in := Input{
		AssetType:       "turf_full",
		BookingDate:     weekday,
		TimeSlot:        "9am-12pm",
		DurationHours:   2,
		CustomerSegment: "regular",
		LeadTimeDays:    95,
	}
	q := Calculate(in, DefaultTables(), DefaultGuardrails())

	// Low demand (0.85) then the 90-day bucket (0.85): 275 -> 233.75 -> 198.6875,
	// lifted back to the floor 275 * 0.75 = 206.25.
	early, ok := factorByName(q, "Early Booking")
	require.True(t, ok)
	assert.InDelta(t, 233.75*(0.85-1), early.Impact, 1e-6)

	cap, ok := factorByName(q, "Guardrail Cap")
	require.True(t, ok)
	assert.InDelta(t, 206.25-198.6875, cap.Impact, 1e-6)

	assert.InDelta(t, 206.25, q.DynamicRate, 1e-6)
	assert.InDelta(t, 412.50, q.FinalPrice, 1e-6)
}

func TestCalculateLeadTimeBuckets(t *testing.T) {
	tables := DefaultTables()

	tests := []struct {
		name         string
		leadTimeDays int
		wantFactor   bool
		wantDiscount float64
	}{
		{"under 30 days no discount", 10, false, 0},
		{"exactly 30 days", 30, true, 0.95},
		{"between buckets uses 30", 59, true, 0.95},
		{"exactly 60 days", 60, true, 0.90},
		{"90 plus wins over shorter buckets", 95, true, 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{
				AssetType:       "court",
				BookingDate:     weekday,
				TimeSlot:        "9am-12pm",
				DurationHours:   1,
				CustomerSegment: "regular",
				LeadTimeDays:    tt.leadTimeDays,
			}
			q := Calculate(in, tables, DefaultGuardrails())

			f, ok := factorByName(q, "Early Booking")
			assert.Equal(t, tt.wantFactor, ok)
			if tt.wantFactor {
				// Running price before the discount is base * low multiplier.
				running := q.BaseRate * 0.85
				assert.InDelta(t, running*(tt.wantDiscount-1), f.Impact, 1e-6)
			}
		})
	}
}

func TestCalculateUnknownLookupsDegradeToDefaults(t *testing.T) {
	in := Input{
		AssetType:       "ice_rink",
		BookingDate:     weekday,
		TimeSlot:        "12pm-3pm",
		DurationHours:   1.5,
		CustomerSegment: "walk_in",
		LeadTimeDays:    0,
	}
	q := Calculate(in, DefaultTables(), DefaultGuardrails())

	// Unknown asset type falls back to the default base rate.
	assert.InDelta(t, 100.0, q.BaseRate, 1e-6)

	// Unknown segment multiplies by 1.0, so no segment factor appears.
	for _, f := range q.Factors {
		assert.NotContains(t, f.Name, "Walk In")
	}
}

func TestCalculateDemandLevels(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		slot string
		want DemandLevel
	}{
		{"weekend is high regardless of slot", weekend, "9am-12pm", DemandHigh},
		{"weekday prime is medium", weekday, "6pm-9pm (Prime)", DemandMedium},
		{"weekday off-prime is low", weekday, "12pm-3pm", DemandLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DemandLevelFor(tt.date, tt.slot))
		})
	}
}

func TestCalculateGuardrailBandProperty(t *testing.T) {
	tables := DefaultTables()
	guardrails := DefaultGuardrails()
	band := guardrails.MaxPriceChangePercent / 100

	assets := []string{"turf_full", "turf_half", "court", "golf_bay", "unknown"}
	slots := []string{"6am-9am", "9am-12pm", "6pm-9pm (Prime)", "9pm-12am"}
	segments := []string{"youth", "non_profit", "regular", "corporate", "tournament", "unknown"}
	leadTimes := []int{0, 15, 30, 45, 60, 90, 120}

	for _, asset := range assets {
		for _, slot := range slots {
			for _, segment := range segments {
				for _, lead := range leadTimes {
					for _, date := range []time.Time{weekday, weekend} {
						q := Calculate(Input{
							AssetType:       asset,
							BookingDate:     date,
							TimeSlot:        slot,
							DurationHours:   2,
							CustomerSegment: segment,
							LeadTimeDays:    lead,
						}, tables, guardrails)

						assert.GreaterOrEqual(t, q.DynamicRate, q.BaseRate*(1-band)-1e-9)
						assert.LessOrEqual(t, q.DynamicRate, q.BaseRate*(1+band)+1e-9)
						assert.InDelta(t, q.DynamicRate*2, q.FinalPrice, 1e-6)
					}
				}
			}
		}
	}
}

func TestCalculateFactorOrdering(t *testing.T) {
	in := Input{
		AssetType:       "turf_half",
		BookingDate:     weekend,
		TimeSlot:        "9am-12pm",
		DurationHours:   3,
		CustomerSegment: "youth",
		LeadTimeDays:    65,
	}
	q := Calculate(in, DefaultTables(), DefaultGuardrails())

	require.NotEmpty(t, q.Factors)
	assert.Equal(t, "Base Rate", q.Factors[0].Name)
	assert.Equal(t, "Final Price", q.Factors[len(q.Factors)-1].Name)

	names := make([]string, 0, len(q.Factors))
	for _, f := range q.Factors {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "High Demand")
	assert.Contains(t, names, "Early Booking")
	assert.Contains(t, names, "Youth Rate")
}

func TestCalculateSegmentImpactComputedOffBaseRate(t *testing.T) {
	// The segment adjustment intentionally uses the base rate, not the
	// running price. With high demand (1.25) a tournament booking on
	// turf_full gets base 275 * 0.20 = 55, not 343.75 * 0.20.
	in := Input{
		AssetType:       "turf_full",
		BookingDate:     weekend,
		TimeSlot:        "12pm-3pm",
		DurationHours:   1,
		CustomerSegment: "tournament",
		LeadTimeDays:    0,
	}
	q := Calculate(in, DefaultTables(), DefaultGuardrails())

	seg, ok := factorByName(q, "Tournament Rate")
	require.True(t, ok)
	assert.InDelta(t, 55.0, seg.Impact, 1e-6)
}

func TestCalculateDegenerateDuration(t *testing.T) {
	// The engine does not police duration; zero duration yields a zero final
	// price that callers are expected to reject.
	in := Input{
		AssetType:       "court",
		BookingDate:     weekday,
		TimeSlot:        "9am-12pm",
		DurationHours:   0,
		CustomerSegment: "regular",
		LeadTimeDays:    0,
	}
	q := Calculate(in, DefaultTables(), DefaultGuardrails())
	assert.Zero(t, q.FinalPrice)
	assert.Positive(t, q.DynamicRate)
}
