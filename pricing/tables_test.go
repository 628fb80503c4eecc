package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAssetKey(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Turf - Full Field", "turf_full_field"},
		{"Golf Bay", "golf_bay"},
		{"Court", "court"},
		{"turf_half", "turf_half"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeAssetKey(tt.label))
	}
}

func TestDaypartForSlot(t *testing.T) {
	tests := []struct {
		slot string
		want Daypart
	}{
		{"6pm-9pm (Prime)", DaypartPrime},
		{"6am-9am", DaypartOffPeak},
		{"9pm-12am", DaypartOffPeak},
		{"9am-12pm", DaypartStandard},
		{"12pm-3pm", DaypartStandard},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaypartForSlot(tt.slot))
	}
}

func TestRateTableFallback(t *testing.T) {
	tables := DefaultTables()

	assert.InDelta(t, 275.0, tables.Rates.BaseRate("turf_full", DaypartPrime), 1e-9)
	assert.InDelta(t, 100.0, tables.Rates.BaseRate("pool", DaypartPrime), 1e-9)

	// Known asset with a missing daypart also falls back.
	partial := RateTable{"court": {DaypartPrime: 45}}
	assert.InDelta(t, 100.0, partial.BaseRate("court", DaypartOffPeak), 1e-9)
}

func TestGuardrailsClamp(t *testing.T) {
	g := Guardrails{MaxPriceChangePercent: 25}

	assert.InDelta(t, 125.0, g.Clamp(180, 100), 1e-9)
	assert.InDelta(t, 75.0, g.Clamp(40, 100), 1e-9)
	assert.InDelta(t, 110.0, g.Clamp(110, 100), 1e-9)
}

func TestLeadTimeDiscountTableMissingBucket(t *testing.T) {
	// A qualifying lead time with no configured bucket still reports
	// qualification but applies no discount.
	table := LeadTimeDiscountTable{}
	f, ok := table.Factor(45)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, f, 1e-9)

	f, ok = table.Factor(10)
	assert.False(t, ok)
	assert.InDelta(t, 1.0, f, 1e-9)
}
