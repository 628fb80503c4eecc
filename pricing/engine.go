package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/skillshot/sportai/utils"
)

// Input carries the parameters of a single price calculation.
type Input struct {
	AssetType       string    `json:"asset_type"`
	BookingDate     time.Time `json:"booking_date"`
	TimeSlot        string    `json:"time_slot"`
	DurationHours   float64   `json:"duration_hours"`
	CustomerSegment string    `json:"customer_segment"`
	LeadTimeDays    int       `json:"lead_time_days"`
}

// Factor is one named step of the price waterfall, carrying the signed
// monetary impact and a human-readable explanation. The factor list exists
// for auditability and display; it feeds no further computation.
type Factor struct {
	Name        string  `json:"name"`
	Impact      float64 `json:"impact"`
	Explanation string  `json:"explanation"`
}

// Quote is the result of a price calculation.
type Quote struct {
	BaseRate      float64  `json:"base_rate"`
	DynamicRate   float64  `json:"dynamic_rate"`
	FinalPrice    float64  `json:"final_price"`
	AdjustmentPct float64  `json:"adjustment_pct"`
	Factors       []Factor `json:"factors"`
}

// DemandLevelFor derives the demand level from the booking date and slot:
// weekends are high demand, prime slots medium, everything else low.
func DemandLevelFor(bookingDate time.Time, slot string) DemandLevel {
	if utils.IsWeekend(bookingDate) {
		return DemandHigh
	}
	if strings.Contains(slot, "Prime") {
		return DemandMedium
	}
	return DemandLow
}

// Calculate computes a price quote from the given tables and guardrails.
//
// The calculation is deterministic and cannot fail: unknown asset types fall
// back to the default base rate and unknown demand levels or segments resolve
// to a 1.0 multiplier. The running price compounds the demand multiplier and
// lead-time discount, while the segment adjustment is computed off the base
// rate and added to the running price. That asymmetry is inherited from the
// original rate card and is kept as a documented contract; tests pin it down.
func Calculate(in Input, tables Tables, guardrails Guardrails) Quote {
	daypart := DaypartForSlot(in.TimeSlot)
	baseRate := tables.Rates.BaseRate(in.AssetType, daypart)

	factors := []Factor{{
		Name:        "Base Rate",
		Impact:      baseRate,
		Explanation: fmt.Sprintf("%s during %s time", in.AssetType, daypart),
	}}

	currentPrice := baseRate

	// Demand adjustment compounds on the running price.
	demandLevel := DemandLevelFor(in.BookingDate, in.TimeSlot)
	demandImpact := currentPrice * (tables.DemandMultipliers.Factor(demandLevel) - 1)
	if demandImpact != 0 {
		factors = append(factors, Factor{
			Name:        titleCase(string(demandLevel)) + " Demand",
			Impact:      demandImpact,
			Explanation: fmt.Sprintf("Demand is %s for this date/time", demandLevel),
		})
		currentPrice += demandImpact
	}

	// Early-booking discount: longest qualifying bucket, compounding on the
	// running price. The factor is recorded whenever the lead time qualifies,
	// even if the configured discount is 1.0.
	if discount, ok := tables.LeadTimeDiscounts.Factor(in.LeadTimeDays); ok {
		leadImpact := currentPrice * (discount - 1)
		factors = append(factors, Factor{
			Name:        "Early Booking",
			Impact:      leadImpact,
			Explanation: fmt.Sprintf("%d days advance notice earns discount", in.LeadTimeDays),
		})
		currentPrice += leadImpact
	}

	// Segment adjustment is computed off the BASE rate, not the running
	// price, then added to the running price.
	segmentImpact := baseRate * (tables.Segments.Factor(in.CustomerSegment) - 1)
	if segmentImpact != 0 {
		factors = append(factors, Factor{
			Name:        titleCase(in.CustomerSegment) + " Rate",
			Impact:      segmentImpact,
			Explanation: fmt.Sprintf("%s customer segment pricing", titleCase(in.CustomerSegment)),
		})
		currentPrice += segmentImpact
	}

	// Guardrail clamp. Reported as a factor, never as an error.
	preGuardrail := currentPrice
	currentPrice = guardrails.Clamp(currentPrice, baseRate)
	if currentPrice != preGuardrail {
		factors = append(factors, Factor{
			Name:        "Guardrail Cap",
			Impact:      currentPrice - preGuardrail,
			Explanation: "Price capped per policy limits",
		})
	}

	finalPrice := currentPrice * in.DurationHours
	factors = append(factors, Factor{
		Name:        "Final Price",
		Impact:      finalPrice,
		Explanation: fmt.Sprintf("%g hours × $%.2f/hr", in.DurationHours, currentPrice),
	})

	return Quote{
		BaseRate:      baseRate,
		DynamicRate:   currentPrice,
		FinalPrice:    finalPrice,
		AdjustmentPct: (currentPrice - baseRate) / baseRate * 100,
		Factors:       factors,
	}
}

// titleCase turns a snake_case segment or level key into a display name,
// e.g. "non_profit" -> "Non Profit".
func titleCase(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
