package pricing

// DefaultTables returns the rate card the platform ships with. Operators
// normally replace these through the pricing admin endpoints; the defaults
// keep quoting functional on a fresh install.
func DefaultTables() Tables {
	return Tables{
		Rates: RateTable{
			"turf_full": {DaypartPrime: 275, DaypartStandard: 200, DaypartOffPeak: 150},
			"turf_half": {DaypartPrime: 150, DaypartStandard: 110, DaypartOffPeak: 85},
			"court":     {DaypartPrime: 45, DaypartStandard: 35, DaypartOffPeak: 25},
			"golf_bay":  {DaypartPrime: 55, DaypartStandard: 45, DaypartOffPeak: 35},
		},
		DemandMultipliers: DemandMultiplierTable{
			DemandHigh:   1.25,
			DemandMedium: 1.0,
			DemandLow:    0.85,
		},
		LeadTimeDiscounts: LeadTimeDiscountTable{
			LeadTimeBucket30: 0.95,
			LeadTimeBucket60: 0.90,
			LeadTimeBucket90: 0.85,
		},
		Segments: SegmentTable{
			"youth":      0.80,
			"non_profit": 0.85,
			"regular":    1.0,
			"corporate":  1.15,
			"tournament": 1.20,
		},
	}
}

// DefaultGuardrails returns the board-approved policy defaults.
func DefaultGuardrails() Guardrails {
	return Guardrails{
		MaxPriceChangePercent:   25,
		MaxSurgeFactor:          1.5,
		MinDiscountFloor:        0.70,
		MinLeadTimeHours:        4,
		MinCommunityHoursWeekly: 20,
	}
}
