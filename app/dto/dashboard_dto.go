package dto

// DashboardSnapshot is the cached operational overview
type DashboardSnapshot struct {
	GeneratedAt       string           `json:"generated_at"`
	ActiveAssets      int64            `json:"active_assets"`
	BookingsToday     int64            `json:"bookings_today"`
	RevenueMonth      float64          `json:"revenue_month"`
	ActiveMembers     int64            `json:"active_members"`
	MembersByTier     map[string]int64 `json:"members_by_tier"`
	ActiveSponsors     int64           `json:"active_sponsors"`
	OpenContracts      int64           `json:"open_contracts"`
	AvailableInventory int64           `json:"available_inventory"`
}

// DashboardResponse wraps the snapshot with cache provenance
type DashboardResponse struct {
	Message   string            `json:"message"`
	FromCache bool              `json:"from_cache"`
	Snapshot  DashboardSnapshot `json:"snapshot"`
}
