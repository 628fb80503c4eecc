package dto

// ReportRangeRequest bounds a reporting window
type ReportRangeRequest struct {
	From string `json:"from" validate:"required,datetime=2006-01-02"`
	To   string `json:"to" validate:"required,datetime=2006-01-02"`
}

// SegmentRevenueItem is one row of the revenue-by-segment report
type SegmentRevenueItem struct {
	CustomerSegment string  `json:"customer_segment"`
	BookingCount    int64   `json:"booking_count"`
	TotalHours      float64 `json:"total_hours"`
	TotalRevenue    float64 `json:"total_revenue"`
}

// RevenueReportResponse summarizes booking revenue per segment
type RevenueReportResponse struct {
	Message      string               `json:"message"`
	From         string               `json:"from"`
	To           string               `json:"to"`
	TotalRevenue float64              `json:"total_revenue"`
	Items        []SegmentRevenueItem `json:"items"`
}

// AssetUtilizationItem is one row of the utilization report
type AssetUtilizationItem struct {
	AssetID      uint    `json:"asset_id"`
	AssetName    string  `json:"asset_name"`
	AssetType    string  `json:"asset_type"`
	BookingCount int64   `json:"booking_count"`
	BookedHours  float64 `json:"booked_hours"`
	TotalRevenue float64 `json:"total_revenue"`
}

// UtilizationReportResponse summarizes booked hours per asset
type UtilizationReportResponse struct {
	Message string                 `json:"message"`
	From    string                 `json:"from"`
	To      string                 `json:"to"`
	Items   []AssetUtilizationItem `json:"items"`
}
