package dto

// CreateBookingRequest represents the payload to book an asset slot
type CreateBookingRequest struct {
	AssetUUID       string  `json:"asset_uuid" validate:"required,uuid4"`
	CustomerName    string  `json:"customer_name" validate:"required,min=2,max=255"`
	CustomerEmail   *string `json:"customer_email,omitempty" validate:"omitempty,email"`
	CustomerSegment string  `json:"customer_segment" validate:"required,oneof=youth non_profit regular corporate tournament"`
	BookingDate     string  `json:"booking_date" validate:"required,datetime=2006-01-02"`
	TimeSlot        string  `json:"time_slot" validate:"required"`
	DurationHours   float64 `json:"duration_hours" validate:"required,gt=0,lte=24"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// BookingDTO is the booking representation in API responses
type BookingDTO struct {
	ID              uint             `json:"id"`
	UUID            string           `json:"uuid"`
	AssetUUID       string           `json:"asset_uuid"`
	AssetName       string           `json:"asset_name"`
	CustomerName    string           `json:"customer_name"`
	CustomerEmail   *string          `json:"customer_email,omitempty"`
	CustomerSegment string           `json:"customer_segment"`
	BookingDate     string           `json:"booking_date"`
	TimeSlot        string           `json:"time_slot"`
	DurationHours   float64          `json:"duration_hours"`
	RatePerHour     float64          `json:"rate_per_hour"`
	TotalAmount     float64          `json:"total_amount"`
	PriceFactors    []PriceFactorDTO `json:"price_factors,omitempty"`
	Status          string           `json:"status"`
	Notes           *string          `json:"notes,omitempty"`
	CreatedAt       string           `json:"created_at"`
}

// CreateBookingResponse returns the confirmed booking with its quote breakdown
type CreateBookingResponse struct {
	Message string     `json:"message"`
	Booking BookingDTO `json:"booking"`
}

// ListBookingsRequest filters the booking list
type ListBookingsRequest struct {
	AssetUUID       *string `json:"asset_uuid,omitempty" validate:"omitempty,uuid4"`
	CustomerSegment *string `json:"customer_segment,omitempty" validate:"omitempty"`
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled"`
	DateFrom        *string `json:"date_from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DateTo          *string `json:"date_to,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Page            int     `json:"page" validate:"omitempty,min=1"`
	PageSize        int     `json:"page_size" validate:"omitempty,min=1,max=100"`
}

// ListBookingsResponse lists bookings with pagination
type ListBookingsResponse struct {
	Message    string       `json:"message"`
	Items      []BookingDTO `json:"items"`
	Pagination Pagination   `json:"pagination"`
}

// CancelBookingResponse acknowledges a cancellation
type CancelBookingResponse struct {
	Message string     `json:"message"`
	Booking BookingDTO `json:"booking"`
}

// AvailabilityResponse lists occupied slots for an asset on a date
type AvailabilityResponse struct {
	Message       string   `json:"message"`
	AssetUUID     string   `json:"asset_uuid"`
	Date          string   `json:"date"`
	OccupiedSlots []string `json:"occupied_slots"`
}
