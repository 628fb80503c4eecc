package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/pricing"
	"github.com/skillshot/sportai/repository"
	"github.com/skillshot/sportai/utils"
	"gorm.io/gorm"
)

// BookingFlow handles slot reservations against bookable assets
type BookingFlow interface {
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest, staffID *uint, metadata *ClientMetadata) (*dto.CreateBookingResponse, error)
	CancelBooking(ctx context.Context, bookingUUID string, staffID *uint, metadata *ClientMetadata) (*dto.CancelBookingResponse, error)
	ListBookings(ctx context.Context, req *dto.ListBookingsRequest) (*dto.ListBookingsResponse, error)
	Availability(ctx context.Context, assetUUID, date string) (*dto.AvailabilityResponse, error)
}

// BookingFlowImpl implements the booking business flow
type BookingFlowImpl struct {
	bookingRepo     repository.BookingRepository
	assetRepo       repository.AssetRepository
	transactionRepo repository.TransactionRepository
	auditRepo       repository.AuditLogRepository
	pricingFlow     PricingFlow
	db              *gorm.DB
}

// NewBookingFlow creates a new booking flow instance
func NewBookingFlow(
	bookingRepo repository.BookingRepository,
	assetRepo repository.AssetRepository,
	transactionRepo repository.TransactionRepository,
	auditRepo repository.AuditLogRepository,
	pricingFlow PricingFlow,
	db *gorm.DB,
) BookingFlow {
	return &BookingFlowImpl{
		bookingRepo:     bookingRepo,
		assetRepo:       assetRepo,
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
		pricingFlow:     pricingFlow,
		db:              db,
	}
}

// CreateBooking reserves a slot, prices it through the guardrail engine and
// records the charge in the ledger. The whole operation is transactional.
func (f *BookingFlowImpl) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest, staffID *uint, metadata *ClientMetadata) (*dto.CreateBookingResponse, error) {
	bookingDate, err := time.Parse("2006-01-02", req.BookingDate)
	if err != nil {
		return nil, NewBusinessError("BOOKING_DATE_INVALID", "Booking date is invalid", err)
	}
	if bookingDate.Before(utils.UTCNow().Truncate(24 * time.Hour)) {
		return nil, NewBusinessError("BOOKING_DATE_PAST", "Booking date is in the past", ErrBookingInPast)
	}
	if req.DurationHours <= 0 || req.DurationHours > 24 {
		return nil, NewBusinessError("BOOKING_DURATION_INVALID", "Duration must be between 0 and 24 hours", ErrDurationOutOfRange)
	}

	assetUUID, err := uuid.Parse(req.AssetUUID)
	if err != nil {
		return nil, NewBusinessError("BOOKING_ASSET_UUID_INVALID", "Asset identifier is invalid", err)
	}

	asset, err := f.assetRepo.ByUUID(ctx, assetUUID)
	if err != nil {
		return nil, NewBusinessError("BOOKING_ASSET_LOOKUP_FAILED", "Failed to look up asset", err)
	}
	if asset == nil {
		return nil, NewBusinessError("BOOKING_ASSET_NOT_FOUND", "Asset not found", ErrAssetNotFound)
	}
	if !utils.IsTrue(asset.IsActive) {
		return nil, NewBusinessError("BOOKING_ASSET_INACTIVE", "Asset is not open for booking", ErrAssetInactive)
	}

	tables, guardrails, err := f.pricingFlow.ActiveTables(ctx)
	if err != nil {
		return nil, NewBusinessError("BOOKING_CONFIG_LOAD_FAILED", "Failed to load pricing configuration", err)
	}

	if hours := time.Until(bookingDate).Hours(); hours < float64(guardrails.MinLeadTimeHours) {
		return nil, NewBusinessErrorf("BOOKING_LEAD_TIME_TOO_SHORT",
			"Bookings require at least %d hours of lead time", ErrLeadTimeTooShort, guardrails.MinLeadTimeHours)
	}

	conflict, err := f.bookingRepo.HasConflict(ctx, asset.ID, bookingDate, req.TimeSlot)
	if err != nil {
		return nil, NewBusinessError("BOOKING_CONFLICT_CHECK_FAILED", "Failed to check slot availability", err)
	}
	if conflict {
		return nil, NewBusinessError("BOOKING_SLOT_TAKEN", "Time slot is already booked", ErrSlotAlreadyBooked)
	}

	quote := pricing.Calculate(pricing.Input{
		AssetType:       asset.Type,
		BookingDate:     bookingDate,
		TimeSlot:        req.TimeSlot,
		DurationHours:   req.DurationHours,
		CustomerSegment: req.CustomerSegment,
		LeadTimeDays:    leadTimeDaysFor(bookingDate, nil),
	}, tables, guardrails)

	factorsJSON, err := json.Marshal(quote.Factors)
	if err != nil {
		return nil, NewBusinessError("BOOKING_QUOTE_ENCODE_FAILED", "Failed to encode quote breakdown", err)
	}

	booking := &models.Booking{
		AssetID:         asset.ID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerSegment: req.CustomerSegment,
		BookingDate:     bookingDate,
		TimeSlot:        req.TimeSlot,
		DurationHours:   req.DurationHours,
		RatePerHour:     quote.DynamicRate,
		TotalAmount:     quote.FinalPrice,
		PriceFactors:    factorsJSON,
		Status:          models.BookingStatusConfirmed,
		Notes:           req.Notes,
		CreatedAt:       utils.UTCNow(),
		UpdatedAt:       utils.UTCNow(),
	}
	if staffID != nil {
		createdBy := fmt.Sprintf("staff:%d", *staffID)
		booking.CreatedBy = &createdBy
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		// re-check inside the transaction to close the race window
		conflict, err := f.bookingRepo.HasConflict(txCtx, asset.ID, bookingDate, req.TimeSlot)
		if err != nil {
			return err
		}
		if conflict {
			return ErrSlotAlreadyBooked
		}

		if err := f.bookingRepo.Save(txCtx, booking); err != nil {
			return fmt.Errorf("failed to save booking: %w", err)
		}

		charge := &models.Transaction{
			Type:        models.TransactionTypeBookingCharge,
			Status:      models.TransactionStatusCompleted,
			Amount:      booking.TotalAmount,
			Currency:    utils.DefaultCurrency,
			BookingID:   &booking.ID,
			Description: fmt.Sprintf("Booking charge for %s on %s %s", asset.Name, req.BookingDate, req.TimeSlot),
		}
		if err := f.transactionRepo.Save(txCtx, charge); err != nil {
			return fmt.Errorf("failed to record booking charge: %w", err)
		}

		return nil
	})
	if err != nil {
		if IsSlotAlreadyBooked(err) {
			return nil, NewBusinessError("BOOKING_SLOT_TAKEN", "Time slot is already booked", err)
		}
		f.logBookingAction(ctx, staffID, models.AuditActionBookingCreated,
			fmt.Sprintf("Booking failed for asset %s: %v", asset.Name, err), false, metadata)
		return nil, NewBusinessError("BOOKING_CREATE_FAILED", "Failed to create booking", err)
	}

	booking.Asset = *asset
	f.logBookingAction(ctx, staffID, models.AuditActionBookingCreated,
		fmt.Sprintf("Booking %s created for asset %s", booking.UUID, asset.Name), true, metadata)

	return &dto.CreateBookingResponse{
		Message: "Booking created successfully",
		Booking: ToBookingDTO(*booking),
	}, nil
}

// CancelBooking releases the slot and records a refund linked to the original
// charge through its correlation id.
func (f *BookingFlowImpl) CancelBooking(ctx context.Context, bookingUUID string, staffID *uint, metadata *ClientMetadata) (*dto.CancelBookingResponse, error) {
	id, err := uuid.Parse(bookingUUID)
	if err != nil {
		return nil, NewBusinessError("BOOKING_UUID_INVALID", "Booking identifier is invalid", err)
	}

	booking, err := f.bookingRepo.ByUUID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("BOOKING_LOOKUP_FAILED", "Failed to look up booking", err)
	}
	if booking == nil {
		return nil, NewBusinessError("BOOKING_NOT_FOUND", "Booking not found", ErrBookingNotFound)
	}
	if booking.IsCancelled() {
		return nil, NewBusinessError("BOOKING_ALREADY_CANCELLED", "Booking is already cancelled", ErrBookingCancelled)
	}

	bookingType := models.TransactionTypeBookingCharge
	charges, err := f.transactionRepo.ByFilter(ctx, models.TransactionFilter{
		BookingID: &booking.ID,
		Type:      &bookingType,
	}, "created_at ASC", 1, 0)
	if err != nil {
		return nil, NewBusinessError("BOOKING_LEDGER_LOOKUP_FAILED", "Failed to look up booking charge", err)
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		booking.Status = models.BookingStatusCancelled
		booking.UpdatedAt = utils.UTCNow()
		if err := f.bookingRepo.Update(txCtx, booking); err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		refund := &models.Transaction{
			Type:        models.TransactionTypeBookingRefund,
			Status:      models.TransactionStatusCompleted,
			Amount:      -booking.TotalAmount,
			Currency:    utils.DefaultCurrency,
			BookingID:   &booking.ID,
			Description: fmt.Sprintf("Refund for cancelled booking %s", booking.UUID),
		}
		if len(charges) > 0 {
			refund.CorrelationID = charges[0].CorrelationID
		}
		if err := f.transactionRepo.Save(txCtx, refund); err != nil {
			return fmt.Errorf("failed to record refund: %w", err)
		}

		return nil
	})
	if err != nil {
		f.logBookingAction(ctx, staffID, models.AuditActionBookingCancelled,
			fmt.Sprintf("Cancellation failed for booking %s: %v", booking.UUID, err), false, metadata)
		return nil, NewBusinessError("BOOKING_CANCEL_FAILED", "Failed to cancel booking", err)
	}

	f.logBookingAction(ctx, staffID, models.AuditActionBookingCancelled,
		fmt.Sprintf("Booking %s cancelled", booking.UUID), true, metadata)

	return &dto.CancelBookingResponse{
		Message: "Booking cancelled successfully",
		Booking: ToBookingDTO(*booking),
	}, nil
}

// ListBookings returns bookings matching the filter, newest first
func (f *BookingFlowImpl) ListBookings(ctx context.Context, req *dto.ListBookingsRequest) (*dto.ListBookingsResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	filter := models.BookingFilter{
		CustomerSegment: req.CustomerSegment,
		Status:          req.Status,
	}
	if req.AssetUUID != nil {
		assetUUID, err := uuid.Parse(*req.AssetUUID)
		if err != nil {
			return nil, NewBusinessError("BOOKING_ASSET_UUID_INVALID", "Asset identifier is invalid", err)
		}
		asset, err := f.assetRepo.ByUUID(ctx, assetUUID)
		if err != nil {
			return nil, NewBusinessError("BOOKING_ASSET_LOOKUP_FAILED", "Failed to look up asset", err)
		}
		if asset == nil {
			return nil, NewBusinessError("BOOKING_ASSET_NOT_FOUND", "Asset not found", ErrAssetNotFound)
		}
		filter.AssetID = &asset.ID
	}
	if req.DateFrom != nil {
		from, err := time.Parse("2006-01-02", *req.DateFrom)
		if err != nil {
			return nil, NewBusinessError("BOOKING_DATE_INVALID", "Date range is invalid", err)
		}
		filter.DateFrom = &from
	}
	if req.DateTo != nil {
		to, err := time.Parse("2006-01-02", *req.DateTo)
		if err != nil {
			return nil, NewBusinessError("BOOKING_DATE_INVALID", "Date range is invalid", err)
		}
		filter.DateTo = &to
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return nil, NewBusinessError("BOOKING_DATE_RANGE_INVALID", "Start date cannot be after end date", ErrStartDateAfterEndDate)
	}

	total, err := f.bookingRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("BOOKING_COUNT_FAILED", "Failed to count bookings", err)
	}

	rows, err := f.bookingRepo.ByFilter(ctx, filter, "booking_date DESC, created_at DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("BOOKING_LIST_FAILED", "Failed to list bookings", err)
	}

	items := make([]dto.BookingDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, ToBookingDTO(*row))
	}

	return &dto.ListBookingsResponse{
		Message: "Bookings retrieved successfully",
		Items:   items,
		Pagination: dto.Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	}, nil
}

// Availability lists the occupied slots for an asset on a given date
func (f *BookingFlowImpl) Availability(ctx context.Context, assetUUID, date string) (*dto.AvailabilityResponse, error) {
	id, err := uuid.Parse(assetUUID)
	if err != nil {
		return nil, NewBusinessError("BOOKING_ASSET_UUID_INVALID", "Asset identifier is invalid", err)
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, NewBusinessError("BOOKING_DATE_INVALID", "Date is invalid", err)
	}

	asset, err := f.assetRepo.ByUUID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("BOOKING_ASSET_LOOKUP_FAILED", "Failed to look up asset", err)
	}
	if asset == nil {
		return nil, NewBusinessError("BOOKING_ASSET_NOT_FOUND", "Asset not found", ErrAssetNotFound)
	}

	rows, err := f.bookingRepo.ListByAssetAndDate(ctx, asset.ID, day)
	if err != nil {
		return nil, NewBusinessError("BOOKING_LIST_FAILED", "Failed to list bookings", err)
	}

	occupied := make([]string, 0, len(rows))
	for _, row := range rows {
		if !row.IsCancelled() {
			occupied = append(occupied, row.TimeSlot)
		}
	}

	return &dto.AvailabilityResponse{
		Message:       "Availability retrieved successfully",
		AssetUUID:     assetUUID,
		Date:          date,
		OccupiedSlots: occupied,
	}, nil
}

func (f *BookingFlowImpl) logBookingAction(ctx context.Context, staffID *uint, action, description string, success bool, metadata *ClientMetadata) {
	entry := &models.AuditLog{
		StaffID:     staffID,
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
