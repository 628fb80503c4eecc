package handlers

import (
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/skillshot/sportai/app/dto"
	businessflow "github.com/skillshot/sportai/business_flow"
)

// BookingHandlerInterface defines the contract for booking handlers
type BookingHandlerInterface interface {
	Create(c fiber.Ctx) error
	Cancel(c fiber.Ctx) error
	List(c fiber.Ctx) error
	Availability(c fiber.Ctx) error
}

// BookingHandler handles booking-related HTTP requests
type BookingHandler struct {
	bookingFlow businessflow.BookingFlow
	validator   *validator.Validate
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingFlow businessflow.BookingFlow) BookingHandlerInterface {
	return &BookingHandler{
		bookingFlow: bookingFlow,
		validator:   validator.New(),
	}
}

func (h *BookingHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *BookingHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Create reserves a slot and returns the confirmed booking with its quote
// @Summary Create Booking
// @Description Book an asset slot at the guardrail-bounded price
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Booking details"
// @Success 201 {object} dto.APIResponse{data=dto.CreateBookingResponse} "Booking created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 409 {object} dto.APIResponse "Slot already booked"
// @Router /api/v1/bookings [post]
// @Security BearerAuth
func (h *BookingHandler) Create(c fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	result, err := h.bookingFlow.CreateBooking(createRequestContext(c, "/api/v1/bookings"), &req, staffIDFrom(c), clientMetadataFrom(c))
	if err != nil {
		if businessflow.IsAssetNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Asset not found", "ASSET_NOT_FOUND", nil)
		}
		if businessflow.IsSlotAlreadyBooked(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Time slot is already booked", "SLOT_TAKEN", nil)
		}
		if businessflow.IsLeadTimeTooShort(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Booking lead time is below the minimum", "LEAD_TIME_TOO_SHORT", nil)
		}

		log.Println("Booking creation failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Booking creation failed", "BOOKING_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// Cancel releases a booked slot and issues a refund
// @Summary Cancel Booking
// @Description Cancel a booking and record the refund
// @Tags Bookings
// @Produce json
// @Param uuid path string true "Booking UUID"
// @Success 200 {object} dto.APIResponse{data=dto.CancelBookingResponse} "Booking cancelled"
// @Failure 404 {object} dto.APIResponse "Booking not found"
// @Router /api/v1/bookings/{uuid} [delete]
// @Security BearerAuth
func (h *BookingHandler) Cancel(c fiber.Ctx) error {
	bookingUUID := c.Params("uuid")

	result, err := h.bookingFlow.CancelBooking(createRequestContext(c, "/api/v1/bookings/cancel"), bookingUUID, staffIDFrom(c), clientMetadataFrom(c))
	if err != nil {
		if businessflow.IsBookingNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Booking not found", "BOOKING_NOT_FOUND", nil)
		}

		log.Println("Booking cancellation failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Booking cancellation failed", "BOOKING_CANCEL_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// List returns bookings matching the query filters
// @Summary List Bookings
// @Description List bookings filtered by asset, segment, status and date range
// @Tags Bookings
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListBookingsResponse} "Bookings retrieved"
// @Router /api/v1/bookings [get]
// @Security BearerAuth
func (h *BookingHandler) List(c fiber.Ctx) error {
	req := dto.ListBookingsRequest{Page: 1, PageSize: 20}

	if v := c.Query("asset_uuid"); v != "" {
		req.AssetUUID = &v
	}
	if v := c.Query("customer_segment"); v != "" {
		req.CustomerSegment = &v
	}
	if v := c.Query("status"); v != "" {
		req.Status = &v
	}
	if v := c.Query("date_from"); v != "" {
		req.DateFrom = &v
	}
	if v := c.Query("date_to"); v != "" {
		req.DateTo = &v
	}
	if pageStr := c.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			req.Page = page
		}
	}
	if pageSizeStr := c.Query("page_size"); pageSizeStr != "" {
		if pageSize, err := strconv.Atoi(pageSizeStr); err == nil {
			req.PageSize = pageSize
		}
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	result, err := h.bookingFlow.ListBookings(createRequestContext(c, "/api/v1/bookings"), &req)
	if err != nil {
		if businessflow.IsAssetNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Asset not found", "ASSET_NOT_FOUND", nil)
		}

		log.Println("Booking list failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list bookings", "BOOKING_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Availability lists occupied slots for an asset on a date
// @Summary Slot Availability
// @Description List occupied slots for an asset on a given date
// @Tags Bookings
// @Produce json
// @Param uuid path string true "Asset UUID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.AvailabilityResponse} "Availability retrieved"
// @Router /api/v1/assets/{uuid}/availability [get]
func (h *BookingHandler) Availability(c fiber.Ctx) error {
	assetUUID := c.Params("uuid")
	date := c.Query("date")
	if date == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "date query parameter is required", "MISSING_DATE", nil)
	}

	result, err := h.bookingFlow.Availability(createRequestContext(c, "/api/v1/assets/availability"), assetUUID, date)
	if err != nil {
		if businessflow.IsAssetNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Asset not found", "ASSET_NOT_FOUND", nil)
		}

		log.Println("Availability lookup failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve availability", "AVAILABILITY_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}
