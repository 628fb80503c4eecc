package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/app/middleware"
	businessflow "github.com/skillshot/sportai/business_flow"
)

// PricingHandlerInterface defines the contract for pricing handlers
type PricingHandlerInterface interface {
	Quote(c fiber.Ctx) error
	GetConfig(c fiber.Ctx) error
	UpdateRates(c fiber.Ctx) error
	UpdateGuardrails(c fiber.Ctx) error
	History(c fiber.Ctx) error
}

// PricingHandler handles pricing-related HTTP requests
type PricingHandler struct {
	pricingFlow businessflow.PricingFlow
	validator   *validator.Validate
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(pricingFlow businessflow.PricingFlow) PricingHandlerInterface {
	return &PricingHandler{
		pricingFlow: pricingFlow,
		validator:   validator.New(),
	}
}

func (h *PricingHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *PricingHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Quote computes a guardrail-bounded price for a prospective booking
// @Summary Price Quote
// @Description Compute a price quote with the full factor breakdown
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Quote parameters"
// @Success 200 {object} dto.APIResponse{data=dto.QuoteResponse} "Quote computed"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/pricing/quote [post]
func (h *PricingHandler) Quote(c fiber.Ctx) error {
	var req dto.QuoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	result, err := h.pricingFlow.Quote(createRequestContext(c, "/api/v1/pricing/quote"), &req)
	if err != nil {
		log.Println("Quote failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Quote failed", "QUOTE_FAILED", nil)
	}

	middleware.ObserveQuote(req.CustomerSegment)

	return h.SuccessResponse(c, fiber.StatusOK, "Quote computed", result)
}

// GetConfig returns the active rate tables and guardrail policy
// @Summary Pricing Configuration
// @Description Get the active rate tables and guardrail policy with versions
// @Tags Pricing
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.PricingConfigResponse} "Configuration retrieved"
// @Router /api/v1/pricing/config [get]
// @Security BearerAuth
func (h *PricingHandler) GetConfig(c fiber.Ctx) error {
	result, err := h.pricingFlow.GetConfig(createRequestContext(c, "/api/v1/pricing/config"))
	if err != nil {
		log.Println("Pricing config retrieval failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load pricing configuration", "PRICING_CONFIG_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Pricing configuration retrieved", result)
}

// UpdateRates stores a new rate table version
// @Summary Update Rate Tables
// @Description Store a new version of the rate tables
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body dto.UpdateRatesRequest true "New rate tables"
// @Success 200 {object} dto.APIResponse{data=dto.UpdatePricingConfigResponse} "Rates updated"
// @Failure 400 {object} dto.APIResponse "Invalid rate values"
// @Router /api/v1/pricing/rates [put]
// @Security BearerAuth
func (h *PricingHandler) UpdateRates(c fiber.Ctx) error {
	staffID, ok := middleware.GetStaffIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.UpdateRatesRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	result, err := h.pricingFlow.UpdateRates(createRequestContext(c, "/api/v1/pricing/rates"), &req, staffID, clientMetadataFrom(c))
	if err != nil {
		var businessErr *businessflow.BusinessError
		if ok := errors.As(err, &businessErr); ok && businessErr.Code == "PRICING_RATE_INVALID" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, businessErr.Message, businessErr.Code, nil)
		}

		log.Println("Rate update failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Rate update failed", "RATES_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// UpdateGuardrails stores a new guardrail policy version
// @Summary Update Guardrails
// @Description Store a new version of the guardrail policy
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body dto.UpdateGuardrailsRequest true "New guardrail policy"
// @Success 200 {object} dto.APIResponse{data=dto.UpdatePricingConfigResponse} "Guardrails updated"
// @Failure 400 {object} dto.APIResponse "Invalid guardrail band"
// @Router /api/v1/pricing/guardrails [put]
// @Security BearerAuth
func (h *PricingHandler) UpdateGuardrails(c fiber.Ctx) error {
	staffID, ok := middleware.GetStaffIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.UpdateGuardrailsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	result, err := h.pricingFlow.UpdateGuardrails(createRequestContext(c, "/api/v1/pricing/guardrails"), &req, staffID, clientMetadataFrom(c))
	if err != nil {
		var businessErr *businessflow.BusinessError
		if ok := errors.As(err, &businessErr); ok && businessErr.Code == "PRICING_GUARDRAIL_INVALID" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, businessErr.Message, businessErr.Code, nil)
		}

		log.Println("Guardrail update failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Guardrail update failed", "GUARDRAILS_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// History lists pricing configuration versions for a document kind
// @Summary Pricing History
// @Description List stored configuration versions, newest first
// @Tags Pricing
// @Produce json
// @Param kind path string true "Document kind (rates or guardrails)"
// @Success 200 {object} dto.APIResponse{data=dto.PricingHistoryResponse} "History retrieved"
// @Failure 400 {object} dto.APIResponse "Unknown kind"
// @Router /api/v1/pricing/history/{kind} [get]
// @Security BearerAuth
func (h *PricingHandler) History(c fiber.Ctx) error {
	kind := c.Params("kind")
	page := 1
	pageSize := 20
	if pageStr := c.Query("page"); pageStr != "" {
		if v, err := strconv.Atoi(pageStr); err == nil {
			page = v
		}
	}
	if pageSizeStr := c.Query("page_size"); pageSizeStr != "" {
		if v, err := strconv.Atoi(pageSizeStr); err == nil {
			pageSize = v
		}
	}

	result, err := h.pricingFlow.History(createRequestContext(c, "/api/v1/pricing/history"), kind, page, pageSize)
	if err != nil {
		if businessflow.IsPricingDocumentNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Unknown pricing document kind", "PRICING_KIND_UNKNOWN", nil)
		}

		log.Println("Pricing history retrieval failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load pricing history", "PRICING_HISTORY_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}
