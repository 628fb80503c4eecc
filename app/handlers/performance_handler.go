package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/skillshot/sportai/app/dto"
	businessflow "github.com/skillshot/sportai/business_flow"
)

// PerformanceHandlerInterface defines the contract for performance handlers
type PerformanceHandlerInterface interface {
	ConfigurePod(c fiber.Ctx) error
	GetPodConfig(c fiber.Ctx) error
	RecordSession(c fiber.Ctx) error
	Leaderboard(c fiber.Ctx) error
}

// PerformanceHandler handles pod and performance HTTP requests
type PerformanceHandler struct {
	performanceFlow businessflow.PerformanceFlow
	validator       *validator.Validate
}

// NewPerformanceHandler creates a new performance handler
func NewPerformanceHandler(performanceFlow businessflow.PerformanceFlow) PerformanceHandlerInterface {
	return &PerformanceHandler{
		performanceFlow: performanceFlow,
		validator:       validator.New(),
	}
}

func (h *PerformanceHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *PerformanceHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ConfigurePod creates or replaces a pod configuration
// @Summary Configure Pod
// @Description Set the technology packages and access rules of a training pod
// @Tags Performance
// @Accept json
// @Produce json
// @Param request body dto.ConfigurePodRequest true "Pod configuration"
// @Success 200 {object} dto.APIResponse{data=dto.PodConfigResponse} "Configuration saved"
// @Failure 404 {object} dto.APIResponse "Asset not found"
// @Router /api/v1/pods [put]
// @Security BearerAuth
func (h *PerformanceHandler) ConfigurePod(c fiber.Ctx) error {
	var req dto.ConfigurePodRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	result, err := h.performanceFlow.ConfigurePod(createRequestContext(c, "/api/v1/pods"), &req, staffIDFrom(c), clientMetadataFrom(c))
	if err != nil {
		if businessflow.IsAssetNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Asset not found", "ASSET_NOT_FOUND", nil)
		}

		var businessErr *businessflow.BusinessError
		if ok := errors.As(err, &businessErr); ok && businessErr.Code != "POD_CONFIG_SAVE_FAILED" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, businessErr.Message, businessErr.Code, nil)
		}

		log.Println("Pod configuration failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Pod configuration failed", "POD_CONFIG_SAVE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// GetPodConfig returns the pod configuration of an asset
// @Summary Get Pod Configuration
// @Description Get the pod configuration attached to an asset
// @Tags Performance
// @Produce json
// @Param uuid path string true "Asset UUID"
// @Success 200 {object} dto.APIResponse{data=dto.PodConfigResponse} "Configuration retrieved"
// @Failure 404 {object} dto.APIResponse "Configuration not found"
// @Router /api/v1/pods/{uuid} [get]
// @Security BearerAuth
func (h *PerformanceHandler) GetPodConfig(c fiber.Ctx) error {
	assetUUID := c.Params("uuid")

	result, err := h.performanceFlow.GetPodConfig(createRequestContext(c, "/api/v1/pods/get"), assetUUID)
	if err != nil {
		if businessflow.IsAssetNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Asset not found", "ASSET_NOT_FOUND", nil)
		}
		if businessflow.IsPodConfigNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Pod configuration not found", "POD_CONFIG_NOT_FOUND", nil)
		}

		log.Println("Pod configuration retrieval failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Pod configuration retrieval failed", "POD_CONFIG_GET_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// RecordSession captures one athlete measurement
// @Summary Record Session
// @Description Record a single athlete measurement captured by a pod
// @Tags Performance
// @Accept json
// @Produce json
// @Param request body dto.RecordSessionRequest true "Measurement"
// @Success 201 {object} dto.APIResponse{data=dto.PerformanceSessionResponse} "Session recorded"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/performance/sessions [post]
// @Security BearerAuth
func (h *PerformanceHandler) RecordSession(c fiber.Ctx) error {
	var req dto.RecordSessionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	result, err := h.performanceFlow.RecordSession(createRequestContext(c, "/api/v1/performance/sessions"), &req, staffIDFrom(c), clientMetadataFrom(c))
	if err != nil {
		if businessflow.IsAssetNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Asset not found", "ASSET_NOT_FOUND", nil)
		}

		var businessErr *businessflow.BusinessError
		if ok := errors.As(err, &businessErr); ok && businessErr.Code != "SESSION_SAVE_FAILED" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, businessErr.Message, businessErr.Code, nil)
		}

		log.Println("Session recording failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Session recording failed", "SESSION_SAVE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// Leaderboard ranks athletes for one metric
// @Summary Metric Leaderboard
// @Description Rank athletes by their best value for a metric over a trailing window
// @Tags Performance
// @Produce json
// @Param metric path string true "Metric name"
// @Param days query int false "Trailing window in days (default 30)"
// @Param limit query int false "Maximum rows (default 10)"
// @Success 200 {object} dto.APIResponse{data=dto.LeaderboardResponse} "Leaderboard retrieved"
// @Router /api/v1/performance/leaderboard/{metric} [get]
// @Security BearerAuth
func (h *PerformanceHandler) Leaderboard(c fiber.Ctx) error {
	metric := c.Params("metric")

	days := 0
	if daysStr := c.Query("days"); daysStr != "" {
		if v, err := strconv.Atoi(daysStr); err == nil {
			days = v
		}
	}
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil {
			limit = v
		}
	}

	result, err := h.performanceFlow.Leaderboard(createRequestContext(c, "/api/v1/performance/leaderboard"), metric, days, limit)
	if err != nil {
		log.Println("Leaderboard retrieval failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Leaderboard retrieval failed", "LEADERBOARD_QUERY_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}
