package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/skillshot/sportai/app/dto"
	businessflow "github.com/skillshot/sportai/business_flow"
)

// AssetHandlerInterface defines the contract for asset handlers
type AssetHandlerInterface interface {
	Create(c fiber.Ctx) error
	List(c fiber.Ctx) error
}

// AssetHandler handles asset catalog HTTP requests
type AssetHandler struct {
	assetFlow businessflow.AssetFlow
	validator *validator.Validate
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assetFlow businessflow.AssetFlow) AssetHandlerInterface {
	return &AssetHandler{
		assetFlow: assetFlow,
		validator: validator.New(),
	}
}

func (h *AssetHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AssetHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Create registers a bookable asset
// @Summary Create Asset
// @Description Register a bookable asset in the catalog
// @Tags Assets
// @Accept json
// @Produce json
// @Param request body dto.CreateAssetRequest true "Asset details"
// @Success 201 {object} dto.APIResponse{data=dto.AssetResponse} "Asset created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/assets [post]
// @Security BearerAuth
func (h *AssetHandler) Create(c fiber.Ctx) error {
	var req dto.CreateAssetRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	result, err := h.assetFlow.CreateAsset(createRequestContext(c, "/api/v1/assets"), &req)
	if err != nil {
		log.Println("Asset creation failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Asset creation failed", "ASSET_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// List returns catalog assets, optionally filtered by site
// @Summary List Assets
// @Description List catalog assets, optionally filtered by site and active state
// @Tags Assets
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListAssetsResponse} "Assets retrieved"
// @Router /api/v1/assets [get]
func (h *AssetHandler) List(c fiber.Ctx) error {
	var siteID *string
	if v := c.Query("site_id"); v != "" {
		siteID = &v
	}
	activeOnly := c.Query("active") == "true"

	result, err := h.assetFlow.ListAssets(createRequestContext(c, "/api/v1/assets"), siteID, activeOnly)
	if err != nil {
		log.Println("Asset list failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list assets", "ASSET_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}
