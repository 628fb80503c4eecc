package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/skillshot/sportai/app/dto"
	businessflow "github.com/skillshot/sportai/business_flow"
)

// SponsorshipHandlerInterface defines the contract for sponsorship handlers
type SponsorshipHandlerInterface interface {
	CreateSponsor(c fiber.Ctx) error
	ListSponsors(c fiber.Ctx) error
	CreateInventory(c fiber.Ctx) error
	ListInventory(c fiber.Ctx) error
	ProposeBundle(c fiber.Ctx) error
	SignContract(c fiber.Ctx) error
	ListContracts(c fiber.Ctx) error
}

// SponsorshipHandler handles sponsorship-related HTTP requests
type SponsorshipHandler struct {
	sponsorshipFlow businessflow.SponsorshipFlow
	validator       *validator.Validate
}

// NewSponsorshipHandler creates a new sponsorship handler
func NewSponsorshipHandler(sponsorshipFlow businessflow.SponsorshipFlow) SponsorshipHandlerInterface {
	return &SponsorshipHandler{
		sponsorshipFlow: sponsorshipFlow,
		validator:       validator.New(),
	}
}

func (h *SponsorshipHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *SponsorshipHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreateSponsor registers a sponsor prospect
// @Summary Register Sponsor
// @Description Register a sponsor as a prospect
// @Tags Sponsorships
// @Accept json
// @Produce json
// @Param request body dto.CreateSponsorRequest true "Sponsor details"
// @Success 201 {object} dto.APIResponse{data=dto.SponsorResponse} "Sponsor registered"
// @Router /api/v1/sponsors [post]
// @Security BearerAuth
func (h *SponsorshipHandler) CreateSponsor(c fiber.Ctx) error {
	var req dto.CreateSponsorRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	result, err := h.sponsorshipFlow.CreateSponsor(createRequestContext(c, "/api/v1/sponsors"), &req)
	if err != nil {
		log.Println("Sponsor registration failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Sponsor registration failed", "SPONSOR_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// ListSponsors lists sponsors, optionally filtered by status
// @Summary List Sponsors
// @Description List sponsors, optionally filtered by status
// @Tags Sponsorships
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListSponsorsResponse} "Sponsors retrieved"
// @Router /api/v1/sponsors [get]
// @Security BearerAuth
func (h *SponsorshipHandler) ListSponsors(c fiber.Ctx) error {
	var status *string
	if v := c.Query("status"); v != "" {
		status = &v
	}

	result, err := h.sponsorshipFlow.ListSponsors(createRequestContext(c, "/api/v1/sponsors"), status)
	if err != nil {
		log.Println("Sponsor list failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list sponsors", "SPONSOR_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// CreateInventory adds a sellable inventory item to the catalog
// @Summary Create Inventory Item
// @Description Add a sellable sponsorship inventory item
// @Tags Sponsorships
// @Accept json
// @Produce json
// @Param request body dto.CreateSponsorshipAssetRequest true "Inventory item"
// @Success 201 {object} dto.APIResponse{data=dto.SponsorshipAssetDTO} "Inventory item created"
// @Router /api/v1/sponsorship-inventory [post]
// @Security BearerAuth
func (h *SponsorshipHandler) CreateInventory(c fiber.Ctx) error {
	var req dto.CreateSponsorshipAssetRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	result, err := h.sponsorshipFlow.CreateInventory(createRequestContext(c, "/api/v1/sponsorship-inventory"), &req)
	if err != nil {
		log.Println("Inventory creation failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Inventory creation failed", "INVENTORY_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Inventory item created", result)
}

// ListInventory lists sellable inventory
// @Summary List Inventory
// @Description List sponsorship inventory, optionally only available items
// @Tags Sponsorships
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListSponsorshipAssetsResponse} "Inventory retrieved"
// @Router /api/v1/sponsorship-inventory [get]
// @Security BearerAuth
func (h *SponsorshipHandler) ListInventory(c fiber.Ctx) error {
	availableOnly := c.Query("available") == "true"

	result, err := h.sponsorshipFlow.ListInventory(createRequestContext(c, "/api/v1/sponsorship-inventory"), availableOnly)
	if err != nil {
		log.Println("Inventory list failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list inventory", "INVENTORY_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ProposeBundle builds a discounted contract from selected inventory
// @Summary Propose Bundle
// @Description Propose a discounted sponsorship bundle to a sponsor
// @Tags Sponsorships
// @Accept json
// @Produce json
// @Param request body dto.ProposeBundleRequest true "Bundle selection"
// @Success 201 {object} dto.APIResponse{data=dto.ContractResponse} "Bundle proposed"
// @Failure 409 {object} dto.APIResponse "Inventory unavailable"
// @Router /api/v1/contracts/propose [post]
// @Security BearerAuth
func (h *SponsorshipHandler) ProposeBundle(c fiber.Ctx) error {
	var req dto.ProposeBundleRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	result, err := h.sponsorshipFlow.ProposeBundle(createRequestContext(c, "/api/v1/contracts/propose"), &req, staffIDFrom(c), clientMetadataFrom(c))
	if err != nil {
		if businessflow.IsSponsorNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Sponsor not found", "SPONSOR_NOT_FOUND", nil)
		}
		if businessflow.IsInventoryUnavailable(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "One or more inventory items are not available", "INVENTORY_UNAVAILABLE", nil)
		}

		log.Println("Bundle proposal failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Bundle proposal failed", "BUNDLE_PROPOSE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// SignContract marks a proposed contract as signed
// @Summary Sign Contract
// @Description Sign a proposed contract and sell its bundled inventory
// @Tags Sponsorships
// @Produce json
// @Param uuid path string true "Contract UUID"
// @Success 200 {object} dto.APIResponse{data=dto.ContractResponse} "Contract signed"
// @Failure 409 {object} dto.APIResponse "Contract not signable"
// @Router /api/v1/contracts/{uuid}/sign [post]
// @Security BearerAuth
func (h *SponsorshipHandler) SignContract(c fiber.Ctx) error {
	contractUUID := c.Params("uuid")

	result, err := h.sponsorshipFlow.SignContract(createRequestContext(c, "/api/v1/contracts/sign"), contractUUID, staffIDFrom(c), clientMetadataFrom(c))
	if err != nil {
		if businessflow.IsContractNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Contract not found", "CONTRACT_NOT_FOUND", nil)
		}
		if businessflow.IsContractAlreadySigned(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Contract is already signed", "CONTRACT_ALREADY_SIGNED", nil)
		}
		if businessflow.IsContractNotProposed(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Contract is not in a signable state", "CONTRACT_NOT_PROPOSED", nil)
		}

		log.Println("Contract signing failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Contract signing failed", "CONTRACT_SIGN_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ListContracts lists contracts, optionally scoped to one sponsor
// @Summary List Contracts
// @Description List contracts, optionally filtered by sponsor
// @Tags Sponsorships
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListContractsResponse} "Contracts retrieved"
// @Router /api/v1/contracts [get]
// @Security BearerAuth
func (h *SponsorshipHandler) ListContracts(c fiber.Ctx) error {
	var sponsorUUID *string
	if v := c.Query("sponsor_uuid"); v != "" {
		sponsorUUID = &v
	}

	result, err := h.sponsorshipFlow.ListContracts(createRequestContext(c, "/api/v1/contracts"), sponsorUUID)
	if err != nil {
		if businessflow.IsSponsorNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Sponsor not found", "SPONSOR_NOT_FOUND", nil)
		}

		log.Println("Contract list failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list contracts", "CONTRACT_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}
