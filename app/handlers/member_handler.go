package handlers

import (
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/skillshot/sportai/app/dto"
	businessflow "github.com/skillshot/sportai/business_flow"
)

// MemberHandlerInterface defines the contract for member handlers
type MemberHandlerInterface interface {
	Create(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	List(c fiber.Ctx) error
	AdjustCredits(c fiber.Ctx) error
	Overview(c fiber.Ctx) error
}

// MemberHandler handles member-related HTTP requests
type MemberHandler struct {
	membershipFlow businessflow.MembershipFlow
	validator      *validator.Validate
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(membershipFlow businessflow.MembershipFlow) MemberHandlerInterface {
	return &MemberHandler{
		membershipFlow: membershipFlow,
		validator:      validator.New(),
	}
}

func (h *MemberHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *MemberHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Create enrolls a new member
// @Summary Enroll Member
// @Description Enroll a new member with a generated member number
// @Tags Members
// @Accept json
// @Produce json
// @Param request body dto.CreateMemberRequest true "Member details"
// @Success 201 {object} dto.APIResponse{data=dto.MemberResponse} "Member enrolled"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/members [post]
// @Security BearerAuth
func (h *MemberHandler) Create(c fiber.Ctx) error {
	var req dto.CreateMemberRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	result, err := h.membershipFlow.CreateMember(createRequestContext(c, "/api/v1/members"), &req, staffIDFrom(c), clientMetadataFrom(c))
	if err != nil {
		log.Println("Member enrollment failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Member enrollment failed", "MEMBER_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// Update applies a partial update to a member
// @Summary Update Member
// @Description Apply a partial update to an existing member
// @Tags Members
// @Accept json
// @Produce json
// @Param uuid path string true "Member UUID"
// @Param request body dto.UpdateMemberRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.MemberResponse} "Member updated"
// @Failure 404 {object} dto.APIResponse "Member not found"
// @Router /api/v1/members/{uuid} [patch]
// @Security BearerAuth
func (h *MemberHandler) Update(c fiber.Ctx) error {
	memberUUID := c.Params("uuid")

	var req dto.UpdateMemberRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	result, err := h.membershipFlow.UpdateMember(createRequestContext(c, "/api/v1/members/update"), memberUUID, &req, staffIDFrom(c), clientMetadataFrom(c))
	if err != nil {
		if businessflow.IsMemberNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Member not found", "MEMBER_NOT_FOUND", nil)
		}

		log.Println("Member update failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Member update failed", "MEMBER_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Get returns a single member
// @Summary Get Member
// @Description Get a member by UUID
// @Tags Members
// @Produce json
// @Param uuid path string true "Member UUID"
// @Success 200 {object} dto.APIResponse{data=dto.MemberResponse} "Member retrieved"
// @Failure 404 {object} dto.APIResponse "Member not found"
// @Router /api/v1/members/{uuid} [get]
// @Security BearerAuth
func (h *MemberHandler) Get(c fiber.Ctx) error {
	memberUUID := c.Params("uuid")

	result, err := h.membershipFlow.GetMember(createRequestContext(c, "/api/v1/members/get"), memberUUID)
	if err != nil {
		if businessflow.IsMemberNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Member not found", "MEMBER_NOT_FOUND", nil)
		}

		log.Println("Member retrieval failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Member retrieval failed", "MEMBER_GET_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// List returns members matching the query filters
// @Summary List Members
// @Description List members filtered by tier, status and household
// @Tags Members
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListMembersResponse} "Members retrieved"
// @Router /api/v1/members [get]
// @Security BearerAuth
func (h *MemberHandler) List(c fiber.Ctx) error {
	req := dto.ListMembersRequest{Page: 1, PageSize: 20}

	if v := c.Query("tier"); v != "" {
		req.Tier = &v
	}
	if v := c.Query("status"); v != "" {
		req.Status = &v
	}
	if v := c.Query("household_id"); v != "" {
		req.HouseholdID = &v
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

	result, err := h.membershipFlow.ListMembers(createRequestContext(c, "/api/v1/members"), &req)
	if err != nil {
		log.Println("Member list failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list members", "MEMBER_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Overview summarizes the member base
// @Summary Membership Overview
// @Description Tier counts, active totals and this month's credits movement
// @Tags Members
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.MembershipOverviewResponse} "Overview retrieved"
// @Router /api/v1/members/overview [get]
// @Security BearerAuth
func (h *MemberHandler) Overview(c fiber.Ctx) error {
	result, err := h.membershipFlow.Overview(createRequestContext(c, "/api/v1/members/overview"))
	if err != nil {
		log.Println("Membership overview failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build membership overview", "MEMBER_OVERVIEW_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// AdjustCredits grants or redeems member credits
// @Summary Adjust Credits
// @Description Grant or redeem member credits, recorded in the ledger
// @Tags Members
// @Accept json
// @Produce json
// @Param uuid path string true "Member UUID"
// @Param request body dto.AdjustCreditsRequest true "Delta and reason"
// @Success 200 {object} dto.APIResponse{data=dto.AdjustCreditsResponse} "Credits adjusted"
// @Failure 409 {object} dto.APIResponse "Insufficient credits"
// @Router /api/v1/members/{uuid}/credits [post]
// @Security BearerAuth
func (h *MemberHandler) AdjustCredits(c fiber.Ctx) error {
	memberUUID := c.Params("uuid")

	var req dto.AdjustCreditsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	result, err := h.membershipFlow.AdjustCredits(createRequestContext(c, "/api/v1/members/credits"), memberUUID, &req, staffIDFrom(c), clientMetadataFrom(c))
	if err != nil {
		if businessflow.IsMemberNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Member not found", "MEMBER_NOT_FOUND", nil)
		}
		if businessflow.IsInsufficientCredits(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Insufficient credits", "INSUFFICIENT_CREDITS", nil)
		}

		log.Println("Credits adjustment failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Credits adjustment failed", "CREDITS_ADJUST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}
