package handlers

import (
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/skillshot/sportai/app/dto"
	businessflow "github.com/skillshot/sportai/business_flow"
)

// GovernanceHandlerInterface defines the contract for governance handlers
type GovernanceHandlerInterface interface {
	ListAuditLogs(c fiber.Ctx) error
}

// GovernanceHandler handles audit trail HTTP requests
type GovernanceHandler struct {
	governanceFlow businessflow.GovernanceFlow
	validator      *validator.Validate
}

// NewGovernanceHandler creates a new governance handler
func NewGovernanceHandler(governanceFlow businessflow.GovernanceFlow) GovernanceHandlerInterface {
	return &GovernanceHandler{
		governanceFlow: governanceFlow,
		validator:      validator.New(),
	}
}

func (h *GovernanceHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *GovernanceHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListAuditLogs returns audit entries matching the query filters
// @Summary List Audit Logs
// @Description List audit entries filtered by action, staff, governance scope or failures
// @Tags Governance
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListAuditLogsResponse} "Audit entries retrieved"
// @Router /api/v1/governance/audit [get]
// @Security BearerAuth
func (h *GovernanceHandler) ListAuditLogs(c fiber.Ctx) error {
	req := dto.ListAuditLogsRequest{Page: 1, PageSize: 50}

	if v := c.Query("action"); v != "" {
		req.Action = &v
	}
	if v := c.Query("staff_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			staffID := uint(id)
			req.StaffID = &staffID
		}
	}
	req.GovernanceOnly = c.Query("governance_only") == "true"
	req.FailedOnly = c.Query("failed_only") == "true"
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

	result, err := h.governanceFlow.ListAuditLogs(createRequestContext(c, "/api/v1/governance/audit"), &req)
	if err != nil {
		log.Println("Audit log list failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list audit entries", "AUDIT_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}
