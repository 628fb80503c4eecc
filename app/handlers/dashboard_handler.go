package handlers

import (
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/skillshot/sportai/app/dto"
	businessflow "github.com/skillshot/sportai/business_flow"
)

// DashboardHandlerInterface defines the contract for dashboard handlers
type DashboardHandlerInterface interface {
	Snapshot(c fiber.Ctx) error
}

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardFlow businessflow.DashboardFlow
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardFlow businessflow.DashboardFlow) DashboardHandlerInterface {
	return &DashboardHandler{dashboardFlow: dashboardFlow}
}

func (h *DashboardHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *DashboardHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Snapshot returns the cached operational overview
// @Summary Dashboard Snapshot
// @Description Aggregated counters for assets, bookings, revenue, members and sponsorships
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Snapshot retrieved"
// @Router /api/v1/dashboard [get]
// @Security BearerAuth
func (h *DashboardHandler) Snapshot(c fiber.Ctx) error {
	result, err := h.dashboardFlow.Snapshot(createRequestContext(c, "/api/v1/dashboard"))
	if err != nil {
		log.Println("Dashboard snapshot failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build dashboard snapshot", "DASHBOARD_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}
