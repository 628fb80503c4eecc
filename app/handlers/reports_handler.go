package handlers

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/skillshot/sportai/app/dto"
	businessflow "github.com/skillshot/sportai/business_flow"
)

// ReportsHandlerInterface defines the contract for report handlers
type ReportsHandlerInterface interface {
	Revenue(c fiber.Ctx) error
	Utilization(c fiber.Ctx) error
	ExportXLSX(c fiber.Ctx) error
}

// ReportsHandler handles report HTTP requests
type ReportsHandler struct {
	reportsFlow businessflow.ReportsFlow
	validator   *validator.Validate
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(reportsFlow businessflow.ReportsFlow) ReportsHandlerInterface {
	return &ReportsHandler{
		reportsFlow: reportsFlow,
		validator:   validator.New(),
	}
}

func (h *ReportsHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ReportsHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *ReportsHandler) rangeFromQuery(c fiber.Ctx) (*dto.ReportRangeRequest, error) {
	req := &dto.ReportRangeRequest{
		From: c.Query("from"),
		To:   c.Query("to"),
	}
	if err := h.validator.Struct(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Revenue summarizes booking revenue per customer segment
// @Summary Revenue Report
// @Description Revenue per customer segment over a date range
// @Tags Reports
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.RevenueReportResponse} "Report computed"
// @Router /api/v1/reports/revenue [get]
// @Security BearerAuth
func (h *ReportsHandler) Revenue(c fiber.Ctx) error {
	req, err := h.rangeFromQuery(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	result, err := h.reportsFlow.RevenueReport(createRequestContext(c, "/api/v1/reports/revenue"), req)
	if err != nil {
		if businessflow.IsStartDateAfterEndDate(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Start date cannot be after end date", "INVALID_DATE_RANGE", nil)
		}

		log.Println("Revenue report failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Revenue report failed", "REVENUE_REPORT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Utilization summarizes booked hours per asset
// @Summary Utilization Report
// @Description Booked hours and utilization per asset over a date range
// @Tags Reports
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.UtilizationReportResponse} "Report computed"
// @Router /api/v1/reports/utilization [get]
// @Security BearerAuth
func (h *ReportsHandler) Utilization(c fiber.Ctx) error {
	req, err := h.rangeFromQuery(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	result, err := h.reportsFlow.UtilizationReport(createRequestContext(c, "/api/v1/reports/utilization"), req)
	if err != nil {
		if businessflow.IsStartDateAfterEndDate(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Start date cannot be after end date", "INVALID_DATE_RANGE", nil)
		}

		log.Println("Utilization report failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Utilization report failed", "UTILIZATION_REPORT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ExportXLSX streams the combined revenue and utilization workbook
// @Summary Export Report Workbook
// @Description Export revenue and utilization sheets as an XLSX workbook
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {file} binary "Workbook file"
// @Router /api/v1/reports/export [get]
// @Security BearerAuth
func (h *ReportsHandler) ExportXLSX(c fiber.Ctx) error {
	req, err := h.rangeFromQuery(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorDetails(err))
	}

	filename, content, err := h.reportsFlow.ExportRevenueXLSX(createRequestContext(c, "/api/v1/reports/export"), req, staffIDFrom(c), clientMetadataFrom(c))
	if err != nil {
		if businessflow.IsStartDateAfterEndDate(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Start date cannot be after end date", "INVALID_DATE_RANGE", nil)
		}

		log.Println("Report export failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Report export failed", "REPORT_EXPORT_FAILED", nil)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(content)
}
