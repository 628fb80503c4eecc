package businessflow

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/repository"
	"github.com/xuri/excelize/v2"
)

// ReportsFlow produces revenue and utilization reports over a date range
type ReportsFlow interface {
	RevenueReport(ctx context.Context, req *dto.ReportRangeRequest) (*dto.RevenueReportResponse, error)
	UtilizationReport(ctx context.Context, req *dto.ReportRangeRequest) (*dto.UtilizationReportResponse, error)
	ExportRevenueXLSX(ctx context.Context, req *dto.ReportRangeRequest, staffID *uint, metadata *ClientMetadata) (string, []byte, error)
}

// ReportsFlowImpl implements the reports business flow
type ReportsFlowImpl struct {
	bookingRepo repository.BookingRepository
	auditRepo   repository.AuditLogRepository
}

// NewReportsFlow creates a new reports flow instance
func NewReportsFlow(bookingRepo repository.BookingRepository, auditRepo repository.AuditLogRepository) ReportsFlow {
	return &ReportsFlowImpl{
		bookingRepo: bookingRepo,
		auditRepo:   auditRepo,
	}
}

// RevenueReport aggregates booking revenue per customer segment
func (f *ReportsFlowImpl) RevenueReport(ctx context.Context, req *dto.ReportRangeRequest) (*dto.RevenueReportResponse, error) {
	from, to, err := parseReportRange(req)
	if err != nil {
		return nil, err
	}

	rows, err := f.bookingRepo.RevenueBySegment(ctx, from, to)
	if err != nil {
		return nil, NewBusinessError("REPORT_REVENUE_FAILED", "Failed to build revenue report", err)
	}

	var total float64
	items := make([]dto.SegmentRevenueItem, 0, len(rows))
	for _, row := range rows {
		total += row.TotalRevenue
		items = append(items, dto.SegmentRevenueItem{
			CustomerSegment: row.CustomerSegment,
			BookingCount:    row.BookingCount,
			TotalHours:      row.TotalHours,
			TotalRevenue:    row.TotalRevenue,
		})
	}

	return &dto.RevenueReportResponse{
		Message:      "Revenue report generated successfully",
		From:         req.From,
		To:           req.To,
		TotalRevenue: total,
		Items:        items,
	}, nil
}

// UtilizationReport aggregates booked hours and revenue per asset
func (f *ReportsFlowImpl) UtilizationReport(ctx context.Context, req *dto.ReportRangeRequest) (*dto.UtilizationReportResponse, error) {
	from, to, err := parseReportRange(req)
	if err != nil {
		return nil, err
	}

	rows, err := f.bookingRepo.UtilizationByAsset(ctx, from, to)
	if err != nil {
		return nil, NewBusinessError("REPORT_UTILIZATION_FAILED", "Failed to build utilization report", err)
	}

	items := make([]dto.AssetUtilizationItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.AssetUtilizationItem{
			AssetID:      row.AssetID,
			AssetName:    row.AssetName,
			AssetType:    row.AssetType,
			BookingCount: row.BookingCount,
			BookedHours:  row.BookedHours,
			TotalRevenue: row.TotalRevenue,
		})
	}

	return &dto.UtilizationReportResponse{
		Message: "Utilization report generated successfully",
		From:    req.From,
		To:      req.To,
		Items:   items,
	}, nil
}

// ExportRevenueXLSX builds a workbook with one sheet per report and returns
// the file name plus its bytes.
func (f *ReportsFlowImpl) ExportRevenueXLSX(ctx context.Context, req *dto.ReportRangeRequest, staffID *uint, metadata *ClientMetadata) (string, []byte, error) {
	from, to, err := parseReportRange(req)
	if err != nil {
		return "", nil, err
	}

	revenueRows, err := f.bookingRepo.RevenueBySegment(ctx, from, to)
	if err != nil {
		return "", nil, NewBusinessError("REPORT_REVENUE_FAILED", "Failed to build revenue report", err)
	}
	utilizationRows, err := f.bookingRepo.UtilizationByAsset(ctx, from, to)
	if err != nil {
		return "", nil, NewBusinessError("REPORT_UTILIZATION_FAILED", "Failed to build utilization report", err)
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	const revenueSheet = "Revenue by Segment"
	const utilizationSheet = "Utilization by Asset"

	xl.SetSheetName(xl.GetSheetName(0), revenueSheet)
	if _, err := xl.NewSheet(utilizationSheet); err != nil {
		return "", nil, NewBusinessError("REPORT_EXPORT_FAILED", "Failed to create worksheet", err)
	}

	revenueHeader := []string{"Customer Segment", "Booking Count", "Total Hours", "Total Revenue"}
	_ = xl.SetSheetRow(revenueSheet, "A1", &revenueHeader)
	for i, row := range revenueRows {
		record := []string{
			row.CustomerSegment,
			strconv.FormatInt(row.BookingCount, 10),
			strconv.FormatFloat(row.TotalHours, 'f', 1, 64),
			strconv.FormatFloat(row.TotalRevenue, 'f', 2, 64),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = xl.SetSheetRow(revenueSheet, cellRef, &record)
	}

	utilizationHeader := []string{"Asset", "Type", "Booking Count", "Booked Hours", "Total Revenue"}
	_ = xl.SetSheetRow(utilizationSheet, "A1", &utilizationHeader)
	for i, row := range utilizationRows {
		record := []string{
			row.AssetName,
			row.AssetType,
			strconv.FormatInt(row.BookingCount, 10),
			strconv.FormatFloat(row.BookedHours, 'f', 1, 64),
			strconv.FormatFloat(row.TotalRevenue, 'f', 2, 64),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = xl.SetSheetRow(utilizationSheet, cellRef, &record)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("REPORT_EXPORT_FAILED", "Failed to write workbook", err)
	}

	description := fmt.Sprintf("Revenue report exported for %s to %s", req.From, req.To)
	success := true
	entry := &models.AuditLog{
		StaffID:     staffID,
		Action:      models.AuditActionReportExported,
		Description: &description,
		Success:     &success,
	}
	if metadata != nil && metadata.RequestID != "" {
		entry.RequestID = &metadata.RequestID
	}
	_ = f.auditRepo.Save(ctx, entry)

	filename := fmt.Sprintf("facility_report_%s_to_%s.xlsx", req.From, req.To)
	return filename, buf.Bytes(), nil
}

func parseReportRange(req *dto.ReportRangeRequest) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return time.Time{}, time.Time{}, NewBusinessError("REPORT_RANGE_INVALID", "From date is invalid", err)
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		return time.Time{}, time.Time{}, NewBusinessError("REPORT_RANGE_INVALID", "To date is invalid", err)
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, NewBusinessError("REPORT_RANGE_INVALID", "Start date cannot be after end date", ErrStartDateAfterEndDate)
	}
	return from, to, nil
}
