package businessflow

import (
	"bytes"
	"context"
	"testing"

	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newReportsFixture(bookings *fakeBookingRepo) (ReportsFlow, *fakeAuditRepo) {
	audit := &fakeAuditRepo{}
	return NewReportsFlow(bookings, audit), audit
}

func TestRevenueReportSumsSegments(t *testing.T) {
	bookings := &fakeBookingRepo{
		segmentRevenue: []*repository.SegmentRevenueRow{
			{CustomerSegment: "corporate", BookingCount: 4, TotalHours: 8, TotalRevenue: 2530},
			{CustomerSegment: "youth", BookingCount: 10, TotalHours: 20, TotalRevenue: 3200},
		},
	}
	flow, _ := newReportsFixture(bookings)

	resp, err := flow.RevenueReport(context.Background(), &dto.ReportRangeRequest{From: "2026-08-01", To: "2026-08-31"})
	require.NoError(t, err)

	assert.InDelta(t, 5730.0, resp.TotalRevenue, 1e-6)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "corporate", resp.Items[0].CustomerSegment)
	assert.Equal(t, int64(10), resp.Items[1].BookingCount)
}

func TestUtilizationReportPassesRowsThrough(t *testing.T) {
	bookings := &fakeBookingRepo{
		utilization: []*repository.AssetUtilizationRow{
			{AssetID: 1, AssetName: "North Turf", AssetType: "turf_full", BookingCount: 12, BookedHours: 30, TotalRevenue: 6200},
		},
	}
	flow, _ := newReportsFixture(bookings)

	resp, err := flow.UtilizationReport(context.Background(), &dto.ReportRangeRequest{From: "2026-08-01", To: "2026-08-31"})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "North Turf", resp.Items[0].AssetName)
	assert.InDelta(t, 30.0, resp.Items[0].BookedHours, 1e-6)
}

func TestReportRangeValidation(t *testing.T) {
	flow, _ := newReportsFixture(&fakeBookingRepo{})

	_, err := flow.RevenueReport(context.Background(), &dto.ReportRangeRequest{From: "August 1", To: "2026-08-31"})
	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "REPORT_RANGE_INVALID", be.Code)

	_, err = flow.RevenueReport(context.Background(), &dto.ReportRangeRequest{From: "2026-09-01", To: "2026-08-01"})
	assert.True(t, IsStartDateAfterEndDate(err))
}

func TestExportRevenueXLSX(t *testing.T) {
	bookings := &fakeBookingRepo{
		segmentRevenue: []*repository.SegmentRevenueRow{
			{CustomerSegment: "regular", BookingCount: 3, TotalHours: 6, TotalRevenue: 1100},
		},
		utilization: []*repository.AssetUtilizationRow{
			{AssetID: 1, AssetName: "Court 2", AssetType: "court", BookingCount: 3, BookedHours: 6, TotalRevenue: 1100},
		},
	}
	flow, audit := newReportsFixture(bookings)

	filename, content, err := flow.ExportRevenueXLSX(context.Background(), &dto.ReportRangeRequest{From: "2026-08-01", To: "2026-08-31"}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "facility_report_2026-08-01_to_2026-08-31.xlsx", filename)
	require.NotEmpty(t, content)

	xl, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer func() { _ = xl.Close() }()

	segment, err := xl.GetCellValue("Revenue by Segment", "A2")
	require.NoError(t, err)
	assert.Equal(t, "regular", segment)

	assetName, err := xl.GetCellValue("Utilization by Asset", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Court 2", assetName)

	// the export itself lands in the audit trail
	require.Len(t, audit.items, 1)
	assert.Equal(t, models.AuditActionReportExported, audit.items[0].Action)
}
