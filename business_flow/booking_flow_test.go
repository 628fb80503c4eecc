package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/config"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/pricing"
	"github.com/skillshot/sportai/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	flow     BookingFlow
	assets   *fakeAssetRepo
	bookings *fakeBookingRepo
	ledger   *fakeTransactionRepo
	audit    *fakeAuditRepo
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		assets:   &fakeAssetRepo{},
		bookings: &fakeBookingRepo{},
		ledger:   &fakeTransactionRepo{},
		audit:    &fakeAuditRepo{},
	}
	pricingFlow := NewPricingFlow(&fakePricingRuleRepo{}, &fakeAuditRepo{}, nil, &config.CacheConfig{}, nil)
	f.flow = NewBookingFlow(f.bookings, f.assets, f.ledger, f.audit, pricingFlow, nil)
	return f
}

func (f *bookingFixture) addAsset(active bool) *models.Asset {
	asset := &models.Asset{
		ID:       uint(len(f.assets.items) + 1),
		UUID:     uuid.New(),
		SiteID:   "main",
		Type:     models.AssetTypeTurfFull,
		Name:     "North Turf",
		IsActive: utils.ToPtr(active),
	}
	f.assets.items = append(f.assets.items, asset)
	return asset
}

func futureDate(days int) string {
	return utils.UTCNow().AddDate(0, 0, days).Format("2006-01-02")
}

func TestCreateBookingRejectsPastDate(t *testing.T) {
	f := newBookingFixture()
	asset := f.addAsset(true)

	_, err := f.flow.CreateBooking(context.Background(), &dto.CreateBookingRequest{
		AssetUUID:       asset.UUID.String(),
		CustomerName:    "Jordan Blake",
		CustomerSegment: models.SegmentRegular,
		BookingDate:     "2020-01-01",
		TimeSlot:        "9am-12pm",
		DurationHours:   2,
	}, nil, nil)

	assert.ErrorIs(t, err, ErrBookingInPast)
}

func TestCreateBookingRejectsBadDuration(t *testing.T) {
	f := newBookingFixture()
	asset := f.addAsset(true)

	_, err := f.flow.CreateBooking(context.Background(), &dto.CreateBookingRequest{
		AssetUUID:       asset.UUID.String(),
		CustomerName:    "Jordan Blake",
		CustomerSegment: models.SegmentRegular,
		BookingDate:     futureDate(10),
		TimeSlot:        "9am-12pm",
		DurationHours:   30,
	}, nil, nil)

	assert.ErrorIs(t, err, ErrDurationOutOfRange)
}

func TestCreateBookingUnknownAsset(t *testing.T) {
	f := newBookingFixture()

	_, err := f.flow.CreateBooking(context.Background(), &dto.CreateBookingRequest{
		AssetUUID:       uuid.New().String(),
		CustomerName:    "Jordan Blake",
		CustomerSegment: models.SegmentRegular,
		BookingDate:     futureDate(10),
		TimeSlot:        "9am-12pm",
		DurationHours:   2,
	}, nil, nil)

	assert.True(t, IsAssetNotFound(err))
}

func TestCreateBookingInactiveAsset(t *testing.T) {
	f := newBookingFixture()
	asset := f.addAsset(false)

	_, err := f.flow.CreateBooking(context.Background(), &dto.CreateBookingRequest{
		AssetUUID:       asset.UUID.String(),
		CustomerName:    "Jordan Blake",
		CustomerSegment: models.SegmentRegular,
		BookingDate:     futureDate(10),
		TimeSlot:        "9am-12pm",
		DurationHours:   2,
	}, nil, nil)

	assert.ErrorIs(t, err, ErrAssetInactive)
}

func TestCreateBookingEnforcesMinimumLeadTime(t *testing.T) {
	f := newBookingFixture()
	asset := f.addAsset(true)

	// Today's date parses to midnight, which is already behind the default
	// 4 hour lead time requirement.
	_, err := f.flow.CreateBooking(context.Background(), &dto.CreateBookingRequest{
		AssetUUID:       asset.UUID.String(),
		CustomerName:    "Jordan Blake",
		CustomerSegment: models.SegmentRegular,
		BookingDate:     futureDate(0),
		TimeSlot:        "6pm-9pm (Prime)",
		DurationHours:   2,
	}, nil, nil)

	assert.True(t, IsLeadTimeTooShort(err))
}

func TestCreateBookingRejectsOccupiedSlot(t *testing.T) {
	f := newBookingFixture()
	asset := f.addAsset(true)
	f.bookings.conflict = true

	_, err := f.flow.CreateBooking(context.Background(), &dto.CreateBookingRequest{
		AssetUUID:       asset.UUID.String(),
		CustomerName:    "Jordan Blake",
		CustomerSegment: models.SegmentRegular,
		BookingDate:     futureDate(10),
		TimeSlot:        "6pm-9pm (Prime)",
		DurationHours:   2,
	}, nil, nil)

	assert.True(t, IsSlotAlreadyBooked(err))
}

func TestCancelBookingNotFound(t *testing.T) {
	f := newBookingFixture()

	_, err := f.flow.CancelBooking(context.Background(), uuid.New().String(), nil, nil)

	assert.True(t, IsBookingNotFound(err))
}

func TestCancelBookingAlreadyCancelled(t *testing.T) {
	f := newBookingFixture()
	booking := &models.Booking{ID: 1, UUID: uuid.New(), AssetID: 1, Status: models.BookingStatusCancelled}
	f.bookings.items = []*models.Booking{booking}

	_, err := f.flow.CancelBooking(context.Background(), booking.UUID.String(), nil, nil)

	assert.ErrorIs(t, err, ErrBookingCancelled)
}

func TestListBookingsRejectsInvertedDateRange(t *testing.T) {
	f := newBookingFixture()

	_, err := f.flow.ListBookings(context.Background(), &dto.ListBookingsRequest{
		DateFrom: utils.ToPtr("2026-09-10"),
		DateTo:   utils.ToPtr("2026-09-01"),
	})

	assert.True(t, IsStartDateAfterEndDate(err))
}

func TestListBookingsAppliesPaginationDefaults(t *testing.T) {
	f := newBookingFixture()

	resp, err := f.flow.ListBookings(context.Background(), &dto.ListBookingsRequest{Page: 0, PageSize: 500})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 20, resp.Pagination.PageSize)
}

func TestAvailabilityExcludesCancelledBookings(t *testing.T) {
	f := newBookingFixture()
	asset := f.addAsset(true)
	day := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	f.bookings.items = []*models.Booking{
		{ID: 1, UUID: uuid.New(), AssetID: asset.ID, BookingDate: day, TimeSlot: "9am-12pm", Status: models.BookingStatusConfirmed},
		{ID: 2, UUID: uuid.New(), AssetID: asset.ID, BookingDate: day, TimeSlot: "6pm-9pm (Prime)", Status: models.BookingStatusCancelled},
		{ID: 3, UUID: uuid.New(), AssetID: asset.ID + 1, BookingDate: day, TimeSlot: "12pm-3pm", Status: models.BookingStatusConfirmed},
	}

	resp, err := f.flow.Availability(context.Background(), asset.UUID.String(), "2026-09-12")
	require.NoError(t, err)

	assert.Equal(t, []string{"9am-12pm"}, resp.OccupiedSlots)
}

func TestAvailabilityUnknownAsset(t *testing.T) {
	f := newBookingFixture()

	_, err := f.flow.Availability(context.Background(), uuid.New().String(), "2026-09-12")

	assert.True(t, IsAssetNotFound(err))
}

func TestCreateBookingPersistsEngineAmounts(t *testing.T) {
	f := newBookingFixture()
	asset := f.addAsset(true)

	date := futureDate(45)
	bookingDate, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)

	expected := pricing.Calculate(pricing.Input{
		AssetType:       asset.Type,
		BookingDate:     bookingDate,
		TimeSlot:        "9am-12pm",
		DurationHours:   2,
		CustomerSegment: models.SegmentRegular,
		LeadTimeDays:    45,
	}, pricing.DefaultTables(), pricing.DefaultGuardrails())

	resp, err := f.flow.CreateBooking(context.Background(), &dto.CreateBookingRequest{
		AssetUUID:       asset.UUID.String(),
		CustomerName:    "Jordan Blake",
		CustomerSegment: models.SegmentRegular,
		BookingDate:     date,
		TimeSlot:        "9am-12pm",
		DurationHours:   2,
	}, nil, nil)
	require.NoError(t, err)

	require.Len(t, f.bookings.items, 1)
	saved := f.bookings.items[0]

	// the stored rate is hourly and the total is rate times duration
	assert.InDelta(t, expected.DynamicRate, saved.RatePerHour, 1e-6)
	assert.InDelta(t, expected.FinalPrice, saved.TotalAmount, 1e-6)
	assert.InDelta(t, saved.RatePerHour*saved.DurationHours, saved.TotalAmount, 1e-6)
	assert.Equal(t, models.BookingStatusConfirmed, saved.Status)

	// the ledger charge matches the booking total
	require.Len(t, f.ledger.items, 1)
	charge := f.ledger.items[0]
	assert.Equal(t, models.TransactionTypeBookingCharge, charge.Type)
	assert.Equal(t, models.TransactionStatusCompleted, charge.Status)
	assert.InDelta(t, expected.FinalPrice, charge.Amount, 1e-6)

	assert.InDelta(t, expected.FinalPrice, resp.Booking.TotalAmount, 1e-6)

	require.Len(t, f.audit.items, 1)
	assert.Equal(t, models.AuditActionBookingCreated, f.audit.items[0].Action)
}
