package businessflow

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessErrorUnwrapsSentinel(t *testing.T) {
	err := NewBusinessError("BOOKING_SLOT_TAKEN", "Time slot is already booked", ErrSlotAlreadyBooked)

	assert.True(t, IsSlotAlreadyBooked(err))
	assert.True(t, errors.Is(err, ErrSlotAlreadyBooked))
	assert.Equal(t, "Time slot is already booked: time slot is already booked", err.Error())
}

func TestBusinessErrorWithoutCause(t *testing.T) {
	err := NewBusinessError("MEMBER_CREDITS_DELTA_ZERO", "Credits delta must be non-zero", nil)

	assert.Equal(t, "Credits delta must be non-zero", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestBusinessErrorfFormatsMessage(t *testing.T) {
	err := NewBusinessErrorf("BOOKING_LEAD_TIME_TOO_SHORT",
		"Bookings require at least %d hours of lead time", ErrLeadTimeTooShort, 4)

	assert.Equal(t, "Bookings require at least 4 hours of lead time", err.Message)
	assert.True(t, IsLeadTimeTooShort(err))
}

func TestHelpersSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("transaction failed: %w", ErrInsufficientCredits)

	assert.True(t, IsInsufficientCredits(wrapped))
	assert.False(t, IsMemberNotFound(wrapped))
}
