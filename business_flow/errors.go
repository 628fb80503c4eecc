// Package businessflow contains the core business logic and use cases for the facility platform
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Auth errors
	ErrStaffNotFound     = errors.New("staff account not found")
	ErrAccountInactive   = errors.New("account is inactive")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrCaptchaFailed     = errors.New("captcha verification failed")
	ErrSessionNotFound   = errors.New("session not found")
	ErrForbiddenRole     = errors.New("role is not permitted to perform this action")

	// Asset and booking errors
	ErrAssetNotFound      = errors.New("asset not found")
	ErrAssetInactive      = errors.New("asset is inactive")
	ErrSlotAlreadyBooked  = errors.New("time slot is already booked")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrBookingCancelled   = errors.New("booking is already cancelled")
	ErrBookingInPast      = errors.New("booking date is in the past")
	ErrLeadTimeTooShort   = errors.New("booking lead time is below the minimum")
	ErrDurationOutOfRange = errors.New("duration must be between 0 and 24 hours")

	// Member errors
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberArchived      = errors.New("member is archived")
	ErrInsufficientCredits = errors.New("insufficient credits")

	// Sponsorship errors
	ErrSponsorNotFound           = errors.New("sponsor not found")
	ErrInventoryNotFound         = errors.New("sponsorship inventory item not found")
	ErrInventoryUnavailable      = errors.New("sponsorship inventory item is not available")
	ErrContractNotFound          = errors.New("contract not found")
	ErrContractNotProposed       = errors.New("contract is not in a signable state")
	ErrContractAlreadySigned     = errors.New("contract is already signed")
	ErrBundleEmptySelection      = errors.New("bundle requires at least one inventory item")
	ErrContractDatesInconsistent = errors.New("contract start date must precede end date")

	// Performance pod errors
	ErrPodConfigNotFound    = errors.New("pod configuration not found")
	ErrMetricValueInvalid   = errors.New("metric value must be greater than zero")
	ErrRecordedAtInFuture   = errors.New("recorded time cannot be in the future")
	ErrUnknownTechPackage   = errors.New("unknown technology package")
	ErrRetentionOutOfRange  = errors.New("data retention must be between 30 and 3650 days")
	ErrPremiumChargeInvalid = errors.New("premium charge cannot be negative")

	// Pricing configuration errors
	ErrPricingDocumentNotFound = errors.New("pricing document not found")
	ErrRateValueInvalid        = errors.New("rate values must be greater than zero")
	ErrGuardrailBandInvalid    = errors.New("guardrail band is invalid")

	// Filter errors
	ErrInvalidPage           = errors.New("page must be at least 1")
	ErrInvalidPageSize       = errors.New("page size must be between 1 and 100")
	ErrStartDateAfterEndDate = errors.New("start date cannot be after end date")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsStaffNotFound(err error) bool {
	return errors.Is(err, ErrStaffNotFound)
}

func IsAccountInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsCaptchaFailed(err error) bool {
	return errors.Is(err, ErrCaptchaFailed)
}

func IsForbiddenRole(err error) bool {
	return errors.Is(err, ErrForbiddenRole)
}

func IsAssetNotFound(err error) bool {
	return errors.Is(err, ErrAssetNotFound)
}

func IsSlotAlreadyBooked(err error) bool {
	return errors.Is(err, ErrSlotAlreadyBooked)
}

func IsBookingNotFound(err error) bool {
	return errors.Is(err, ErrBookingNotFound)
}

func IsLeadTimeTooShort(err error) bool {
	return errors.Is(err, ErrLeadTimeTooShort)
}

func IsMemberNotFound(err error) bool {
	return errors.Is(err, ErrMemberNotFound)
}

func IsInsufficientCredits(err error) bool {
	return errors.Is(err, ErrInsufficientCredits)
}

func IsSponsorNotFound(err error) bool {
	return errors.Is(err, ErrSponsorNotFound)
}

func IsInventoryUnavailable(err error) bool {
	return errors.Is(err, ErrInventoryUnavailable)
}

func IsContractNotFound(err error) bool {
	return errors.Is(err, ErrContractNotFound)
}

func IsContractAlreadySigned(err error) bool {
	return errors.Is(err, ErrContractAlreadySigned)
}

func IsContractNotProposed(err error) bool {
	return errors.Is(err, ErrContractNotProposed)
}

func IsPodConfigNotFound(err error) bool {
	return errors.Is(err, ErrPodConfigNotFound)
}

func IsPricingDocumentNotFound(err error) bool {
	return errors.Is(err, ErrPricingDocumentNotFound)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}

func IsStartDateAfterEndDate(err error) bool {
	return errors.Is(err, ErrStartDateAfterEndDate)
}
