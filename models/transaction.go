package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionType represents the type of ledger entry
type TransactionType string

const (
	TransactionTypeBookingCharge     TransactionType = "booking_charge"     // Booking payment captured
	TransactionTypeBookingRefund     TransactionType = "booking_refund"     // Refund on cancellation
	TransactionTypeMembershipDues    TransactionType = "membership_dues"    // Recurring membership dues
	TransactionTypeCreditsGrant      TransactionType = "credits_grant"      // Credits issued to a member
	TransactionTypeCreditsRedemption TransactionType = "credits_redemption" // Credits spent on a booking
	TransactionTypeSponsorshipFee    TransactionType = "sponsorship_fee"    // Sponsorship contract installment
	TransactionTypeAdjustment        TransactionType = "adjustment"         // Manual balance adjustments
)

// TransactionStatus represents the current status of a transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusReversed  TransactionStatus = "reversed"
)

// Transaction represents an immutable financial ledger entry
type Transaction struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`
	CorrelationID uuid.UUID `gorm:"type:uuid;index;not null" json:"correlation_id"` // Links related entries (charge and its refund)

	Type     TransactionType   `gorm:"type:varchar(32);not null;index" json:"type"`
	Status   TransactionStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Amount   float64           `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency string            `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`

	// Exactly one of these identifies the counterparty
	MemberID   *uint `gorm:"index" json:"member_id,omitempty"`
	SponsorID  *uint `gorm:"index" json:"sponsor_id,omitempty"`
	BookingID  *uint `gorm:"index" json:"booking_id,omitempty"`
	ContractID *uint `gorm:"index" json:"contract_id,omitempty"`

	Description string          `gorm:"type:text" json:"description"`
	Metadata    json.RawMessage `gorm:"type:jsonb;default:'{}'" json:"metadata"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Member   *Member   `gorm:"foreignKey:MemberID;references:ID" json:"member,omitempty"`
	Sponsor  *Sponsor  `gorm:"foreignKey:SponsorID;references:ID" json:"sponsor,omitempty"`
	Booking  *Booking  `gorm:"foreignKey:BookingID;references:ID" json:"booking,omitempty"`
	Contract *Contract `gorm:"foreignKey:ContractID;references:ID" json:"contract,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate ensures UUID and CorrelationID are set for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.UUID == uuid.Nil {
		t.UUID = uuid.New()
	}
	if t.CorrelationID == uuid.Nil {
		t.CorrelationID = t.UUID
	}
	return nil
}

func (t *Transaction) IsCompleted() bool {
	return t.Status == TransactionStatusCompleted
}

// TransactionFilter represents filter criteria for ledger queries
type TransactionFilter struct {
	ID            *uint              `json:"id,omitempty"`
	UUID          *uuid.UUID         `json:"uuid,omitempty"`
	CorrelationID *uuid.UUID         `json:"correlation_id,omitempty"`
	Type          *TransactionType   `json:"type,omitempty"`
	Status        *TransactionStatus `json:"status,omitempty"`
	MemberID      *uint              `json:"member_id,omitempty"`
	SponsorID     *uint              `json:"sponsor_id,omitempty"`
	BookingID     *uint              `json:"booking_id,omitempty"`
	ContractID    *uint              `json:"contract_id,omitempty"`
	CreatedAfter  *time.Time         `json:"created_after,omitempty"`
	CreatedBefore *time.Time         `json:"created_before,omitempty"`
}
