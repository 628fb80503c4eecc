package models

import (
	"encoding/json"
	"time"
)

type AuditLog struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	StaffID      *uint           `gorm:"index:idx_audit_staff_id" json:"staff_id,omitempty"`
	Staff        *Staff          `gorm:"foreignKey:StaffID;references:ID" json:"staff,omitempty"`
	Action       string          `gorm:"size:64;not null;index:idx_audit_action" json:"action"`
	Description  *string         `gorm:"type:text" json:"description,omitempty"`
	IPAddress    *string         `gorm:"type:inet;index:idx_audit_ip_address" json:"ip_address,omitempty"`
	UserAgent    *string         `gorm:"type:text" json:"user_agent,omitempty"`
	RequestID    *string         `gorm:"size:255;index:idx_audit_request_id" json:"request_id,omitempty"`
	Metadata     json.RawMessage `gorm:"type:jsonb;index:idx_audit_metadata,type:gin" json:"metadata,omitempty"`
	Success      *bool           `gorm:"default:true;index:idx_audit_success" json:"success"`
	ErrorMessage *string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time       `gorm:"default:CURRENT_TIMESTAMP;index:idx_audit_created_at" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}

// Audit action constants
const (
	AuditActionLoginSuccess      = "login_success"
	AuditActionLoginFailed       = "login_failed"
	AuditActionLogout            = "logout"
	AuditActionSessionCreated    = "session_created"
	AuditActionSessionExpired    = "session_expired"
	AuditActionPasswordChanged   = "password_changed"
	AuditActionBookingCreated    = "booking_created"
	AuditActionBookingCancelled  = "booking_cancelled"
	AuditActionRatesUpdated      = "rates_updated"
	AuditActionGuardrailsUpdated = "guardrails_updated"
	AuditActionGuardrailOverride = "guardrail_override"
	AuditActionContractProposed  = "contract_proposed"
	AuditActionContractSigned    = "contract_signed"
	AuditActionMemberUpdated     = "member_updated"
	AuditActionPodConfigUpdated  = "pod_config_updated"
	AuditActionReportExported    = "report_exported"
)

// AuditLogFilter represents filter criteria for audit log queries
type AuditLogFilter struct {
	ID            *uint
	StaffID       *uint
	Action        *string
	Success       *bool
	IPAddress     *string
	RequestID     *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

func (a *AuditLog) IsFailed() bool {
	return a.Success != nil && !*a.Success
}

func (a *AuditLog) IsGovernanceEvent() bool {
	governanceActions := map[string]bool{
		AuditActionRatesUpdated:      true,
		AuditActionGuardrailsUpdated: true,
		AuditActionGuardrailOverride: true,
	}
	return governanceActions[a.Action]
}
