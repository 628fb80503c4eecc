package dto

// AuditLogItem is one audit trail entry in API responses
type AuditLogItem struct {
	ID           uint    `json:"id"`
	StaffID      *uint   `json:"staff_id,omitempty"`
	Action       string  `json:"action"`
	Description  *string `json:"description,omitempty"`
	IPAddress    *string `json:"ip_address,omitempty"`
	RequestID    *string `json:"request_id,omitempty"`
	Success      *bool   `json:"success"`
	ErrorMessage *string `json:"error_message,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// ListAuditLogsRequest filters the audit trail
type ListAuditLogsRequest struct {
	Action         *string `json:"action,omitempty" validate:"omitempty,max=64"`
	StaffID        *uint   `json:"staff_id,omitempty" validate:"omitempty,min=1"`
	GovernanceOnly bool    `json:"governance_only"`
	FailedOnly     bool    `json:"failed_only"`
	Page           int     `json:"page" validate:"omitempty,min=1"`
	PageSize       int     `json:"page_size" validate:"omitempty,min=1,max=100"`
}

// ListAuditLogsResponse lists audit entries, newest first
type ListAuditLogsResponse struct {
	Message string         `json:"message"`
	Items   []AuditLogItem `json:"items"`
}
