package businessflow

import (
	"context"
	"time"

	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/repository"
)

// GovernanceFlow exposes the audit trail for board oversight
type GovernanceFlow interface {
	ListAuditLogs(ctx context.Context, req *dto.ListAuditLogsRequest) (*dto.ListAuditLogsResponse, error)
}

// GovernanceFlowImpl implements the governance business flow
type GovernanceFlowImpl struct {
	auditRepo repository.AuditLogRepository
}

// NewGovernanceFlow creates a new governance flow instance
func NewGovernanceFlow(auditRepo repository.AuditLogRepository) GovernanceFlow {
	return &GovernanceFlowImpl{auditRepo: auditRepo}
}

// ListAuditLogs returns audit entries newest first. Governance-only narrows to
// rate and guardrail changes, failed-only narrows to rejected actions.
func (f *GovernanceFlowImpl) ListAuditLogs(ctx context.Context, req *dto.ListAuditLogsRequest) (*dto.ListAuditLogsResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	var rows []*models.AuditLog
	var err error
	switch {
	case req.GovernanceOnly:
		rows, err = f.auditRepo.ListGovernanceEvents(ctx, pageSize, offset)
	case req.FailedOnly:
		rows, err = f.auditRepo.ListFailedActions(ctx, pageSize, offset)
	case req.Action != nil:
		rows, err = f.auditRepo.ListByAction(ctx, *req.Action, pageSize, offset)
	case req.StaffID != nil:
		rows, err = f.auditRepo.ListByStaff(ctx, *req.StaffID, pageSize, offset)
	default:
		rows, err = f.auditRepo.ByFilter(ctx, models.AuditLogFilter{}, "created_at DESC", pageSize, offset)
	}
	if err != nil {
		return nil, NewBusinessError("AUDIT_LIST_FAILED", "Failed to list audit entries", err)
	}

	items := make([]dto.AuditLogItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.AuditLogItem{
			ID:           row.ID,
			StaffID:      row.StaffID,
			Action:       row.Action,
			Description:  row.Description,
			IPAddress:    row.IPAddress,
			RequestID:    row.RequestID,
			Success:      row.Success,
			ErrorMessage: row.ErrorMessage,
			CreatedAt:    row.CreatedAt.Format(time.RFC3339),
		})
	}

	return &dto.ListAuditLogsResponse{
		Message: "Audit entries retrieved successfully",
		Items:   items,
	}, nil
}
