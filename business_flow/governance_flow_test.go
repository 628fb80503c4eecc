package businessflow

import (
	"context"
	"testing"

	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededAuditRepo() *fakeAuditRepo {
	staffOne := uint(1)
	staffTwo := uint(2)
	repo := &fakeAuditRepo{}
	repo.items = []*models.AuditLog{
		{ID: 1, StaffID: &staffOne, Action: models.AuditActionRatesUpdated, Success: utils.ToPtr(true)},
		{ID: 2, StaffID: &staffOne, Action: models.AuditActionLoginSuccess, Success: utils.ToPtr(true)},
		{ID: 3, StaffID: &staffTwo, Action: models.AuditActionLoginFailed, Success: utils.ToPtr(false)},
		{ID: 4, StaffID: &staffTwo, Action: models.AuditActionGuardrailsUpdated, Success: utils.ToPtr(true)},
	}
	return repo
}

func TestListAuditLogsDefaultListing(t *testing.T) {
	repo := seededAuditRepo()
	flow := NewGovernanceFlow(repo)

	resp, err := flow.ListAuditLogs(context.Background(), &dto.ListAuditLogsRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 4)
}

func TestListAuditLogsGovernanceOnly(t *testing.T) {
	repo := seededAuditRepo()
	flow := NewGovernanceFlow(repo)

	resp, err := flow.ListAuditLogs(context.Background(), &dto.ListAuditLogsRequest{GovernanceOnly: true})
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, models.AuditActionRatesUpdated, resp.Items[0].Action)
	assert.Equal(t, models.AuditActionGuardrailsUpdated, resp.Items[1].Action)
}

func TestListAuditLogsFailedOnly(t *testing.T) {
	repo := seededAuditRepo()
	flow := NewGovernanceFlow(repo)

	resp, err := flow.ListAuditLogs(context.Background(), &dto.ListAuditLogsRequest{FailedOnly: true})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, models.AuditActionLoginFailed, resp.Items[0].Action)
}

func TestListAuditLogsByStaff(t *testing.T) {
	repo := seededAuditRepo()
	flow := NewGovernanceFlow(repo)
	staffID := uint(1)

	resp, err := flow.ListAuditLogs(context.Background(), &dto.ListAuditLogsRequest{StaffID: &staffID})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
}

func TestListAuditLogsByAction(t *testing.T) {
	repo := seededAuditRepo()
	flow := NewGovernanceFlow(repo)

	resp, err := flow.ListAuditLogs(context.Background(), &dto.ListAuditLogsRequest{Action: utils.ToPtr(models.AuditActionLoginSuccess)})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
}

func TestListAuditLogsClampsPagination(t *testing.T) {
	repo := seededAuditRepo()
	flow := NewGovernanceFlow(repo)

	_, err := flow.ListAuditLogs(context.Background(), &dto.ListAuditLogsRequest{GovernanceOnly: true, Page: 0, PageSize: 5000})
	require.NoError(t, err)

	assert.Equal(t, 50, repo.lastLimit)
	assert.Equal(t, 0, repo.lastOffset)
}
