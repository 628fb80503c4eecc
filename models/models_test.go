package models

import (
	"testing"

	"github.com/skillshot/sportai/utils"
	"github.com/stretchr/testify/assert"
)

func TestStaffRolePermissions(t *testing.T) {
	tests := []struct {
		role           string
		isAdmin        bool
		canManageRates bool
	}{
		{StaffRoleAdmin, true, true},
		{StaffRoleBoard, false, true},
		{StaffRoleStaff, false, false},
		{StaffRoleSponsor, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			s := &Staff{Role: tt.role}
			assert.Equal(t, tt.isAdmin, s.IsAdmin())
			assert.Equal(t, tt.canManageRates, s.CanManageRates())
		})
	}
}

func TestMemberIsActive(t *testing.T) {
	assert.True(t, (&Member{Status: MemberStatusActive}).IsActive())
	assert.False(t, (&Member{Status: MemberStatusLapsed}).IsActive())
	assert.False(t, (&Member{Status: MemberStatusArchived}).IsActive())
}

func TestBookingIsCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: BookingStatusCancelled}).IsCancelled())
	assert.False(t, (&Booking{Status: BookingStatusConfirmed}).IsCancelled())
}

func TestContractIsSigned(t *testing.T) {
	assert.True(t, (&Contract{Status: ContractStatusSigned}).IsSigned())
	assert.False(t, (&Contract{Status: ContractStatusProposed}).IsSigned())
}

func TestTransactionIsCompleted(t *testing.T) {
	assert.True(t, (&Transaction{Status: TransactionStatusCompleted}).IsCompleted())
	assert.False(t, (&Transaction{Status: TransactionStatusPending}).IsCompleted())
}

func TestAuditLogGovernanceClassification(t *testing.T) {
	assert.True(t, (&AuditLog{Action: AuditActionRatesUpdated}).IsGovernanceEvent())
	assert.True(t, (&AuditLog{Action: AuditActionGuardrailsUpdated}).IsGovernanceEvent())
	assert.True(t, (&AuditLog{Action: AuditActionGuardrailOverride}).IsGovernanceEvent())
	assert.False(t, (&AuditLog{Action: AuditActionLoginSuccess}).IsGovernanceEvent())
}

func TestPodConfigAllowsTier(t *testing.T) {
	open := &PodConfig{}
	assert.True(t, open.AllowsTier("basic"))

	restricted := &PodConfig{TierAccess: []string{"premium", "founders"}}
	assert.True(t, restricted.AllowsTier("premium"))
	assert.False(t, restricted.AllowsTier("basic"))
}

func TestAuditLogIsFailed(t *testing.T) {
	assert.False(t, (&AuditLog{}).IsFailed())
	assert.False(t, (&AuditLog{Success: utils.ToPtr(true)}).IsFailed())
	assert.True(t, (&AuditLog{Success: utils.ToPtr(false)}).IsFailed())
}
