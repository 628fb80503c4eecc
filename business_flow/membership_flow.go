package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/repository"
	"github.com/skillshot/sportai/utils"
	"gorm.io/gorm"
)

// MembershipFlow manages member enrollment, updates and the credits balance
type MembershipFlow interface {
	CreateMember(ctx context.Context, req *dto.CreateMemberRequest, staffID *uint, metadata *ClientMetadata) (*dto.MemberResponse, error)
	UpdateMember(ctx context.Context, memberUUID string, req *dto.UpdateMemberRequest, staffID *uint, metadata *ClientMetadata) (*dto.MemberResponse, error)
	GetMember(ctx context.Context, memberUUID string) (*dto.MemberResponse, error)
	ListMembers(ctx context.Context, req *dto.ListMembersRequest) (*dto.ListMembersResponse, error)
	AdjustCredits(ctx context.Context, memberUUID string, req *dto.AdjustCreditsRequest, staffID *uint, metadata *ClientMetadata) (*dto.AdjustCreditsResponse, error)
	Overview(ctx context.Context) (*dto.MembershipOverviewResponse, error)
}

// MembershipFlowImpl implements the membership business flow
type MembershipFlowImpl struct {
	memberRepo      repository.MemberRepository
	transactionRepo repository.TransactionRepository
	auditRepo       repository.AuditLogRepository
	db              *gorm.DB
}

// NewMembershipFlow creates a new membership flow instance
func NewMembershipFlow(
	memberRepo repository.MemberRepository,
	transactionRepo repository.TransactionRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) MembershipFlow {
	return &MembershipFlowImpl{
		memberRepo:      memberRepo,
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
		db:              db,
	}
}

// CreateMember enrolls a new member with a generated member number
func (f *MembershipFlowImpl) CreateMember(ctx context.Context, req *dto.CreateMemberRequest, staffID *uint, metadata *ClientMetadata) (*dto.MemberResponse, error) {
	memberNumber, err := f.generateMemberNumber(ctx)
	if err != nil {
		return nil, NewBusinessError("MEMBER_NUMBER_GENERATION_FAILED", "Failed to generate member number", err)
	}

	member := &models.Member{
		MemberNumber: memberNumber,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Tier:         req.Tier,
		JoinDate:     utils.UTCNow().Truncate(24 * time.Hour),
		Status:       models.MemberStatusActive,
		HouseholdID:  req.HouseholdID,
		Notes:        req.Notes,
		CreatedAt:    utils.UTCNow(),
		UpdatedAt:    utils.UTCNow(),
	}

	if err := f.memberRepo.Save(ctx, member); err != nil {
		return nil, NewBusinessError("MEMBER_CREATE_FAILED", "Failed to create member", err)
	}

	f.logMemberAction(ctx, staffID, fmt.Sprintf("Member %s enrolled with tier %s", member.MemberNumber, member.Tier), true, metadata)

	return &dto.MemberResponse{
		Message: "Member enrolled successfully",
		Member:  ToMemberDTO(*member),
	}, nil
}

// UpdateMember applies a partial update to an existing member
func (f *MembershipFlowImpl) UpdateMember(ctx context.Context, memberUUID string, req *dto.UpdateMemberRequest, staffID *uint, metadata *ClientMetadata) (*dto.MemberResponse, error) {
	member, err := f.memberByUUID(ctx, memberUUID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Email != nil {
		member.Email = req.Email
	}
	if req.Phone != nil {
		member.Phone = req.Phone
	}
	if req.Tier != nil {
		member.Tier = *req.Tier
	}
	if req.Status != nil {
		member.Status = *req.Status
	}
	if req.Notes != nil {
		member.Notes = req.Notes
	}
	member.UpdatedAt = utils.UTCNow()

	if err := f.memberRepo.Update(ctx, member); err != nil {
		return nil, NewBusinessError("MEMBER_UPDATE_FAILED", "Failed to update member", err)
	}

	f.logMemberAction(ctx, staffID, fmt.Sprintf("Member %s updated", member.MemberNumber), true, metadata)

	return &dto.MemberResponse{
		Message: "Member updated successfully",
		Member:  ToMemberDTO(*member),
	}, nil
}

// GetMember returns a single member by UUID
func (f *MembershipFlowImpl) GetMember(ctx context.Context, memberUUID string) (*dto.MemberResponse, error) {
	member, err := f.memberByUUID(ctx, memberUUID)
	if err != nil {
		return nil, err
	}

	return &dto.MemberResponse{
		Message: "Member retrieved successfully",
		Member:  ToMemberDTO(*member),
	}, nil
}

// ListMembers returns members matching the filter, newest first
func (f *MembershipFlowImpl) ListMembers(ctx context.Context, req *dto.ListMembersRequest) (*dto.ListMembersResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	filter := models.MemberFilter{
		Tier:        req.Tier,
		Status:      req.Status,
		HouseholdID: req.HouseholdID,
	}

	total, err := f.memberRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("MEMBER_COUNT_FAILED", "Failed to count members", err)
	}

	rows, err := f.memberRepo.ByFilter(ctx, filter, "created_at DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("MEMBER_LIST_FAILED", "Failed to list members", err)
	}

	items := make([]dto.MemberDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, ToMemberDTO(*row))
	}

	return &dto.ListMembersResponse{
		Message: "Members retrieved successfully",
		Items:   items,
		Pagination: dto.Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	}, nil
}

// AdjustCredits grants or redeems credits and records the movement in the
// ledger. The balance can never go negative.
func (f *MembershipFlowImpl) AdjustCredits(ctx context.Context, memberUUID string, req *dto.AdjustCreditsRequest, staffID *uint, metadata *ClientMetadata) (*dto.AdjustCreditsResponse, error) {
	member, err := f.memberByUUID(ctx, memberUUID)
	if err != nil {
		return nil, err
	}
	if member.Status == models.MemberStatusArchived {
		return nil, NewBusinessError("MEMBER_ARCHIVED", "Member is archived", ErrMemberArchived)
	}
	if req.Delta == 0 {
		return nil, NewBusinessError("MEMBER_CREDITS_DELTA_ZERO", "Credits delta must be non-zero", nil)
	}

	txType := models.TransactionTypeCreditsGrant
	if req.Delta < 0 {
		txType = models.TransactionTypeCreditsRedemption
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.memberRepo.AdjustCredits(txCtx, member.ID, req.Delta); err != nil {
			return err
		}

		metadataJSON, _ := json.Marshal(map[string]string{"reason": req.Reason})
		entry := &models.Transaction{
			Type:        txType,
			Status:      models.TransactionStatusCompleted,
			Amount:      req.Delta,
			Currency:    utils.DefaultCurrency,
			MemberID:    &member.ID,
			Description: fmt.Sprintf("Credits adjustment for member %s: %s", member.MemberNumber, req.Reason),
			Metadata:    metadataJSON,
		}
		return f.transactionRepo.Save(txCtx, entry)
	})
	if err != nil {
		if IsInsufficientCredits(err) {
			return nil, NewBusinessError("MEMBER_CREDITS_INSUFFICIENT", "Insufficient credits", err)
		}
		return nil, NewBusinessError("MEMBER_CREDITS_ADJUST_FAILED", "Failed to adjust credits", err)
	}

	// reload for the updated balance
	updated, err := f.memberRepo.ByID(ctx, member.ID)
	if err != nil || updated == nil {
		updated = member
		updated.CreditsBalance += req.Delta
	}

	f.logMemberAction(ctx, staffID,
		fmt.Sprintf("Credits adjusted by %.2f for member %s (%s)", req.Delta, member.MemberNumber, req.Reason), true, metadata)

	return &dto.AdjustCreditsResponse{
		Message: "Credits adjusted successfully",
		Member:  ToMemberDTO(*updated),
	}, nil
}

// Overview summarizes the member base: tier counts plus this month's
// credits movement from the ledger.
func (f *MembershipFlowImpl) Overview(ctx context.Context) (*dto.MembershipOverviewResponse, error) {
	total, err := f.memberRepo.Count(ctx, models.MemberFilter{})
	if err != nil {
		return nil, NewBusinessError("MEMBER_OVERVIEW_FAILED", "Failed to count members", err)
	}

	tierCounts, err := f.memberRepo.TierCounts(ctx)
	if err != nil {
		return nil, NewBusinessError("MEMBER_OVERVIEW_FAILED", "Failed to count members by tier", err)
	}

	var active int64
	for _, count := range tierCounts {
		active += count
	}

	now := utils.UTCNow()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	granted, err := f.transactionRepo.SumCompletedByType(ctx, models.TransactionTypeCreditsGrant, monthStart, now)
	if err != nil {
		return nil, NewBusinessError("MEMBER_OVERVIEW_FAILED", "Failed to sum granted credits", err)
	}
	redeemed, err := f.transactionRepo.SumCompletedByType(ctx, models.TransactionTypeCreditsRedemption, monthStart, now)
	if err != nil {
		return nil, NewBusinessError("MEMBER_OVERVIEW_FAILED", "Failed to sum redeemed credits", err)
	}

	return &dto.MembershipOverviewResponse{
		Message:         "Membership overview retrieved successfully",
		TotalMembers:    total,
		ActiveMembers:   active,
		MembersByTier:   tierCounts,
		CreditsGranted:  granted,
		CreditsRedeemed: redeemed,
		GeneratedAt:     now.Format(time.RFC3339),
	}, nil
}

func (f *MembershipFlowImpl) memberByUUID(ctx context.Context, memberUUID string) (*models.Member, error) {
	id, err := uuid.Parse(memberUUID)
	if err != nil {
		return nil, NewBusinessError("MEMBER_UUID_INVALID", "Member identifier is invalid", err)
	}
	member, err := f.memberRepo.ByUUID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("MEMBER_LOOKUP_FAILED", "Failed to look up member", err)
	}
	if member == nil {
		return nil, NewBusinessError("MEMBER_NOT_FOUND", "Member not found", ErrMemberNotFound)
	}
	return member, nil
}

// generateMemberNumber produces a short unique member number like M-7F3A21C9
func (f *MembershipFlowImpl) generateMemberNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		candidate := "M-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
		existing, err := f.memberRepo.ByMemberNumber(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique member number")
}

func (f *MembershipFlowImpl) logMemberAction(ctx context.Context, staffID *uint, description string, success bool, metadata *ClientMetadata) {
	entry := &models.AuditLog{
		StaffID:     staffID,
		Action:      models.AuditActionMemberUpdated,
		Description: &description,
		Success:     &success,
	}
	if metadata != nil {
		if metadata.IPAddress != "" {
			entry.IPAddress = &metadata.IPAddress
		}
		if metadata.UserAgent != "" {
			entry.UserAgent = &metadata.UserAgent
		}
		if metadata.RequestID != "" {
			entry.RequestID = &metadata.RequestID
		}
	}
	_ = f.auditRepo.Save(ctx, entry)
}
