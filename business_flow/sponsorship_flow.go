package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/repository"
	"github.com/skillshot/sportai/utils"
	"gorm.io/gorm"
)

// Bundle discount thresholds. The largest applicable discount wins.
const (
	bundleDiscountLargeCount     = 5
	bundleDiscountLargePercent   = 15.0
	bundleDiscountMediumCount    = 3
	bundleDiscountMediumPercent  = 10.0
	bundleDiscountValueThreshold = 100000.0
	bundleDiscountValuePercent   = 8.0
)

// SponsorshipFlow manages sponsors, sellable inventory and bundle contracts
type SponsorshipFlow interface {
	CreateSponsor(ctx context.Context, req *dto.CreateSponsorRequest) (*dto.SponsorResponse, error)
	ListSponsors(ctx context.Context, status *string) (*dto.ListSponsorsResponse, error)
	CreateInventory(ctx context.Context, req *dto.CreateSponsorshipAssetRequest) (*dto.SponsorshipAssetDTO, error)
	ListInventory(ctx context.Context, availableOnly bool) (*dto.ListSponsorshipAssetsResponse, error)
	ProposeBundle(ctx context.Context, req *dto.ProposeBundleRequest, staffID *uint, metadata *ClientMetadata) (*dto.ContractResponse, error)
	SignContract(ctx context.Context, contractUUID string, staffID *uint, metadata *ClientMetadata) (*dto.ContractResponse, error)
	ListContracts(ctx context.Context, sponsorUUID *string) (*dto.ListContractsResponse, error)
}

// SponsorshipFlowImpl implements the sponsorship business flow
type SponsorshipFlowImpl struct {
	sponsorRepo     repository.SponsorRepository
	inventoryRepo   repository.SponsorshipAssetRepository
	contractRepo    repository.ContractRepository
	transactionRepo repository.TransactionRepository
	auditRepo       repository.AuditLogRepository
	db              *gorm.DB
}

// NewSponsorshipFlow creates a new sponsorship flow instance
func NewSponsorshipFlow(
	sponsorRepo repository.SponsorRepository,
	inventoryRepo repository.SponsorshipAssetRepository,
	contractRepo repository.ContractRepository,
	transactionRepo repository.TransactionRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) SponsorshipFlow {
	return &SponsorshipFlowImpl{
		sponsorRepo:     sponsorRepo,
		inventoryRepo:   inventoryRepo,
		contractRepo:    contractRepo,
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
		db:              db,
	}
}

// CreateSponsor registers a sponsor as a prospect
func (f *SponsorshipFlowImpl) CreateSponsor(ctx context.Context, req *dto.CreateSponsorRequest) (*dto.SponsorResponse, error) {
	sponsor := &models.Sponsor{
		Name:         req.Name,
		Industry:     req.Industry,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Status:       models.SponsorStatusProspect,
		Tier:         req.Tier,
		AnnualValue:  req.AnnualValue,
		Objectives:   req.Objectives,
		CreatedAt:    utils.UTCNow(),
		UpdatedAt:    utils.UTCNow(),
	}

	if err := f.sponsorRepo.Save(ctx, sponsor); err != nil {
		return nil, NewBusinessError("SPONSOR_CREATE_FAILED", "Failed to create sponsor", err)
	}

	return &dto.SponsorResponse{
		Message: "Sponsor registered successfully",
		Sponsor: ToSponsorDTO(*sponsor),
	}, nil
}

// ListSponsors lists sponsors, optionally filtered by status
func (f *SponsorshipFlowImpl) ListSponsors(ctx context.Context, status *string) (*dto.ListSponsorsResponse, error) {
	var rows []*models.Sponsor
	var err error
	if status != nil {
		rows, err = f.sponsorRepo.ListByStatus(ctx, *status)
	} else {
		rows, err = f.sponsorRepo.ByFilter(ctx, models.SponsorFilter{}, "created_at DESC", 0, 0)
	}
	if err != nil {
		return nil, NewBusinessError("SPONSOR_LIST_FAILED", "Failed to list sponsors", err)
	}

	items := make([]dto.SponsorDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, ToSponsorDTO(*row))
	}

	return &dto.ListSponsorsResponse{
		Message: "Sponsors retrieved successfully",
		Items:   items,
	}, nil
}

// CreateInventory adds a sellable inventory item to the catalog
func (f *SponsorshipFlowImpl) CreateInventory(ctx context.Context, req *dto.CreateSponsorshipAssetRequest) (*dto.SponsorshipAssetDTO, error) {
	item := &models.SponsorshipAsset{
		Name:        req.Name,
		Category:    req.Category,
		AnnualValue: req.AnnualValue,
		Impressions: req.Impressions,
		Status:      models.SponsorshipAssetAvailable,
		CreatedAt:   utils.UTCNow(),
		UpdatedAt:   utils.UTCNow(),
	}

	if err := f.inventoryRepo.Save(ctx, item); err != nil {
		return nil, NewBusinessError("INVENTORY_CREATE_FAILED", "Failed to create inventory item", err)
	}

	out := ToSponsorshipAssetDTO(*item)
	return &out, nil
}

// ListInventory lists inventory items, optionally only sellable ones
func (f *SponsorshipFlowImpl) ListInventory(ctx context.Context, availableOnly bool) (*dto.ListSponsorshipAssetsResponse, error) {
	var rows []*models.SponsorshipAsset
	var err error
	if availableOnly {
		rows, err = f.inventoryRepo.ListAvailable(ctx)
	} else {
		rows, err = f.inventoryRepo.ByFilter(ctx, models.SponsorshipAssetFilter{}, "annual_value DESC", 0, 0)
	}
	if err != nil {
		return nil, NewBusinessError("INVENTORY_LIST_FAILED", "Failed to list inventory", err)
	}

	items := make([]dto.SponsorshipAssetDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, ToSponsorshipAssetDTO(*row))
	}

	return &dto.ListSponsorshipAssetsResponse{
		Message: "Inventory retrieved successfully",
		Items:   items,
	}, nil
}

// ProposeBundle builds a discounted contract from selected inventory and
// reserves the items until the contract is signed or declined.
func (f *SponsorshipFlowImpl) ProposeBundle(ctx context.Context, req *dto.ProposeBundleRequest, staffID *uint, metadata *ClientMetadata) (*dto.ContractResponse, error) {
	if len(req.AssetIDs) == 0 {
		return nil, NewBusinessError("BUNDLE_EMPTY", "Bundle requires at least one inventory item", ErrBundleEmptySelection)
	}

	sponsorUUID, err := uuid.Parse(req.SponsorUUID)
	if err != nil {
		return nil, NewBusinessError("SPONSOR_UUID_INVALID", "Sponsor identifier is invalid", err)
	}
	sponsor, err := f.sponsorRepo.ByUUID(ctx, sponsorUUID)
	if err != nil {
		return nil, NewBusinessError("SPONSOR_LOOKUP_FAILED", "Failed to look up sponsor", err)
	}
	if sponsor == nil {
		return nil, NewBusinessError("SPONSOR_NOT_FOUND", "Sponsor not found", ErrSponsorNotFound)
	}

	var startDate, endDate *time.Time
	if req.StartDate != nil {
		t, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, NewBusinessError("CONTRACT_DATE_INVALID", "Start date is invalid", err)
		}
		startDate = &t
	}
	if req.EndDate != nil {
		t, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, NewBusinessError("CONTRACT_DATE_INVALID", "End date is invalid", err)
		}
		endDate = &t
	}
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return nil, NewBusinessError("CONTRACT_DATES_INCONSISTENT", "Contract start date must precede end date", ErrContractDatesInconsistent)
	}

	items, err := f.inventoryRepo.ListByIDs(ctx, req.AssetIDs)
	if err != nil {
		return nil, NewBusinessError("INVENTORY_LOOKUP_FAILED", "Failed to look up inventory", err)
	}
	if len(items) != len(req.AssetIDs) {
		return nil, NewBusinessError("INVENTORY_NOT_FOUND", "One or more inventory items do not exist", ErrInventoryNotFound)
	}

	var listValue float64
	snapshot := make([]models.SponsorshipAsset, 0, len(items))
	for _, item := range items {
		if item.Status != models.SponsorshipAssetAvailable {
			return nil, NewBusinessErrorf("INVENTORY_UNAVAILABLE",
				"Inventory item %q is not available", ErrInventoryUnavailable, item.Name)
		}
		listValue += item.AnnualValue
		snapshot = append(snapshot, *item)
	}

	discount := bundleDiscountFor(len(items), listValue)
	totalValue := listValue * (1 - discount/100)

	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return nil, NewBusinessError("CONTRACT_SNAPSHOT_ENCODE_FAILED", "Failed to encode bundle snapshot", err)
	}

	contract := &models.Contract{
		SponsorID:       sponsor.ID,
		Title:           req.Title,
		AssetItems:      snapshotJSON,
		ListValue:       listValue,
		DiscountPercent: discount,
		TotalValue:      totalValue,
		Status:          models.ContractStatusProposed,
		StartDate:       startDate,
		EndDate:         endDate,
		Notes:           req.Notes,
		CreatedAt:       utils.UTCNow(),
		UpdatedAt:       utils.UTCNow(),
	}
	if staffID != nil {
		createdBy := fmt.Sprintf("staff:%d", *staffID)
		contract.CreatedBy = &createdBy
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.contractRepo.Save(txCtx, contract); err != nil {
			return fmt.Errorf("failed to save contract: %w", err)
		}
		if err := f.inventoryRepo.MarkStatus(txCtx, req.AssetIDs, models.SponsorshipAssetReserved, nil); err != nil {
			return fmt.Errorf("failed to reserve inventory: %w", err)
		}
		return nil
	})
	if err != nil {
		f.logContractAction(ctx, staffID, models.AuditActionContractProposed,
			fmt.Sprintf("Bundle proposal failed for sponsor %s: %v", sponsor.Name, err), false, metadata)
		return nil, NewBusinessError("CONTRACT_PROPOSE_FAILED", "Failed to propose bundle", err)
	}

	contract.Sponsor = *sponsor
	f.logContractAction(ctx, staffID, models.AuditActionContractProposed,
		fmt.Sprintf("Contract %s proposed to sponsor %s at %.1f%% discount", contract.UUID, sponsor.Name, discount), true, metadata)

	return &dto.ContractResponse{
		Message:  "Bundle proposed successfully",
		Contract: ToContractDTO(*contract),
	}, nil
}

// SignContract marks a proposed contract as signed, sells the bundled
// inventory to the sponsor and records the fee in the ledger.
func (f *SponsorshipFlowImpl) SignContract(ctx context.Context, contractUUID string, staffID *uint, metadata *ClientMetadata) (*dto.ContractResponse, error) {
	id, err := uuid.Parse(contractUUID)
	if err != nil {
		return nil, NewBusinessError("CONTRACT_UUID_INVALID", "Contract identifier is invalid", err)
	}

	contract, err := f.contractRepo.ByUUID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("CONTRACT_LOOKUP_FAILED", "Failed to look up contract", err)
	}
	if contract == nil {
		return nil, NewBusinessError("CONTRACT_NOT_FOUND", "Contract not found", ErrContractNotFound)
	}
	if contract.IsSigned() {
		return nil, NewBusinessError("CONTRACT_ALREADY_SIGNED", "Contract is already signed", ErrContractAlreadySigned)
	}
	if contract.Status != models.ContractStatusProposed {
		return nil, NewBusinessError("CONTRACT_NOT_PROPOSED", "Contract is not in a signable state", ErrContractNotProposed)
	}

	var bundled []models.SponsorshipAsset
	if len(contract.AssetItems) > 0 {
		if err := json.Unmarshal(contract.AssetItems, &bundled); err != nil {
			return nil, NewBusinessError("CONTRACT_SNAPSHOT_DECODE_FAILED", "Failed to decode bundle snapshot", err)
		}
	}
	assetIDs := make([]uint, 0, len(bundled))
	for _, item := range bundled {
		assetIDs = append(assetIDs, item.ID)
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		now := utils.UTCNow()
		contract.Status = models.ContractStatusSigned
		contract.SignedAt = &now
		contract.UpdatedAt = now
		if err := f.contractRepo.Update(txCtx, contract); err != nil {
			return fmt.Errorf("failed to sign contract: %w", err)
		}

		if len(assetIDs) > 0 {
			if err := f.inventoryRepo.MarkStatus(txCtx, assetIDs, models.SponsorshipAssetSold, &contract.SponsorID); err != nil {
				return fmt.Errorf("failed to mark inventory sold: %w", err)
			}
		}

		sponsor, err := f.sponsorRepo.ByID(txCtx, contract.SponsorID)
		if err != nil {
			return err
		}
		if sponsor != nil && sponsor.Status != models.SponsorStatusActive {
			sponsor.Status = models.SponsorStatusActive
			sponsor.UpdatedAt = now
			if err := f.sponsorRepo.Update(txCtx, sponsor); err != nil {
				return fmt.Errorf("failed to activate sponsor: %w", err)
			}
		}

		fee := &models.Transaction{
			Type:        models.TransactionTypeSponsorshipFee,
			Status:      models.TransactionStatusCompleted,
			Amount:      contract.TotalValue,
			Currency:    utils.DefaultCurrency,
			SponsorID:   &contract.SponsorID,
			ContractID:  &contract.ID,
			Description: fmt.Sprintf("Sponsorship fee for contract %s", contract.Title),
		}
		return f.transactionRepo.Save(txCtx, fee)
	})
	if err != nil {
		f.logContractAction(ctx, staffID, models.AuditActionContractSigned,
			fmt.Sprintf("Signing failed for contract %s: %v", contract.UUID, err), false, metadata)
		return nil, NewBusinessError("CONTRACT_SIGN_FAILED", "Failed to sign contract", err)
	}

	f.logContractAction(ctx, staffID, models.AuditActionContractSigned,
		fmt.Sprintf("Contract %s signed for %.2f", contract.UUID, contract.TotalValue), true, metadata)

	// reload with the sponsor preloaded for the response
	signed, err := f.contractRepo.ByUUID(ctx, id)
	if err == nil && signed != nil {
		contract = signed
	}

	return &dto.ContractResponse{
		Message:  "Contract signed successfully",
		Contract: ToContractDTO(*contract),
	}, nil
}

// ListContracts lists contracts, optionally scoped to one sponsor
func (f *SponsorshipFlowImpl) ListContracts(ctx context.Context, sponsorUUID *string) (*dto.ListContractsResponse, error) {
	var rows []*models.Contract
	var err error
	if sponsorUUID != nil {
		id, parseErr := uuid.Parse(*sponsorUUID)
		if parseErr != nil {
			return nil, NewBusinessError("SPONSOR_UUID_INVALID", "Sponsor identifier is invalid", parseErr)
		}
		sponsor, lookupErr := f.sponsorRepo.ByUUID(ctx, id)
		if lookupErr != nil {
			return nil, NewBusinessError("SPONSOR_LOOKUP_FAILED", "Failed to look up sponsor", lookupErr)
		}
		if sponsor == nil {
			return nil, NewBusinessError("SPONSOR_NOT_FOUND", "Sponsor not found", ErrSponsorNotFound)
		}
		rows, err = f.contractRepo.ListBySponsor(ctx, sponsor.ID)
	} else {
		rows, err = f.contractRepo.ByFilter(ctx, models.ContractFilter{}, "created_at DESC", 0, 0)
	}
	if err != nil {
		return nil, NewBusinessError("CONTRACT_LIST_FAILED", "Failed to list contracts", err)
	}

	items := make([]dto.ContractDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, ToContractDTO(*row))
	}

	return &dto.ListContractsResponse{
		Message: "Contracts retrieved successfully",
		Items:   items,
	}, nil
}

// bundleDiscountFor picks the largest discount the bundle qualifies for
func bundleDiscountFor(itemCount int, listValue float64) float64 {
	discount := 0.0
	if itemCount >= bundleDiscountMediumCount {
		discount = bundleDiscountMediumPercent
	}
	if itemCount >= bundleDiscountLargeCount {
		discount = bundleDiscountLargePercent
	}
	if listValue >= bundleDiscountValueThreshold && discount < bundleDiscountValuePercent {
		discount = bundleDiscountValuePercent
	}
	return discount
}

func (f *SponsorshipFlowImpl) logContractAction(ctx context.Context, staffID *uint, action, description string, success bool, metadata *ClientMetadata) {
	entry := &models.AuditLog{
		StaffID:     staffID,
		Action:      action,
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
