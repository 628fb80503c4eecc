package businessflow

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/repository"
)

// fakeRepo is the in-memory base for the repository fakes used in flow tests.
// It keeps rows in insertion order and only implements the behavior the flows
// actually rely on.
type fakeRepo[T any, F any] struct {
	items   []*T
	saveErr error
}

func (r *fakeRepo[T, F]) ByID(_ context.Context, _ uint) (*T, error) {
	return nil, nil
}

func (r *fakeRepo[T, F]) ByFilter(_ context.Context, _ F, _ string, limit, offset int) ([]*T, error) {
	if offset >= len(r.items) {
		return nil, nil
	}
	out := r.items[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepo[T, F]) Save(_ context.Context, entity *T) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.items = append(r.items, entity)
	return nil
}

func (r *fakeRepo[T, F]) Update(_ context.Context, _ *T) error {
	return nil
}

func (r *fakeRepo[T, F]) SaveBatch(_ context.Context, entities []*T) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.items = append(r.items, entities...)
	return nil
}

func (r *fakeRepo[T, F]) Count(_ context.Context, _ F) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakeRepo[T, F]) Exists(_ context.Context, _ F) (bool, error) {
	return len(r.items) > 0, nil
}

type fakeAssetRepo struct {
	fakeRepo[models.Asset, models.AssetFilter]
}

var _ repository.AssetRepository = (*fakeAssetRepo)(nil)

func (r *fakeAssetRepo) ByUUID(_ context.Context, id uuid.UUID) (*models.Asset, error) {
	for _, a := range r.items {
		if a.UUID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAssetRepo) ListActive(_ context.Context) ([]*models.Asset, error) {
	var out []*models.Asset
	for _, a := range r.items {
		if a.IsActive != nil && *a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssetRepo) ListBySite(_ context.Context, siteID string) ([]*models.Asset, error) {
	var out []*models.Asset
	for _, a := range r.items {
		if a.SiteID == siteID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeBookingRepo struct {
	fakeRepo[models.Booking, models.BookingFilter]

	conflict        bool
	segmentRevenue  []*repository.SegmentRevenueRow
	utilization     []*repository.AssetUtilizationRow
	aggregationsErr error
}

var _ repository.BookingRepository = (*fakeBookingRepo)(nil)

func (r *fakeBookingRepo) ByUUID(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	for _, b := range r.items {
		if b.UUID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) ListByAssetAndDate(_ context.Context, assetID uint, date time.Time) ([]*models.Booking, error) {
	var out []*models.Booking
	for _, b := range r.items {
		if b.AssetID == assetID && b.BookingDate.Equal(date) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) HasConflict(_ context.Context, _ uint, _ time.Time, _ string) (bool, error) {
	return r.conflict, nil
}

func (r *fakeBookingRepo) RevenueBySegment(_ context.Context, _, _ time.Time) ([]*repository.SegmentRevenueRow, error) {
	return r.segmentRevenue, r.aggregationsErr
}

func (r *fakeBookingRepo) UtilizationByAsset(_ context.Context, _, _ time.Time) ([]*repository.AssetUtilizationRow, error) {
	return r.utilization, r.aggregationsErr
}

type fakeMemberRepo struct {
	fakeRepo[models.Member, models.MemberFilter]
}

var _ repository.MemberRepository = (*fakeMemberRepo)(nil)

func (r *fakeMemberRepo) ByID(_ context.Context, id uint) (*models.Member, error) {
	for _, m := range r.items {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) ByUUID(_ context.Context, id uuid.UUID) (*models.Member, error) {
	for _, m := range r.items {
		if m.UUID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) ByMemberNumber(_ context.Context, memberNumber string) (*models.Member, error) {
	for _, m := range r.items {
		if m.MemberNumber == memberNumber {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) AdjustCredits(_ context.Context, memberID uint, delta float64) error {
	for _, m := range r.items {
		if m.ID == memberID {
			if m.CreditsBalance+delta < 0 {
				return ErrInsufficientCredits
			}
			m.CreditsBalance += delta
			return nil
		}
	}
	return ErrMemberNotFound
}

func (r *fakeMemberRepo) TierCounts(_ context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, m := range r.items {
		out[m.Tier]++
	}
	return out, nil
}

type fakeSponsorRepo struct {
	fakeRepo[models.Sponsor, models.SponsorFilter]
}

var _ repository.SponsorRepository = (*fakeSponsorRepo)(nil)

func (r *fakeSponsorRepo) ByID(_ context.Context, id uint) (*models.Sponsor, error) {
	for _, s := range r.items {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSponsorRepo) ByUUID(_ context.Context, id uuid.UUID) (*models.Sponsor, error) {
	for _, s := range r.items {
		if s.UUID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSponsorRepo) ListByStatus(_ context.Context, status string) ([]*models.Sponsor, error) {
	var out []*models.Sponsor
	for _, s := range r.items {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeInventoryRepo struct {
	fakeRepo[models.SponsorshipAsset, models.SponsorshipAssetFilter]
}

var _ repository.SponsorshipAssetRepository = (*fakeInventoryRepo)(nil)

func (r *fakeInventoryRepo) ListAvailable(_ context.Context) ([]*models.SponsorshipAsset, error) {
	var out []*models.SponsorshipAsset
	for _, it := range r.items {
		if it.Status == models.SponsorshipAssetAvailable {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) ListByIDs(_ context.Context, ids []uint) ([]*models.SponsorshipAsset, error) {
	var out []*models.SponsorshipAsset
	for _, id := range ids {
		for _, it := range r.items {
			if it.ID == id {
				out = append(out, it)
			}
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) MarkStatus(_ context.Context, ids []uint, status string, sponsorID *uint) error {
	for _, id := range ids {
		for _, it := range r.items {
			if it.ID == id {
				it.Status = status
				if sponsorID != nil {
					it.SponsorID = sponsorID
				}
			}
		}
	}
	return nil
}

type fakeContractRepo struct {
	fakeRepo[models.Contract, models.ContractFilter]
}

var _ repository.ContractRepository = (*fakeContractRepo)(nil)

func (r *fakeContractRepo) ByUUID(_ context.Context, id uuid.UUID) (*models.Contract, error) {
	for _, c := range r.items {
		if c.UUID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeContractRepo) ListBySponsor(_ context.Context, sponsorID uint) ([]*models.Contract, error) {
	var out []*models.Contract
	for _, c := range r.items {
		if c.SponsorID == sponsorID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeTransactionRepo struct {
	fakeRepo[models.Transaction, models.TransactionFilter]
}

var _ repository.TransactionRepository = (*fakeTransactionRepo)(nil)

func (r *fakeTransactionRepo) ByCorrelationID(_ context.Context, correlationID uuid.UUID) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for _, tx := range r.items {
		if tx.CorrelationID == correlationID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) SumCompletedByType(_ context.Context, txType models.TransactionType, _, _ time.Time) (float64, error) {
	var total float64
	for _, tx := range r.items {
		if tx.Type == txType && tx.Status == models.TransactionStatusCompleted {
			total += tx.Amount
		}
	}
	return total, nil
}

type fakeAuditRepo struct {
	fakeRepo[models.AuditLog, models.AuditLogFilter]

	lastLimit  int
	lastOffset int
}

var _ repository.AuditLogRepository = (*fakeAuditRepo)(nil)

func (r *fakeAuditRepo) ListByStaff(_ context.Context, staffID uint, limit, offset int) ([]*models.AuditLog, error) {
	r.lastLimit, r.lastOffset = limit, offset
	var out []*models.AuditLog
	for _, e := range r.items {
		if e.StaffID != nil && *e.StaffID == staffID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeAuditRepo) ListByAction(_ context.Context, action string, limit, offset int) ([]*models.AuditLog, error) {
	r.lastLimit, r.lastOffset = limit, offset
	var out []*models.AuditLog
	for _, e := range r.items {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeAuditRepo) ListFailedActions(_ context.Context, limit, offset int) ([]*models.AuditLog, error) {
	r.lastLimit, r.lastOffset = limit, offset
	var out []*models.AuditLog
	for _, e := range r.items {
		if e.IsFailed() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeAuditRepo) ListGovernanceEvents(_ context.Context, limit, offset int) ([]*models.AuditLog, error) {
	r.lastLimit, r.lastOffset = limit, offset
	var out []*models.AuditLog
	for _, e := range r.items {
		if e.IsGovernanceEvent() {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeStaffRepo struct {
	fakeRepo[models.Staff, models.StaffFilter]
}

var _ repository.StaffRepository = (*fakeStaffRepo)(nil)

func (r *fakeStaffRepo) ByID(_ context.Context, id uint) (*models.Staff, error) {
	for _, s := range r.items {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeStaffRepo) ByUUID(_ context.Context, id uuid.UUID) (*models.Staff, error) {
	for _, s := range r.items {
		if s.UUID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeStaffRepo) ByUsername(_ context.Context, username string) (*models.Staff, error) {
	for _, s := range r.items {
		if s.Username == username {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeStaffRepo) UpdatePassword(_ context.Context, staffID uint, passwordHash string) error {
	for _, s := range r.items {
		if s.ID == staffID {
			s.PasswordHash = passwordHash
		}
	}
	return nil
}

func (r *fakeStaffRepo) UpdateLastLogin(_ context.Context, staffID uint, at time.Time) error {
	for _, s := range r.items {
		if s.ID == staffID {
			s.LastLoginAt = &at
		}
	}
	return nil
}

type fakeStaffSessionRepo struct {
	fakeRepo[models.StaffSession, models.StaffSessionFilter]

	expiredIDs []uint
}

var _ repository.StaffSessionRepository = (*fakeStaffSessionRepo)(nil)

func (r *fakeStaffSessionRepo) BySessionToken(_ context.Context, token string) (*models.StaffSession, error) {
	for _, s := range r.items {
		if s.SessionToken == token {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeStaffSessionRepo) ByRefreshToken(_ context.Context, token string) (*models.StaffSession, error) {
	for _, s := range r.items {
		if s.RefreshToken != nil && *s.RefreshToken == token {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeStaffSessionRepo) ListActiveSessionsByStaff(_ context.Context, staffID uint) ([]*models.StaffSession, error) {
	var out []*models.StaffSession
	for _, s := range r.items {
		if s.StaffID == staffID && s.IsValid() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStaffSessionRepo) ExpireSession(_ context.Context, sessionID uint) error {
	r.expiredIDs = append(r.expiredIDs, sessionID)
	inactive := false
	for _, s := range r.items {
		if s.ID == sessionID {
			s.IsActive = &inactive
		}
	}
	return nil
}

func (r *fakeStaffSessionRepo) ExpireAllStaffSessions(_ context.Context, staffID uint) error {
	inactive := false
	for _, s := range r.items {
		if s.StaffID == staffID {
			s.IsActive = &inactive
		}
	}
	return nil
}

func (r *fakeStaffSessionRepo) CleanupExpiredSessions(_ context.Context) error {
	return nil
}

type fakePodConfigRepo struct {
	fakeRepo[models.PodConfig, models.PodConfigFilter]
}

var _ repository.PodConfigRepository = (*fakePodConfigRepo)(nil)

func (r *fakePodConfigRepo) ByUUID(_ context.Context, id uuid.UUID) (*models.PodConfig, error) {
	for _, cfg := range r.items {
		if cfg.UUID == id {
			return cfg, nil
		}
	}
	return nil, nil
}

func (r *fakePodConfigRepo) ByAssetID(_ context.Context, assetID uint) (*models.PodConfig, error) {
	for _, cfg := range r.items {
		if cfg.AssetID == assetID {
			return cfg, nil
		}
	}
	return nil, nil
}

type fakePerformanceSessionRepo struct {
	fakeRepo[models.PerformanceSession, models.PerformanceSessionFilter]
}

var _ repository.PerformanceSessionRepository = (*fakePerformanceSessionRepo)(nil)

func (r *fakePerformanceSessionRepo) Leaderboard(_ context.Context, metric string, from, to time.Time, limit int) ([]*repository.LeaderboardRow, error) {
	byAthlete := make(map[string]*repository.LeaderboardRow)
	var order []string
	for _, s := range r.items {
		if s.Metric != metric || s.RecordedAt.Before(from) || !s.RecordedAt.Before(to) {
			continue
		}
		row, ok := byAthlete[s.AthleteName]
		if !ok {
			row = &repository.LeaderboardRow{AthleteName: s.AthleteName, Unit: s.Unit}
			byAthlete[s.AthleteName] = row
			order = append(order, s.AthleteName)
		}
		if s.Value > row.BestValue {
			row.BestValue = s.Value
		}
		row.SessionCount++
	}

	out := make([]*repository.LeaderboardRow, 0, len(byAthlete))
	for _, name := range order {
		out = append(out, byAthlete[name])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BestValue > out[j].BestValue })
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type fakePricingRuleRepo struct {
	fakeRepo[models.PricingRule, models.PricingRuleFilter]
}

var _ repository.PricingRuleRepository = (*fakePricingRuleRepo)(nil)

func (r *fakePricingRuleRepo) LatestByKind(_ context.Context, kind string) (*models.PricingRule, error) {
	var latest *models.PricingRule
	for _, row := range r.items {
		if row.Kind == kind && (latest == nil || row.Version > latest.Version) {
			latest = row
		}
	}
	return latest, nil
}

func (r *fakePricingRuleRepo) HistoryByKind(_ context.Context, kind string, limit, offset int) ([]*models.PricingRule, error) {
	var out []*models.PricingRule
	for _, row := range r.items {
		if row.Kind == kind {
			out = append(out, row)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePricingRuleRepo) NextVersion(ctx context.Context, kind string) (int, error) {
	latest, err := r.LatestByKind(ctx, kind)
	if err != nil {
		return 0, err
	}
	if latest == nil {
		return 1, nil
	}
	return latest.Version + 1, nil
}
