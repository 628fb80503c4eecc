package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type performanceFixture struct {
	flow     PerformanceFlow
	assets   *fakeAssetRepo
	pods     *fakePodConfigRepo
	sessions *fakePerformanceSessionRepo
	audit    *fakeAuditRepo
}

func newPerformanceFixture() *performanceFixture {
	f := &performanceFixture{
		assets:   &fakeAssetRepo{},
		pods:     &fakePodConfigRepo{},
		sessions: &fakePerformanceSessionRepo{},
		audit:    &fakeAuditRepo{},
	}
	f.flow = NewPerformanceFlow(f.pods, f.sessions, f.assets, f.audit, nil)
	return f
}

func (f *performanceFixture) addAsset() *models.Asset {
	asset := &models.Asset{
		ID:       uint(len(f.assets.items) + 1),
		UUID:     uuid.New(),
		SiteID:   "main",
		Type:     models.AssetTypeGolfBay,
		Name:     "Bay 3",
		IsActive: utils.ToPtr(true),
	}
	f.assets.items = append(f.assets.items, asset)
	return asset
}

func (f *performanceFixture) addSession(assetID uint, athlete, metric string, value float64, recordedAt time.Time) {
	f.sessions.items = append(f.sessions.items, &models.PerformanceSession{
		ID:          uint(len(f.sessions.items) + 1),
		UUID:        uuid.New(),
		AssetID:     assetID,
		AthleteName: athlete,
		Sport:       "baseball",
		Metric:      metric,
		Value:       value,
		Unit:        "mph",
		RecordedAt:  recordedAt,
	})
}

func TestConfigurePodCreatesConfig(t *testing.T) {
	f := newPerformanceFixture()
	asset := f.addAsset()
	staffID := uint(7)

	resp, err := f.flow.ConfigurePod(context.Background(), &dto.ConfigurePodRequest{
		AssetUUID:     asset.UUID.String(),
		TechPackages:  []string{models.TechPackageHitTrax, models.TechPackageRapsodo},
		TierAccess:    []string{"premium", "founders"},
		PremiumCharge: 15,
	}, &staffID, nil)
	require.NoError(t, err)

	require.Len(t, f.pods.items, 1)
	saved := f.pods.items[0]
	assert.Equal(t, asset.ID, saved.AssetID)
	assert.Equal(t, []string{models.TechPackageHitTrax, models.TechPackageRapsodo}, []string(saved.TechPackages))
	assert.Equal(t, models.PodDataRetentionDefaultDays, saved.DataRetentionDays)
	require.NotNil(t, saved.AICoachingEnabled)
	assert.True(t, *saved.AICoachingEnabled)
	require.NotNil(t, saved.UpdatedBy)
	assert.Equal(t, "staff:7", *saved.UpdatedBy)

	assert.Equal(t, asset.UUID.String(), resp.Config.AssetUUID)
	assert.InDelta(t, 15.0, resp.Config.PremiumCharge, 1e-6)

	require.Len(t, f.audit.items, 1)
	assert.Equal(t, models.AuditActionPodConfigUpdated, f.audit.items[0].Action)
}

func TestConfigurePodReplacesExistingConfig(t *testing.T) {
	f := newPerformanceFixture()
	asset := f.addAsset()
	f.pods.items = []*models.PodConfig{{
		ID:                1,
		UUID:              uuid.New(),
		AssetID:           asset.ID,
		TechPackages:      []string{models.TechPackageHitTrax},
		DataRetentionDays: 90,
		AICoachingEnabled: utils.ToPtr(false),
	}}

	_, err := f.flow.ConfigurePod(context.Background(), &dto.ConfigurePodRequest{
		AssetUUID:         asset.UUID.String(),
		TechPackages:      []string{models.TechPackageTrackMan},
		DataRetentionDays: utils.ToPtr(180),
	}, nil, nil)
	require.NoError(t, err)

	// the existing row is updated in place, never duplicated
	require.Len(t, f.pods.items, 1)
	saved := f.pods.items[0]
	assert.Equal(t, []string{models.TechPackageTrackMan}, []string(saved.TechPackages))
	assert.Equal(t, 180, saved.DataRetentionDays)
	require.NotNil(t, saved.AICoachingEnabled)
	assert.False(t, *saved.AICoachingEnabled)
}

func TestConfigurePodUnknownAsset(t *testing.T) {
	f := newPerformanceFixture()

	_, err := f.flow.ConfigurePod(context.Background(), &dto.ConfigurePodRequest{
		AssetUUID:    uuid.New().String(),
		TechPackages: []string{models.TechPackageHitTrax},
	}, nil, nil)

	assert.True(t, IsAssetNotFound(err))
}

func TestConfigurePodRejectsBadInput(t *testing.T) {
	f := newPerformanceFixture()
	asset := f.addAsset()

	tests := []struct {
		name string
		req  dto.ConfigurePodRequest
		want error
	}{
		{"negative premium", dto.ConfigurePodRequest{AssetUUID: asset.UUID.String(), TechPackages: []string{models.TechPackageHitTrax}, PremiumCharge: -5}, ErrPremiumChargeInvalid},
		{"retention too short", dto.ConfigurePodRequest{AssetUUID: asset.UUID.String(), TechPackages: []string{models.TechPackageHitTrax}, DataRetentionDays: utils.ToPtr(7)}, ErrRetentionOutOfRange},
		{"unknown tech", dto.ConfigurePodRequest{AssetUUID: asset.UUID.String(), TechPackages: []string{"crystal_ball"}}, ErrUnknownTechPackage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.flow.ConfigurePod(context.Background(), &tt.req, nil, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetPodConfigNotFound(t *testing.T) {
	f := newPerformanceFixture()
	asset := f.addAsset()

	_, err := f.flow.GetPodConfig(context.Background(), asset.UUID.String())

	assert.True(t, IsPodConfigNotFound(err))
}

func TestRecordSessionPersistsMeasurement(t *testing.T) {
	f := newPerformanceFixture()
	asset := f.addAsset()
	recordedAt := utils.UTCNow().Add(-time.Hour).Format(time.RFC3339)

	resp, err := f.flow.RecordSession(context.Background(), &dto.RecordSessionRequest{
		AssetUUID:   asset.UUID.String(),
		AthleteName: "  Riley Chen ",
		Sport:       "Baseball",
		Metric:      "Exit_Velocity",
		Value:       94.5,
		Unit:        "mph",
		RecordedAt:  &recordedAt,
	}, nil, nil)
	require.NoError(t, err)

	require.Len(t, f.sessions.items, 1)
	saved := f.sessions.items[0]
	// names are trimmed and sport/metric normalized to lower case
	assert.Equal(t, "Riley Chen", saved.AthleteName)
	assert.Equal(t, "baseball", saved.Sport)
	assert.Equal(t, "exit_velocity", saved.Metric)
	assert.InDelta(t, 94.5, saved.Value, 1e-6)

	assert.Equal(t, "exit_velocity", resp.Session.Metric)
	assert.Equal(t, asset.Name, resp.Session.AssetName)
}

func TestRecordSessionRejectsBadInput(t *testing.T) {
	f := newPerformanceFixture()
	asset := f.addAsset()
	future := utils.UTCNow().Add(time.Hour).Format(time.RFC3339)

	_, err := f.flow.RecordSession(context.Background(), &dto.RecordSessionRequest{
		AssetUUID:   asset.UUID.String(),
		AthleteName: "Riley Chen",
		Sport:       "baseball",
		Metric:      "exit_velocity",
		Value:       -1,
	}, nil, nil)
	assert.ErrorIs(t, err, ErrMetricValueInvalid)

	_, err = f.flow.RecordSession(context.Background(), &dto.RecordSessionRequest{
		AssetUUID:   asset.UUID.String(),
		AthleteName: "Riley Chen",
		Sport:       "baseball",
		Metric:      "exit_velocity",
		Value:       94.5,
		RecordedAt:  &future,
	}, nil, nil)
	assert.ErrorIs(t, err, ErrRecordedAtInFuture)
}

func TestLeaderboardRanksBestValueFirst(t *testing.T) {
	f := newPerformanceFixture()
	asset := f.addAsset()
	now := utils.UTCNow()

	f.addSession(asset.ID, "Riley Chen", "exit_velocity", 92.1, now.Add(-48*time.Hour))
	f.addSession(asset.ID, "Riley Chen", "exit_velocity", 95.3, now.Add(-24*time.Hour))
	f.addSession(asset.ID, "Sam Ortiz", "exit_velocity", 97.8, now.Add(-2*time.Hour))
	// outside the window and a different metric never rank
	f.addSession(asset.ID, "Old Timer", "exit_velocity", 99.9, now.AddDate(0, 0, -45))
	f.addSession(asset.ID, "Riley Chen", "sprint_speed", 21.4, now.Add(-time.Hour))

	resp, err := f.flow.Leaderboard(context.Background(), "exit_velocity", 30, 10)
	require.NoError(t, err)

	require.Len(t, resp.Entries, 2)
	assert.Equal(t, 1, resp.Entries[0].Rank)
	assert.Equal(t, "Sam Ortiz", resp.Entries[0].AthleteName)
	assert.InDelta(t, 97.8, resp.Entries[0].BestValue, 1e-6)
	assert.Equal(t, 2, resp.Entries[1].Rank)
	assert.Equal(t, "Riley Chen", resp.Entries[1].AthleteName)
	assert.InDelta(t, 95.3, resp.Entries[1].BestValue, 1e-6)
	assert.Equal(t, int64(2), resp.Entries[1].SessionCount)
}

func TestLeaderboardAppliesWindowAndLimitDefaults(t *testing.T) {
	f := newPerformanceFixture()

	resp, err := f.flow.Leaderboard(context.Background(), "Exit_Velocity", 0, -5)
	require.NoError(t, err)

	assert.Equal(t, "exit_velocity", resp.Metric)
	assert.Equal(t, 30, resp.Days)
	assert.Empty(t, resp.Entries)
}

func TestLeaderboardRequiresMetric(t *testing.T) {
	f := newPerformanceFixture()

	_, err := f.flow.Leaderboard(context.Background(), "   ", 30, 10)

	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "LEADERBOARD_METRIC_REQUIRED", be.Code)
}
