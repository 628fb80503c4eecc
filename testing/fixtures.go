// Package testing provides test utilities and database setup for testing the facility platform
package testing

import (
	"fmt"
	"math/rand"

	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/utils"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestStaff creates a staff account with the given role and a known password
func (tf *TestFixtures) CreateTestStaff(role, password string) (*models.Staff, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash test password: %w", err)
	}

	staff := &models.Staff{
		Username:     fmt.Sprintf("staff_%d", rand.Intn(1000000)),
		PasswordHash: string(hash),
		FullName:     "Test Staff",
		Role:         role,
		IsActive:     utils.ToPtr(true),
		CreatedAt:    utils.UTCNow(),
		UpdatedAt:    utils.UTCNow(),
	}
	if err := tf.DB.DB.Create(staff).Error; err != nil {
		return nil, fmt.Errorf("failed to create test staff: %w", err)
	}
	return staff, nil
}

// CreateTestAsset creates a bookable asset
func (tf *TestFixtures) CreateTestAsset(siteID, assetType string) (*models.Asset, error) {
	asset := &models.Asset{
		SiteID:    siteID,
		Type:      assetType,
		Name:      fmt.Sprintf("Test %s %d", assetType, rand.Intn(1000000)),
		Capacity:  utils.ToPtr(30),
		IsActive:  utils.ToPtr(true),
		CreatedAt: utils.UTCNow(),
		UpdatedAt: utils.UTCNow(),
	}
	if err := tf.DB.DB.Create(asset).Error; err != nil {
		return nil, fmt.Errorf("failed to create test asset: %w", err)
	}
	return asset, nil
}

// CreateTestMember creates an active member with the given tier and credits
func (tf *TestFixtures) CreateTestMember(tier string, credits float64) (*models.Member, error) {
	member := &models.Member{
		MemberNumber:   fmt.Sprintf("M-TEST%06d", rand.Intn(1000000)),
		Name:           "Test Member",
		Tier:           tier,
		CreditsBalance: credits,
		JoinDate:       utils.UTCNow(),
		Status:         models.MemberStatusActive,
		CreatedAt:      utils.UTCNow(),
		UpdatedAt:      utils.UTCNow(),
	}
	if err := tf.DB.DB.Create(member).Error; err != nil {
		return nil, fmt.Errorf("failed to create test member: %w", err)
	}
	return member, nil
}

// CreateTestSponsor creates a sponsor prospect
func (tf *TestFixtures) CreateTestSponsor() (*models.Sponsor, error) {
	sponsor := &models.Sponsor{
		Name:      fmt.Sprintf("Test Sponsor %d", rand.Intn(1000000)),
		Status:    models.SponsorStatusProspect,
		CreatedAt: utils.UTCNow(),
		UpdatedAt: utils.UTCNow(),
	}
	if err := tf.DB.DB.Create(sponsor).Error; err != nil {
		return nil, fmt.Errorf("failed to create test sponsor: %w", err)
	}
	return sponsor, nil
}

// CreateTestInventory creates an available sponsorship inventory item
func (tf *TestFixtures) CreateTestInventory(category string, annualValue float64) (*models.SponsorshipAsset, error) {
	item := &models.SponsorshipAsset{
		Name:        fmt.Sprintf("Test Inventory %d", rand.Intn(1000000)),
		Category:    category,
		AnnualValue: annualValue,
		Status:      models.SponsorshipAssetAvailable,
		CreatedAt:   utils.UTCNow(),
		UpdatedAt:   utils.UTCNow(),
	}
	if err := tf.DB.DB.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create test inventory item: %w", err)
	}
	return item, nil
}
