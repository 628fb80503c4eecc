// Package businessflow contains the business logic for the facility platform.
package businessflow

import (
	"encoding/json"
	"time"

	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/config"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/pricing"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds all client-related information for audit logging and session tracking
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	DeviceInfo map[string]string `json:"device_info,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
	SessionID  string            `json:"session_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		DeviceInfo: make(map[string]string),
		Additional: make(map[string]string),
	}
}

// AddDeviceInfo adds device information to the metadata
func (cm *ClientMetadata) AddDeviceInfo(key, value string) {
	if cm.DeviceInfo == nil {
		cm.DeviceInfo = make(map[string]string)
	}
	cm.DeviceInfo[key] = value
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// SetSessionID sets the session ID
func (cm *ClientMetadata) SetSessionID(sessionID string) {
	cm.SessionID = sessionID
}

// redisKey namespaces a cache key with the configured prefix
func redisKey(cfg config.CacheConfig, key string) string {
	return cfg.RedisPrefix + key
}

// ToStaffDTO converts a staff model for authentication responses
func ToStaffDTO(staff models.Staff) dto.StaffDTO {
	out := dto.StaffDTO{
		ID:        staff.ID,
		UUID:      staff.UUID.String(),
		Username:  staff.Username,
		FullName:  staff.FullName,
		Email:     staff.Email,
		Role:      staff.Role,
		IsActive:  staff.IsActive,
		CreatedAt: staff.CreatedAt.Format(time.RFC3339),
	}
	if staff.LastLoginAt != nil {
		s := staff.LastLoginAt.Format(time.RFC3339)
		out.LastLoginAt = &s
	}
	return out
}

func ToSessionDTO(session models.StaffSession) dto.SessionDTO {
	return dto.SessionDTO{
		SessionToken: session.SessionToken,
		RefreshToken: session.RefreshToken,
		ExpiresIn:    int(time.Until(session.ExpiresAt).Seconds()),
		TokenType:    "Bearer",
		CreatedAt:    session.CreatedAt.Format(time.RFC3339),
	}
}

// ToBookingDTO converts a booking model, decoding the stored factor waterfall
func ToBookingDTO(booking models.Booking) dto.BookingDTO {
	out := dto.BookingDTO{
		ID:              booking.ID,
		UUID:            booking.UUID.String(),
		CustomerName:    booking.CustomerName,
		CustomerEmail:   booking.CustomerEmail,
		CustomerSegment: booking.CustomerSegment,
		BookingDate:     booking.BookingDate.Format("2006-01-02"),
		TimeSlot:        booking.TimeSlot,
		DurationHours:   booking.DurationHours,
		RatePerHour:     booking.RatePerHour,
		TotalAmount:     booking.TotalAmount,
		Status:          booking.Status,
		Notes:           booking.Notes,
		CreatedAt:       booking.CreatedAt.Format(time.RFC3339),
	}
	if booking.Asset.ID != 0 {
		out.AssetUUID = booking.Asset.UUID.String()
		out.AssetName = booking.Asset.Name
	}
	if len(booking.PriceFactors) > 0 {
		var factors []pricing.Factor
		if err := json.Unmarshal(booking.PriceFactors, &factors); err == nil {
			out.PriceFactors = ToPriceFactorDTOs(factors)
		}
	}
	return out
}

// ToPriceFactorDTOs converts engine factors for API responses
func ToPriceFactorDTOs(factors []pricing.Factor) []dto.PriceFactorDTO {
	out := make([]dto.PriceFactorDTO, 0, len(factors))
	for _, f := range factors {
		out = append(out, dto.PriceFactorDTO{
			Name:        f.Name,
			Impact:      f.Impact,
			Explanation: f.Explanation,
		})
	}
	return out
}

// ToMemberDTO converts a member model for API responses
func ToMemberDTO(member models.Member) dto.MemberDTO {
	return dto.MemberDTO{
		ID:             member.ID,
		UUID:           member.UUID.String(),
		MemberNumber:   member.MemberNumber,
		Name:           member.Name,
		Email:          member.Email,
		Phone:          member.Phone,
		Tier:           member.Tier,
		CreditsBalance: member.CreditsBalance,
		JoinDate:       member.JoinDate.Format("2006-01-02"),
		Status:         member.Status,
		HouseholdID:    member.HouseholdID,
		CreatedAt:      member.CreatedAt.Format(time.RFC3339),
	}
}

// ToSponsorDTO converts a sponsor model for API responses
func ToSponsorDTO(sponsor models.Sponsor) dto.SponsorDTO {
	return dto.SponsorDTO{
		ID:           sponsor.ID,
		UUID:         sponsor.UUID.String(),
		Name:         sponsor.Name,
		Industry:     sponsor.Industry,
		ContactName:  sponsor.ContactName,
		ContactEmail: sponsor.ContactEmail,
		ContactPhone: sponsor.ContactPhone,
		Status:       sponsor.Status,
		Tier:         sponsor.Tier,
		AnnualValue:  sponsor.AnnualValue,
		Objectives:   sponsor.Objectives,
		CreatedAt:    sponsor.CreatedAt.Format(time.RFC3339),
	}
}

// ToSponsorshipAssetDTO converts an inventory item for API responses
func ToSponsorshipAssetDTO(item models.SponsorshipAsset) dto.SponsorshipAssetDTO {
	return dto.SponsorshipAssetDTO{
		ID:          item.ID,
		UUID:        item.UUID.String(),
		Name:        item.Name,
		Category:    item.Category,
		AnnualValue: item.AnnualValue,
		Impressions: item.Impressions,
		Status:      item.Status,
		SponsorID:   item.SponsorID,
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
	}
}

// ToAssetDTO converts a bookable asset for API responses
func ToAssetDTO(asset models.Asset) dto.AssetDTO {
	return dto.AssetDTO{
		ID:                 asset.ID,
		UUID:               asset.UUID.String(),
		SiteID:             asset.SiteID,
		Type:               asset.Type,
		Name:               asset.Name,
		Capacity:           asset.Capacity,
		SquareFt:           asset.SquareFt,
		HourlyRatePrime:    asset.HourlyRatePrime,
		HourlyRateStandard: asset.HourlyRateStandard,
		HourlyRateOffPeak:  asset.HourlyRateOffPeak,
		Amenities:          asset.Amenities,
		IsActive:           asset.IsActive,
		CreatedAt:          asset.CreatedAt.Format(time.RFC3339),
	}
}

// ToPodConfigDTO converts a pod configuration for API responses
func ToPodConfigDTO(cfg models.PodConfig) dto.PodConfigDTO {
	out := dto.PodConfigDTO{
		ID:                cfg.ID,
		UUID:              cfg.UUID.String(),
		TechPackages:      cfg.TechPackages,
		TierAccess:        cfg.TierAccess,
		PremiumCharge:     cfg.PremiumCharge,
		DataRetentionDays: cfg.DataRetentionDays,
		AICoachingEnabled: cfg.AICoachingEnabled,
		UpdatedBy:         cfg.UpdatedBy,
		UpdatedAt:         cfg.UpdatedAt.Format(time.RFC3339),
	}
	if cfg.Asset.ID != 0 {
		out.AssetUUID = cfg.Asset.UUID.String()
		out.AssetName = cfg.Asset.Name
	}
	return out
}

// ToPerformanceSessionDTO converts a captured measurement for API responses
func ToPerformanceSessionDTO(session models.PerformanceSession) dto.PerformanceSessionDTO {
	out := dto.PerformanceSessionDTO{
		ID:          session.ID,
		UUID:        session.UUID.String(),
		AthleteName: session.AthleteName,
		Sport:       session.Sport,
		Metric:      session.Metric,
		Value:       session.Value,
		Unit:        session.Unit,
		RecordedAt:  session.RecordedAt.Format(time.RFC3339),
	}
	if session.Asset.ID != 0 {
		out.AssetUUID = session.Asset.UUID.String()
		out.AssetName = session.Asset.Name
	}
	return out
}

// ToContractDTO converts a contract model for API responses
func ToContractDTO(contract models.Contract) dto.ContractDTO {
	out := dto.ContractDTO{
		ID:              contract.ID,
		UUID:            contract.UUID.String(),
		Title:           contract.Title,
		ListValue:       contract.ListValue,
		DiscountPercent: contract.DiscountPercent,
		TotalValue:      contract.TotalValue,
		Status:          contract.Status,
		CreatedAt:       contract.CreatedAt.Format(time.RFC3339),
	}
	if contract.Sponsor.ID != 0 {
		out.SponsorUUID = contract.Sponsor.UUID.String()
		out.SponsorName = contract.Sponsor.Name
	}
	if contract.StartDate != nil {
		s := contract.StartDate.Format("2006-01-02")
		out.StartDate = &s
	}
	if contract.EndDate != nil {
		s := contract.EndDate.Format("2006-01-02")
		out.EndDate = &s
	}
	if contract.SignedAt != nil {
		s := contract.SignedAt.Format(time.RFC3339)
		out.SignedAt = &s
	}
	if len(contract.AssetItems) > 0 {
		var items []models.SponsorshipAsset
		if err := json.Unmarshal(contract.AssetItems, &items); err == nil {
			for _, it := range items {
				out.Items = append(out.Items, ToSponsorshipAssetDTO(it))
			}
		}
	}
	return out
}
