package businessflow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/app/services"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/repository"
	"github.com/skillshot/sportai/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthFlow handles staff authentication and session lifecycle
type AuthFlow interface {
	Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	AdminLogin(ctx context.Context, req *dto.AdminLoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	GenerateCaptcha(ctx context.Context) (*dto.CaptchaResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	Logout(ctx context.Context, sessionToken string, metadata *ClientMetadata) (*dto.LogoutResponse, error)
	ChangePassword(ctx context.Context, staffID uint, req *dto.ChangePasswordRequest, metadata *ClientMetadata) (*dto.ChangePasswordResponse, error)
	ValidateSession(ctx context.Context, sessionToken string) (*models.Staff, error)
}

// AuthFlowImpl implements the authentication business flow
type AuthFlowImpl struct {
	staffRepo      repository.StaffRepository
	sessionRepo    repository.StaffSessionRepository
	auditRepo      repository.AuditLogRepository
	tokenService   services.TokenService
	captchaService services.CaptchaService
	db             *gorm.DB
}

// NewAuthFlow creates a new authentication flow instance
func NewAuthFlow(
	staffRepo repository.StaffRepository,
	sessionRepo repository.StaffSessionRepository,
	auditRepo repository.AuditLogRepository,
	tokenService services.TokenService,
	captchaService services.CaptchaService,
	db *gorm.DB,
) AuthFlow {
	return &AuthFlowImpl{
		staffRepo:      staffRepo,
		sessionRepo:    sessionRepo,
		auditRepo:      auditRepo,
		tokenService:   tokenService,
		captchaService: captchaService,
		db:             db,
	}
}

// Login authenticates a staff account with username and password
func (f *AuthFlowImpl) Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	staff, err := f.authenticate(ctx, req.Username, req.Password, metadata)
	if err != nil {
		return nil, err
	}

	return f.establishSession(ctx, staff, metadata)
}

// AdminLogin authenticates an admin account, gated by a rotation captcha
func (f *AuthFlowImpl) AdminLogin(ctx context.Context, req *dto.AdminLoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	if !f.captchaService.Verify(ctx, req.CaptchaID, req.CaptchaAngle) {
		f.logAuthAction(ctx, nil, models.AuditActionLoginFailed,
			fmt.Sprintf("Captcha verification failed for username %s", req.Username), false, metadata)
		return nil, NewBusinessError("AUTH_CAPTCHA_FAILED", "Captcha verification failed", ErrCaptchaFailed)
	}

	staff, err := f.authenticate(ctx, req.Username, req.Password, metadata)
	if err != nil {
		return nil, err
	}
	if !staff.IsAdmin() {
		f.logAuthAction(ctx, &staff.ID, models.AuditActionLoginFailed,
			fmt.Sprintf("Non-admin account %s attempted admin login", staff.Username), false, metadata)
		return nil, NewBusinessError("AUTH_FORBIDDEN_ROLE", "Account is not permitted to use the admin login", ErrForbiddenRole)
	}

	return f.establishSession(ctx, staff, metadata)
}

// GenerateCaptcha issues a rotation captcha challenge for the admin login
func (f *AuthFlowImpl) GenerateCaptcha(ctx context.Context) (*dto.CaptchaResponse, error) {
	challenge, err := f.captchaService.Generate(ctx)
	if err != nil {
		return nil, NewBusinessError("AUTH_CAPTCHA_GENERATION_FAILED", "Failed to generate captcha", err)
	}

	return &dto.CaptchaResponse{
		CaptchaID:   challenge.ID,
		MasterImage: challenge.MasterImageBase64,
		ThumbImage:  challenge.ThumbImageBase64,
		ThumbSize:   challenge.ThumbSize,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a fresh session
func (f *AuthFlowImpl) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	session, err := f.sessionRepo.ByRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, NewBusinessError("AUTH_SESSION_LOOKUP_FAILED", "Failed to look up session", err)
	}
	if session == nil || !session.IsValid() {
		return nil, NewBusinessError("AUTH_SESSION_NOT_FOUND", "Session not found or expired", ErrSessionNotFound)
	}

	staff, err := f.staffRepo.ByID(ctx, session.StaffID)
	if err != nil {
		return nil, NewBusinessError("AUTH_STAFF_LOOKUP_FAILED", "Failed to look up staff account", err)
	}
	if staff == nil || !utils.IsTrue(staff.IsActive) {
		return nil, NewBusinessError("AUTH_ACCOUNT_INACTIVE", "Account is inactive", ErrAccountInactive)
	}

	accessToken, refreshToken, err := f.tokenService.RefreshStaffTokens(req.RefreshToken)
	if err != nil {
		return nil, NewBusinessError("AUTH_TOKEN_REFRESH_FAILED", "Failed to refresh tokens", err)
	}

	newSession := &models.StaffSession{
		CorrelationID:  session.CorrelationID,
		StaffID:        staff.ID,
		SessionToken:   accessToken,
		RefreshToken:   &refreshToken,
		DeviceInfo:     session.DeviceInfo,
		IsActive:       utils.ToPtr(true),
		CreatedAt:      utils.UTCNow(),
		LastAccessedAt: utils.UTCNow(),
		ExpiresAt:      utils.UTCNowAdd(utils.SessionTimeout),
	}
	if metadata != nil {
		if metadata.IPAddress != "" {
			newSession.IPAddress = &metadata.IPAddress
		}
		if metadata.UserAgent != "" {
			newSession.UserAgent = &metadata.UserAgent
		}
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.sessionRepo.ExpireSession(txCtx, session.ID); err != nil {
			return fmt.Errorf("failed to expire old session: %w", err)
		}
		return f.sessionRepo.Save(txCtx, newSession)
	})
	if err != nil {
		return nil, NewBusinessError("AUTH_SESSION_ROTATE_FAILED", "Failed to rotate session", err)
	}

	return &dto.LoginResponse{
		Staff:   ToStaffDTO(*staff),
		Session: ToSessionDTO(*newSession),
	}, nil
}

// Logout expires the session and revokes its access token
func (f *AuthFlowImpl) Logout(ctx context.Context, sessionToken string, metadata *ClientMetadata) (*dto.LogoutResponse, error) {
	session, err := f.sessionRepo.BySessionToken(ctx, sessionToken)
	if err != nil {
		return nil, NewBusinessError("AUTH_SESSION_LOOKUP_FAILED", "Failed to look up session", err)
	}
	if session == nil {
		return nil, NewBusinessError("AUTH_SESSION_NOT_FOUND", "Session not found", ErrSessionNotFound)
	}

	if err := f.sessionRepo.ExpireSession(ctx, session.ID); err != nil {
		return nil, NewBusinessError("AUTH_LOGOUT_FAILED", "Failed to terminate session", err)
	}
	_ = f.tokenService.RevokeToken(sessionToken)

	f.logAuthAction(ctx, &session.StaffID, models.AuditActionLogout, "Session terminated", true, metadata)

	return &dto.LogoutResponse{
		Message: "Logged out successfully",
	}, nil
}

// ChangePassword verifies the current password, stores the new hash and
// terminates every other active session of the account.
func (f *AuthFlowImpl) ChangePassword(ctx context.Context, staffID uint, req *dto.ChangePasswordRequest, metadata *ClientMetadata) (*dto.ChangePasswordResponse, error) {
	staff, err := f.staffRepo.ByID(ctx, staffID)
	if err != nil {
		return nil, NewBusinessError("AUTH_STAFF_LOOKUP_FAILED", "Failed to look up staff account", err)
	}
	if staff == nil {
		return nil, NewBusinessError("AUTH_STAFF_NOT_FOUND", "Staff account not found", ErrStaffNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		f.logAuthAction(ctx, &staff.ID, models.AuditActionPasswordChanged, "Password change rejected, current password mismatch", false, metadata)
		return nil, NewBusinessError("AUTH_INCORRECT_PASSWORD", "Current password is incorrect", ErrIncorrectPassword)
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewBusinessError("AUTH_PASSWORD_HASH_FAILED", "Failed to hash new password", err)
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.staffRepo.UpdatePassword(txCtx, staff.ID, string(newHash)); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		return f.sessionRepo.ExpireAllStaffSessions(txCtx, staff.ID)
	})
	if err != nil {
		return nil, NewBusinessError("AUTH_PASSWORD_CHANGE_FAILED", "Failed to change password", err)
	}

	f.logAuthAction(ctx, &staff.ID, models.AuditActionPasswordChanged, "Password changed", true, metadata)

	return &dto.ChangePasswordResponse{
		Message: "Password changed successfully. Please log in again.",
	}, nil
}

// ValidateSession resolves a session token to its active staff account
func (f *AuthFlowImpl) ValidateSession(ctx context.Context, sessionToken string) (*models.Staff, error) {
	if _, err := f.tokenService.ValidateStaffToken(sessionToken); err != nil {
		return nil, NewBusinessError("AUTH_TOKEN_INVALID", "Token is invalid", err)
	}

	session, err := f.sessionRepo.BySessionToken(ctx, sessionToken)
	if err != nil {
		return nil, NewBusinessError("AUTH_SESSION_LOOKUP_FAILED", "Failed to look up session", err)
	}
	if session == nil || !session.IsValid() {
		return nil, NewBusinessError("AUTH_SESSION_NOT_FOUND", "Session not found or expired", ErrSessionNotFound)
	}

	staff, err := f.staffRepo.ByID(ctx, session.StaffID)
	if err != nil {
		return nil, NewBusinessError("AUTH_STAFF_LOOKUP_FAILED", "Failed to look up staff account", err)
	}
	if staff == nil || !utils.IsTrue(staff.IsActive) {
		return nil, NewBusinessError("AUTH_ACCOUNT_INACTIVE", "Account is inactive", ErrAccountInactive)
	}

	return staff, nil
}

func (f *AuthFlowImpl) authenticate(ctx context.Context, username, password string, metadata *ClientMetadata) (*models.Staff, error) {
	staff, err := f.staffRepo.ByUsername(ctx, username)
	if err != nil {
		return nil, NewBusinessError("AUTH_STAFF_LOOKUP_FAILED", "Failed to look up staff account", err)
	}
	if staff == nil {
		f.logAuthAction(ctx, nil, models.AuditActionLoginFailed,
			fmt.Sprintf("Login failed, unknown username %s", username), false, metadata)
		return nil, NewBusinessError("AUTH_STAFF_NOT_FOUND", "Invalid username or password", ErrStaffNotFound)
	}
	if !utils.IsTrue(staff.IsActive) {
		f.logAuthAction(ctx, &staff.ID, models.AuditActionLoginFailed,
			fmt.Sprintf("Login rejected, account %s is inactive", staff.Username), false, metadata)
		return nil, NewBusinessError("AUTH_ACCOUNT_INACTIVE", "Account is inactive", ErrAccountInactive)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(password)); err != nil {
		f.logAuthAction(ctx, &staff.ID, models.AuditActionLoginFailed,
			fmt.Sprintf("Login failed, wrong password for %s", staff.Username), false, metadata)
		return nil, NewBusinessError("AUTH_INCORRECT_PASSWORD", "Invalid username or password", ErrIncorrectPassword)
	}

	return staff, nil
}

func (f *AuthFlowImpl) establishSession(ctx context.Context, staff *models.Staff, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	accessToken, refreshToken, err := f.tokenService.GenerateStaffTokens(staff.ID, staff.Role)
	if err != nil {
		return nil, NewBusinessError("AUTH_TOKEN_GENERATION_FAILED", "Failed to generate tokens", err)
	}

	session := &models.StaffSession{
		CorrelationID:  uuid.New(),
		StaffID:        staff.ID,
		SessionToken:   accessToken,
		RefreshToken:   &refreshToken,
		IsActive:       utils.ToPtr(true),
		CreatedAt:      utils.UTCNow(),
		LastAccessedAt: utils.UTCNow(),
		ExpiresAt:      utils.UTCNowAdd(utils.SessionTimeout),
	}
	if metadata != nil {
		if metadata.IPAddress != "" {
			session.IPAddress = &metadata.IPAddress
		}
		if metadata.UserAgent != "" {
			session.UserAgent = &metadata.UserAgent
		}
		if len(metadata.DeviceInfo) > 0 {
			if deviceJSON, err := json.Marshal(metadata.DeviceInfo); err == nil {
				session.DeviceInfo = deviceJSON
			}
		}
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.sessionRepo.Save(txCtx, session); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return f.staffRepo.UpdateLastLogin(txCtx, staff.ID, utils.UTCNow())
	})
	if err != nil {
		return nil, NewBusinessError("AUTH_SESSION_CREATE_FAILED", "Failed to create session", err)
	}

	f.logAuthAction(ctx, &staff.ID, models.AuditActionLoginSuccess,
		fmt.Sprintf("Staff %s logged in", staff.Username), true, metadata)

	return &dto.LoginResponse{
		Staff:   ToStaffDTO(*staff),
		Session: ToSessionDTO(*session),
	}, nil
}

func (f *AuthFlowImpl) logAuthAction(ctx context.Context, staffID *uint, action, description string, success bool, metadata *ClientMetadata) {
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
