package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/app/services"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// stubCaptcha lets tests flip the captcha outcome without solving a challenge
type stubCaptcha struct {
	ok bool
}

func (s *stubCaptcha) Generate(_ context.Context) (*services.RotateChallenge, error) {
	return &services.RotateChallenge{ID: "challenge", MasterImageBase64: "m", ThumbImageBase64: "t", ThumbSize: 110}, nil
}

func (s *stubCaptcha) Verify(_ context.Context, _ string, _ int) bool {
	return s.ok
}

type authFixture struct {
	flow     AuthFlow
	staff    *fakeStaffRepo
	sessions *fakeStaffSessionRepo
	audit    *fakeAuditRepo
	tokens   services.TokenService
	captcha  *stubCaptcha
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	tokens, err := services.NewTokenService(15*time.Minute, 24*time.Hour, "sportai", "sportai-api", false, "", "", "unit-test-secret")
	require.NoError(t, err)

	f := &authFixture{
		staff:    &fakeStaffRepo{},
		sessions: &fakeStaffSessionRepo{},
		audit:    &fakeAuditRepo{},
		tokens:   tokens,
		captcha:  &stubCaptcha{ok: true},
	}
	f.flow = NewAuthFlow(f.staff, f.sessions, f.audit, tokens, f.captcha, nil)
	return f
}

func (f *authFixture) addStaff(t *testing.T, username, password, role string, active bool) *models.Staff {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	staff := &models.Staff{
		ID:           uint(len(f.staff.items) + 1),
		Username:     username,
		PasswordHash: string(hash),
		FullName:     "Test Staff",
		Role:         role,
		IsActive:     utils.ToPtr(active),
	}
	f.staff.items = append(f.staff.items, staff)
	return staff
}

func TestLoginUnknownUsername(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.flow.Login(context.Background(), &dto.LoginRequest{Username: "ghost", Password: "irrelevant"}, nil)

	assert.True(t, IsStaffNotFound(err))
	// the failed attempt is audited
	require.Len(t, f.audit.items, 1)
	assert.Equal(t, models.AuditActionLoginFailed, f.audit.items[0].Action)
}

func TestLoginInactiveAccount(t *testing.T) {
	f := newAuthFixture(t)
	f.addStaff(t, "dormant", "correct-password", models.StaffRoleStaff, false)

	_, err := f.flow.Login(context.Background(), &dto.LoginRequest{Username: "dormant", Password: "correct-password"}, nil)

	assert.True(t, IsAccountInactive(err))
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.addStaff(t, "frontdesk", "correct-password", models.StaffRoleStaff, true)

	_, err := f.flow.Login(context.Background(), &dto.LoginRequest{Username: "frontdesk", Password: "wrong-password"}, nil)

	assert.True(t, IsIncorrectPassword(err))
}

func TestAdminLoginRequiresCaptcha(t *testing.T) {
	f := newAuthFixture(t)
	f.captcha.ok = false
	f.addStaff(t, "admin", "correct-password", models.StaffRoleAdmin, true)

	_, err := f.flow.AdminLogin(context.Background(), &dto.AdminLoginRequest{
		Username:     "admin",
		Password:     "correct-password",
		CaptchaID:    "challenge",
		CaptchaAngle: 90,
	}, nil)

	assert.True(t, IsCaptchaFailed(err))
}

func TestAdminLoginRejectsNonAdminRole(t *testing.T) {
	f := newAuthFixture(t)
	f.addStaff(t, "frontdesk", "correct-password", models.StaffRoleStaff, true)

	_, err := f.flow.AdminLogin(context.Background(), &dto.AdminLoginRequest{
		Username:     "frontdesk",
		Password:     "correct-password",
		CaptchaID:    "challenge",
		CaptchaAngle: 90,
	}, nil)

	assert.True(t, IsForbiddenRole(err))
}

func TestGenerateCaptcha(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.flow.GenerateCaptcha(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "challenge", resp.CaptchaID)
	assert.NotEmpty(t, resp.MasterImage)
}

func TestLogoutUnknownSession(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.flow.Logout(context.Background(), "no-such-token", nil)

	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "AUTH_SESSION_NOT_FOUND", be.Code)
}

func TestLogoutExpiresSession(t *testing.T) {
	f := newAuthFixture(t)
	staff := f.addStaff(t, "frontdesk", "correct-password", models.StaffRoleStaff, true)

	session := &models.StaffSession{
		ID:           11,
		StaffID:      staff.ID,
		SessionToken: "session-token",
		IsActive:     utils.ToPtr(true),
		ExpiresAt:    utils.UTCNow().Add(time.Hour),
	}
	f.sessions.items = []*models.StaffSession{session}

	resp, err := f.flow.Logout(context.Background(), "session-token", nil)
	require.NoError(t, err)

	assert.Equal(t, "Logged out successfully", resp.Message)
	assert.Equal(t, []uint{11}, f.sessions.expiredIDs)
	assert.False(t, session.IsValid())
}

func TestChangePasswordRejectsWrongCurrentPassword(t *testing.T) {
	f := newAuthFixture(t)
	staff := f.addStaff(t, "frontdesk", "correct-password", models.StaffRoleStaff, true)

	_, err := f.flow.ChangePassword(context.Background(), staff.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong-password",
		NewPassword:     "new-password-123",
	}, nil)

	assert.True(t, IsIncorrectPassword(err))
}

func TestValidateSessionRejectsForgedToken(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.flow.ValidateSession(context.Background(), "forged-token")

	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "AUTH_TOKEN_INVALID", be.Code)
}

func TestValidateSessionRequiresActiveSession(t *testing.T) {
	f := newAuthFixture(t)
	staff := f.addStaff(t, "frontdesk", "correct-password", models.StaffRoleStaff, true)

	access, _, err := f.tokens.GenerateStaffTokens(staff.ID, staff.Role)
	require.NoError(t, err)

	// token is valid but no session row exists for it
	_, err = f.flow.ValidateSession(context.Background(), access)
	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "AUTH_SESSION_NOT_FOUND", be.Code)
}

func TestValidateSessionResolvesStaff(t *testing.T) {
	f := newAuthFixture(t)
	staff := f.addStaff(t, "frontdesk", "correct-password", models.StaffRoleStaff, true)

	access, _, err := f.tokens.GenerateStaffTokens(staff.ID, staff.Role)
	require.NoError(t, err)

	f.sessions.items = []*models.StaffSession{{
		ID:           1,
		StaffID:      staff.ID,
		SessionToken: access,
		IsActive:     utils.ToPtr(true),
		ExpiresAt:    utils.UTCNow().Add(time.Hour),
	}}

	resolved, err := f.flow.ValidateSession(context.Background(), access)
	require.NoError(t, err)
	assert.Equal(t, staff.ID, resolved.ID)
	assert.Equal(t, staff.Username, resolved.Username)
}

func TestValidateSessionRejectsExpiredSession(t *testing.T) {
	f := newAuthFixture(t)
	staff := f.addStaff(t, "frontdesk", "correct-password", models.StaffRoleStaff, true)

	access, _, err := f.tokens.GenerateStaffTokens(staff.ID, staff.Role)
	require.NoError(t, err)

	f.sessions.items = []*models.StaffSession{{
		ID:           1,
		StaffID:      staff.ID,
		SessionToken: access,
		IsActive:     utils.ToPtr(true),
		ExpiresAt:    utils.UTCNow().Add(-time.Hour),
	}}

	_, err = f.flow.ValidateSession(context.Background(), access)
	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "AUTH_SESSION_NOT_FOUND", be.Code)
}
