package dto

// LoginRequest represents a staff login payload
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

// AdminLoginRequest requires a solved rotation captcha on top of credentials
type AdminLoginRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=255"`
	Password     string `json:"password" validate:"required,min=8"`
	CaptchaID    string `json:"captcha_id" validate:"required"`
	CaptchaAngle int    `json:"captcha_angle" validate:"required,min=0,max=360"`
}

// StaffDTO is the staff account representation in auth responses
type StaffDTO struct {
	ID          uint    `json:"id"`
	UUID        string  `json:"uuid"`
	Username    string  `json:"username"`
	FullName    string  `json:"full_name"`
	Email       *string `json:"email,omitempty"`
	Role        string  `json:"role"`
	IsActive    *bool   `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
	LastLoginAt *string `json:"last_login_at,omitempty"`
}

// SessionDTO carries issued tokens to the client
type SessionDTO struct {
	SessionToken string  `json:"access_token"`
	RefreshToken *string `json:"refresh_token,omitempty"`
	ExpiresIn    int     `json:"expires_in"`
	TokenType    string  `json:"token_type"`
	CreatedAt    string  `json:"created_at"`
}

// LoginResponse represents a successful authentication
type LoginResponse struct {
	Staff   StaffDTO   `json:"staff"`
	Session SessionDTO `json:"session"`
}

// RefreshTokenRequest exchanges a refresh token for a new session
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutResponse acknowledges session termination
type LogoutResponse struct {
	Message string `json:"message"`
}

// ChangePasswordRequest represents a password change payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required,min=8"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
}

// ChangePasswordResponse acknowledges a password change
type ChangePasswordResponse struct {
	Message string `json:"message"`
}

// CaptchaResponse returns a generated rotation captcha challenge
type CaptchaResponse struct {
	CaptchaID   string `json:"captcha_id"`
	MasterImage string `json:"master_image"`
	ThumbImage  string `json:"thumb_image"`
	ThumbSize   int    `json:"thumb_size"`
}
