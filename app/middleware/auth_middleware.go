// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/app/services"
)

// AuthMiddleware handles JWT token validation for protected endpoints
type AuthMiddleware struct {
	tokenService services.TokenService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate is the middleware function that validates staff JWT tokens
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "MISSING_AUTHORIZATION_HEADER", "Authorization header is required")
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return unauthorized(c, "INVALID_AUTHORIZATION_FORMAT", "Invalid authorization header format. Expected 'Bearer <token>'")
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return unauthorized(c, "MISSING_ACCESS_TOKEN", "Access token is required")
		}

		// Validation already checks for revocation
		claims, err := m.tokenService.ValidateStaffToken(token)
		if err != nil {
			if errors.Is(err, services.ErrTokenExpired) {
				return unauthorized(c, "TOKEN_EXPIRED", "Access token has expired")
			}
			if errors.Is(err, services.ErrTokenRevoked) {
				return unauthorized(c, "TOKEN_REVOKED", "Access token has been revoked")
			}
			if errors.Is(err, services.ErrTokenInvalid) {
				return unauthorized(c, "TOKEN_INVALID", "Invalid access token")
			}
			return unauthorized(c, "TOKEN_VALIDATION_FAILED", "Token validation failed")
		}

		if claims.TokenType != "access" {
			return unauthorized(c, "TOKEN_TYPE_INVALID", "Refresh tokens cannot be used for API access")
		}

		// Store staff information in context for downstream handlers
		c.Locals("staff_id", claims.StaffID)
		c.Locals("staff_role", claims.Role)
		c.Locals("token_id", claims.TokenID)
		c.Locals("token_claims", claims)
		c.Locals("session_token", token)

		// Store RequestID for audit logging
		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}

// RequireRole restricts a route to the given staff roles. It must run after
// Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c fiber.Ctx) error {
		role, ok := GetStaffRoleFromContext(c)
		if !ok {
			return unauthorized(c, "AUTHENTICATION_REQUIRED", "Authentication required")
		}
		if !allowed[role] {
			return c.Status(fiber.StatusForbidden).JSON(dto.APIResponse{
				Success: false,
				Message: "Role is not permitted to perform this action",
				Error:   dto.ErrorDetail{Code: "FORBIDDEN_ROLE"},
			})
		}
		return c.Next()
	}
}

func unauthorized(c fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code: code,
		},
	})
}

// GetStaffIDFromContext extracts the staff ID from the request context
func GetStaffIDFromContext(c fiber.Ctx) (uint, bool) {
	staffID, ok := c.Locals("staff_id").(uint)
	return staffID, ok
}

// GetStaffRoleFromContext extracts the staff role from the request context
func GetStaffRoleFromContext(c fiber.Ctx) (string, bool) {
	role, ok := c.Locals("staff_role").(string)
	return role, ok
}

// GetSessionTokenFromContext extracts the raw bearer token from the request context
func GetSessionTokenFromContext(c fiber.Ctx) (string, bool) {
	token, ok := c.Locals("session_token").(string)
	return token, ok
}

// GetTokenClaimsFromContext extracts token claims from the request context
func GetTokenClaimsFromContext(c fiber.Ctx) (*services.StaffTokenClaims, bool) {
	claims, ok := c.Locals("token_claims").(*services.StaffTokenClaims)
	return claims, ok
}
