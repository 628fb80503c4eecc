package utils

import (
	"time"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour

	// SessionTimeout is the default session timeout (24 hours)
	SessionTimeout = 24 * time.Hour

	// CaptchaTTL bounds how long an admin login captcha challenge stays valid
	CaptchaTTL = 2 * time.Minute
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Pricing constants
const (
	// DefaultBaseRate is the fallback hourly rate used when an asset/daypart
	// combination is missing from the rate table
	DefaultBaseRate = 100.0

	// DefaultCurrency is the currency code used for all monetary amounts
	DefaultCurrency = "USD"
)

// Cache keys (namespaced by the configured redis prefix)
const (
	PricingRatesCacheKey      = "pricing:rates"
	PricingGuardrailsCacheKey = "pricing:guardrails"
	DashboardSnapshotCacheKey = "dashboard:snapshot"
)

// Cache TTLs
const (
	PricingConfigCacheTTL     = 5 * time.Minute
	DashboardSnapshotCacheTTL = time.Minute
)
