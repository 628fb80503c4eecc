// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/skillshot/sportai/app/dto"
	"github.com/skillshot/sportai/app/handlers"
	"github.com/skillshot/sportai/app/middleware"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/utils"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// Handlers bundles the HTTP handlers wired into the router
type Handlers struct {
	Auth        handlers.AuthHandlerInterface
	Pricing     handlers.PricingHandlerInterface
	Asset       handlers.AssetHandlerInterface
	Booking     handlers.BookingHandlerInterface
	Member      handlers.MemberHandlerInterface
	Sponsorship handlers.SponsorshipHandlerInterface
	Reports     handlers.ReportsHandlerInterface
	Governance  handlers.GovernanceHandlerInterface
	Dashboard   handlers.DashboardHandlerInterface
	Performance handlers.PerformanceHandlerInterface
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app      *fiber.App
	handlers Handlers
	auth     *middleware.AuthMiddleware
	origins  []string
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(h Handlers, auth *middleware.AuthMiddleware, allowedOrigins []string) Router {
	app := fiber.New(fiber.Config{
		AppName:      "SportAI Facility API",
		ServerHeader: "SportAI",
		ErrorHandler: errorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:      app,
		handlers: h,
		auth:     auth,
		origins:  allowedOrigins,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	r.setupMiddleware()

	// Prometheus scrape endpoint, outside the versioned API
	r.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := r.app.Group("/api/v1")

	// Health check route (no rate limiting)
	api.Get("/health", r.healthCheck)

	// General rate limiting for all API routes
	api.Use(limiter.New(limiter.Config{
		Max:        2000,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: rateLimitReached,
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	}))

	// Auth routes with stricter rate limiting
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: rateLimitReached,
	}))

	auth.Post("/login", r.handlers.Auth.Login)
	auth.Get("/admin/captcha", r.handlers.Auth.Captcha)
	auth.Post("/admin/login", r.handlers.Auth.AdminLogin)
	auth.Post("/refresh", r.handlers.Auth.RefreshToken)
	auth.Post("/logout", r.auth.Authenticate(), r.handlers.Auth.Logout)
	auth.Post("/password", r.auth.Authenticate(), r.handlers.Auth.ChangePassword)

	// Public pricing and availability
	api.Post("/pricing/quote", r.handlers.Pricing.Quote)
	api.Get("/assets", r.handlers.Asset.List)
	api.Get("/assets/:uuid/availability", r.handlers.Booking.Availability)

	// Staff operations
	authed := api.Group("", r.auth.Authenticate())

	authed.Post("/assets", r.handlers.Asset.Create)

	authed.Post("/bookings", r.handlers.Booking.Create)
	authed.Get("/bookings", r.handlers.Booking.List)
	authed.Delete("/bookings/:uuid", r.handlers.Booking.Cancel)

	authed.Post("/members", r.handlers.Member.Create)
	authed.Get("/members", r.handlers.Member.List)
	authed.Get("/members/overview", r.handlers.Member.Overview)
	authed.Get("/members/:uuid", r.handlers.Member.Get)
	authed.Patch("/members/:uuid", r.handlers.Member.Update)
	authed.Post("/members/:uuid/credits", r.handlers.Member.AdjustCredits)

	authed.Post("/sponsors", r.handlers.Sponsorship.CreateSponsor)
	authed.Get("/sponsors", r.handlers.Sponsorship.ListSponsors)
	authed.Post("/sponsorship-inventory", r.handlers.Sponsorship.CreateInventory)
	authed.Get("/sponsorship-inventory", r.handlers.Sponsorship.ListInventory)
	authed.Post("/contracts/propose", r.handlers.Sponsorship.ProposeBundle)
	authed.Post("/contracts/:uuid/sign", r.handlers.Sponsorship.SignContract)
	authed.Get("/contracts", r.handlers.Sponsorship.ListContracts)

	authed.Put("/pods", r.handlers.Performance.ConfigurePod)
	authed.Get("/pods/:uuid", r.handlers.Performance.GetPodConfig)
	authed.Post("/performance/sessions", r.handlers.Performance.RecordSession)
	authed.Get("/performance/leaderboard/:metric", r.handlers.Performance.Leaderboard)

	authed.Get("/reports/revenue", r.handlers.Reports.Revenue)
	authed.Get("/reports/utilization", r.handlers.Reports.Utilization)
	authed.Get("/reports/export", r.handlers.Reports.ExportXLSX)

	authed.Get("/dashboard", r.handlers.Dashboard.Snapshot)
	authed.Get("/pricing/config", r.handlers.Pricing.GetConfig)

	// Governance operations restricted to admin and board roles
	governed := authed.Group("", r.auth.RequireRole(models.StaffRoleAdmin, models.StaffRoleBoard))
	governed.Put("/pricing/rates", r.handlers.Pricing.UpdateRates)
	governed.Put("/pricing/guardrails", r.handlers.Pricing.UpdateGuardrails)
	governed.Get("/pricing/history/:kind", r.handlers.Pricing.History)
	governed.Get("/governance/audit", r.handlers.Governance.ListAuditLogs)

	// Not found handler
	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	// Security headers middleware
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000, // 1 year
		HSTSExcludeSubdomains: false,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		XDNSPrefetchControl:   "off",
		XDownloadOptions:      "noopen",
		XPermittedCrossDomain: "none",
	}))

	// CORS middleware with production settings
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.origins,
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Requested-With",
			"X-Request-ID",
			"Cache-Control",
		},
		ExposeHeaders: []string{
			"X-Request-ID",
			"Content-Disposition",
		},
		AllowCredentials: true,
		MaxAge:           utils.CORSMaxAge,
	}))

	// Compression middleware for performance
	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
		Next: func(c fiber.Ctx) bool {
			// Workbook downloads are already compressed
			contentType := c.Get("Content-Type")
			return strings.Contains(contentType, "spreadsheetml")
		},
	}))

	// Structured request logging
	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","protocol":"${protocol}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent},"referer":"${referer}"}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health" || c.Path() == "/metrics"
		},
	}))

	// Prometheus HTTP metrics
	r.app.Use(middleware.Metrics())

	// Recovery middleware with custom error handling
	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNow().Format(time.RFC3339),
				c.Locals("requestid"),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":    "ok",
			"timestamp": utils.UTCNow().Unix(),
			"version":   "1.0.0",
			"service":   "sportai-facility-api",
		},
	})
}

// Not found handler
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	requestID := c.Locals("requestid")

	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": requestID,
			},
		},
	})
}

func rateLimitReached(c fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
		Success: false,
		Message: "Too many requests. Please try again later.",
		Error: dto.ErrorDetail{
			Code: "RATE_LIMIT_EXCEEDED",
		},
	})
}

// Global error handler
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Printf("Error %d: %v", code, err)

	requestID := c.Locals("requestid")

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: "An internal server error occurred",
		Error: dto.ErrorDetail{
			Code: "INTERNAL_ERROR",
			Details: fiber.Map{
				"timestamp":  utils.UTCNow().Unix(),
				"request_id": requestID,
			},
		},
	})
}

// generateRequestID creates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
