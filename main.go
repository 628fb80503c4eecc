// Package main provides the main entry point for the facility platform API
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"github.com/skillshot/sportai/app/handlers"
	"github.com/skillshot/sportai/app/middleware"
	"github.com/skillshot/sportai/app/router"
	"github.com/skillshot/sportai/app/scheduler"
	"github.com/skillshot/sportai/app/services"
	businessflow "github.com/skillshot/sportai/business_flow"
	"github.com/skillshot/sportai/config"
	"github.com/skillshot/sportai/models"
	"github.com/skillshot/sportai/pricing"
	"github.com/skillshot/sportai/repository"
	"github.com/skillshot/sportai/utils"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting facility platform API...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	// Initialize application
	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging configures the standard logger output, with rotation when
// logging to a file.
func setupLogging(cfg config.LoggingConfig) {
	if cfg.Output == "stdout" || cfg.FilePath == "" {
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	if cfg.Output == "both" {
		log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	} else {
		log.SetOutput(rotator)
	}
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pooling
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeCache initializes the Redis client and verifies connectivity
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	// Override DB if provided in config
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.RedisURL, cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if client == nil {
		return cancel
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	// Initialize database
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	cancel := startCacheHealthMonitor(context.Background(), rc, 30*time.Second)
	stopFuncs = append(stopFuncs, cancel)

	// Seed the admin account and default pricing documents on first boot
	if err := ensureAdminAccount(db, cfg); err != nil {
		return nil, err
	}
	if err := ensurePricingDocuments(db); err != nil {
		return nil, err
	}

	// Initialize repositories
	staffRepo := repository.NewStaffRepository(db)
	sessionRepo := repository.NewStaffSessionRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	sponsorRepo := repository.NewSponsorRepository(db)
	inventoryRepo := repository.NewSponsorshipAssetRepository(db)
	contractRepo := repository.NewContractRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	pricingRuleRepo := repository.NewPricingRuleRepository(db)
	podConfigRepo := repository.NewPodConfigRepository(db)
	performanceSessionRepo := repository.NewPerformanceSessionRepository(db)

	// Captcha service for the admin login
	captchaSvc, err := services.NewCaptchaService(2*time.Minute, 15, 300)
	if err != nil {
		return nil, err
	}

	// Initialize token service
	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	log.Printf("Token service initialized with issuer: %s, audience: %s", cfg.JWT.Issuer, cfg.JWT.Audience)

	// Initialize flows
	authFlow := businessflow.NewAuthFlow(
		staffRepo,
		sessionRepo,
		auditRepo,
		tokenService,
		captchaSvc,
		db,
	)

	pricingFlow := businessflow.NewPricingFlow(
		pricingRuleRepo,
		auditRepo,
		rc,
		&cfg.Cache,
		db,
	)

	assetFlow := businessflow.NewAssetFlow(assetRepo)

	bookingFlow := businessflow.NewBookingFlow(
		bookingRepo,
		assetRepo,
		transactionRepo,
		auditRepo,
		pricingFlow,
		db,
	)

	membershipFlow := businessflow.NewMembershipFlow(
		memberRepo,
		transactionRepo,
		auditRepo,
		db,
	)

	sponsorshipFlow := businessflow.NewSponsorshipFlow(
		sponsorRepo,
		inventoryRepo,
		contractRepo,
		transactionRepo,
		auditRepo,
		db,
	)

	reportsFlow := businessflow.NewReportsFlow(bookingRepo, auditRepo)

	governanceFlow := businessflow.NewGovernanceFlow(auditRepo)

	dashboardFlow := businessflow.NewDashboardFlow(
		assetRepo,
		bookingRepo,
		memberRepo,
		sponsorRepo,
		inventoryRepo,
		contractRepo,
		transactionRepo,
		rc,
		&cfg.Cache,
	)

	performanceFlow := businessflow.NewPerformanceFlow(
		podConfigRepo,
		performanceSessionRepo,
		assetRepo,
		auditRepo,
		db,
	)

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Initialize router
	appRouter := router.NewFiberRouter(router.Handlers{
		Auth:        handlers.NewAuthHandler(authFlow),
		Pricing:     handlers.NewPricingHandler(pricingFlow),
		Asset:       handlers.NewAssetHandler(assetFlow),
		Booking:     handlers.NewBookingHandler(bookingFlow),
		Member:      handlers.NewMemberHandler(membershipFlow),
		Sponsorship: handlers.NewSponsorshipHandler(sponsorshipFlow),
		Reports:     handlers.NewReportsHandler(reportsFlow),
		Governance:  handlers.NewGovernanceHandler(governanceFlow),
		Dashboard:   handlers.NewDashboardHandler(dashboardFlow),
		Performance: handlers.NewPerformanceHandler(performanceFlow),
	}, authMiddleware, cfg.Security.AllowedOrigins)

	// Background housekeeping: expired sessions, dashboard cache warmup
	maintenanceCtx, stopMaintenance := context.WithCancel(context.Background())
	sched := scheduler.NewMaintenanceScheduler(sessionRepo, dashboardFlow, log.Default(), cfg.Security.SessionCleanupInterval)
	go sched.Start(maintenanceCtx)
	stopFuncs = append(stopFuncs, stopMaintenance)

	// Create application struct from FiberRouter
	fiberRouter := appRouter.(*router.FiberRouter)
	application := &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}

// ensureAdminAccount seeds the configured admin staff account if it does not exist.
func ensureAdminAccount(db *gorm.DB, cfg *config.ProductionConfig) error {
	staffRepo := repository.NewStaffRepository(db)

	existing, err := staffRepo.ByUsername(context.Background(), cfg.Admin.Username)
	if err != nil {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), cfg.Security.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.Staff{
		Username:     cfg.Admin.Username,
		PasswordHash: string(hash),
		FullName:     cfg.Admin.FullName,
		Role:         models.StaffRoleAdmin,
		IsActive:     utils.ToPtr(true),
		CreatedAt:    utils.UTCNow(),
		UpdatedAt:    utils.UTCNow(),
	}
	if cfg.Admin.Email != "" {
		admin.Email = utils.ToPtr(cfg.Admin.Email)
	}

	if err := staffRepo.Save(context.Background(), admin); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	log.Printf("Seeded admin account %q", cfg.Admin.Username)
	return nil
}

// ensurePricingDocuments seeds version 1 of the rate tables and guardrail
// policy from the built-in defaults when no documents exist yet.
func ensurePricingDocuments(db *gorm.DB) error {
	pricingRuleRepo := repository.NewPricingRuleRepository(db)

	seed := func(kind string, document any) error {
		latest, err := pricingRuleRepo.LatestByKind(context.Background(), kind)
		if err != nil {
			return fmt.Errorf("failed to look up %s document: %w", kind, err)
		}
		if latest != nil {
			return nil
		}

		payload, err := json.Marshal(document)
		if err != nil {
			return fmt.Errorf("failed to marshal default %s document: %w", kind, err)
		}

		rule := &models.PricingRule{
			Kind:      kind,
			Version:   1,
			Document:  payload,
			UpdatedBy: utils.ToPtr("system:seed"),
			CreatedAt: utils.UTCNow(),
			UpdatedAt: utils.UTCNow(),
		}
		if err := pricingRuleRepo.Save(context.Background(), rule); err != nil {
			return fmt.Errorf("failed to seed %s document: %w", kind, err)
		}

		log.Printf("Seeded default %s document at version 1", kind)
		return nil
	}

	if err := seed(models.PricingDocumentRates, pricing.DefaultTables()); err != nil {
		return err
	}
	return seed(models.PricingDocumentGuardrails, pricing.DefaultGuardrails())
}
