// Package scheduler
package scheduler

import (
	"context"
	"log"
	"time"

	businessflow "github.com/skillshot/sportai/business_flow"
	"github.com/skillshot/sportai/repository"
)

// MaintenanceScheduler runs periodic housekeeping: expired session cleanup
// and dashboard snapshot warming.
type MaintenanceScheduler struct {
	sessionRepo   repository.StaffSessionRepository
	dashboardFlow businessflow.DashboardFlow
	logger        *log.Logger
	interval      time.Duration
}

func NewMaintenanceScheduler(
	sessionRepo repository.StaffSessionRepository,
	dashboardFlow businessflow.DashboardFlow,
	logger *log.Logger,
	interval time.Duration,
) *MaintenanceScheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = log.Default()
	}

	return &MaintenanceScheduler{
		sessionRepo:   sessionRepo,
		dashboardFlow: dashboardFlow,
		logger:        logger,
		interval:      interval,
	}
}

// Start runs the maintenance loop until the context is cancelled.
func (s *MaintenanceScheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Printf("maintenance scheduler started, interval=%s", s.interval)

	// Run once on startup so a restart does not delay cleanup by a full interval
	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Println("maintenance scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *MaintenanceScheduler) runOnce(ctx context.Context) {
	tickCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if err := s.sessionRepo.CleanupExpiredSessions(tickCtx); err != nil {
		s.logger.Printf("session cleanup failed: %v", err)
	}

	if s.dashboardFlow != nil {
		if _, err := s.dashboardFlow.Snapshot(tickCtx); err != nil {
			s.logger.Printf("dashboard snapshot warmup failed: %v", err)
		}
	}
}
