// Package scheduler wires up the cron job that periodically cleans up
// orphaned matches and refreshes the session's candidate view.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/zanybarlee/a8-manpower/internal/candidate"
)

// OrphanDeleter removes cv_match rows whose job description is gone.
type OrphanDeleter interface {
	DeleteOrphans(ctx context.Context) (int64, error)
}

// Refresher reloads the matched-candidate view for a user.
type Refresher interface {
	Refetch(ctx context.Context, userID string) ([]candidate.MatchedCandidate, error)
}

// Scheduler wraps robfig/cron and manages the maintenance loop.
type Scheduler struct {
	cron      *cron.Cron
	orphans   OrphanDeleter
	refresher Refresher
	userID    string
	spec      string // cron spec, e.g. "@every 6h"
	logger    *zap.Logger
}

// New creates a Scheduler that fires every intervalHours hours. userID is the
// session user whose candidate view is kept warm; empty skips the refresh.
func New(orphans OrphanDeleter, refresher Refresher, userID string, intervalHours int, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLogger(cron.DefaultLogger)),
		orphans:   orphans,
		refresher: refresher,
		userID:    userID,
		spec:      fmt.Sprintf("@every %dh", intervalHours),
		logger:    logger,
	}
}

// Start registers the job and starts the scheduler. Also runs one maintenance
// cycle immediately so stale rows do not wait for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runMaintenance(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("maintenance cron started", zap.String("spec", s.spec))

	// Run immediately on startup (non-blocking)
	go s.runMaintenance(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("maintenance cron stopped")
}

// runMaintenance purges orphaned matches and refreshes the session's view.
func (s *Scheduler) runMaintenance(ctx context.Context) {
	s.logger.Info("maintenance cycle started")

	deleted, err := s.orphans.DeleteOrphans(ctx)
	if err != nil {
		s.logger.Error("orphan purge failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		s.logger.Info("orphaned matches purged", zap.Int64("deleted", deleted))
	}

	if s.userID == "" {
		s.logger.Info("maintenance cycle complete, no session to refresh")
		return
	}

	if _, err := s.refresher.Refetch(ctx, s.userID); err != nil {
		s.logger.Error("candidate view refresh failed", zap.String("user_id", s.userID), zap.Error(err))
		return
	}

	s.logger.Info("maintenance cycle complete")
}
