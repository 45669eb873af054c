package jobdesc

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/zanybarlee/a8-manpower/internal/cache"
	"github.com/zanybarlee/a8-manpower/internal/confirm"
	"github.com/zanybarlee/a8-manpower/internal/notify"
)

const cacheKeyPrefix = "jobdescs:"

// Store layers the unauthenticated guard, the list cache and user
// notifications over a Repository. Mutations return a bool; transport
// failures are logged and notified, never propagated.
type Store struct {
	repo     Repository
	cache    cache.Cache
	cacheTTL time.Duration
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewStore returns a Store over repo.
func NewStore(repo Repository, c cache.Cache, cacheTTL time.Duration, notifier notify.Notifier, logger *zap.Logger) *Store {
	return &Store{
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
		notifier: notifier,
		logger:   logger,
	}
}

// List returns the user's job descriptions, newest first. When userID is
// empty it returns an empty slice without touching the repository or the
// cache — an unauthenticated process must not issue the backing query.
func (s *Store) List(ctx context.Context, userID string) ([]JobDescription, error) {
	if userID == "" {
		return []JobDescription{}, nil
	}

	key := cacheKeyPrefix + userID
	if raw, ok := s.cache.Get(ctx, key); ok {
		var descs []JobDescription
		if err := json.Unmarshal(raw, &descs); err == nil {
			return descs, nil
		}
		// Undecodable entry: drop it and fall through to the repository.
		s.cache.Invalidate(ctx, key)
	}

	descs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list job descriptions failed", zap.String("user_id", userID), zap.Error(err))
		s.notifier.Notify(ctx, "Error", "Failed to load job descriptions", notify.SeverityDestructive)
		return nil, err
	}

	if raw, err := json.Marshal(descs); err == nil {
		s.cache.Set(ctx, key, raw, s.cacheTTL)
	}
	return descs, nil
}

// Update persists the whitelisted fields of upd and invalidates the user's
// cached list. The outcome is reported as a notification either way.
func (s *Store) Update(ctx context.Context, userID string, upd Update) bool {
	if err := s.repo.Update(ctx, upd); err != nil {
		s.logger.Error("update job description failed",
			zap.String("job_id", upd.ID),
			zap.Error(err),
		)
		s.notifier.Notify(ctx, "Error", "Failed to update job description", notify.SeverityDestructive)
		return false
	}

	s.cache.Invalidate(ctx, cacheKeyPrefix+userID)
	s.notifier.Notify(ctx, "Success", "Job description updated successfully", notify.SeverityNormal)
	return true
}

// Remove deletes the job description after confirmation. A declined
// confirmation is a silent no-op returning false; the repository is never
// called and the cached list stays intact.
func (s *Store) Remove(ctx context.Context, userID, jobID string, confirmer confirm.Confirmer) bool {
	if !confirmer.Confirm("Are you sure you want to delete this job description?") {
		return false
	}

	if err := s.repo.Delete(ctx, jobID); err != nil {
		s.logger.Error("delete job description failed",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		s.notifier.Notify(ctx, "Error", "Failed to delete job description", notify.SeverityDestructive)
		return false
	}

	s.cache.Invalidate(ctx, cacheKeyPrefix+userID)
	s.notifier.Notify(ctx, "Success", "Job description deleted", notify.SeverityNormal)
	return true
}

// InvalidateList drops the user's cached list so the next List refetches.
func (s *Store) InvalidateList(ctx context.Context, userID string) {
	if userID == "" {
		return
	}
	s.cache.Invalidate(ctx, cacheKeyPrefix+userID)
}
