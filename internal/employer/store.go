package employer

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zanybarlee/a8-manpower/internal/notify"
)

// Store layers the unauthenticated guard and notifications over a Repository.
type Store struct {
	repo     Repository
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewStore returns a Store over repo.
func NewStore(repo Repository, notifier notify.Notifier, logger *zap.Logger) *Store {
	return &Store{repo: repo, notifier: notifier, logger: logger}
}

// Get returns the user's employer profile, or nil when unauthenticated or
// when no profile exists yet.
func (s *Store) Get(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, nil
	}
	p, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Error("get employer profile failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return p, nil
}

// Save upserts the profile for userID, assigning an id to new profiles.
// The outcome is reported as a notification either way.
func (s *Store) Save(ctx context.Context, userID string, p Profile) bool {
	p.UserID = userID
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		s.logger.Error("save employer profile failed", zap.String("user_id", userID), zap.Error(err))
		s.notifier.Notify(ctx, "Error", "Failed to save employer profile", notify.SeverityDestructive)
		return false
	}

	s.notifier.Notify(ctx, "Success", "Employer profile saved", notify.SeverityNormal)
	return true
}
