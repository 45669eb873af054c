package candidate

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/zanybarlee/a8-manpower/internal/cache"
)

const cacheKeyPrefix = "matches:"

// Store is the cached read view over the matched-candidates repository.
type Store struct {
	repo     Repository
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewStore returns a Store over repo.
func NewStore(repo Repository, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *Store {
	return &Store{repo: repo, cache: c, cacheTTL: cacheTTL, logger: logger}
}

// List returns the user's matched candidates. When userID is empty it returns
// an empty slice without touching the repository.
func (s *Store) List(ctx context.Context, userID string) ([]MatchedCandidate, error) {
	if userID == "" {
		return []MatchedCandidate{}, nil
	}

	key := cacheKeyPrefix + userID
	if raw, ok := s.cache.Get(ctx, key); ok {
		var matches []MatchedCandidate
		if err := json.Unmarshal(raw, &matches); err == nil {
			return matches, nil
		}
		s.cache.Invalidate(ctx, key)
	}

	matches, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list matched candidates failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	if raw, err := json.Marshal(matches); err == nil {
		s.cache.Set(ctx, key, raw, s.cacheTTL)
	}
	return matches, nil
}

// Refetch invalidates the cached list and reads it fresh from the backing
// store. Called after every match run and after clear-matches.
func (s *Store) Refetch(ctx context.Context, userID string) ([]MatchedCandidate, error) {
	if userID != "" {
		s.cache.Invalidate(ctx, cacheKeyPrefix+userID)
	}
	return s.List(ctx, userID)
}
