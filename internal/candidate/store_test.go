package candidate_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/zanybarlee/a8-manpower/internal/cache"
	"github.com/zanybarlee/a8-manpower/internal/candidate"
)

// mockRepo implements candidate.Repository for tests.
type mockRepo struct {
	matches   map[string][]candidate.MatchedCandidate
	listCalls int
}

func (m *mockRepo) ListByUser(ctx context.Context, userID string) ([]candidate.MatchedCandidate, error) {
	m.listCalls++
	return m.matches[userID], nil
}

func (m *mockRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	n := int64(len(m.matches[userID]))
	delete(m.matches, userID)
	return n, nil
}

func (m *mockRepo) DeleteOrphans(ctx context.Context) (int64, error) { return 0, nil }

func TestList_EmptyUserReturnsEmptyWithoutQuery(t *testing.T) {
	repo := &mockRepo{matches: map[string][]candidate.MatchedCandidate{
		"u1": {{ID: "m1", UserID: "u1", CandidateName: "Ada"}},
	}}
	store := candidate.NewStore(repo, cache.NewMemory(), time.Minute, zap.NewNop())

	matches, err := store.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("len(matches) = %d, want 0", len(matches))
	}
	if repo.listCalls != 0 {
		t.Errorf("repository queried %d times for empty user, want 0", repo.listCalls)
	}
}

func TestList_CachesSecondRead(t *testing.T) {
	repo := &mockRepo{matches: map[string][]candidate.MatchedCandidate{
		"u1": {{ID: "m1", UserID: "u1", CandidateName: "Ada", Score: 0.9}},
	}}
	store := candidate.NewStore(repo, cache.NewMemory(), time.Minute, zap.NewNop())
	ctx := context.Background()

	if _, err := store.List(ctx, "u1"); err != nil {
		t.Fatalf("List error: %v", err)
	}
	matches, err := store.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if repo.listCalls != 1 {
		t.Errorf("repository queried %d times, want 1", repo.listCalls)
	}
	if len(matches) != 1 || matches[0].CandidateName != "Ada" {
		t.Errorf("matches = %+v", matches)
	}
}

func TestRefetch_ForcesBackingRead(t *testing.T) {
	repo := &mockRepo{matches: map[string][]candidate.MatchedCandidate{
		"u1": {{ID: "m1", UserID: "u1"}},
	}}
	store := candidate.NewStore(repo, cache.NewMemory(), time.Minute, zap.NewNop())
	ctx := context.Background()

	if _, err := store.List(ctx, "u1"); err != nil {
		t.Fatalf("List error: %v", err)
	}

	// Simulate the external matcher having inserted a new row.
	repo.matches["u1"] = append(repo.matches["u1"], candidate.MatchedCandidate{ID: "m2", UserID: "u1"})

	matches, err := store.Refetch(ctx, "u1")
	if err != nil {
		t.Fatalf("Refetch error: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("len(matches) = %d after Refetch, want 2", len(matches))
	}
	if repo.listCalls != 2 {
		t.Errorf("repository queried %d times, want 2", repo.listCalls)
	}
}
