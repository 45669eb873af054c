package matching

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zanybarlee/a8-manpower/internal/candidate"
	"github.com/zanybarlee/a8-manpower/internal/matcher"
	"github.com/zanybarlee/a8-manpower/internal/notify"
)

// ErrUnscopedDelete is returned when clear-matches is attempted without a
// known user identity. Deleting without the user_id equality filter would
// touch every user's matches, so the operation is refused outright.
var ErrUnscopedDelete = errors.New("refusing to clear matches without a user scope")

// CandidateView is the read side of the matched-candidate store the
// orchestrator refreshes after a run.
type CandidateView interface {
	Refetch(ctx context.Context, userID string) ([]candidate.MatchedCandidate, error)
}

// MatchRemover deletes a user's cv_match rows.
type MatchRemover interface {
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

// Orchestrator tracks the in-flight match run and owns the ephemeral
// matching session: phase, latest results and the selected job id. All state
// lives in process memory only.
type Orchestrator struct {
	matcher    matcher.Matcher
	candidates CandidateView
	remover    MatchRemover
	notifier   notify.Notifier
	logger     *zap.Logger

	mu            sync.Mutex
	phase         Phase
	runID         string
	results       []matcher.Result
	lastErr       error
	selectedJobID string
}

// NewOrchestrator returns an idle orchestrator.
func NewOrchestrator(m matcher.Matcher, candidates CandidateView, remover MatchRemover, notifier notify.Notifier, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		matcher:    m,
		candidates: candidates,
		remover:    remover,
		notifier:   notifier,
		logger:     logger,
		phase:      PhaseIdle,
	}
}

// HandleMatch runs one match for the given job description text, optional
// job description id and role filter. Inputs are passed through unvalidated —
// an empty userID reaches the matcher, which rejects unauthenticated
// requests itself.
//
// On success the results replace the previous ones and the candidate view is
// refreshed exactly once. On failure the previous results are left untouched
// and the error is recorded and surfaced as a notification. A superseding
// call does not cancel an in-flight run; the last completion wins.
func (o *Orchestrator) HandleMatch(ctx context.Context, text, jobDescriptionID, jobRole, userID string) ([]matcher.Result, error) {
	o.mu.Lock()
	if !IsTransitionAllowed(o.phase, PhaseMatching) {
		// Only reachable if a new phase is ever added without wiring it here.
		o.mu.Unlock()
		return nil, fmt.Errorf("cannot start a match run from phase %s", o.phase)
	}
	o.phase = PhaseMatching
	runID := uuid.NewString()
	o.runID = runID
	o.mu.Unlock()

	o.logger.Info("match run started",
		zap.String("run_id", runID),
		zap.String("job_description_id", jobDescriptionID),
		zap.String("job_role", jobRole),
	)

	results, err := o.matcher.Match(ctx, matcher.Request{
		JobDescription:   text,
		JobDescriptionID: jobDescriptionID,
		JobRole:          jobRole,
		UserID:           userID,
	})

	o.mu.Lock()
	o.phase = PhaseSettled
	if err != nil {
		// Keep the previous results visible; only record the failure.
		o.lastErr = err
		o.mu.Unlock()

		o.logger.Error("match run failed", zap.String("run_id", runID), zap.Error(err))
		o.notifier.Notify(ctx, "Matching failed", "The matching service could not complete the run", notify.SeverityDestructive)
		return nil, err
	}
	o.results = results
	o.lastErr = nil
	o.mu.Unlock()

	if _, err := o.candidates.Refetch(ctx, userID); err != nil {
		// The run itself succeeded; a stale view is repaired on the next read.
		o.logger.Warn("refetch after match run failed", zap.String("run_id", runID), zap.Error(err))
	}

	o.logger.Info("match run settled", zap.String("run_id", runID), zap.Int("results", len(results)))
	o.notifier.Notify(ctx, "Matching complete",
		fmt.Sprintf("Found %d matching candidate(s)", len(results)), notify.SeverityNormal)

	return results, nil
}

// HandleClearMatches deletes every match owned by userID and resets the
// session. When userID is empty the delete is refused: without the equality
// filter it would strip matches from every user in the relation.
// Clearing twice in a row is a no-op the second time, not an error.
func (o *Orchestrator) HandleClearMatches(ctx context.Context, userID string) error {
	if userID == "" {
		o.logger.Error("clear matches refused: no user scope")
		o.notifier.Notify(ctx, "Error", "Cannot clear matches without a signed-in user", notify.SeverityDestructive)
		return ErrUnscopedDelete
	}

	deleted, err := o.remover.DeleteByUser(ctx, userID)
	if err != nil {
		o.logger.Error("clear matches failed", zap.String("user_id", userID), zap.Error(err))
		o.notifier.Notify(ctx, "Error", "Failed to clear matches", notify.SeverityDestructive)
		return err
	}

	o.mu.Lock()
	o.results = nil
	o.lastErr = nil
	if o.phase != PhaseIdle {
		o.phase = PhaseIdle
	}
	o.mu.Unlock()

	if _, err := o.candidates.Refetch(ctx, userID); err != nil {
		o.logger.Warn("refetch after clear failed", zap.String("user_id", userID), zap.Error(err))
	}

	o.logger.Info("matches cleared", zap.String("user_id", userID), zap.Int64("deleted", deleted))
	o.notifier.Notify(ctx, "Matches cleared", "All matched candidates were removed", notify.SeverityNormal)
	return nil
}

// SetSelectedJobID records which job description the next run targets.
// Selection is independent of the run state machine.
func (o *Orchestrator) SetSelectedJobID(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.selectedJobID = id
}

// SelectedJobID returns the currently selected job description id, or "".
func (o *Orchestrator) SelectedJobID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.selectedJobID
}

// Phase returns the current run phase.
func (o *Orchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

// IsMatching reports whether a run is in flight.
func (o *Orchestrator) IsMatching() bool {
	return o.Phase() == PhaseMatching
}

// Results returns the results of the last settled successful run, or nil.
func (o *Orchestrator) Results() []matcher.Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.results
}

// Err returns the error of the last settled run, or nil.
func (o *Orchestrator) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}
