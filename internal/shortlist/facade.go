// Package shortlist is the single entry point the transport layer talks to.
// It composes the session, the job description and candidate stores and the
// matching orchestrator into one view of the shortlist workflow.
package shortlist

import (
	"context"
	"errors"
	"sync"

	"github.com/zanybarlee/a8-manpower/internal/candidate"
	"github.com/zanybarlee/a8-manpower/internal/jobdesc"
	"github.com/zanybarlee/a8-manpower/internal/matcher"
	"github.com/zanybarlee/a8-manpower/internal/matching"
)

// ErrEmptyJobDescription rejects a match attempt before anything remote is
// called.
var ErrEmptyJobDescription = errors.New("job description text is empty")

// UserSource exposes the session user.
type UserSource interface {
	UserID() string
}

// JobLister lists the session user's job descriptions.
type JobLister interface {
	List(ctx context.Context, userID string) ([]jobdesc.JobDescription, error)
}

// CandidateLister reads the matched-candidate view.
type CandidateLister interface {
	List(ctx context.Context, userID string) ([]candidate.MatchedCandidate, error)
	Refetch(ctx context.Context, userID string) ([]candidate.MatchedCandidate, error)
}

// Facade bundles the shortlist workflow state. The working job description
// text is process-local and starts empty on every boot; nothing restores it
// from a previous run.
type Facade struct {
	session      UserSource
	jobs         JobLister
	candidates   CandidateLister
	orchestrator *matching.Orchestrator

	mu   sync.Mutex
	text string
}

// New returns a Facade with an empty working job description.
func New(session UserSource, jobs JobLister, candidates CandidateLister, orchestrator *matching.Orchestrator) *Facade {
	return &Facade{
		session:      session,
		jobs:         jobs,
		candidates:   candidates,
		orchestrator: orchestrator,
	}
}

// UserID returns the session user id, or "" when unauthenticated.
func (f *Facade) UserID() string { return f.session.UserID() }

// JobDescriptionText returns the working job description text.
func (f *Facade) JobDescriptionText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text
}

// SetJobDescriptionText replaces the working job description text.
func (f *Facade) SetJobDescriptionText(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = text
}

// SelectedJobID returns the selected job description id, or "".
func (f *Facade) SelectedJobID() string { return f.orchestrator.SelectedJobID() }

// SetSelectedJobID records which stored job description the next run targets.
func (f *Facade) SetSelectedJobID(id string) { f.orchestrator.SetSelectedJobID(id) }

// IsMatching reports whether a match run is in flight.
func (f *Facade) IsMatching() bool { return f.orchestrator.IsMatching() }

// MatchingResults returns the results of the last successful run, or nil.
func (f *Facade) MatchingResults() []matcher.Result { return f.orchestrator.Results() }

// JobDescriptions lists the session user's job descriptions.
func (f *Facade) JobDescriptions(ctx context.Context) ([]jobdesc.JobDescription, error) {
	return f.jobs.List(ctx, f.session.UserID())
}

// MatchedCandidates lists the session user's matched candidates.
func (f *Facade) MatchedCandidates(ctx context.Context) ([]candidate.MatchedCandidate, error) {
	return f.candidates.List(ctx, f.session.UserID())
}

// RefetchMatchedCandidates forces a fresh read of the matched candidates.
func (f *Facade) RefetchMatchedCandidates(ctx context.Context) ([]candidate.MatchedCandidate, error) {
	return f.candidates.Refetch(ctx, f.session.UserID())
}

// HandleMatch runs a match against the working job description text with an
// optional role filter. The only local check is that the text is non-empty;
// authentication is the matcher's concern.
func (f *Facade) HandleMatch(ctx context.Context, jobRole string) ([]matcher.Result, error) {
	text := f.JobDescriptionText()
	if text == "" {
		return nil, ErrEmptyJobDescription
	}
	return f.orchestrator.HandleMatch(ctx, text, f.orchestrator.SelectedJobID(), jobRole, f.session.UserID())
}

// HandleClearMatches removes the session user's matches and resets the
// working state, including the job description text.
func (f *Facade) HandleClearMatches(ctx context.Context) error {
	if err := f.orchestrator.HandleClearMatches(ctx, f.session.UserID()); err != nil {
		return err
	}
	f.SetJobDescriptionText("")
	return nil
}

// Snapshot is the combined shortlist view served to clients.
type Snapshot struct {
	UserID             string                       `json:"user_id"`
	Phase              matching.Phase               `json:"phase"`
	IsMatching         bool                         `json:"is_matching"`
	JobDescriptionText string                       `json:"job_description_text"`
	SelectedJobID      string                       `json:"selected_job_id"`
	MatchingResults    []matcher.Result             `json:"matching_results"`
	JobDescriptions    []jobdesc.JobDescription     `json:"job_descriptions"`
	MatchedCandidates  []candidate.MatchedCandidate `json:"matched_candidates"`
}

// Snapshot assembles the full view. List failures surface as errors; the
// in-memory state is always included.
func (f *Facade) Snapshot(ctx context.Context) (Snapshot, error) {
	descs, err := f.JobDescriptions(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	matches, err := f.MatchedCandidates(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		UserID:             f.session.UserID(),
		Phase:              f.orchestrator.Phase(),
		IsMatching:         f.orchestrator.IsMatching(),
		JobDescriptionText: f.JobDescriptionText(),
		SelectedJobID:      f.orchestrator.SelectedJobID(),
		MatchingResults:    f.orchestrator.Results(),
		JobDescriptions:    descs,
		MatchedCandidates:  matches,
	}, nil
}
