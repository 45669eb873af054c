package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/zanybarlee/a8-manpower/internal/cache"
	"github.com/zanybarlee/a8-manpower/internal/candidate"
	"github.com/zanybarlee/a8-manpower/internal/employer"
	"github.com/zanybarlee/a8-manpower/internal/httpapi"
	"github.com/zanybarlee/a8-manpower/internal/jobdesc"
	"github.com/zanybarlee/a8-manpower/internal/matcher"
	"github.com/zanybarlee/a8-manpower/internal/matching"
	"github.com/zanybarlee/a8-manpower/internal/notify"
	"github.com/zanybarlee/a8-manpower/internal/shortlist"
)

// ─── Fakes ───────────────────────────────────────────────────────────────────

type fixedUser string

func (u fixedUser) UserID() string { return string(u) }

type jobRepo struct {
	descs   []jobdesc.JobDescription
	updates []jobdesc.Update
	deletes []string
}

func (r *jobRepo) ListByUser(ctx context.Context, userID string) ([]jobdesc.JobDescription, error) {
	return r.descs, nil
}

func (r *jobRepo) Update(ctx context.Context, upd jobdesc.Update) error {
	r.updates = append(r.updates, upd)
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, jobID string) error {
	r.deletes = append(r.deletes, jobID)
	return nil
}

type matchRepo struct {
	matches []candidate.MatchedCandidate
	deletes []string
}

func (r *matchRepo) ListByUser(ctx context.Context, userID string) ([]candidate.MatchedCandidate, error) {
	return r.matches, nil
}

func (r *matchRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	r.deletes = append(r.deletes, userID)
	return int64(len(r.matches)), nil
}

func (r *matchRepo) DeleteOrphans(ctx context.Context) (int64, error) { return 0, nil }

type employerRepo struct {
	profile *employer.Profile
}

func (r *employerRepo) GetByUser(ctx context.Context, userID string) (*employer.Profile, error) {
	return r.profile, nil
}

func (r *employerRepo) Upsert(ctx context.Context, p employer.Profile) error {
	r.profile = &p
	return nil
}

type fakeMatcher struct {
	results []matcher.Result
}

func (f *fakeMatcher) Match(ctx context.Context, req matcher.Request) ([]matcher.Result, error) {
	return f.results, nil
}

// ─── Fixture ─────────────────────────────────────────────────────────────────

type fixture struct {
	mux      *http.ServeMux
	jobs     *jobRepo
	matches  *matchRepo
	profiles *employerRepo
}

func newFixture(user string) *fixture {
	logger := zap.NewNop()
	rec := notify.NewRecorder()
	jobs := &jobRepo{descs: []jobdesc.JobDescription{{ID: "JD-A", UserID: user, JobTitle: "Engineer"}}}
	matches := &matchRepo{matches: []candidate.MatchedCandidate{{ID: "m-1", CVMetadataID: "cv-1", Score: 0.9}}}
	profiles := &employerRepo{}

	jobStore := jobdesc.NewStore(jobs, cache.NewMemory(), time.Minute, rec, logger)
	candStore := candidate.NewStore(matches, cache.NewMemory(), time.Minute, logger)
	empStore := employer.NewStore(profiles, rec, logger)

	m := &fakeMatcher{results: []matcher.Result{{CVMetadataID: "cv-1", CandidateName: "Ada Lovelace", Score: 0.9}}}
	orch := matching.NewOrchestrator(m, candStore, matches, rec, logger)
	facade := shortlist.New(fixedUser(user), jobStore, candStore, orch)

	mux := http.NewServeMux()
	httpapi.NewHandler(facade, jobStore, empStore, logger).RegisterRoutes(mux)

	return &fixture{mux: mux, jobs: jobs, matches: matches, profiles: profiles}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	f.mux.ServeHTTP(rr, req)
	return rr
}

// ─── Tests ───────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	rr := newFixture("u1").do(t, http.MethodGet, "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}

func TestShortlistSnapshot(t *testing.T) {
	rr := newFixture("u1").do(t, http.MethodGet, "/shortlist", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var snap shortlist.Snapshot
	if err := json.Unmarshal(rr.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.UserID != "u1" || snap.Phase != matching.PhaseIdle {
		t.Errorf("snapshot = %+v", snap)
	}
	if len(snap.JobDescriptions) != 1 || len(snap.MatchedCandidates) != 1 {
		t.Errorf("snapshot lists = %d/%d, want 1/1", len(snap.JobDescriptions), len(snap.MatchedCandidates))
	}
}

func TestRunMatch(t *testing.T) {
	f := newFixture("u1")

	rr := f.do(t, http.MethodPost, "/shortlist/match",
		`{"jobDescription": "Senior Engineer", "jobRole": "Engineer"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Results []matcher.Result `json:"results"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].CandidateName != "Ada Lovelace" {
		t.Errorf("results = %+v", resp.Results)
	}
}

func TestRunMatch_EmptyTextRejected(t *testing.T) {
	rr := newFixture("u1").do(t, http.MethodPost, "/shortlist/match", `{}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestClearMatches(t *testing.T) {
	f := newFixture("u1")

	rr := f.do(t, http.MethodPost, "/shortlist/clear", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if len(f.matches.deletes) != 1 || f.matches.deletes[0] != "u1" {
		t.Errorf("delete calls = %v, want one scoped to u1", f.matches.deletes)
	}
}

func TestClearMatches_UnauthenticatedRefused(t *testing.T) {
	f := newFixture("")

	rr := f.do(t, http.MethodPost, "/shortlist/clear", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	if len(f.matches.deletes) != 0 {
		t.Error("no delete should reach the repository")
	}
}

func TestSelectJob(t *testing.T) {
	f := newFixture("u1")

	rr := f.do(t, http.MethodPost, "/shortlist/select", `{"jobId": "JD-A"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	snap := f.do(t, http.MethodGet, "/shortlist", "")
	var got shortlist.Snapshot
	if err := json.Unmarshal(snap.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if got.SelectedJobID != "JD-A" {
		t.Errorf("selected job = %q, want JD-A", got.SelectedJobID)
	}
}

func TestUpdateJobDescription(t *testing.T) {
	f := newFixture("u1")

	rr := f.do(t, http.MethodPost, "/job-descriptions/JD-A/update",
		`{"job_title": "Staff Engineer", "user_id": "someone-else"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if len(f.jobs.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(f.jobs.updates))
	}
	if got := f.jobs.updates[0]; got.ID != "JD-A" || got.JobTitle != "Staff Engineer" {
		t.Errorf("update = %+v", got)
	}
}

func TestDeleteJobDescription_ConfirmContract(t *testing.T) {
	f := newFixture("u1")

	rr := f.do(t, http.MethodDelete, "/job-descriptions/JD-A", "")
	if rr.Code != http.StatusConflict {
		t.Fatalf("status without confirm = %d, want 409", rr.Code)
	}
	if len(f.jobs.deletes) != 0 {
		t.Fatal("nothing should be deleted without confirm=true")
	}

	rr = f.do(t, http.MethodDelete, "/job-descriptions/JD-A?confirm=true", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status with confirm = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if len(f.jobs.deletes) != 1 || f.jobs.deletes[0] != "JD-A" {
		t.Errorf("deletes = %v, want [JD-A]", f.jobs.deletes)
	}
}

func TestCandidates(t *testing.T) {
	rr := newFixture("u1").do(t, http.MethodGet, "/candidates", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var matches []candidate.MatchedCandidate
	if err := json.Unmarshal(rr.Body.Bytes(), &matches); err != nil {
		t.Fatalf("decode candidates: %v", err)
	}
	if len(matches) != 1 || matches[0].CVMetadataID != "cv-1" {
		t.Errorf("matches = %+v", matches)
	}
}

func TestEmployerProfileRoundTrip(t *testing.T) {
	f := newFixture("u1")

	rr := f.do(t, http.MethodGet, "/employer-profile", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status before save = %d, want 404", rr.Code)
	}

	rr = f.do(t, http.MethodPost, "/employer-profile",
		`{"company_name": "Acme", "contact_name": "Grace Hopper"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("save status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	rr = f.do(t, http.MethodGet, "/employer-profile", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status after save = %d, want 200", rr.Code)
	}
	var p employer.Profile
	if err := json.Unmarshal(rr.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if p.CompanyName != "Acme" || p.UserID != "u1" || p.ID == "" {
		t.Errorf("profile = %+v", p)
	}
}
