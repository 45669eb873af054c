// Package httpapi implements the HTTP surface of the shortlist service.
//
// All operations act on behalf of the session user resolved at startup;
// there is no per-request authentication.
//
// Routes:
//
//	GET    /health                            → liveness probe
//	GET    /shortlist                         → combined workflow snapshot
//	POST   /shortlist/match                   → run a match against the working text
//	POST   /shortlist/clear                   → delete the user's matches, reset state
//	POST   /shortlist/select                  → select a stored job description
//	GET    /job-descriptions                  → list the user's job descriptions
//	POST   /job-descriptions/{id}/update      → update whitelisted fields
//	DELETE /job-descriptions/{id}?confirm=true → delete (409 without confirm)
//	GET    /candidates                        → list matched candidates
//	GET    /employer-profile                  → read the employer profile
//	POST   /employer-profile                  → save the employer profile
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/zanybarlee/a8-manpower/internal/confirm"
	"github.com/zanybarlee/a8-manpower/internal/employer"
	"github.com/zanybarlee/a8-manpower/internal/jobdesc"
	"github.com/zanybarlee/a8-manpower/internal/matching"
	"github.com/zanybarlee/a8-manpower/internal/shortlist"
)

// ─── Handler ─────────────────────────────────────────────────────────────────

// Handler holds shared dependencies.
type Handler struct {
	facade    *shortlist.Facade
	jobs      *jobdesc.Store
	employers *employer.Store
	logger    *zap.Logger
}

// NewHandler returns a configured Handler.
func NewHandler(facade *shortlist.Facade, jobs *jobdesc.Store, employers *employer.Store, logger *zap.Logger) *Handler {
	return &Handler{facade: facade, jobs: jobs, employers: employers, logger: logger}
}

// RegisterRoutes mounts all shortlist-service routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/shortlist", h.handleShortlist)
	mux.HandleFunc("/shortlist/", h.handleShortlistAction)
	mux.HandleFunc("/job-descriptions", h.handleJobDescriptions)
	mux.HandleFunc("/job-descriptions/", h.handleJobDescriptionAction)
	mux.HandleFunc("/candidates", h.handleCandidates)
	mux.HandleFunc("/employer-profile", h.handleEmployerProfile)
}

// ─── Route dispatch ───────────────────────────────────────────────────────────

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, map[string]string{"status": "ok"})
}

// handleShortlist handles GET /shortlist
func (h *Handler) handleShortlist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap, err := h.facade.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("snapshot failed", zap.Error(err))
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, snap)
}

// handleShortlistAction handles POST /shortlist/match|clear|select
func (h *Handler) handleShortlistAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	action := strings.TrimPrefix(r.URL.Path, "/shortlist/")
	switch action {
	case "match":
		h.runMatch(w, r)
	case "clear":
		h.clearMatches(w, r)
	case "select":
		h.selectJob(w, r)
	default:
		jsonError(w, fmt.Sprintf("unknown action %q", action), http.StatusNotFound)
	}
}

// handleJobDescriptions handles GET /job-descriptions
func (h *Handler) handleJobDescriptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	descs, err := h.facade.JobDescriptions(r.Context())
	if err != nil {
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, descs)
}

// handleJobDescriptionAction handles POST /job-descriptions/{id}/update and
// DELETE /job-descriptions/{id}
func (h *Handler) handleJobDescriptionAction(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	switch {
	case r.Method == http.MethodPost && len(parts) == 3 && parts[2] == "update":
		h.updateJobDescription(w, r, parts[1])
	case r.Method == http.MethodDelete && len(parts) == 2:
		h.deleteJobDescription(w, r, parts[1])
	default:
		jsonError(w, "invalid path", http.StatusNotFound)
	}
}

// handleCandidates handles GET /candidates
func (h *Handler) handleCandidates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	matches, err := h.facade.MatchedCandidates(r.Context())
	if err != nil {
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, matches)
}

// ─── Individual handlers ──────────────────────────────────────────────────────

func (h *Handler) runMatch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		JobDescription string `json:"jobDescription"`
		JobRole        string `json:"jobRole"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if body.JobDescription != "" {
		h.facade.SetJobDescriptionText(body.JobDescription)
	}

	results, err := h.facade.HandleMatch(r.Context(), body.JobRole)
	if err != nil {
		if errors.Is(err, shortlist.ErrEmptyJobDescription) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, "matching failed", http.StatusBadGateway)
		return
	}

	jsonOK(w, map[string]any{"results": results})
}

func (h *Handler) clearMatches(w http.ResponseWriter, r *http.Request) {
	if err := h.facade.HandleClearMatches(r.Context()); err != nil {
		if errors.Is(err, matching.ErrUnscopedDelete) {
			jsonError(w, err.Error(), http.StatusUnauthorized)
			return
		}
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, map[string]string{"status": "cleared"})
}

func (h *Handler) selectJob(w http.ResponseWriter, r *http.Request) {
	var body struct {
		JobID string `json:"jobId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	h.facade.SetSelectedJobID(body.JobID)
	jsonOK(w, map[string]string{"selectedJobId": body.JobID})
}

func (h *Handler) updateJobDescription(w http.ResponseWriter, r *http.Request, jobID string) {
	var upd jobdesc.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	upd.ID = jobID

	if !h.jobs.Update(r.Context(), h.facade.UserID(), upd) {
		jsonError(w, "failed to update job description", http.StatusInternalServerError)
		return
	}
	jsonOK(w, map[string]string{"status": "updated"})
}

// deleteJobDescription requires confirm=true in the query string. The flag is
// the transported human confirmation; without it nothing is deleted.
func (h *Handler) deleteJobDescription(w http.ResponseWriter, r *http.Request, jobID string) {
	confirmed := r.URL.Query().Get("confirm") == "true"
	if !confirmed {
		jsonError(w, "deletion requires confirm=true", http.StatusConflict)
		return
	}

	if !h.jobs.Remove(r.Context(), h.facade.UserID(), jobID, confirm.Static(true)) {
		jsonError(w, "failed to delete job description", http.StatusInternalServerError)
		return
	}
	jsonOK(w, map[string]string{"status": "deleted"})
}

func (h *Handler) handleEmployerProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		profile, err := h.employers.Get(r.Context(), h.facade.UserID())
		if err != nil {
			jsonError(w, "database error", http.StatusInternalServerError)
			return
		}
		if profile == nil {
			jsonError(w, "no employer profile", http.StatusNotFound)
			return
		}
		jsonOK(w, profile)
	case http.MethodPost:
		var p employer.Profile
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			jsonError(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		if !h.employers.Save(r.Context(), h.facade.UserID(), p) {
			jsonError(w, "failed to save employer profile", http.StatusInternalServerError)
			return
		}
		jsonOK(w, map[string]string{"status": "saved"})
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
