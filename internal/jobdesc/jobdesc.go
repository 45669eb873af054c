// Package jobdesc owns the job descriptions of the current user: listing,
// whitelisted updates and confirmed deletion, with cache invalidation on
// every mutation.
package jobdesc

import (
	"context"
	"time"
)

// JobDescription mirrors a job_descriptions row. Every description belongs to
// exactly one user; the store only ever surfaces rows for the session user.
type JobDescription struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	EmployerProfileID *string   `json:"employer_profile_id"`
	AgentID           *string   `json:"agent_id"`
	JobTitle          string    `json:"job_title"`
	CompanyName       string    `json:"company_name"`
	Location          string    `json:"location"`
	OriginalText      string    `json:"original_text"`
	JobRequirements   string    `json:"job_requirements"`
	Benefits          string    `json:"benefits"`
	CreatedAt         time.Time `json:"created_at"`
}

// Update carries the mutable subset of a job description. Fields outside this
// whitelist (owner, employer profile, agent linkage) are never written by the
// store.
type Update struct {
	ID              string `json:"id"`
	JobTitle        string `json:"job_title"`
	CompanyName     string `json:"company_name"`
	Location        string `json:"location"`
	OriginalText    string `json:"original_text"`
	JobRequirements string `json:"job_requirements"`
	Benefits        string `json:"benefits"`
}

// Repository defines persistence for job descriptions.
type Repository interface {
	// ListByUser returns the user's job descriptions, newest first.
	ListByUser(ctx context.Context, userID string) ([]JobDescription, error)
	// Update persists the whitelisted fields keyed by upd.ID.
	Update(ctx context.Context, upd Update) error
	// Delete removes the job description with the given id.
	Delete(ctx context.Context, jobID string) error
}
