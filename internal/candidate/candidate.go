// Package candidate reads the candidates currently matched to the user's
// job descriptions. No matching computation happens here — the package is a
// read-through view of the cv_match relation, expanded with cv_metadata
// fields.
package candidate

import (
	"context"
	"time"
)

// MatchedCandidate is a cv_match row joined with its cv_metadata record.
type MatchedCandidate struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	JobDescriptionID string    `json:"job_description_id"`
	CVMetadataID     string    `json:"cv_metadata_id"`
	CandidateName    string    `json:"candidate_name"`
	Email            string    `json:"email"`
	Location         string    `json:"location"`
	Skills           []string  `json:"skills"`
	Score            float64   `json:"score"`
	Status           string    `json:"status"`
	MatchedAt        time.Time `json:"matched_at"`
}

// Repository defines persistence for matched candidates.
type Repository interface {
	// ListByUser returns the user's matched candidates, best score first.
	ListByUser(ctx context.Context, userID string) ([]MatchedCandidate, error)
	// DeleteByUser removes all cv_match rows owned by userID and reports how
	// many were deleted.
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	// DeleteOrphans removes cv_match rows whose job description no longer
	// exists. Used by the maintenance cycle.
	DeleteOrphans(ctx context.Context) (int64, error)
}
