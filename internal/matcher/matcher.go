// Package matcher invokes the external matching operation that scores
// candidates against a job description. The matching algorithm itself lives
// behind this boundary; implementations only transport the request and
// persist results into cv_match.
package matcher

import "context"

// Request describes one match run. JobDescriptionID and JobRole are optional;
// UserID may be empty, in which case the backend rejects the unauthenticated
// request — no validation happens on this side of the boundary.
type Request struct {
	JobDescription   string `json:"job_description"`
	JobDescriptionID string `json:"job_description_id,omitempty"`
	JobRole          string `json:"job_role,omitempty"`
	UserID           string `json:"user_id,omitempty"`
}

// Result is one scored candidate produced by a match run.
type Result struct {
	CVMetadataID  string  `json:"cv_metadata_id"`
	CandidateName string  `json:"candidate_name"`
	Email         string  `json:"email"`
	Score         float64 `json:"score"`
	Reason        string  `json:"reason,omitempty"`
}

// Matcher runs the external matching operation. Implementations persist the
// resulting cv_match rows as a side effect of a successful run.
type Matcher interface {
	Match(ctx context.Context, req Request) ([]Result, error)
}
