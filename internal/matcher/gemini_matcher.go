package matcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "embed"

	"go.uber.org/zap"
)

//go:embed prompt.md
var promptTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// CandidateCV is a cv_metadata row presented to the model.
type CandidateCV struct {
	ID            string   `json:"id"`
	CandidateName string   `json:"candidate_name"`
	Email         string   `json:"email"`
	Location      string   `json:"location"`
	Skills        []string `json:"skills"`
	CVText        string   `json:"cv_text"`
}

// CVStore is the persistence boundary of the Gemini matcher: it loads the
// candidate pool and records the scored matches.
type CVStore interface {
	// LoadPool returns the candidate CVs eligible for matching.
	LoadPool(ctx context.Context) ([]CandidateCV, error)
	// SaveMatches inserts cv_match rows for the run.
	SaveMatches(ctx context.Context, userID, jobDescriptionID string, results []Result) error
}

// GeminiMatcher scores the stored candidate pool against a job description
// with Gemini and persists the shortlist into cv_match.
type GeminiMatcher struct {
	generator contentGenerator
	cvs       CVStore
	logger    *zap.Logger
}

// NewGeminiMatcher returns a matcher driven by generator over the cvs pool.
func NewGeminiMatcher(generator contentGenerator, cvs CVStore, logger *zap.Logger) *GeminiMatcher {
	return &GeminiMatcher{generator: generator, cvs: cvs, logger: logger}
}

// Match loads the pool, prompts the model and persists the scored results.
// An unauthenticated request is rejected here, mirroring the hosted matcher.
func (m *GeminiMatcher) Match(ctx context.Context, req Request) ([]Result, error) {
	if req.UserID == "" {
		return nil, errors.New("matching requires an authenticated user")
	}

	pool, err := m.cvs.LoadPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("load candidate pool: %w", err)
	}
	if len(pool) == 0 {
		return []Result{}, nil
	}

	prompt, err := buildPrompt(req, pool)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("gemini match request",
		zap.String("job_description_id", req.JobDescriptionID),
		zap.Int("pool_size", len(pool)),
	)

	raw, err := m.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	results, err := parseResults(raw, pool)
	if err != nil {
		return nil, err
	}

	if err := m.cvs.SaveMatches(ctx, req.UserID, req.JobDescriptionID, results); err != nil {
		return nil, fmt.Errorf("persist matches: %w", err)
	}

	return results, nil
}

func buildPrompt(req Request, pool []CandidateCV) (string, error) {
	candidatesJSON, err := json.MarshalIndent(pool, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal candidate pool: %w", err)
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{JOB_DESCRIPTION}}", req.JobDescription)
	prompt = strings.ReplaceAll(prompt, "{{JOB_ROLE}}", req.JobRole)
	prompt = strings.ReplaceAll(prompt, "{{CANDIDATES_JSON}}", string(candidatesJSON))
	return prompt, nil
}

// parseResults decodes the model output. Entries referencing unknown cv ids
// are dropped — the model must not invent candidates.
func parseResults(raw string, pool []CandidateCV) ([]Result, error) {
	cleaned := extractJSON(raw)

	var entries []struct {
		CVID   string `json:"cv_id"`
		Score  any    `json:"score"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(cleaned), &entries); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	byID := make(map[string]CandidateCV, len(pool))
	for _, cv := range pool {
		byID[cv.ID] = cv
	}

	results := make([]Result, 0, len(entries))
	for _, e := range entries {
		cv, ok := byID[e.CVID]
		if !ok {
			continue
		}
		results = append(results, Result{
			CVMetadataID:  cv.ID,
			CandidateName: cv.CandidateName,
			Email:         cv.Email,
			Score:         coerceScore(e.Score),
			Reason:        e.Reason,
		})
	}
	return results, nil
}

// extractJSON strips markdown code fences the model sometimes adds despite
// instructions.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceScore(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
