package matcher

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// maxPoolSize bounds how many CVs a single match run sends to the model.
const maxPoolSize = 200

// PostgresCVStore implements CVStore on cv_metadata and cv_match.
type PostgresCVStore struct {
	pool *pgxpool.Pool
}

// NewPostgresCVStore returns a CVStore backed by pool.
func NewPostgresCVStore(pool *pgxpool.Pool) *PostgresCVStore {
	return &PostgresCVStore{pool: pool}
}

// LoadPool returns up to maxPoolSize candidate CVs, newest uploads first.
func (s *PostgresCVStore) LoadPool(ctx context.Context) ([]CandidateCV, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, candidate_name, COALESCE(email, ''), COALESCE(location, ''),
		        COALESCE(skills, '{}'), COALESCE(cv_text, '')
		 FROM cv_metadata
		 ORDER BY uploaded_at DESC
		 LIMIT $1`,
		maxPoolSize,
	)
	if err != nil {
		return nil, fmt.Errorf("query cv_metadata: %w", err)
	}
	defer rows.Close()

	cvs := make([]CandidateCV, 0)
	for rows.Next() {
		var cv CandidateCV
		if err := rows.Scan(&cv.ID, &cv.CandidateName, &cv.Email, &cv.Location, &cv.Skills, &cv.CVText); err != nil {
			return nil, fmt.Errorf("scan cv_metadata: %w", err)
		}
		cvs = append(cvs, cv)
	}
	return cvs, rows.Err()
}

// SaveMatches inserts one cv_match row per result. An existing match for the
// same (user, job description, cv) pair is replaced by the fresh score.
func (s *PostgresCVStore) SaveMatches(ctx context.Context, userID, jobDescriptionID string, results []Result) error {
	for _, res := range results {
		var jdID any
		if jobDescriptionID != "" {
			jdID = jobDescriptionID
		}
		if _, err := s.pool.Exec(ctx,
			`INSERT INTO cv_match (id, user_id, job_description_id, cv_metadata_id, score, status, matched_at)
			 VALUES ($1, $2, $3, $4, $5, 'shortlisted', NOW())
			 ON CONFLICT (user_id, job_description_id, cv_metadata_id) DO UPDATE
			 SET score = EXCLUDED.score, matched_at = EXCLUDED.matched_at`,
			uuid.NewString(), userID, jdID, res.CVMetadataID, res.Score,
		); err != nil {
			return fmt.Errorf("insert cv_match for cv %s: %w", res.CVMetadataID, err)
		}
	}
	return nil
}
