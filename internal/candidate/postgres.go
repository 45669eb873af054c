package candidate

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository on cv_match joined with
// cv_metadata.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a repository backed by pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListByUser returns all matched candidates for userID, best score first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]MatchedCandidate, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT m.id, m.user_id, COALESCE(m.job_description_id::text, ''), m.cv_metadata_id,
		        c.candidate_name, COALESCE(c.email, ''), COALESCE(c.location, ''),
		        COALESCE(c.skills, '{}'), m.score, m.status, m.matched_at
		 FROM cv_match m
		 JOIN cv_metadata c ON c.id = m.cv_metadata_id
		 WHERE m.user_id = $1
		 ORDER BY m.score DESC, m.matched_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list cv_match: %w", err)
	}
	defer rows.Close()

	matches := make([]MatchedCandidate, 0)
	for rows.Next() {
		var mc MatchedCandidate
		if err := rows.Scan(
			&mc.ID, &mc.UserID, &mc.JobDescriptionID, &mc.CVMetadataID,
			&mc.CandidateName, &mc.Email, &mc.Location, &mc.Skills,
			&mc.Score, &mc.Status, &mc.MatchedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cv_match: %w", err)
		}
		matches = append(matches, mc)
	}
	return matches, rows.Err()
}

// DeleteByUser removes all matches owned by userID. The user_id equality
// filter is mandatory — there is no unscoped variant of this delete.
func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM cv_match WHERE user_id = $1`, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete cv_match for user %s: %w", userID, err)
	}
	return tag.RowsAffected(), nil
}

// DeleteOrphans removes matches pointing at deleted job descriptions.
func (r *PostgresRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM cv_match m
		 WHERE m.job_description_id IS NOT NULL
		   AND NOT EXISTS (
		     SELECT 1 FROM job_descriptions jd WHERE jd.id = m.job_description_id
		   )`,
	)
	if err != nil {
		return 0, fmt.Errorf("delete orphaned cv_match rows: %w", err)
	}
	return tag.RowsAffected(), nil
}
