package jobdesc

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository on the job_descriptions table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a repository backed by pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListByUser returns all job descriptions owned by userID, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]JobDescription, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, employer_profile_id, agent_id, job_title, company_name,
		        location, original_text, job_requirements, benefits, created_at
		 FROM job_descriptions
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list job_descriptions: %w", err)
	}
	defer rows.Close()

	descs := make([]JobDescription, 0)
	for rows.Next() {
		var jd JobDescription
		if err := rows.Scan(
			&jd.ID, &jd.UserID, &jd.EmployerProfileID, &jd.AgentID, &jd.JobTitle,
			&jd.CompanyName, &jd.Location, &jd.OriginalText, &jd.JobRequirements,
			&jd.Benefits, &jd.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan job_description: %w", err)
		}
		descs = append(descs, jd)
	}
	return descs, rows.Err()
}

// Update persists the whitelisted fields. Returns an error if no row matches.
func (r *PostgresRepository) Update(ctx context.Context, upd Update) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE job_descriptions
		 SET job_title        = $1,
		     company_name     = $2,
		     location         = $3,
		     original_text    = $4,
		     job_requirements = $5,
		     benefits         = $6
		 WHERE id = $7`,
		upd.JobTitle, upd.CompanyName, upd.Location,
		upd.OriginalText, upd.JobRequirements, upd.Benefits,
		upd.ID,
	)
	if err != nil {
		return fmt.Errorf("update job_description %s: %w", upd.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job description %s not found", upd.ID)
	}
	return nil
}

// Delete removes the job description by id. Deleting a missing row is not an
// error — the outcome is the same.
func (r *PostgresRepository) Delete(ctx context.Context, jobID string) error {
	if _, err := r.pool.Exec(ctx,
		`DELETE FROM job_descriptions WHERE id = $1`, jobID,
	); err != nil {
		return fmt.Errorf("delete job_description %s: %w", jobID, err)
	}
	return nil
}
