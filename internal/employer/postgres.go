package employer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository on the employer_profiles table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a repository backed by pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetByUser returns the profile owned by userID, or nil if there is none.
func (r *PostgresRepository) GetByUser(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, company_name, COALESCE(contact_name, ''),
		        COALESCE(email, ''), COALESCE(phone, ''), COALESCE(address, ''), created_at
		 FROM employer_profiles
		 WHERE user_id = $1`,
		userID,
	).Scan(&p.ID, &p.UserID, &p.CompanyName, &p.ContactName, &p.Email, &p.Phone, &p.Address, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employer_profile: %w", err)
	}
	return &p, nil
}

// Upsert creates or replaces the profile keyed by user_id.
func (r *PostgresRepository) Upsert(ctx context.Context, p Profile) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO employer_profiles (id, user_id, company_name, contact_name, email, phone, address, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		 ON CONFLICT (user_id) DO UPDATE
		 SET company_name = EXCLUDED.company_name,
		     contact_name = EXCLUDED.contact_name,
		     email        = EXCLUDED.email,
		     phone        = EXCLUDED.phone,
		     address      = EXCLUDED.address`,
		p.ID, p.UserID, p.CompanyName, p.ContactName, p.Email, p.Phone, p.Address,
	)
	if err != nil {
		return fmt.Errorf("upsert employer_profile: %w", err)
	}
	return nil
}
