// Package employer manages the employer profile attached to the current
// user.
package employer

import (
	"context"
	"time"
)

// Profile mirrors an employer_profiles row.
type Profile struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	CompanyName string    `json:"company_name"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
}

// Repository defines persistence for employer profiles.
type Repository interface {
	// GetByUser returns the user's profile, or nil when none exists yet.
	GetByUser(ctx context.Context, userID string) (*Profile, error)
	// Upsert creates or replaces the user's profile.
	Upsert(ctx context.Context, p Profile) error
}
