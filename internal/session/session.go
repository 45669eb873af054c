// Package session resolves the authenticated user for this process.
//
// The identity lookup happens exactly once, at startup. A failed lookup is
// logged and leaves the provider unresolved — every dependent store treats
// that the same as "not signed in" and serves empty results.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const identityTimeout = 10 * time.Second

// Resolver looks up the current user identity.
type Resolver interface {
	// ResolveUserID returns the authenticated user id, or an error when the
	// session cannot be established.
	ResolveUserID(ctx context.Context) (string, error)
}

// Provider holds the user id for the lifetime of the process.
type Provider struct {
	userID string
}

// NewProvider resolves the session through r once. On failure the returned
// provider is unauthenticated; the error is logged, never returned.
func NewProvider(ctx context.Context, r Resolver, logger *zap.Logger) *Provider {
	p := &Provider{}
	if r == nil {
		logger.Info("no identity service configured, running unauthenticated")
		return p
	}

	userID, err := r.ResolveUserID(ctx)
	if err != nil {
		logger.Error("session resolution failed, continuing unauthenticated", zap.Error(err))
		return p
	}

	p.userID = userID
	logger.Info("session resolved", zap.String("user_id", userID))
	return p
}

// UserID returns the resolved user id, or "" when unauthenticated.
func (p *Provider) UserID() string { return p.userID }

// Resolved reports whether a user session was established.
func (p *Provider) Resolved() bool { return p.userID != "" }

// IdentityClient resolves sessions against the hosted identity service.
type IdentityClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewIdentityClient returns a client for the identity service at baseURL.
func NewIdentityClient(baseURL, token string) *IdentityClient {
	return &IdentityClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: identityTimeout},
	}
}

type sessionResponse struct {
	UserID string `json:"user_id"`
}

// ResolveUserID calls GET /session and returns the user id. A missing or
// anonymous session yields an error so the provider degrades cleanly.
func (c *IdentityClient) ResolveUserID(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/session", nil)
	if err != nil {
		return "", fmt.Errorf("build session request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("identity service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var sr sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("decode session response: %w", err)
	}
	if sr.UserID == "" {
		return "", fmt.Errorf("identity service returned no user id")
	}

	return sr.UserID, nil
}
