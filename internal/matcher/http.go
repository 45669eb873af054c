package matcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const httpTimeout = 60 * time.Second

// HTTPMatcher calls the hosted matching operation over HTTP. The remote
// service scores the candidate pool and writes cv_match rows itself; the
// response body carries the result list for immediate display.
type HTTPMatcher struct {
	endpoint string
	client   *http.Client
}

// NewHTTPMatcher constructs a matcher posting to endpoint.
func NewHTTPMatcher(endpoint string) *HTTPMatcher {
	return &HTTPMatcher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: httpTimeout},
	}
}

type matchResponse struct {
	Results []Result `json:"results"`
}

// Match posts the request and decodes the scored results.
func (m *HTTPMatcher) Match(ctx context.Context, req Request) ([]Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal match request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build match request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("matching service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("matching service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var mr matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode match response: %w", err)
	}

	return mr.Results, nil
}
