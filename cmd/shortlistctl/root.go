package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const app = "shortlistctl"

var (
	// Used for flags.
	serverURL string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "shortlistctl drives the shortlist service from the terminal",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8083", "base URL of the shortlist service")
}

var httpClient = &http.Client{Timeout: 120 * time.Second}

// call sends a request to the service and decodes the JSON response. Non-2xx
// responses surface the service's error field.
func call(method, path string, body any) (json.RawMessage, error) {
	var rdr io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rdr = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, strings.TrimRight(serverURL, "/")+path, rdr)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shortlist service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			return nil, fmt.Errorf("service returned %d: %s", resp.StatusCode, e.Error)
		}
		return nil, fmt.Errorf("service returned %d", resp.StatusCode)
	}

	return raw, nil
}
