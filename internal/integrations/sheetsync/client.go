// Package sheetsync mirrors entity snapshots into an external spreadsheet as
// a best-effort side channel. A failed sync must never roll back or block the
// booking mutation that produced the snapshot.
package sheetsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger is the logging interface the client depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client talks to the spreadsheet bridge's HTTP API.
type Client struct {
	baseURL    string
	token      string
	sheetID    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a sheetsync client.
func NewClient(baseURL, token, sheetID string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		sheetID: sheetID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

type upsertRequest struct {
	SheetID string            `json:"sheetId"`
	Tab     string            `json:"tab"`
	Key     string            `json:"key"`
	Values  map[string]string `json:"values"`
}

// UpsertRow writes one row keyed by entity id into the given tab, replacing
// an existing row with the same key.
func (c *Client) UpsertRow(ctx context.Context, tab, key string, values map[string]string) error {
	payload, err := json.Marshal(upsertRequest{
		SheetID: c.sheetID,
		Tab:     tab,
		Key:     key,
		Values:  values,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/v1/sheets/rows", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: service rejected row (%d): %s", ErrSyncFailed, resp.StatusCode, string(body))
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}
