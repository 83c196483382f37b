// Package apiclient is a Go client for the dashboard's HTTP API. It backs the
// smoketest binary and any headless automation against a running server.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"qadash/logging"
)

// Polling budget for report generation: PollReport gives up after
// PollAttempts checks spaced PollInterval apart.
const (
	PollAttempts = 30
	PollInterval = 2 * time.Second
)

// ReportView mirrors the API's report representation.
type ReportView struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	Language     string `json:"language"`
	FileName     string `json:"fileName"`
	FileURL      string `json:"fileUrl"`
	FileSize     int64  `json:"fileSize"`
	ErrorMessage string `json:"errorMessage"`
	CreatedAt    string `json:"createdAt"`
	IsTerminal   bool   `json:"isTerminal"`
}

// ReportList mirrors the API's report list representation.
type ReportList struct {
	Reports []*ReportView `json:"reports"`
}

// VerifyResult mirrors the artifact verification response.
type VerifyResult struct {
	Exists bool  `json:"exists"`
	Size   int64 `json:"size"`
}

// Client talks to a running dashboard over HTTP. Login stores the bearer
// token; every later call sends it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	clientSlug string
	logger     *logging.Logger

	pollAttempts int
	pollInterval time.Duration
}

// New creates a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logging.Default().WithComponent("api_client"),

		pollAttempts: PollAttempts,
		pollInterval: PollInterval,
	}
}

// ClientSlug returns the workspace slug of the signed-in user.
func (c *Client) ClientSlug() string {
	return c.clientSlug
}

// Login authenticates and stores the bearer token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result struct {
		Token      string `json:"token"`
		ClientSlug string `json:"clientSlug"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}

	c.token = result.Token
	c.clientSlug = result.ClientSlug
	return nil
}

// ListReports retrieves all reports for the signed-in workspace.
func (c *Client) ListReports(ctx context.Context) (*ReportList, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/reports", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var list ReportList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode report list: %w", err)
	}
	return &list, nil
}

// CreateReport requests generation of a new report. The server answers 202
// with the pending report.
func (c *Client) CreateReport(ctx context.Context, reportType string, parameters map[string]string) (*ReportView, error) {
	body, err := json.Marshal(map[string]any{"type": reportType, "parameters": parameters})
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/reports", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var report ReportView
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &report, nil
}

// GetReport retrieves one report's current state.
func (c *Client) GetReport(ctx context.Context, reportID string) (*ReportView, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/reports/"+reportID, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var report ReportView
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &report, nil
}

// PollReport polls until the report reaches a terminal state or the polling
// budget runs out. COMPLETED and READY both count as success; FAILED surfaces
// the server-recorded message as the error.
func (c *Client) PollReport(ctx context.Context, reportID string) (*ReportView, error) {
	for attempt := 1; attempt <= c.pollAttempts; attempt++ {
		report, err := c.GetReport(ctx, reportID)
		if err != nil {
			return nil, err
		}

		switch report.Status {
		case "COMPLETED", "READY":
			return report, nil
		case "FAILED":
			return report, fmt.Errorf("report %s failed: %s", reportID, report.ErrorMessage)
		}

		c.logger.Debug("Report not ready yet", "report_id", reportID, "status", report.Status, "attempt", attempt)
		if attempt == c.pollAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
	return nil, fmt.Errorf("report %s not ready after %d attempts", reportID, c.pollAttempts)
}

// VerifyReport checks the stored artifact behind a report.
func (c *Client) VerifyReport(ctx context.Context, reportID string) (*VerifyResult, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/reports/"+reportID+"/verify", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result VerifyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode verify response: %w", err)
	}
	return &result, nil
}

// DownloadReport fetches the artifact content.
func (c *Client) DownloadReport(ctx context.Context, reportID string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/reports/"+reportID+"/download", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// Health checks the server health endpoint.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// do issues one request with auth headers and treats any non-2xx response as
// an error carrying the response body.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return resp, nil
}
