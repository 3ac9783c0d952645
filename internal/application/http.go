package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// HTTPClient submits applications to a real government endpoint.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

func (c *HTTPClient) Submit(ctx context.Context, sub Submission) (*Receipt, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("marshal application: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/schemes/apply", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create application request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("application request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read application response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("application API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var receipt Receipt
	if err := json.Unmarshal(respBody, &receipt); err != nil {
		return nil, fmt.Errorf("unmarshal application receipt: %w", err)
	}
	if receipt.Status == "" {
		receipt.Status = StatusSubmitted
	}
	return &receipt, nil
}

func (c *HTTPClient) Status(ctx context.Context, referenceNumber string) (*StatusReport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/schemes/status/"+referenceNumber, nil)
	if err != nil {
		return nil, fmt.Errorf("create status request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read status response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrApplicationNotFound, referenceNumber)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("application API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var report StatusReport
	if err := json.Unmarshal(respBody, &report); err != nil {
		return nil, fmt.Errorf("unmarshal status report: %w", err)
	}
	return &report, nil
}

var _ Client = (*HTTPClient)(nil)
