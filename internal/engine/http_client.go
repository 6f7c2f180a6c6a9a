package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"stackadvisor-backend/internal/shared/metrics"
)

const defaultTimeout = 30 * time.Second

// HTTPClient implements Client against the rules engine's HTTP API. One
// instance carries one configured transport and is shared across requests.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient constructs an HTTPClient for the given engine base URL.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) (*HTTPClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("ENGINE_BASE_URL is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type engineError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Analyze posts the requirements and decodes the engine's session payload.
// All transport and server failures collapse into one human-readable error.
func (c *HTTPClient) Analyze(ctx context.Context, req Requirements) (Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Result{}, Errorf("engine request could not be prepared: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return Result{}, Errorf("engine request could not be prepared: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	metrics.ObserveEngineCallDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		return Result{}, Errorf("no response from rules engine: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return Result{}, Errorf("no response from rules engine: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var engErr engineError
		if json.Unmarshal(payload, &engErr) == nil && strings.TrimSpace(engErr.Message) != "" {
			return Result{}, Errorf("rules engine error: %s", engErr.Message)
		}
		return Result{}, Errorf("rules engine error: status %d", resp.StatusCode)
	}

	var result Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return Result{}, Errorf("rules engine returned an unreadable payload: %w", err)
	}

	normalizeResult(&result)
	return result, nil
}

// normalizeResult coerces absent slices so callers can assume canonical
// shapes. The display layer must render something coherent even when the
// engine returns partial records.
func normalizeResult(r *Result) {
	if r.Recommendations == nil {
		r.Recommendations = []Recommendation{}
	}
	if r.Explanations == nil {
		r.Explanations = []Explanation{}
	}
	if r.RuleLogs == nil {
		r.RuleLogs = []RuleLog{}
	}
	if r.ExplanationChain == nil {
		r.ExplanationChain = []string{}
	}
	if r.AuditLog == nil {
		r.AuditLog = []string{}
	}
}
