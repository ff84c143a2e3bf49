// Package tracker talks to the Jira REST API and the Tempo timesheets
// plugin running on the same server.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Config holds connection settings shared by the Jira and Tempo clients.
type Config struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
	RequestID string
	UserAgent string
	// Transport allows injecting a custom round tripper in tests.
	Transport http.RoundTripper
}

// DefaultConfig returns a Config with sensible defaults for baseURL.
func DefaultConfig(baseURL, token string) Config {
	return Config{
		BaseURL:   baseURL,
		Token:     token,
		Timeout:   30 * time.Second,
		RateLimit: 10,
		RateBurst: 5,
		UserAgent: "lt",
	}
}

// restClient is the JSON transport both clients share: one rate limiter
// and one request id per process.
type restClient struct {
	cfg      Config
	http     *http.Client
	limiter  *rate.Limiter
	observer Observer
	service  string
}

func newRESTClient(service string, cfg Config, observer Observer) *restClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 10
	}
	if cfg.RateBurst == 0 {
		cfg.RateBurst = 5
	}
	if cfg.RequestID == "" {
		cfg.RequestID = uuid.NewString()
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	transport := cfg.Transport
	if transport == nil {
		transport = &http.Transport{
			DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		}
	}
	return &restClient{
		cfg:      cfg,
		http:     &http.Client{Timeout: cfg.Timeout, Transport: transport},
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		observer: observer,
		service:  service,
	}
}

// do sends body as JSON (when non-nil) and decodes the response into out
// (when non-nil).
func (c *restClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	start := time.Now()
	status, err := c.doOnce(ctx, method, path, query, body, out)
	c.observer.OnCallComplete(CallEvent{
		Service:   c.service,
		Method:    method,
		Path:      path,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		RequestID: c.cfg.RequestID,
		Err:       err,
	})
	return err
}

func (c *restClient) doOnce(ctx context.Context, method, path string, query url.Values, body, out any) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limiter: %w", err)
	}

	fullURL := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("X-Request-Id", c.cfg.RequestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, statusError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
	}
	return resp.StatusCode, nil
}

// errorBody covers both the Jira and the Tempo error envelopes.
type errorBody struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
	Message       string            `json:"message"`
}

func statusError(status int, body []byte) error {
	text := errorText(body)
	switch status {
	case http.StatusNotFound:
		if text == "" {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %s", ErrNotFound, text)
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		return &APIError{Status: status, Text: text}
	}
}

func errorText(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return strings.TrimSpace(string(body))
	}
	var parts []string
	parts = append(parts, eb.ErrorMessages...)
	fields := make([]string, 0, len(eb.Errors))
	for field := range eb.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		parts = append(parts, field+": "+eb.Errors[field])
	}
	if eb.Message != "" {
		parts = append(parts, eb.Message)
	}
	return strings.Join(parts, "; ")
}

// IsConnectionError reports whether err came from failing to reach the server.
func IsConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
