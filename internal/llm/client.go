package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"newscast/internal/logger"
)

const (
	// DefaultModel is the completion model used when no override is given.
	DefaultModel = "claude-sonnet-4-5-20250929"
	// DefaultAPIURL is the messages endpoint of the completion API.
	DefaultAPIURL = "https://api.anthropic.com/v1/messages"

	apiVersion = "2023-06-01"

	defaultMaxTokens   = 4000
	defaultTemperature = 1.0
)

// RateLimitError reports that the server kept answering 429 until the retry
// budget ran out.
type RateLimitError struct {
	Attempts int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded after %d attempts", e.Attempts)
}

// UpstreamError reports any non-recoverable completion-API failure:
// transport errors, non-429 HTTP statuses and malformed response bodies.
// The client never retries these; the caller's per-batch policy decides.
type UpstreamError struct {
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("completion API error: status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("completion API error: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Config holds the client configuration.
type Config struct {
	APIURL            string
	APIKey            string
	Model             string
	RequestsPerMinute int
	MaxRetries        int           // Retries after the first attempt on 429
	BaseDelay         time.Duration // Backoff base: delay = BaseDelay * 2^attempt
	HTTPClient        *http.Client
}

// CallOptions carries per-call overrides.
type CallOptions struct {
	MaxTokens   int
	Temperature float64
	Model       string // Empty selects the configured model
}

// DefaultCallOptions returns the standard options for summary-length
// completions.
func DefaultCallOptions() CallOptions {
	return CallOptions{MaxTokens: defaultMaxTokens, Temperature: defaultTemperature}
}

// Client calls a remote completion API with rate limiting and bounded
// exponential-backoff retries on 429. It is safe to reuse across batches
// within one run but is for single-threaded sequential use only: the shared
// rate-limiter state is unlocked.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *RateLimiter
	sleep      func(time.Duration)
}

// NewClient creates a client from config, applying defaults for URL, model
// and HTTP client.
func NewClient(cfg Config) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 360 * time.Second}
	}
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		limiter:    NewRateLimiter(cfg.RequestsPerMinute),
		sleep:      time.Sleep,
	}
}

type messageRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Complete sends one prompt and returns the response text. On repeated 429
// it retries up to MaxRetries times with delay BaseDelay*2^attempt, each
// retry re-entering the rate limiter, and fails with *RateLimitError once
// the budget is exhausted. Every other failure is returned immediately as
// *UpstreamError.
func (c *Client) Complete(ctx context.Context, prompt string, opts CallOptions) (string, error) {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	model := opts.Model
	if model == "" {
		model = c.cfg.Model
	}

	payload, err := json.Marshal(messageRequest{
		Model:       model,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		Messages:    []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", &UpstreamError{Err: fmt.Errorf("marshal request: %w", err)}
	}

	for attempt := 0; ; attempt++ {
		c.limiter.Wait()

		status, body, err := c.post(ctx, payload)
		if err != nil {
			return "", &UpstreamError{Err: err}
		}

		if status == http.StatusTooManyRequests {
			if attempt < c.cfg.MaxRetries {
				delay := c.cfg.BaseDelay * (1 << attempt)
				logger.Warn("rate limited by server, backing off",
					"delay", delay.String(), "attempt", attempt+1, "max_retries", c.cfg.MaxRetries)
				c.sleep(delay)
				continue
			}
			return "", &RateLimitError{Attempts: attempt + 1}
		}

		if status != http.StatusOK {
			return "", &UpstreamError{Status: status, Err: fmt.Errorf("unexpected status")}
		}

		var resp messageResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", &UpstreamError{Err: fmt.Errorf("decode response: %w", err)}
		}
		if len(resp.Content) == 0 {
			return "", &UpstreamError{Err: fmt.Errorf("empty response content")}
		}
		return resp.Content[0].Text, nil
	}
}

func (c *Client) post(ctx context.Context, payload []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}
