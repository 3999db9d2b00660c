package ollama

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

// DefaultBaseURL is the server URL used when none is configured.
const DefaultBaseURL = "http://localhost:11434"

// DefaultPullTimeout bounds an entire streaming pull. Model downloads can
// take this long on slow links.
const DefaultPullTimeout = time.Hour

// Per-operation timeouts for buffered calls.
const (
	listTimeout   = 10 * time.Second
	deleteTimeout = 60 * time.Second
	showTimeout   = 30 * time.Second
)

// StatusError is returned when the server responds with a non-success
// HTTP status.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error: %s", e.Status)
}

// Options configures the client.
type Options struct {
	// RequestTimeout bounds buffered operations (list, delete, show).
	// Zero means per-operation defaults.
	RequestTimeout time.Duration

	// PullTimeout bounds an entire streaming pull.
	// Default: DefaultPullTimeout
	PullTimeout time.Duration

	// MaxIdleConnsPerHost sets the maximum idle connections per host.
	// Default: 2
	MaxIdleConnsPerHost int
}

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		PullTimeout:         DefaultPullTimeout,
		MaxIdleConnsPerHost: 2,
	}
}

// Client talks to one Ollama server.
type Client struct {
	baseURL string
	client  *http.Client
	opts    Options
}

// NewClient creates a client for the server at baseURL. An empty baseURL
// selects DefaultBaseURL.
func NewClient(baseURL string, opts Options) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if opts.PullTimeout <= 0 {
		opts.PullTimeout = DefaultPullTimeout
	}
	if opts.MaxIdleConnsPerHost <= 0 {
		opts.MaxIdleConnsPerHost = 2
	}

	transport := &http.Transport{
		MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Transport: transport},
		opts:    opts,
	}
}

// BaseURL returns the server URL this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// opTimeout returns the timeout for a buffered operation.
func (c *Client) opTimeout(def time.Duration) time.Duration {
	if c.opts.RequestTimeout > 0 {
		return c.opts.RequestTimeout
	}
	return def
}

// send issues one request with an optional JSON body. The caller owns the
// response body.
func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	return resp, nil
}

// doJSON issues one buffered request and decodes the response into out
// (which may be nil).
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// PullStream starts a model pull and returns the raw NDJSON progress
// stream. The stream is bounded by the configured pull timeout and must be
// closed by the caller; closing it releases the underlying connection.
func (c *Client) PullStream(ctx context.Context, name string) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.PullTimeout)

	resp, err := c.send(ctx, http.MethodPost, "/api/pull", pullRequest{Name: name})
	if err != nil {
		cancel()
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		cancel()
		return nil, err
	}

	return &pullStream{body: resp.Body, cancel: cancel}, nil
}

// pullStream ties the response body to the request's timeout context so
// that closing the stream also releases the request.
type pullStream struct {
	body   io.ReadCloser
	cancel context.CancelFunc
}

func (s *pullStream) Read(p []byte) (int, error) {
	return s.body.Read(p)
}

func (s *pullStream) Close() error {
	err := s.body.Close()
	s.cancel()
	return err
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
}
