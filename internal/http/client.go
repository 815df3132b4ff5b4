package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Defaults used by NewClient for zero-valued Options fields.
const (
	DefaultTimeout      = 30 * time.Second
	DefaultUserAgent    = "nativefy"
	DefaultMaxBodyBytes = 10 << 20
)

// ErrBodyTooLarge is returned when a response body exceeds Options.MaxBodyBytes.
var ErrBodyTooLarge = errors.New("response body too large")

// StatusError reports a response with a non-2xx status code.
//
// Use errors.As to inspect the code:
//
//	var statusErr *http.StatusError
//	if errors.As(err, &statusErr) && statusErr.StatusCode == 404 {
//	    // not found
//	}
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// Options configures a Client.
type Options struct {
	// Timeout bounds a whole request, including reading the body.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes int64
}

// Client performs plain GET requests for the inference engine.
//
// Client provides:
//   - Configured User-Agent header
//   - Timeout handling
//   - A ceiling on response body size
//
// Nothing in a Client changes after NewClient returns, so one Client can be
// shared by any number of goroutines.
//
// Example usage:
//
//	client := NewClient(Options{})
//
//	// Fetch HTML content
//	page, err := client.Get(ctx, "https://example.com/")
type Client struct {
	httpClient   *http.Client
	userAgent    string
	maxBodyBytes int64
}

// NewClient creates a new HTTP client.
//
// Zero fields in opts fall back to DefaultTimeout, DefaultUserAgent and
// DefaultMaxBodyBytes.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		userAgent:    opts.UserAgent,
		maxBodyBytes: opts.MaxBodyBytes,
	}
}

// Get performs a single GET request and returns the response body.
//
// There is no retry. The request includes the configured User-Agent header
// and is bound to ctx.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 2xx (*StatusError)
//   - The body is larger than the configured limit (ErrBodyTooLarge)
//   - Reading the body fails
//
// Example:
//
//	data, err := client.Get(ctx, "https://example.com/favicon.ico")
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrBodyTooLarge, url, c.maxBodyBytes)
	}

	return body, nil
}
