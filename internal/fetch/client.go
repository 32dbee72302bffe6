package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

// UserAgent is sent with every CDN request
const UserAgent = "discord-media-downloader/1.0"

// MaxBodySize caps the bytes read from a single response
const MaxBodySize int64 = 32 << 20

// ErrBodyTooLarge is returned when a response exceeds the body limit
var ErrBodyTooLarge = errors.New("response body too large")

// Fetcher downloads a URL into memory
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// StatusError is returned when the server answers with anything but 200
type StatusError struct {
	URL        string
	StatusCode int
}

// Error implements error
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// IsStatusError reports whether err carries a non-200 response
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// Client fetches media over HTTP. No retries are performed.
type Client struct {
	http    *http.Client
	maxBody int64
}

// NewClient creates a client; a zero timeout leaves the transport defaults in place
func NewClient(timeout time.Duration) *Client {
	c := cleanhttp.DefaultPooledClient()
	c.Timeout = timeout
	return &Client{http: c, maxBody: MaxBodySize}
}

// NewClientWithHTTP wraps an existing http.Client
func NewClientWithHTTP(c *http.Client) *Client {
	return &Client{http: c, maxBody: MaxBodySize}
}

// Fetch performs a single GET and returns the body on HTTP 200
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("reading body of %s: %w", url, err)
	}
	if int64(len(data)) > c.maxBody {
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", url, ErrBodyTooLarge, c.maxBody)
	}
	return data, nil
}
