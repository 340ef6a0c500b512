// Package zensend is a client for the ZenSend SMS, verification and account API.
//
// Every call is a single synchronous round trip. Failures reported by the
// provider come back as *ClientError, which keeps any cost the provider billed
// for the failed call.
package zensend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultURL is the base URL for messaging and account endpoints.
	DefaultURL = "https://api.zensend.io"
	// DefaultVerifyURL is the base URL for msisdn verification endpoints.
	DefaultVerifyURL = "https://verify.zensend.io"

	// DefaultKeepAlive is how long idle connections to the provider are kept.
	DefaultKeepAlive = 5 * time.Second

	apiKeyHeader = "X-API-KEY"
)

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the ZenSend API. It holds no mutable state and is safe for
// concurrent use as long as its Doer is.
type Client struct {
	apiKey    string
	url       string
	verifyURL string
	http      Doer
	logger    *zap.Logger
}

type Option func(*Client)

// WithHTTPClient overrides the executor used for requests.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.http = d
		}
	}
}

// WithURL sets the messaging/account base URL.
func WithURL(u string) Option {
	return func(c *Client) {
		if u = strings.TrimSpace(u); u != "" {
			c.url = strings.TrimRight(u, "/")
		}
	}
}

// WithVerifyURL sets the verification base URL.
func WithVerifyURL(u string) Option {
	return func(c *Client) {
		if u = strings.TrimSpace(u); u != "" {
			c.verifyURL = strings.TrimRight(u, "/")
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client authenticating with apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:    apiKey,
		url:       DefaultURL,
		verifyURL: DefaultVerifyURL,
		http:      NewHTTPClient(0, DefaultKeepAlive),
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		if o != nil {
			o(c)
		}
	}
	return c
}

// NewHTTPClient returns an *http.Client whose idle connections are dropped
// after keepAlive. A zero timeout means no client-side deadline.
func NewHTTPClient(timeout, keepAlive time.Duration) *http.Client {
	if keepAlive <= 0 {
		keepAlive = DefaultKeepAlive
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.IdleConnTimeout = keepAlive
	return &http.Client{
		Timeout:   timeout,
		Transport: tr,
	}
}

// call performs one round trip for r and decodes the envelope into T.
func call[T any](ctx context.Context, c *Client, r apiRequest) (*T, error) {
	var body io.Reader
	if r.form != nil {
		body = strings.NewReader(r.body())
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.url(), body)
	if err != nil {
		return nil, fmt.Errorf("zensend: build %s %s: %w", r.method, r.path, err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", contentTypeJSON)
	if r.form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("zensend request failed",
			zap.String("method", r.method),
			zap.String("path", r.path),
			zap.Error(err))
		return nil, fmt.Errorf("zensend: %s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("zensend request",
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	return decode[T](resp)
}
