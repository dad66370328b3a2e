// Package upstream calls the anime-catalog API this service proxies to. A
// single GET is wrapped in a bounded retry: transient failures (5xx,
// network errors) back off exponentially, client errors fail immediately.
package upstream

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/deadanime/proxy/internal/config"
	"github.com/deadanime/proxy/internal/sanitize"
)

const (
	EndpointList    = "/list"
	EndpointAnime   = "/anime"
	EndpointEpisode = "/episode"
	EndpointMovie   = "/movie"
	EndpointPack    = "/pack"
)

const (
	userAgent = "deadanime-proxy/1.0"

	defaultAttemptTimeout = 20 * time.Second
	defaultRetryInterval  = time.Second

	// maxRetries is on top of the initial attempt: 3 attempts total.
	maxRetries = 2

	maxErrorBodyBytes = 2048
)

type Option func(*Client)

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// WithRetryInterval overrides the initial backoff interval. Each retry
// doubles it.
func WithRetryInterval(d time.Duration) Option {
	return func(c *Client) {
		c.interval = d
	}
}

// Client issues sanitized catalog queries against the upstream base URL.
// Safe for concurrent use; the underlying transport pools connections
// across requests.
type Client struct {
	base     url.URL
	http     *http.Client
	log      *slog.Logger
	timeout  time.Duration
	interval time.Duration
}

func New(cfg *config.Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(cfg.UpstreamBaseURL))
	if err != nil {
		return nil, fmt.Errorf("parse upstream base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("upstream base url must be absolute: %q", cfg.UpstreamBaseURL)
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		// The verify decision is read per connection so flipping the
		// development flag takes effect without a restart.
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			d := &tls.Dialer{Config: &tls.Config{InsecureSkipVerify: cfg.TLSInsecure()}}
			return d.DialContext(ctx, network, addr)
		},
	}

	c := &Client{
		base:     *base,
		http:     &http.Client{Transport: transport},
		log:      slog.Default(),
		timeout:  defaultAttemptTimeout,
		interval: defaultRetryInterval,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Get fetches endpoint with the sanitized params and returns the raw JSON
// body. At most 3 attempts are made; waits of interval, then 2*interval
// separate them. A 4xx response fails immediately with a *Error carrying
// the upstream status.
func (c *Client) Get(ctx context.Context, endpoint string, params sanitize.Params) (json.RawMessage, error) {
	// The calls are read-only GETs: an inbound disconnect mid-retry should
	// not abort the chain, echo discards the unused result.
	ctx = context.WithoutCancel(ctx)

	reqURL := c.endpointURL(endpoint, params)

	var body json.RawMessage
	attempt := 0
	operation := func() error {
		attempt++
		c.log.Debug("upstream attempt", "endpoint", endpoint, "attempt", attempt)

		b, err := c.do(ctx, reqURL)
		if err != nil {
			return err
		}
		body = b
		return nil
	}

	notify := func(err error, wait time.Duration) {
		c.log.Warn("upstream attempt failed, backing off",
			"endpoint", endpoint,
			"attempt", attempt,
			"wait", wait,
			"error", err,
		)
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), maxRetries), ctx)
	if err := backoff.RetryNotify(operation, bo, notify); err != nil {
		c.log.Error("upstream call failed", "endpoint", endpoint, "attempts", attempt, "error", err)
		return nil, err
	}

	c.log.Debug("upstream call succeeded", "endpoint", endpoint, "attempts", attempt)
	return body, nil
}

func (c *Client) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.interval
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	return b
}

func (c *Client) endpointURL(endpoint string, params sanitize.Params) string {
	u := c.base.JoinPath(endpoint)
	u.RawQuery = params.Encode()
	return u.String()
}

// do performs one attempt. Returned errors are retryable unless wrapped in
// backoff.Permanent.
func (c *Client) do(ctx context.Context, reqURL string) (json.RawMessage, error) {
	actx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(actx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		// Network-level failures carry Status 0 so the error handler maps
		// them to a plain 500, not the uncaught fallback.
		return nil, &Error{Status: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		uerr := &Error{
			Status:  resp.StatusCode,
			Message: readErrorBody(resp.Body),
		}
		if !uerr.Retryable() {
			return nil, backoff.Permanent(uerr)
		}
		return nil, uerr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Status: 0, Message: "read upstream response: " + err.Error()}
	}

	return json.RawMessage(body), nil
}

func readErrorBody(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBodyBytes))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
