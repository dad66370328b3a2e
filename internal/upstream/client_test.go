package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadanime/proxy/internal/config"
	"github.com/deadanime/proxy/internal/sanitize"
)

type upstreamRecorder struct {
	mu       sync.Mutex
	times    []time.Time
	requests []*http.Request
}

func (r *upstreamRecorder) record(req *http.Request) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.times = append(r.times, time.Now())
	r.requests = append(r.requests, req.Clone(context.Background()))
	return len(r.times)
}

func (r *upstreamRecorder) attempts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.times)
}

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()

	cfg := &config.Config{
		Port:            "8080",
		Env:             config.EnvDevelopment,
		UpstreamBaseURL: baseURL,
	}
	c, err := New(cfg, opts...)
	require.NoError(t, err)
	return c
}

func TestGetSucceedsOnThirdAttemptWithBackoff(t *testing.T) {
	if testing.Short() {
		t.Skip("real backoff waits")
	}

	rec := &upstreamRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rec.record(r) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"Frieren"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	body, err := c.Get(context.Background(), EndpointAnime, sanitize.Params{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Frieren"}`, string(body))
	require.Equal(t, 3, rec.attempts())

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.GreaterOrEqual(t, rec.times[1].Sub(rec.times[0]), 1000*time.Millisecond)
	assert.GreaterOrEqual(t, rec.times[2].Sub(rec.times[1]), 2000*time.Millisecond)
}

func TestGetClientErrorFailsImmediately(t *testing.T) {
	rec := &upstreamRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		http.Error(w, "no such anime", http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, WithRetryInterval(10*time.Millisecond))

	_, err := c.Get(context.Background(), EndpointAnime, sanitize.Params{})
	require.Error(t, err)
	require.Equal(t, 1, rec.attempts())

	var uerr *Error
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, http.StatusNotFound, uerr.Status)
	assert.Contains(t, uerr.Message, "no such anime")
	assert.False(t, uerr.Retryable())
}

func TestGetExhaustsAttemptsOnServerError(t *testing.T) {
	rec := &upstreamRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, WithRetryInterval(10*time.Millisecond))

	_, err := c.Get(context.Background(), EndpointList, sanitize.Params{})
	require.Error(t, err)
	require.Equal(t, 3, rec.attempts())

	var uerr *Error
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, http.StatusServiceUnavailable, uerr.Status)
	assert.True(t, uerr.Retryable())
}

func TestGetNetworkErrorSurfacesLastFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := newTestClient(t, srv.URL, WithRetryInterval(5*time.Millisecond))

	_, err := c.Get(context.Background(), EndpointList, sanitize.Params{})
	require.Error(t, err)

	var uerr *Error
	require.ErrorAs(t, err, &uerr, "network failures surface as typed upstream errors")
	assert.Equal(t, 0, uerr.Status, "no response means no upstream status")
	assert.True(t, uerr.Retryable())
	assert.NotEmpty(t, uerr.Message)
}

func TestTLSVerificationReadPerConnection(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	cfg := &config.Config{
		Port:            "8080",
		Env:             config.EnvDevelopment,
		UpstreamBaseURL: srv.URL,
	}
	c, err := New(cfg, WithRetryInterval(5*time.Millisecond))
	require.NoError(t, err)

	// The test server's certificate is self-signed, so verification fails.
	_, err = c.Get(context.Background(), EndpointList, sanitize.Params{})
	require.Error(t, err)

	var uerr *Error
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, 0, uerr.Status)

	// Flipping the flag takes effect on the next connection of the same
	// client, no restart needed.
	cfg.SetTLSInsecure(true)

	body, err := c.Get(context.Background(), EndpointList, sanitize.Params{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestGetSendsHeadersAndOrderedQuery(t *testing.T) {
	rec := &upstreamRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	params := sanitize.Sanitize(url.Values{
		"search": {"mononoke"},
		"limit":  {"20"},
		"page":   {"2"},
	})

	_, err := c.Get(context.Background(), EndpointList, params)
	require.NoError(t, err)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	req := rec.requests[0]
	assert.Equal(t, "/list", req.URL.Path)
	assert.Equal(t, "search=mononoke&limit=20&page=2", req.URL.RawQuery)
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "deadanime-proxy/1.0", req.Header.Get("User-Agent"))
}

func TestNewRejectsRelativeBaseURL(t *testing.T) {
	cfg := &config.Config{
		Port:            "8080",
		Env:             config.EnvDevelopment,
		UpstreamBaseURL: "not-a-url",
	}

	_, err := New(cfg)
	require.Error(t, err)
}
