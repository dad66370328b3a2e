package server

import (
	"context"
	"net/http"
	"time"
)

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}

// UpstreamHealthChecker probes a base URL with a bounded HEAD request.
type UpstreamHealthChecker struct {
	url  string
	http *http.Client
}

func NewUpstreamHealthChecker(baseURL string) *UpstreamHealthChecker {
	return &UpstreamHealthChecker{
		url: baseURL,
		http: &http.Client{
			Timeout: 2 * time.Second,
		},
	}
}

func (hc *UpstreamHealthChecker) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, hc.url, nil)
	if err != nil {
		return false
	}

	resp, err := hc.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < http.StatusInternalServerError
}
