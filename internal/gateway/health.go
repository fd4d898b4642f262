package gateway

import (
	"context"
	"net/http"

	"github.com/lotas/testwerk/internal/applog"
)

// healthCandidates returns the probe URLs in priority order. The first lives
// at the server root, outside the versioned API prefix.
func (c *Client) healthCandidates() []string {
	return []string{
		c.rootURL() + "/health",
		c.baseURL + "/repos/health",
		c.baseURL + "/ai/health",
	}
}

// CheckHealth probes the backend's health endpoints in order and reports
// whether any answered 200. It never returns an error: an unreachable
// backend is simply unhealthy.
func (c *Client) CheckHealth(ctx context.Context) bool {
	for _, u := range c.healthCandidates() {
		if c.probe(ctx, u) {
			return true
		}
	}
	applog.Info("gateway.health", "ok", false)
	return false
}

func (c *Client) probe(ctx context.Context, rawURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
