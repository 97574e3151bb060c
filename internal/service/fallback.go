package service

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Loveleet/live-cloud-lab-live-sub001/internal/logger"
)

// FallbackGateway reads through to a sibling deployment that still has
// database reachability. It is purely best-effort: any transport error or
// non-200 response is a miss, never a failure of this service.
type FallbackGateway struct {
	baseURL string
	client  *http.Client
}

const defaultFallbackTimeout = 20 * time.Second

// NewFallbackGateway returns nil when no fallback endpoint is configured,
// which reads as "always miss" downstream.
func NewFallbackGateway(baseURL string, timeout time.Duration) *FallbackGateway {
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = defaultFallbackTimeout
	}
	return &FallbackGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch forwards the logical request verbatim and returns the sibling's
// response body on 200, or a miss.
func (g *FallbackGateway) Fetch(ctx context.Context, path, rawQuery string) ([]byte, bool) {
	if g == nil {
		return nil, false
	}

	target := g.baseURL + path
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	if _, err := url.Parse(target); err != nil {
		logger.Error.Printf("fallback: bad target %q: %v", target, err)
		return nil, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, false
	}

	resp, err := g.client.Do(req)
	if err != nil {
		logger.Error.Printf("fallback: %s unreachable: %v", path, err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error.Printf("fallback: %s returned %d", path, resp.StatusCode)
		return nil, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false
	}
	return body, true
}
