package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Loveleet/live-cloud-lab-live-sub001/internal/logger"
)

// AutotradeClient proxies manual trade-control commands and signal
// computation requests to the external exchange-automation service. The
// timeout is deliberately long and configurable: upstream signal computation
// can legitimately take minutes.
type AutotradeClient struct {
	baseURL string
	client  *http.Client
}

const defaultAutotradeTimeout = 5 * time.Minute

func NewAutotradeClient(baseURL string, timeout time.Duration) *AutotradeClient {
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = defaultAutotradeTimeout
	}
	return &AutotradeClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Configured reports whether an upstream endpoint was set.
func (c *AutotradeClient) Configured() bool {
	return c != nil
}

// ProxyResponse is the upstream reply plus the status to relay.
type ProxyResponse struct {
	StatusCode int
	Body       json.RawMessage
}

// Forward posts the payload to the upstream path and passes the response
// through. A transport failure surfaces as an error for the handler to wrap
// into its ok/message envelope; upstream HTTP errors pass through as-is,
// since their bodies are operationally meaningful.
func (c *AutotradeClient) Forward(ctx context.Context, path string, payload interface{}) (*ProxyResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		logger.Error.Printf("autotrade: %s failed after %v: %v", path, time.Since(started), err)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	logger.Info.Printf("autotrade: %s -> %d in %v", path, resp.StatusCode, time.Since(started))

	if !json.Valid(raw) {
		raw, _ = json.Marshal(map[string]string{"message": strings.TrimSpace(string(raw))})
	}
	return &ProxyResponse{StatusCode: resp.StatusCode, Body: raw}, nil
}
