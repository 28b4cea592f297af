package cache

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Remote talks to a shared cache service over HTTP. Every failure is logged
// at warning level and reported as a miss (Get) or dropped (Set), so an
// unavailable remote tier never fails a request.
type Remote struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewRemote(baseURL string, logger *slog.Logger) *Remote {
	return &Remote{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 2 * time.Second,
		},
		logger: logger,
	}
}

func (c *Remote) Get(ctx context.Context, key string) ([]byte, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.keyURL(key), nil)
	if err != nil {
		return nil, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("remote cache get failed", "error", err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("remote cache get failed", "status", resp.StatusCode)
		return nil, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("remote cache read failed", "error", err)
		return nil, false
	}
	return body, true
}

func (c *Remote) Set(ctx context.Context, key string, value []byte) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.keyURL(key), bytes.NewReader(value))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("remote cache set failed", "error", err)
		return
	}
	resp.Body.Close()

	if resp.StatusCode >= 400 {
		c.logger.Warn("remote cache set failed", "status", resp.StatusCode)
	}
}

func (c *Remote) keyURL(key string) string {
	return c.baseURL + "/cache/" + url.PathEscape(key)
}

func (c *Remote) Close() error { return nil }
