// Package memoryclient calls the external durable-memory service's recall
// endpoint. Recall is scoped per user; the service itself handles similarity
// and priority ranking.
package memoryclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// The per-call deadline comes from the caller's context; this is
		// just a backstop against a hung connection.
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// RecallParams identifies what to recall and how long the service may take.
type RecallParams struct {
	UserID     string
	ThreadID   string
	MaxItems   int
	DeadlineMs int
}

// RecallItem is one remembered item with its relevance/priority score.
type RecallItem struct {
	ID        string  `json:"id"`
	Content   string  `json:"content"`
	Score     float64 `json:"score"`
	CreatedAt int64   `json:"createdAt"`
	Source    string  `json:"source,omitempty"`
}

// RecallResponse is the memory service's answer. TimedOut means the service
// hit its own deadline and returned whatever it had.
type RecallResponse struct {
	Memories  []RecallItem `json:"memories"`
	Count     int          `json:"count"`
	ElapsedMs int64        `json:"elapsedMs"`
	TimedOut  bool         `json:"timedOut"`
}

// Recall fetches the most relevant memories for a user.
func (c *Client) Recall(ctx context.Context, params RecallParams) (*RecallResponse, error) {
	q := url.Values{}
	q.Set("userId", params.UserID)
	if params.ThreadID != "" {
		q.Set("threadId", params.ThreadID)
	}
	if params.MaxItems > 0 {
		q.Set("maxItems", strconv.Itoa(params.MaxItems))
	}
	if params.DeadlineMs > 0 {
		q.Set("deadlineMs", strconv.Itoa(params.DeadlineMs))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/recall?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("memory recall: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("memory recall: status %d: %s", resp.StatusCode, string(body))
	}

	var result RecallResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode recall response: %w", err)
	}
	return &result, nil
}
