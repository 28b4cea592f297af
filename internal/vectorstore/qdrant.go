// Package vectorstore is a thin client over the Qdrant REST API. The
// orchestrator only reads from it; Upsert and DeletePoints exist for index
// maintenance tooling outside the request path.
package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// QdrantClient interfaces with Qdrant for nearest-neighbor search.
type QdrantClient struct {
	baseURL    string
	collection string
	dimension  int
	httpClient *http.Client
}

func NewQdrantClient(baseURL, collection string, dimension int) *QdrantClient {
	return &QdrantClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		collection: collection,
		dimension:  dimension,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Point represents a vector point in Qdrant.
type Point struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload,omitempty"`
}

// SearchResult is a single scored result from Qdrant.
type SearchResult struct {
	ID      string         `json:"id"`
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload,omitempty"`
}

// HealthCheck verifies Qdrant connectivity.
func (c *QdrantClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant health check: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("qdrant health check: status %d", resp.StatusCode)
	}
	return nil
}

// EnsureCollection creates the configured collection if it doesn't exist.
func (c *QdrantClient) EnsureCollection(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/collections/"+c.collection, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("check collection: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil // Already exists
	}

	body := map[string]any{
		"vectors": map[string]any{
			"size":     c.dimension,
			"distance": "Cosine",
		},
	}
	return c.put(ctx, "/collections/"+c.collection, body)
}

// Search finds the nearest vectors, optionally constrained by exact-match
// payload filters.
func (c *QdrantClient) Search(ctx context.Context, vector []float32, topK int, scoreThreshold float64, filter map[string]string) ([]SearchResult, error) {
	body := map[string]any{
		"vector":          vector,
		"limit":           topK,
		"with_payload":    true,
		"score_threshold": scoreThreshold,
	}
	if len(filter) > 0 {
		must := make([]map[string]any, 0, len(filter))
		for key, value := range filter {
			must = append(must, map[string]any{
				"key":   key,
				"match": map[string]any{"value": value},
			})
		}
		body["filter"] = map[string]any{"must": must}
	}

	respBody, err := c.post(ctx, "/collections/"+c.collection+"/points/search", body)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Result []SearchResult `json:"result"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return resp.Result, nil
}

// Upsert inserts or updates vector points.
func (c *QdrantClient) Upsert(ctx context.Context, points []Point) error {
	body := map[string]any{
		"points": points,
	}
	return c.put(ctx, "/collections/"+c.collection+"/points", body)
}

// DeletePoints removes points by their IDs.
func (c *QdrantClient) DeletePoints(ctx context.Context, ids []string) error {
	body := map[string]any{
		"points": ids,
	}
	_, err := c.post(ctx, "/collections/"+c.collection+"/points/delete", body)
	return err
}

func (c *QdrantClient) put(ctx context.Context, path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant PUT %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("qdrant PUT %s: status %d: %s", path, resp.StatusCode, string(respBody))
	}
	return nil
}

func (c *QdrantClient) post(ctx context.Context, path string, body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qdrant POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("qdrant POST %s: status %d: %s", path, resp.StatusCode, string(respBody))
	}
	return respBody, nil
}
