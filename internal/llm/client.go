// Package llm is a thin client for the Ollama completion API, used by the
// query analyzer and expander when their deterministic rules are not
// confident enough on their own.
package llm

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

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewClient(baseURL, model string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Complete runs one non-streaming generation and returns the raw text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, "")
}

// CompleteJSON runs one generation in JSON mode and unmarshals the result
// into out. Model output wrapped in code fences or prose is tolerated: the
// first JSON object or array in the response is extracted before decoding.
func (c *Client) CompleteJSON(ctx context.Context, prompt string, out any) error {
	text, err := c.generate(ctx, prompt, "json")
	if err != nil {
		return err
	}

	raw := ExtractJSON(text)
	if raw == "" {
		return fmt.Errorf("no JSON found in model response")
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decode model JSON: %w", err)
	}
	return nil
}

func (c *Client) generate(ctx context.Context, prompt, format string) (string, error) {
	reqBody := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Format: format,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama returned %d: %s", resp.StatusCode, string(respBody))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}

	if genResp.Response == "" {
		return "", fmt.Errorf("empty response from ollama")
	}

	return strings.TrimSpace(genResp.Response), nil
}

// ExtractJSON returns the first top-level JSON object or array in text, or
// "" when none is present.
func ExtractJSON(text string) string {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return ""
	}
	open := rune(text[start])
	closeCh := '}'
	if open == '[' {
		closeCh = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i, r := range text[start:] {
		if escaped {
			escaped = false
			continue
		}
		switch {
		case r == '\\' && inString:
			escaped = true
		case r == '"':
			inString = !inString
		case !inString && r == open:
			depth++
		case !inString && r == closeCh:
			depth--
			if depth == 0 {
				return text[start : start+i+1]
			}
		}
	}
	return ""
}
