package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GenerationError means the language-generation backend failed or returned
// no content. There is no further fallback once generation itself fails,
// so callers surface this as a hard failure.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("language generation: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Client talks to an Ollama-compatible generation endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Model returns a handle bound to a named model.
func (c *Client) Model(name string) *Model {
	return &Model{client: c, name: name}
}

// Ping reports whether the backend is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return nil
}

// Model is a handle for a single named model on the backend.
type Model struct {
	client *Client
	name   string
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Respond sends prompt text to the backend and returns the generated text.
// One attempt, no retry; failure or empty content is a GenerationError.
func (m *Model) Respond(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Model: m.name, Prompt: prompt})
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		m.client.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.httpClient.Do(req)
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &GenerationError{Err: fmt.Errorf("backend returned status %d: %s", resp.StatusCode, raw)}
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &GenerationError{Err: fmt.Errorf("decoding backend response: %w", err)}
	}
	if out.Response == "" {
		return "", &GenerationError{Err: fmt.Errorf("backend returned empty content")}
	}
	return out.Response, nil
}
