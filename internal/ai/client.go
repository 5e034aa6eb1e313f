package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultAPIURL = "https://api.openai.com/v1/chat/completions"

// Closed error set for the completion client. Callers match these
// exhaustively: ErrUnconfigured is a deployment problem and must not be
// retried or faked, a RemoteError may be treated as transient, and
// ErrEmptyResponse means the provider answered with no usable text.
var (
	ErrUnconfigured  = errors.New("completion service not configured: missing API key")
	ErrEmptyResponse = errors.New("completion service returned an empty response")
)

// RemoteError is a non-success HTTP response from the completion provider.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("completion provider returned status %d", e.StatusCode)
}

// Client talks to an OpenAI-compatible chat completion endpoint.
type Client struct {
	apiURL     string
	model      string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds a completion client. An empty apiKey is allowed; every
// Complete call will then fail with ErrUnconfigured.
func NewClient(apiURL, model, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiURL: strings.TrimRight(apiURL, "/"),
		model:  model,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat format        `json:"response_format"`
	Messages       []chatMessage `json:"messages"`
}

type format struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			// Providers return either a plain string or a list of
			// content fragments here; keep it raw and normalize below.
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a system + user instruction pair and returns the raw text
// content of the first choice. Exactly one attempt, bounded by the client
// timeout and the caller's context.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	if c.apiKey == "" {
		return "", ErrUnconfigured
	}

	payload := chatRequest{
		Model:          c.model,
		Temperature:    temperature,
		ResponseFormat: format{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	c.logger.Debug("completion request", "model", c.model, "temperature", temperature)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("completion transport error", "error", err, "elapsed", time.Since(start))
		return "", &RemoteError{StatusCode: 0, Body: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RemoteError{StatusCode: resp.StatusCode, Body: "reading response: " + err.Error()}
	}

	c.logger.Debug("completion response", "status", resp.StatusCode, "bytes", len(respBody), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("completion provider error", "status", resp.StatusCode, "response", truncate(string(respBody), 200))
		return "", &RemoteError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &RemoteError{StatusCode: resp.StatusCode, Body: "parsing response: " + err.Error()}
	}

	if len(parsed.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := normalizeContent(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}

// normalizeContent flattens the provider's message content into one string.
// Content may be a plain string, a list of fragments ({"text": ...} objects
// or bare strings), or a single {"text": ...} object.
func normalizeContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return strings.TrimSpace(asString)
	}

	var asList []json.RawMessage
	if err := json.Unmarshal(raw, &asList); err == nil {
		parts := make([]string, 0, len(asList))
		for _, item := range asList {
			var s string
			if err := json.Unmarshal(item, &s); err == nil {
				parts = append(parts, s)
				continue
			}
			var obj struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal(item, &obj); err == nil && obj.Text != "" {
				parts = append(parts, obj.Text)
			}
		}
		return strings.TrimSpace(strings.Join(parts, "\n"))
	}

	var asObject struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &asObject); err == nil {
		return strings.TrimSpace(asObject.Text)
	}

	return ""
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
