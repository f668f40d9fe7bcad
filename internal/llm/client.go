package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/praxishq/praxis/internal/agents"
	"go.uber.org/zap"
)

var ErrEmptyCompletion = errors.New("empty completion content")

// HTTPError carries the upstream status code so callers can distinguish a
// misconfigured credential from a transient upstream failure.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (httpError *HTTPError) Error() string {
	return fmt.Sprintf("completion http %d: %s", httpError.StatusCode, httpError.Body)
}

// CompletionClient is the single external text-generation operation the core
// consumes. One call, one best-effort attempt; retry policy belongs to callers.
type CompletionClient interface {
	Complete(ctx context.Context, persona agents.PersonaConfig, systemPrompt string, userPrompt string) (string, error)
}

type Client struct {
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		// Per-persona deadlines come from the request context; the transport
		// itself carries no timeout.
		httpClient: &http.Client{},
		log:        log.With(zap.String("component", "completion_client")),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens,omitempty"`
	Messages  []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete calls an OpenAI-compatible chat completions endpoint with the
// persona's model, token budget, and timeout.
func (client *Client) Complete(ctx context.Context, persona agents.PersonaConfig, systemPrompt string, userPrompt string) (string, error) {
	timeout := time.Duration(persona.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	requestURL, err := completionURL(persona)
	if err != nil {
		return "", err
	}

	payload := chatRequest{
		Model:     persona.Model,
		MaxTokens: persona.MaxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+persona.APIKey)
	request.Header.Set("Content-Type", "application/json")

	started := time.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("completion call: %w", err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		client.log.Warn("completion call failed",
			zap.String("model", persona.Model),
			zap.Int("status", response.StatusCode),
			zap.Duration("elapsed", time.Since(started)))
		return "", &HTTPError{StatusCode: response.StatusCode, Body: truncateBody(responseBody)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}

	client.log.Debug("completion call ok",
		zap.String("model", persona.Model),
		zap.Int("content_chars", len(content)),
		zap.Duration("elapsed", time.Since(started)))
	return content, nil
}

func completionURL(persona agents.PersonaConfig) (string, error) {
	base := strings.TrimRight(strings.TrimSpace(persona.Endpoint), "/")
	if base == "" {
		return "", errors.New("completion endpoint is empty")
	}
	full := base + "/chat/completions"
	if persona.APIVersion == "" {
		return full, nil
	}
	parsed, err := url.Parse(full)
	if err != nil {
		return "", fmt.Errorf("parse completion endpoint: %w", err)
	}
	query := parsed.Query()
	query.Set("api-version", persona.APIVersion)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func truncateBody(body []byte) string {
	const limit = 512
	text := strings.TrimSpace(string(body))
	if len(text) > limit {
		return text[:limit]
	}
	return text
}
