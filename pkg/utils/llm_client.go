package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ChatRequest is one system+user exchange with a chat-completion model.
type ChatRequest struct {
	System      string
	User        string
	Model       string
	Temperature float32
	MaxTokens   int
}

// LLMClientInterface performs a single request/response call and returns the
// completion text. Implementations do not retry.
type LLMClientInterface interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// OpenAIChatClient talks to any OpenAI-compatible chat-completion endpoint
// (Groq by default).
type OpenAIChatClient struct {
	client  *openai.Client
	timeout time.Duration
}

func NewOpenAIChatClient(apiKey, baseURL string, timeout time.Duration) *OpenAIChatClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIChatClient{
		client:  openai.NewClientWithConfig(cfg),
		timeout: timeout,
	}
}

func (c *OpenAIChatClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrUpstreamEmptyResponse
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrUpstreamEmptyResponse
	}

	return content, nil
}

func classifyOpenAIError(err error) error {
	status := 0

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return fmt.Errorf("%w: %v", ErrUpstreamAuth, err)
	}
	return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
}
