package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func chatCompletionBody(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "llama-3.3-70b-versatile",
		"choices": []map[string]any{
			{"index": 0, "message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"},
		},
	}
}

func TestOpenAIChatClient_Complete(t *testing.T) {
	var got struct {
		Model       string  `json:"model"`
		Temperature float32 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	var auth string

	srv := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletionBody(`{"days":[]}`))
	})

	client := NewOpenAIChatClient("gsk_key", srv.URL, 5*time.Second)
	out, err := client.Complete(context.Background(), ChatRequest{
		System: "sys", User: "usr", Model: "llama-3.3-70b-versatile", Temperature: 0.3, MaxTokens: 6000,
	})
	require.NoError(t, err)

	assert.Equal(t, `{"days":[]}`, out)
	assert.Equal(t, "Bearer gsk_key", auth)
	assert.Equal(t, "llama-3.3-70b-versatile", got.Model)
	assert.Equal(t, 6000, got.MaxTokens)
	assert.InDelta(t, 0.3, got.Temperature, 0.0001)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "sys", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "usr", got.Messages[1].Content)
}

func TestOpenAIChatClient_Unauthorized(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid API Key","type":"invalid_request_error","code":"invalid_api_key"}}`))
	})

	_, err := NewOpenAIChatClient("bad", srv.URL, 5*time.Second).Complete(context.Background(), ChatRequest{Model: "m"})
	assert.ErrorIs(t, err, ErrUpstreamAuth)
}

func TestOpenAIChatClient_ServerError(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`upstream down`))
	})

	_, err := NewOpenAIChatClient("k", srv.URL, 5*time.Second).Complete(context.Background(), ChatRequest{Model: "m"})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestOpenAIChatClient_EmptyContent(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletionBody("   "))
	})

	_, err := NewOpenAIChatClient("k", srv.URL, 5*time.Second).Complete(context.Background(), ChatRequest{Model: "m"})
	assert.ErrorIs(t, err, ErrUpstreamEmptyResponse)
}

func TestOpenAIChatClient_NoChoices(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	})

	_, err := NewOpenAIChatClient("k", srv.URL, 5*time.Second).Complete(context.Background(), ChatRequest{Model: "m"})
	assert.ErrorIs(t, err, ErrUpstreamEmptyResponse)
}

func TestOpenAIChatClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewOpenAIChatClient("k", url, time.Second).Complete(context.Background(), ChatRequest{Model: "m"})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestOpenAIChatClient_Timeout(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	_, err := NewOpenAIChatClient("k", srv.URL, 50*time.Millisecond).Complete(context.Background(), ChatRequest{Model: "m"})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}
