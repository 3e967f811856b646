package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/desertthunder/vibecheck/internal/shared"
)

func chatCompletion(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1717200000,
		"model":   "gemini-1.5-flash",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	}
}

func TestOpenAIProvider(t *testing.T) {
	t.Run("Missing API Key", func(t *testing.T) {
		_, err := NewOpenAIProvider(shared.ProviderConfig{}, nil)
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		p, err := NewOpenAIProvider(shared.ProviderConfig{APIKey: "key"}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Model() != DefaultOpenAIModel || p.Name() != "openai" {
			t.Errorf("unexpected provider %s/%s", p.Name(), p.Model())
		}
	})

	t.Run("Generate", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer key" {
				t.Errorf("unexpected authorization %q", got)
			}

			var req struct {
				Model    string `json:"model"`
				Messages []struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"messages"`
			}
			body, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(body, &req); err != nil {
				t.Fatalf("bad request body: %v", err)
			}
			if req.Model != "test-model" || len(req.Messages) != 1 || req.Messages[0].Content != "hello" {
				t.Errorf("unexpected request %s", body)
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(chatCompletion(`[{"id":"1"}]`))
		}))
		defer server.Close()

		p, err := NewOpenAIProvider(shared.ProviderConfig{APIKey: "key", BaseURL: server.URL + "/", Model: "test-model"}, server.Client())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		text, err := p.Generate(context.Background(), "hello")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if text != `[{"id":"1"}]` {
			t.Errorf("unexpected completion %q", text)
		}
	})

	t.Run("Provider Error Is Not Retried", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":{"message":"overloaded"}}`))
		}))
		defer server.Close()

		p, _ := NewOpenAIProvider(shared.ProviderConfig{APIKey: "key", BaseURL: server.URL + "/"}, server.Client())

		_, err := p.Generate(context.Background(), "hello")
		if !errors.Is(err, shared.ErrProviderRequest) {
			t.Errorf("expected ErrProviderRequest, got %v", err)
		}
		if calls.Load() != 1 {
			t.Errorf("expected exactly one call, got %d", calls.Load())
		}
	})

	t.Run("Empty Completion", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(chatCompletion("   "))
		}))
		defer server.Close()

		p, _ := NewOpenAIProvider(shared.ProviderConfig{APIKey: "key", BaseURL: server.URL + "/"}, server.Client())

		if _, err := p.Generate(context.Background(), "hello"); !errors.Is(err, shared.ErrEmptyCompletion) {
			t.Errorf("expected ErrEmptyCompletion, got %v", err)
		}
	})
}
