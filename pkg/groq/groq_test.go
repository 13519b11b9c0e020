package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/chat/completions" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
				t.Errorf("unexpected auth header %q", got)
			}

			var req chatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}
			if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
				t.Errorf("expected system+user messages, got %+v", req.Messages)
			}

			w.Write([]byte(`{
				"choices": [{"message": {"role": "assistant", "content": " {\"ok\":true} "}}],
				"usage": {"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17}
			}`))
		}))
		defer ts.Close()

		client, err := New(Config{APIKey: "test-key", APIURL: ts.URL})
		if err != nil {
			t.Fatalf("New() error: %v", err)
		}

		resp, err := client.Generate(context.Background(), &Request{System: "sys", User: "user"})
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		if resp.Text != `{"ok":true}` {
			t.Errorf("expected trimmed text, got %q", resp.Text)
		}
		if resp.Usage.TotalTokens != 17 {
			t.Errorf("expected usage 17, got %d", resp.Usage.TotalTokens)
		}
	})

	t.Run("api error status", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer ts.Close()

		client, _ := New(Config{APIKey: "test-key", APIURL: ts.URL})
		if _, err := client.Generate(context.Background(), &Request{User: "hi"}); err == nil {
			t.Errorf("expected error on 429")
		}
	})

	t.Run("missing api key", func(t *testing.T) {
		if _, err := New(Config{}); err == nil {
			t.Errorf("expected config validation error")
		}
	})
}
