package modelslab

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (mockLogger) Info(ctx context.Context, args ...any)                   {}
func (mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (mockLogger) Error(ctx context.Context, args ...any)                  {}
func (mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

func newTestRenderer(t *testing.T, apiURL string) *Renderer {
	t.Helper()

	r, err := New(mockLogger{}, Config{
		APIKey: "test-key",
		APIURL: apiURL,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func TestRenderReturnsPrimaryOutputURL(t *testing.T) {
	var gotPayload renderRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":      "success",
			"output":      []string{"https://cdn.example.com/out.png"},
			"proxy_links": []string{"https://proxy.example.com/out.png"},
		})
	}))
	defer server.Close()

	r := newTestRenderer(t, server.URL)

	url, err := r.Render(context.Background(), "https://me.example.com/photo.jpg",
		[]string{"https://img/1.jpg", "https://img/2.jpg"}, "dress the person")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if url != "https://cdn.example.com/out.png" {
		t.Errorf("url = %q, want primary output URL", url)
	}

	if len(gotPayload.InitImage) != 3 || gotPayload.InitImage[0] != "https://me.example.com/photo.jpg" {
		t.Errorf("init_image = %v, want base photo first then product images", gotPayload.InitImage)
	}
	if gotPayload.Key != "test-key" {
		t.Errorf("key = %q, want API key in payload", gotPayload.Key)
	}
	if gotPayload.ModelID != DefaultModelID {
		t.Errorf("model_id = %q, want %q", gotPayload.ModelID, DefaultModelID)
	}
}

func TestRenderFallsBackToProxyLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":      "success",
			"output":      []string{},
			"proxy_links": []string{"https://proxy.example.com/out.png"},
		})
	}))
	defer server.Close()

	r := newTestRenderer(t, server.URL)

	url, err := r.Render(context.Background(), "https://me/photo.jpg", nil, "prompt")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if url != "https://proxy.example.com/out.png" {
		t.Errorf("url = %q, want proxy link fallback", url)
	}
}

func TestRenderNonSuccessStatusIsTerminal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "processing"})
	}))
	defer server.Close()

	r := newTestRenderer(t, server.URL)

	_, err := r.Render(context.Background(), "https://me/photo.jpg", nil, "prompt")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Render() error = %v, want *StatusError", err)
	}
	if statusErr.Status != "processing" {
		t.Errorf("status = %q, want processing", statusErr.Status)
	}
}

func TestRenderServerErrorIsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	r := newTestRenderer(t, server.URL)

	_, err := r.Render(context.Background(), "https://me/photo.jpg", nil, "prompt")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Render() error = %v, want *HTTPError", err)
	}
	if httpErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("status code = %d, want 500", httpErr.StatusCode)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(mockLogger{}, Config{}); err == nil {
		t.Error("New() error = nil, want missing API key error")
	}
}
