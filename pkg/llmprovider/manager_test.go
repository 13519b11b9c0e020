package llmprovider

import (
	"context"
	"errors"
	"testing"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type fakeProvider struct {
	name     string
	failures int
	calls    int
}

func (f *fakeProvider) Generate(ctx context.Context, req *Request) (*Response, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("provider down")
	}
	return &Response{Text: f.name + "-ok", ProviderName: f.name, Usage: &Usage{}}, nil
}

func (f *fakeProvider) Name() string  { return f.name }
func (f *fakeProvider) Model() string { return f.name + "-model" }

func TestManagerGenerate(t *testing.T) {
	t.Run("retries then succeeds", func(t *testing.T) {
		p := &fakeProvider{name: "primary", failures: 2}
		m := NewManager([]Provider{p}, &Config{RetryAttempts: 3}, &mockLogger{})

		resp, err := m.Generate(context.Background(), &Request{User: "hi"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text != "primary-ok" {
			t.Errorf("unexpected response %q", resp.Text)
		}
		if p.calls != 3 {
			t.Errorf("expected 3 calls, got %d", p.calls)
		}
	})

	t.Run("falls back to next provider", func(t *testing.T) {
		broken := &fakeProvider{name: "broken", failures: 10}
		backup := &fakeProvider{name: "backup"}
		m := NewManager([]Provider{broken, backup}, &Config{FallbackEnabled: true, RetryAttempts: 1}, &mockLogger{})

		resp, err := m.Generate(context.Background(), &Request{User: "hi"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text != "backup-ok" {
			t.Errorf("expected backup response, got %q", resp.Text)
		}
	})

	t.Run("fallback disabled stops at first provider", func(t *testing.T) {
		broken := &fakeProvider{name: "broken", failures: 10}
		backup := &fakeProvider{name: "backup"}
		m := NewManager([]Provider{broken, backup}, &Config{FallbackEnabled: false, RetryAttempts: 1}, &mockLogger{})

		_, err := m.Generate(context.Background(), &Request{User: "hi"})
		if !errors.Is(err, ErrAllProvidersFailed) {
			t.Fatalf("expected ErrAllProvidersFailed, got %v", err)
		}
		if backup.calls != 0 {
			t.Errorf("backup should not have been called")
		}
	})

	t.Run("no providers", func(t *testing.T) {
		m := NewManager(nil, &Config{}, &mockLogger{})
		if _, err := m.Generate(context.Background(), &Request{User: "hi"}); !errors.Is(err, ErrNoProvidersConfigured) {
			t.Fatalf("expected ErrNoProvidersConfigured, got %v", err)
		}
	})
}
