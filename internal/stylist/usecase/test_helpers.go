package usecase

import (
	"context"
	"sync"
	"time"

	"ai-outfit-assistant/internal/metrics"
	"ai-outfit-assistant/internal/model"
	"ai-outfit-assistant/internal/stylist/provider"
	"ai-outfit-assistant/pkg/llmprovider"
	"ai-outfit-assistant/pkg/resilience"
)

// Mock logger for testing
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

// fakeLLM answers each pipeline call by the system prompt it carries.
// Empty responses make the decode step fall back, which keeps the fake
// deterministic without scripting every call.
type fakeLLM struct {
	eventResp  string
	planResp   string
	queryResp  string
	selectResp string
	promptResp string
	err        error
}

func (f *fakeLLM) Generate(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	if f.err != nil {
		return nil, f.err
	}

	var text string
	switch req.System {
	case eventAnalysisSystemPrompt:
		text = f.eventResp
	case outfitPlanningSystemPrompt:
		text = f.planResp
	case searchQuerySystemPrompt:
		text = f.queryResp
	case candidateSelectionSystemPrompt:
		text = f.selectResp
	case previewPromptSystemPrompt:
		text = f.promptResp
	}

	return &llmprovider.Response{
		Text:         text,
		ProviderName: "fake",
		ModelName:    "fake-model",
	}, nil
}

// fakeCatalog records queries and delegates to a scripted search func.
type fakeCatalog struct {
	mu         sync.Mutex
	queries    []provider.SearchQuery
	searchFunc func(query provider.SearchQuery) ([]model.ProductCandidate, error)
}

func (f *fakeCatalog) Search(ctx context.Context, query provider.SearchQuery) ([]model.ProductCandidate, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()

	if f.searchFunc == nil {
		return nil, nil
	}
	return f.searchFunc(query)
}

func (f *fakeCatalog) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

// fakeRenderer plays back a scripted sequence of results.
type fakeRenderer struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	urls    []string
	errs    []error
}

func (f *fakeRenderer) Render(ctx context.Context, baseImageURL string, productImageURLs []string, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.calls
	f.calls++
	f.prompts = append(f.prompts, prompt)

	var err error
	if idx < len(f.errs) {
		err = f.errs[idx]
	}
	if err != nil {
		return "", err
	}

	var url string
	if idx < len(f.urls) {
		url = f.urls[idx]
	}
	if url == "" {
		url = "https://cdn.example.com/preview.png"
	}
	return url, nil
}

func (f *fakeRenderer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// transientError marks a retryable rendering failure.
type transientError struct{}

func (transientError) Error() string   { return "temporary server error" }
func (transientError) Transient() bool { return true }

func newTestUseCase(llm *fakeLLM, catalog *fakeCatalog, renderer provider.ImageRenderer) *implUseCase {
	exec := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    2,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     time.Millisecond,
		RetryMultiplier:     1,
		BreakerEnabled:      false,
	})
	return New(&mockLogger{}, llm, catalog, renderer, exec, metrics.New("test"), Config{})
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
