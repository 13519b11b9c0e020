package usecase

import (
	"context"

	"ai-outfit-assistant/internal/metrics"
	"ai-outfit-assistant/internal/stylist/provider"
	pkgLog "ai-outfit-assistant/pkg/log"
	"ai-outfit-assistant/pkg/llmprovider"
	"ai-outfit-assistant/pkg/resilience"
)

// LLM is the text-generation dependency. Satisfied by the provider
// manager in production and by fakes in tests.
type LLM interface {
	Generate(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Config bounds the pipeline's fan-out and external cost.
type Config struct {
	MaxPreviewOutfits int // Outfits eligible for preview rendering
	CandidateLimit    int // Cheapest candidates offered to selection
}

func (c Config) withDefaults() Config {
	out := c
	if out.MaxPreviewOutfits <= 0 {
		out.MaxPreviewOutfits = 3
	}
	if out.CandidateLimit <= 0 {
		out.CandidateLimit = 5
	}
	return out
}

type implUseCase struct {
	l        pkgLog.Logger
	llm      LLM
	catalog  provider.CatalogProvider
	renderer provider.ImageRenderer
	exec     *resilience.Executor
	metrics  *metrics.Metrics
	cfg      Config
}

// New creates a new stylist UseCase instance. The renderer may be nil:
// previews are then skipped entirely.
func New(
	l pkgLog.Logger,
	llm LLM,
	catalog provider.CatalogProvider,
	renderer provider.ImageRenderer,
	exec *resilience.Executor,
	m *metrics.Metrics,
	cfg Config,
) *implUseCase {
	if exec == nil {
		exec = resilience.NewExecutor(resilience.DefaultConfig())
	}
	return &implUseCase{
		l:        l,
		llm:      llm,
		catalog:  catalog,
		renderer: renderer,
		exec:     exec,
		metrics:  m,
		cfg:      cfg.withDefaults(),
	}
}
