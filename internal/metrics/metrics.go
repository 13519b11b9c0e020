package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the service registry: HTTP surface metrics plus pipeline
// stage counters.
type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	stageDuration        *prometheus.HistogramVec
	plansProposedTotal   prometheus.Counter
	plansDroppedTotal    prometheus.Counter
	outfitsResolvedTotal prometheus.Counter
	outfitsDroppedTotal  *prometheus.CounterVec
	previewsTotal        *prometheus.CounterVec
	llmTokensTotal       *prometheus.CounterVec
}

// New builds and registers all collectors.
func New(service string) *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "outfit",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "outfit",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "outfit",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	stageDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "outfit",
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage execution duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"stage"},
	)
	plansProposedTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "outfit",
			Subsystem: "pipeline",
			Name:      "plans_proposed_total",
			Help:      "Total outfit plans proposed by the planning stage.",
		},
	)
	plansDroppedTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "outfit",
			Subsystem: "pipeline",
			Name:      "plans_dropped_total",
			Help:      "Total plans dropped for exceeding the declared budget.",
		},
	)
	outfitsResolvedTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "outfit",
			Subsystem: "pipeline",
			Name:      "outfits_resolved_total",
			Help:      "Total outfits with every item matched to a product.",
		},
	)
	outfitsDroppedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "outfit",
			Subsystem: "pipeline",
			Name:      "outfits_dropped_total",
			Help:      "Total outfits dropped during resolution, by reason.",
		},
		[]string{"reason"},
	)
	previewsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "outfit",
			Subsystem: "pipeline",
			Name:      "previews_total",
			Help:      "Total preview rendering outcomes by status.",
		},
		[]string{"status"},
	)
	llmTokensTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "outfit",
			Subsystem: "llm",
			Name:      "tokens_total",
			Help:      "Approximate token usage by direction.",
		},
		[]string{"provider", "model", "direction"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		stageDuration,
		plansProposedTotal,
		plansDroppedTotal,
		outfitsResolvedTotal,
		outfitsDroppedTotal,
		previewsTotal,
		llmTokensTotal,
	)

	return &Metrics{
		registry:             registry,
		requestTotal:         requestTotal,
		requestDuration:      requestDuration,
		requestInFlight:      requestInFlight,
		stageDuration:        stageDuration,
		plansProposedTotal:   plansProposedTotal,
		plansDroppedTotal:    plansDroppedTotal,
		outfitsResolvedTotal: outfitsResolvedTotal,
		outfitsDroppedTotal:  outfitsDroppedTotal,
		previewsTotal:        previewsTotal,
		llmTokensTotal:       llmTokensTotal,
	}
}

// Handler exposes the registry for the /metrics route.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request count, duration and in-flight gauge.
func (m *Metrics) Middleware(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.requestTotal.WithLabelValues(
			service,
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.requestDuration.WithLabelValues(service, c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// ObserveStage records one stage execution.
func (m *Metrics) ObserveStage(stage string, duration time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordPlans records planning-stage outcomes.
func (m *Metrics) RecordPlans(proposed, dropped int) {
	if proposed > 0 {
		m.plansProposedTotal.Add(float64(proposed))
	}
	if dropped > 0 {
		m.plansDroppedTotal.Add(float64(dropped))
	}
}

// RecordOutfitResolved counts a fully matched outfit.
func (m *Metrics) RecordOutfitResolved() {
	m.outfitsResolvedTotal.Inc()
}

// RecordOutfitDropped counts a dropped outfit. Known reasons are
// "no_candidates" and "over_budget".
func (m *Metrics) RecordOutfitDropped(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	m.outfitsDroppedTotal.WithLabelValues(reason).Inc()
}

// RecordPreview counts one preview attempt outcome: "rendered", "failed"
// or "skipped".
func (m *Metrics) RecordPreview(status string) {
	if status == "" {
		status = "unknown"
	}
	m.previewsTotal.WithLabelValues(status).Inc()
}

// RecordTokenUsage tracks prompt and completion token counts.
func (m *Metrics) RecordTokenUsage(provider, model string, promptTokens, completionTokens int) {
	if model == "" {
		model = "unknown"
	}
	if promptTokens > 0 {
		m.llmTokensTotal.WithLabelValues(provider, model, "in").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		m.llmTokensTotal.WithLabelValues(provider, model, "out").Add(float64(completionTokens))
	}
}
