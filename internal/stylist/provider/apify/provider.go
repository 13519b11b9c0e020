package apify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"ai-outfit-assistant/internal/model"
	"ai-outfit-assistant/internal/stylist/provider"
	pkgLog "ai-outfit-assistant/pkg/log"
)

const (
	storefrontBaseURL = "https://www.zalando.fr"

	// maxCandidates bounds how many products a single search returns to
	// the selection step.
	maxCandidates = 10
)

// Config tunes the scraper-backed catalog provider.
type Config struct {
	APIToken        string
	ActorID         string
	BaseURL         string
	MaxWait         time.Duration
	PollInterval    time.Duration
	RateLimitPerMin int
	CacheSize       int
	CacheTTL        time.Duration
}

// Provider searches the storefront through an Apify scraper actor. Each
// search is one actor run: submit, poll until terminal, fetch the dataset.
// Identical queries are served from a TTL cache, and run submissions are
// rate limited to stay inside the actor's quota.
type Provider struct {
	l            pkgLog.Logger
	client       *Client
	limiter      *rate.Limiter
	cache        *expirable.LRU[string, []model.ProductCandidate]
	maxWait      time.Duration
	pollInterval time.Duration
}

// New creates a scraper-backed catalog provider.
func New(l pkgLog.Logger, cfg Config) (*Provider, error) {
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("apify: API token is required")
	}
	if cfg.ActorID == "" {
		return nil, fmt.Errorf("apify: actor ID is required")
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = 90 * time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 3 * time.Second
	}
	if cfg.RateLimitPerMin <= 0 {
		cfg.RateLimitPerMin = 30
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 256
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}

	return &Provider{
		l:            l,
		client:       NewClient(cfg.BaseURL, cfg.APIToken, cfg.ActorID),
		limiter:      rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RateLimitPerMin)), 1),
		cache:        expirable.NewLRU[string, []model.ProductCandidate](cfg.CacheSize, nil, cfg.CacheTTL),
		maxWait:      cfg.MaxWait,
		pollInterval: cfg.PollInterval,
	}, nil
}

// Search runs the scraper for one listing URL and normalizes the result.
// A run that does not succeed within the deadline yields an empty list,
// not an error.
func (p *Provider) Search(ctx context.Context, query provider.SearchQuery) ([]model.ProductCandidate, error) {
	cacheKey := fmt.Sprintf("%s|%s|%.0f", query.Text, query.CategoryPath, query.MaxPrice)
	if cached, ok := p.cache.Get(cacheKey); ok {
		return cached, nil
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	run, err := p.client.StartRun(ctx, RunInput{
		URL:     p.listingURL(query),
		MaxPage: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start scraper run: %w", err)
	}

	status, err := p.waitForRun(ctx, run)
	if err != nil {
		return nil, err
	}
	if status.Status != RunStatusSucceeded {
		p.l.Warnf(ctx, "apify.Search: run %s ended with status %s, returning no candidates", status.ID, status.Status)
		return nil, nil
	}

	items, err := p.client.GetDatasetItems(ctx, status.DefaultDatasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scraper results: %w", err)
	}

	candidates := normalizeItems(items, query.MaxPrice)
	p.cache.Add(cacheKey, candidates)
	return candidates, nil
}

// listingURL builds the storefront search URL, pushing the price filter
// down to the storefront itself.
func (p *Provider) listingURL(query provider.SearchQuery) string {
	vals := url.Values{}
	vals.Set("q", query.Text)
	vals.Set("price_to", strconv.Itoa(int(query.MaxPrice)))
	return fmt.Sprintf("%s/%s/?%s", storefrontBaseURL, query.CategoryPath, vals.Encode())
}

func (p *Provider) waitForRun(ctx context.Context, run RunStatus) (RunStatus, error) {
	deadline := time.Now().Add(p.maxWait)
	status := run

	for !status.IsTerminal() {
		if time.Now().After(deadline) {
			return status, nil
		}

		select {
		case <-ctx.Done():
			return status, ctx.Err()
		case <-time.After(p.pollInterval):
		}

		next, err := p.client.GetRun(ctx, run.ID)
		if err != nil {
			return status, fmt.Errorf("failed to poll scraper run: %w", err)
		}
		status = next
	}

	return status, nil
}

// normalizeItems filters out ads and over-ceiling products, then sorts
// ascending by price and caps the list.
func normalizeItems(items []Item, maxPrice float64) []model.ProductCandidate {
	candidates := make([]model.ProductCandidate, 0, len(items))

	for _, item := range items {
		if item.IsSponsored || item.Sponsored {
			continue
		}
		if item.Name == "" {
			continue
		}

		price, ok := parsePrice(item.Price)
		if !ok || price > maxPrice {
			continue
		}

		brand := item.Brand
		if brand == "" {
			brand = item.Manufacturer
		}
		currency := item.Currency
		if currency == "" {
			currency = "EUR"
		}

		candidates = append(candidates, model.ProductCandidate{
			Name:     item.Name,
			Brand:    brand,
			Price:    price,
			Currency: currency,
			URL:      item.URL,
			ImageURL: firstImage(item),
			SKU:      item.SKU,
			Color:    item.Color,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Price < candidates[j].Price
	})
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates
}

// parsePrice accepts both numeric prices and locale strings like "89,95".
func parsePrice(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num, true
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return 0, false
	}
	str = strings.ReplaceAll(strings.TrimSpace(str), ",", ".")
	price, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

// firstImage resolves the varying image shapes: a single URL string, a
// list under "image", or the separate "images" array.
func firstImage(item Item) string {
	if len(item.Image) > 0 {
		var single string
		if err := json.Unmarshal(item.Image, &single); err == nil {
			return single
		}
		var list []string
		if err := json.Unmarshal(item.Image, &list); err == nil && len(list) > 0 {
			return list[0]
		}
	}
	if len(item.Images) > 0 {
		return item.Images[0]
	}
	return ""
}
