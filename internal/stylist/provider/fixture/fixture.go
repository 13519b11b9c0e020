package fixture

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"ai-outfit-assistant/internal/model"
	"ai-outfit-assistant/internal/stylist/provider"
)

//go:embed products.json
var productsJSON []byte

// product is one catalog entry in the embedded fixture file.
type product struct {
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	URL      string  `json:"url"`
	ImageURL string  `json:"image_url"`
	SKU      string  `json:"sku"`
	Color    string  `json:"color"`
	Category string  `json:"category"`
	Gender   string  `json:"gender"`
}

// Provider serves products from the embedded sample catalog. Used in
// development and tests in place of the live scraper.
type Provider struct {
	products []product
}

// New loads the embedded catalog.
func New() (*Provider, error) {
	var products []product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("fixture: failed to load embedded catalog: %w", err)
	}
	return &Provider{products: products}, nil
}

// Search filters the catalog by storefront section, price ceiling and
// query keywords, returning matches sorted ascending by price.
func (p *Provider) Search(ctx context.Context, query provider.SearchQuery) ([]model.ProductCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gender := genderForPath(query.CategoryPath)
	keywords := strings.Fields(strings.ToLower(query.Text))

	var candidates []model.ProductCandidate
	for _, prod := range p.products {
		if prod.Price > query.MaxPrice {
			continue
		}
		if gender != "" && prod.Gender != gender {
			continue
		}
		if !matchesKeywords(prod, keywords) {
			continue
		}
		candidates = append(candidates, model.ProductCandidate{
			Name:     prod.Name,
			Brand:    prod.Brand,
			Price:    prod.Price,
			Currency: prod.Currency,
			URL:      prod.URL,
			ImageURL: prod.ImageURL,
			SKU:      prod.SKU,
			Color:    prod.Color,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Price < candidates[j].Price
	})
	return candidates, nil
}

func genderForPath(categoryPath string) string {
	switch categoryPath {
	case provider.CategoryPathMen:
		return "male"
	case provider.CategoryPathWomen:
		return "female"
	default:
		return ""
	}
}

// matchesKeywords requires at least one query keyword to appear in the
// product's name, category or color. An empty query matches everything.
func matchesKeywords(prod product, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	haystack := strings.ToLower(prod.Name + " " + prod.Category + " " + prod.Color)
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
