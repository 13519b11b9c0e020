package provider

import (
	"context"
	"errors"

	"ai-outfit-assistant/internal/model"
)

// Category paths understood by the catalog backends. They mirror the
// storefront's gender sections.
const (
	CategoryPathMen   = "homme"
	CategoryPathWomen = "femme"
	CategoryPathAll   = "tous"
)

// CategoryPathForGender maps the closed gender set onto a storefront path.
func CategoryPathForGender(g model.Gender) string {
	switch g {
	case model.GenderMale:
		return CategoryPathMen
	case model.GenderFemale:
		return CategoryPathWomen
	default:
		return CategoryPathAll
	}
}

// SearchQuery is one catalog lookup for a planned item.
type SearchQuery struct {
	Text         string  // Normalized free-text query
	CategoryPath string  // Storefront section, one of the CategoryPath constants
	MaxPrice     float64 // Price ceiling in EUR
}

// CatalogProvider searches a product source. Implementations return
// candidates at or under the ceiling, sorted ascending by price, possibly
// empty. A timeout is reported as an error; callers treat it as an empty
// result.
type CatalogProvider interface {
	Search(ctx context.Context, query SearchQuery) ([]model.ProductCandidate, error)
}

// ImageRenderer composes a preview image from a base photo and product
// images. A terminal non-success status is an error; callers treat any
// final error as "no preview".
type ImageRenderer interface {
	Render(ctx context.Context, baseImageURL string, productImageURLs []string, prompt string) (string, error)
}

// IsTransient reports whether a provider error is a temporary server-side
// failure worth one retry. Implementations mark such errors with a
// Transient() method.
func IsTransient(err error) bool {
	var transient interface{ Transient() bool }
	if errors.As(err, &transient) {
		return transient.Transient()
	}
	return false
}
