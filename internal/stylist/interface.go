package stylist

import (
	"context"

	"ai-outfit-assistant/internal/model"
)

// UseCase defines the business logic interface for the stylist domain.
type UseCase interface {
	// Process runs the full pipeline: understand the event, plan outfits,
	// resolve items to products and optionally enrich with previews.
	Process(ctx context.Context, sc model.Scope, input ProcessInput) (ProcessOutput, error)

	// AnalyzeEvent turns a free-form request into a canonical event record.
	AnalyzeEvent(ctx context.Context, sc model.Scope, req model.UserRequest) (model.EventUnderstanding, error)

	// PlanOutfits proposes outfit plans for the event, dropping any plan
	// whose ceiling sum exceeds the budget.
	PlanOutfits(ctx context.Context, sc model.Scope, event model.EventUnderstanding) ([]model.OutfitPlan, error)

	// ResolveOutfits matches every planned item to a concrete product and
	// re-enforces the budget with real prices.
	ResolveOutfits(ctx context.Context, sc model.Scope, event model.EventUnderstanding, plans []model.OutfitPlan) ([]model.ResolvedOutfit, error)

	// EnrichPreviews renders previews for up to the configured number of
	// outfits. Failures leave preview fields empty, never drop an outfit.
	EnrichPreviews(ctx context.Context, sc model.Scope, event model.EventUnderstanding, outfits []model.ResolvedOutfit, referenceImageURL string) ([]model.ResolvedOutfit, error)
}
