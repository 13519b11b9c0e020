package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"ai-outfit-assistant/internal/model"
	"ai-outfit-assistant/internal/stylist/provider"
	"ai-outfit-assistant/pkg/llmprovider"
	"ai-outfit-assistant/pkg/structparse"
)

// itemQuery is the normalized search request produced for one item.
type itemQuery struct {
	Query    string  `json:"query"`
	MaxPrice float64 `json:"max_price"`
}

// candidateChoice is the selection step's answer.
type candidateChoice struct {
	Index int `json:"index"`
}

// resolvedSlot is the outcome of resolving one item.
type resolvedSlot struct {
	item model.ResolvedItem
	ok   bool
}

// ResolveOutfits matches every planned item to a concrete product. Items
// of an outfit and outfits of the list resolve concurrently; the output
// preserves plan order and item order regardless of completion order. An
// outfit is dropped when any item finds no candidate or when the summed
// real prices exceed the budget.
func (uc *implUseCase) ResolveOutfits(ctx context.Context, sc model.Scope, event model.EventUnderstanding, plans []model.OutfitPlan) ([]model.ResolvedOutfit, error) {
	start := time.Now()
	defer func() {
		uc.metrics.ObserveStage("resolve_outfits", time.Since(start))
	}()

	results := make([]*model.ResolvedOutfit, len(plans))

	var wg sync.WaitGroup
	for i, plan := range plans {
		wg.Add(1)
		go func(idx int, plan model.OutfitPlan) {
			defer wg.Done()
			results[idx] = uc.resolveOutfit(ctx, event, plan)
		}(i, plan)
	}
	wg.Wait()

	outfits := make([]model.ResolvedOutfit, 0, len(plans))
	for _, r := range results {
		if r != nil {
			outfits = append(outfits, *r)
		}
	}

	uc.l.Infof(ctx, "ResolveOutfits: user=%s plans=%d resolved=%d", sc.UserID, len(plans), len(outfits))
	return outfits, nil
}

// resolveOutfit resolves all items of one plan and applies the budget
// gate on real prices. Returns nil when the outfit is dropped.
func (uc *implUseCase) resolveOutfit(ctx context.Context, event model.EventUnderstanding, plan model.OutfitPlan) *model.ResolvedOutfit {
	slots := make([]resolvedSlot, len(plan.Items))

	var wg sync.WaitGroup
	for i, item := range plan.Items {
		wg.Add(1)
		go func(idx int, item model.ItemBudget) {
			defer wg.Done()
			slots[idx] = uc.resolveItem(ctx, event, item)
		}(i, item)
	}
	wg.Wait()

	items := make([]model.ResolvedItem, 0, len(slots))
	for _, slot := range slots {
		if !slot.ok {
			uc.l.Infof(ctx, "resolveOutfit: dropping outfit %q, no product for one of its items", plan.StyleName)
			uc.metrics.RecordOutfitDropped("no_candidates")
			return nil
		}
		items = append(items, slot.item)
	}

	outfit := model.ResolvedOutfit{
		StyleName:      plan.StyleName,
		Description:    plan.Description,
		FormalityLevel: plan.FormalityLevel,
		Items:          items,
	}
	outfit.TotalBudget = outfit.RealTotal()

	// Second budget gate, with real market prices this time.
	if event.Budget != nil && outfit.TotalBudget > *event.Budget {
		uc.l.Infof(ctx, "resolveOutfit: dropping outfit %q, real total %.2f exceeds budget %.2f",
			plan.StyleName, outfit.TotalBudget, *event.Budget)
		uc.metrics.RecordOutfitDropped("over_budget")
		return nil
	}

	uc.metrics.RecordOutfitResolved()
	return &outfit
}

// resolveItem searches the catalog for one item and selects a product.
func (uc *implUseCase) resolveItem(ctx context.Context, event model.EventUnderstanding, item model.ItemBudget) resolvedSlot {
	query := uc.normalizeQuery(ctx, event, item)

	candidates, err := uc.catalog.Search(ctx, provider.SearchQuery{
		Text:         query.Query,
		CategoryPath: provider.CategoryPathForGender(event.Gender),
		MaxPrice:     query.MaxPrice,
	})
	if err != nil {
		// A failed or timed out search is the same as an empty one.
		uc.l.Warnf(ctx, "resolveItem: catalog search failed for %q, treating as no candidates: %v", item.Name, err)
		candidates = nil
	}
	if len(candidates) == 0 {
		return resolvedSlot{}
	}

	if !sort.SliceIsSorted(candidates, func(i, j int) bool { return candidates[i].Price < candidates[j].Price }) {
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].Price < candidates[j].Price })
	}

	shortlist := candidates
	if len(shortlist) > uc.cfg.CandidateLimit {
		shortlist = shortlist[:uc.cfg.CandidateLimit]
	}

	chosen := shortlist[uc.selectCandidate(ctx, event, item, shortlist)]

	return resolvedSlot{
		item: model.ResolvedItem{
			Name:          item.Name,
			Category:      item.Category,
			MaxPrice:      item.MaxPrice,
			ChosenProduct: chosen,
		},
		ok: true,
	}
}

// normalizeQuery turns the item plus event attributes into a catalog
// query. Falls back to the raw item name and ceiling on any failure, and
// never lets the model raise the ceiling.
func (uc *implUseCase) normalizeQuery(ctx context.Context, event model.EventUnderstanding, item model.ItemBudget) itemQuery {
	fallback := itemQuery{Query: item.Name, MaxPrice: item.MaxPrice}

	resp, err := uc.llm.Generate(ctx, &llmprovider.Request{
		System:      searchQuerySystemPrompt,
		User:        buildQueryPrompt(item, event),
		Temperature: llmTemperature,
		MaxTokens:   256,
	})
	if err != nil {
		uc.l.Warnf(ctx, "normalizeQuery: generation failed for %q, using raw item: %v", item.Name, err)
		return fallback
	}
	uc.recordTokenUsage(resp)

	query, fellBack := structparse.Decode(resp.Text, fallback)
	if fellBack {
		uc.l.Warnf(ctx, "normalizeQuery: unparseable query output for %q, using raw item. Raw=%q", item.Name, resp.Text)
		return fallback
	}

	if query.Query == "" {
		query.Query = item.Name
	}
	if query.MaxPrice <= 0 || query.MaxPrice > item.MaxPrice {
		query.MaxPrice = item.MaxPrice
	}
	return query
}

// selectCandidate asks the model to pick from the shortlist, clamping any
// out-of-range answer to the cheapest candidate.
func (uc *implUseCase) selectCandidate(ctx context.Context, event model.EventUnderstanding, item model.ItemBudget, shortlist []model.ProductCandidate) int {
	resp, err := uc.llm.Generate(ctx, &llmprovider.Request{
		System:      candidateSelectionSystemPrompt,
		User:        buildSelectionPrompt(item, event, shortlist),
		Temperature: llmTemperature,
		MaxTokens:   128,
	})
	if err != nil {
		uc.l.Warnf(ctx, "selectCandidate: generation failed for %q, choosing cheapest: %v", item.Name, err)
		return 0
	}
	uc.recordTokenUsage(resp)

	choice, fellBack := structparse.Decode(resp.Text, candidateChoice{Index: 0})
	if fellBack {
		uc.l.Warnf(ctx, "selectCandidate: unparseable selection output for %q, choosing cheapest. Raw=%q", item.Name, resp.Text)
		return 0
	}

	if choice.Index < 0 || choice.Index >= len(shortlist) {
		return 0
	}
	return choice.Index
}
