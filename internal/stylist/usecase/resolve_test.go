package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ai-outfit-assistant/internal/model"
	"ai-outfit-assistant/internal/stylist/provider"
)

func candidate(name string, price float64) model.ProductCandidate {
	return model.ProductCandidate{
		Name:     name,
		Price:    price,
		Currency: "EUR",
		URL:      "https://shop/" + strings.ReplaceAll(name, " ", "-"),
		ImageURL: "https://img/" + strings.ReplaceAll(name, " ", "-") + ".jpg",
	}
}

func twoItemPlan(name string) model.OutfitPlan {
	return model.OutfitPlan{
		StyleName:      name,
		Description:    "test plan",
		FormalityLevel: "formal",
		Items: []model.ItemBudget{
			{Name: "navy suit", Category: "suit", MaxPrice: 150},
			{Name: "white shirt", Category: "shirt", MaxPrice: 50},
		},
		TotalBudget: 200,
	}
}

func TestResolveOutfits(t *testing.T) {
	t.Run("Resolves Items To Cheapest By Default", func(t *testing.T) {
		catalog := &fakeCatalog{
			searchFunc: func(q provider.SearchQuery) ([]model.ProductCandidate, error) {
				return []model.ProductCandidate{
					candidate(q.Text+" budget", 30),
					candidate(q.Text+" premium", 90),
				}, nil
			},
		}
		uc := newTestUseCase(&fakeLLM{}, catalog, nil)

		outfits, err := uc.ResolveOutfits(context.Background(), model.Scope{}, model.EventUnderstanding{}, []model.OutfitPlan{twoItemPlan("A")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(outfits) != 1 {
			t.Fatalf("got %d outfits, want 1", len(outfits))
		}
		for _, item := range outfits[0].Items {
			if item.ChosenProduct.Price != 30 {
				t.Errorf("item %q chose %.2f, want the cheapest 30 when selection falls back", item.Name, item.ChosenProduct.Price)
			}
		}
		if outfits[0].TotalBudget != 60 {
			t.Errorf("total = %.2f, want 60 recomputed from real prices", outfits[0].TotalBudget)
		}
	})

	t.Run("Selection Index Is Honored", func(t *testing.T) {
		catalog := &fakeCatalog{
			searchFunc: func(q provider.SearchQuery) ([]model.ProductCandidate, error) {
				// Deliberately unsorted: the stage must sort before selection.
				return []model.ProductCandidate{
					candidate("expensive", 120),
					candidate("cheap", 20),
					candidate("middle", 60),
				}, nil
			},
		}
		uc := newTestUseCase(&fakeLLM{selectResp: `{"index": 1}`}, catalog, nil)

		plan := model.OutfitPlan{
			StyleName: "One item",
			Items:     []model.ItemBudget{{Name: "shirt", Category: "shirt", MaxPrice: 150}},
		}
		outfits, err := uc.ResolveOutfits(context.Background(), model.Scope{}, model.EventUnderstanding{}, []model.OutfitPlan{plan})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(outfits) != 1 {
			t.Fatalf("got %d outfits, want 1", len(outfits))
		}
		if got := outfits[0].Items[0].ChosenProduct.Name; got != "middle" {
			t.Errorf("chose %q, want index 1 of the ascending list (middle)", got)
		}
	})

	t.Run("Out Of Range Index Clamps To Cheapest", func(t *testing.T) {
		catalog := &fakeCatalog{
			searchFunc: func(q provider.SearchQuery) ([]model.ProductCandidate, error) {
				return []model.ProductCandidate{candidate("cheap", 20), candidate("pricey", 80)}, nil
			},
		}
		uc := newTestUseCase(&fakeLLM{selectResp: `{"index": 7}`}, catalog, nil)

		plan := model.OutfitPlan{
			StyleName: "One item",
			Items:     []model.ItemBudget{{Name: "shirt", Category: "shirt", MaxPrice: 150}},
		}
		outfits, err := uc.ResolveOutfits(context.Background(), model.Scope{}, model.EventUnderstanding{}, []model.OutfitPlan{plan})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := outfits[0].Items[0].ChosenProduct.Name; got != "cheap" {
			t.Errorf("chose %q, want cheapest after clamping index 7", got)
		}
	})

	t.Run("Outfit With Unresolvable Item Is Dropped", func(t *testing.T) {
		catalog := &fakeCatalog{
			searchFunc: func(q provider.SearchQuery) ([]model.ProductCandidate, error) {
				if strings.Contains(q.Text, "white shirt") {
					return nil, nil
				}
				return []model.ProductCandidate{candidate(q.Text, 40)}, nil
			},
		}
		uc := newTestUseCase(&fakeLLM{}, catalog, nil)

		solo := model.OutfitPlan{
			StyleName: "Solo",
			Items:     []model.ItemBudget{{Name: "navy suit", Category: "suit", MaxPrice: 150}},
		}
		outfits, err := uc.ResolveOutfits(context.Background(), model.Scope{}, model.EventUnderstanding{},
			[]model.OutfitPlan{twoItemPlan("Doomed"), solo})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(outfits) != 1 {
			t.Fatalf("got %d outfits, want 1: the outfit with the missing item is dropped, the other kept", len(outfits))
		}
		if outfits[0].StyleName != "Solo" {
			t.Errorf("kept outfit = %q, want Solo", outfits[0].StyleName)
		}
	})

	t.Run("Catalog Error Treated As No Candidates", func(t *testing.T) {
		catalog := &fakeCatalog{
			searchFunc: func(q provider.SearchQuery) ([]model.ProductCandidate, error) {
				return nil, errors.New("scraper timeout")
			},
		}
		uc := newTestUseCase(&fakeLLM{}, catalog, nil)

		outfits, err := uc.ResolveOutfits(context.Background(), model.Scope{}, model.EventUnderstanding{}, []model.OutfitPlan{twoItemPlan("A")})
		if err != nil {
			t.Fatalf("unexpected error: %v, catalog failures must not surface", err)
		}
		if len(outfits) != 0 {
			t.Errorf("got %d outfits, want 0", len(outfits))
		}
	})

	t.Run("Real Prices Enforce Budget", func(t *testing.T) {
		catalog := &fakeCatalog{
			searchFunc: func(q provider.SearchQuery) ([]model.ProductCandidate, error) {
				// Each item resolves to 90: under its ceiling, but the outfit
				// total 180 exceeds the 100 budget.
				return []model.ProductCandidate{candidate(q.Text, 90)}, nil
			},
		}
		uc := newTestUseCase(&fakeLLM{}, catalog, nil)

		outfits, err := uc.ResolveOutfits(context.Background(), model.Scope{},
			model.EventUnderstanding{Budget: floatPtr(100)}, []model.OutfitPlan{twoItemPlan("A")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(outfits) != 0 {
			t.Errorf("got %d outfits, want 0: real total 180 exceeds budget 100", len(outfits))
		}
	})

	t.Run("Order Preserved Despite Concurrency", func(t *testing.T) {
		catalog := &fakeCatalog{
			searchFunc: func(q provider.SearchQuery) ([]model.ProductCandidate, error) {
				// Later plans finish first.
				if strings.Contains(q.Text, "navy suit") {
					time.Sleep(20 * time.Millisecond)
				}
				return []model.ProductCandidate{candidate(q.Text, 30)}, nil
			},
		}
		uc := newTestUseCase(&fakeLLM{}, catalog, nil)

		plans := []model.OutfitPlan{
			twoItemPlan("First"),
			{StyleName: "Second", Items: []model.ItemBudget{{Name: "blazer", Category: "jacket", MaxPrice: 80}}},
			{StyleName: "Third", Items: []model.ItemBudget{{Name: "chinos", Category: "trousers", MaxPrice: 40}}},
		}
		outfits, err := uc.ResolveOutfits(context.Background(), model.Scope{}, model.EventUnderstanding{}, plans)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(outfits) != 3 {
			t.Fatalf("got %d outfits, want 3", len(outfits))
		}
		for i, want := range []string{"First", "Second", "Third"} {
			if outfits[i].StyleName != want {
				t.Errorf("outfits[%d] = %q, want %q: planning order must survive concurrent resolution", i, outfits[i].StyleName, want)
			}
		}
	})

	t.Run("Normalized Query Cannot Raise The Ceiling", func(t *testing.T) {
		catalog := &fakeCatalog{
			searchFunc: func(q provider.SearchQuery) ([]model.ProductCandidate, error) {
				return []model.ProductCandidate{candidate(q.Text, 10)}, nil
			},
		}
		llm := &fakeLLM{queryResp: `{"query": "silk shirt", "max_price": 9999}`}
		uc := newTestUseCase(llm, catalog, nil)

		plan := model.OutfitPlan{
			StyleName: "One item",
			Items:     []model.ItemBudget{{Name: "shirt", Category: "shirt", MaxPrice: 50}},
		}
		if _, err := uc.ResolveOutfits(context.Background(), model.Scope{}, model.EventUnderstanding{}, []model.OutfitPlan{plan}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		catalog.mu.Lock()
		defer catalog.mu.Unlock()
		if len(catalog.queries) != 1 {
			t.Fatalf("got %d catalog queries, want 1", len(catalog.queries))
		}
		if catalog.queries[0].MaxPrice != 50 {
			t.Errorf("search ceiling = %.2f, want clamped back to 50", catalog.queries[0].MaxPrice)
		}
		if catalog.queries[0].Text != "silk shirt" {
			t.Errorf("search text = %q, want normalized query", catalog.queries[0].Text)
		}
	})

	t.Run("Gender Selects Category Path", func(t *testing.T) {
		catalog := &fakeCatalog{
			searchFunc: func(q provider.SearchQuery) ([]model.ProductCandidate, error) {
				return []model.ProductCandidate{candidate(q.Text, 10)}, nil
			},
		}
		uc := newTestUseCase(&fakeLLM{}, catalog, nil)

		plan := model.OutfitPlan{
			StyleName: "One item",
			Items:     []model.ItemBudget{{Name: "dress", Category: "dress", MaxPrice: 80}},
		}
		event := model.EventUnderstanding{Gender: model.GenderFemale}
		if _, err := uc.ResolveOutfits(context.Background(), model.Scope{}, event, []model.OutfitPlan{plan}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		catalog.mu.Lock()
		defer catalog.mu.Unlock()
		if catalog.queries[0].CategoryPath != provider.CategoryPathWomen {
			t.Errorf("category path = %q, want %q", catalog.queries[0].CategoryPath, provider.CategoryPathWomen)
		}
	})
}
