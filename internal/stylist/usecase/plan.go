package usecase

import (
	"context"
	"time"

	"ai-outfit-assistant/internal/model"
	"ai-outfit-assistant/pkg/llmprovider"
	"ai-outfit-assistant/pkg/structparse"
)

// PlanOutfits asks for 2-4 outfit plans and enforces the declared budget:
// a plan whose ceiling sum exceeds the budget is dropped whole, and every
// surviving plan's total_budget is recomputed from its items.
func (uc *implUseCase) PlanOutfits(ctx context.Context, sc model.Scope, event model.EventUnderstanding) ([]model.OutfitPlan, error) {
	start := time.Now()
	defer func() {
		uc.metrics.ObserveStage("plan_outfits", time.Since(start))
	}()

	var raw string
	resp, err := uc.llm.Generate(ctx, &llmprovider.Request{
		System:      outfitPlanningSystemPrompt,
		User:        buildPlanningPrompt(event),
		Temperature: llmTemperature,
		MaxTokens:   2048,
	})
	if err != nil {
		uc.l.Warnf(ctx, "PlanOutfits: generation failed, no plans: %v", err)
	} else {
		raw = resp.Text
		uc.recordTokenUsage(resp)
	}

	proposed, fellBack := structparse.Decode(raw, []model.OutfitPlan(nil))
	if fellBack {
		uc.l.Warnf(ctx, "PlanOutfits: unparseable planning output, no plans. Raw=%q", raw)
	}

	plans := make([]model.OutfitPlan, 0, len(proposed))
	dropped := 0

	for _, plan := range proposed {
		if len(plan.Items) == 0 {
			dropped++
			continue
		}

		total := plan.CeilingTotal()
		if event.Budget != nil && total > *event.Budget {
			uc.l.Infof(ctx, "PlanOutfits: dropping plan %q, ceilings %.2f exceed budget %.2f",
				plan.StyleName, total, *event.Budget)
			dropped++
			continue
		}

		// The model's claimed total is not trusted.
		plan.TotalBudget = total
		plans = append(plans, plan)
	}

	uc.metrics.RecordPlans(len(proposed), dropped)
	uc.l.Infof(ctx, "PlanOutfits: user=%s proposed=%d kept=%d", sc.UserID, len(proposed), len(plans))
	return plans, nil
}
