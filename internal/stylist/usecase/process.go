package usecase

import (
	"context"
	"strings"

	"ai-outfit-assistant/internal/model"
	"ai-outfit-assistant/internal/stylist"
)

// Process runs the full pipeline in strict sequence: understand the
// event, plan outfits, resolve items to products, then optionally enrich
// with previews when a reference image was supplied. Zero resolved
// outfits is a valid outcome, not an error.
func (uc *implUseCase) Process(ctx context.Context, sc model.Scope, input stylist.ProcessInput) (stylist.ProcessOutput, error) {
	if strings.TrimSpace(input.Description) == "" {
		return stylist.ProcessOutput{}, stylist.ErrEmptyDescription
	}
	if input.Budget != nil && *input.Budget <= 0 {
		return stylist.ProcessOutput{}, stylist.ErrInvalidBudget
	}
	if input.Age != nil && *input.Age <= 0 {
		return stylist.ProcessOutput{}, stylist.ErrInvalidAge
	}

	uc.l.Infof(ctx, "Process: user=%s request=%s budget=%v reference_image=%t",
		sc.UserID, sc.RequestID, input.Budget, input.ReferenceImageURL != "")

	req := input.UserRequest()

	event, err := uc.AnalyzeEvent(ctx, sc, req)
	if err != nil {
		return stylist.ProcessOutput{}, err
	}

	plans, err := uc.PlanOutfits(ctx, sc, event)
	if err != nil {
		return stylist.ProcessOutput{}, err
	}

	outfits, err := uc.ResolveOutfits(ctx, sc, event, plans)
	if err != nil {
		return stylist.ProcessOutput{}, err
	}

	if input.ReferenceImageURL != "" {
		outfits, err = uc.EnrichPreviews(ctx, sc, event, outfits, input.ReferenceImageURL)
		if err != nil {
			return stylist.ProcessOutput{}, err
		}
	}

	uc.l.Infof(ctx, "Process: user=%s plans=%d outfits=%d", sc.UserID, len(plans), len(outfits))

	return stylist.ProcessOutput{
		Event:   event,
		Plans:   plans,
		Outfits: outfits,
	}, nil
}
