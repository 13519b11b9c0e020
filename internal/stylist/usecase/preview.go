package usecase

import (
	"context"
	"time"

	"ai-outfit-assistant/internal/model"
	"ai-outfit-assistant/internal/stylist/provider"
	"ai-outfit-assistant/pkg/llmprovider"
	"ai-outfit-assistant/pkg/resilience"
	"ai-outfit-assistant/pkg/structparse"
)

// renderInstruction is the prompt writer's answer.
type renderInstruction struct {
	Prompt string `json:"prompt"`
}

// EnrichPreviews renders previews for up to the configured number of
// outfits. Outfits whose items carry no product image are passed through
// unchanged, and any rendering failure leaves the preview fields empty.
// The input list is never shortened.
func (uc *implUseCase) EnrichPreviews(ctx context.Context, sc model.Scope, event model.EventUnderstanding, outfits []model.ResolvedOutfit, referenceImageURL string) ([]model.ResolvedOutfit, error) {
	out := make([]model.ResolvedOutfit, len(outfits))
	copy(out, outfits)

	if referenceImageURL == "" || uc.renderer == nil {
		return out, nil
	}

	start := time.Now()
	defer func() {
		uc.metrics.ObserveStage("enrich_previews", time.Since(start))
	}()

	limit := uc.cfg.MaxPreviewOutfits
	if limit > len(out) {
		limit = len(out)
	}

	for i := 0; i < limit; i++ {
		outfit := out[i]

		productImages, promptItems := collectProductImages(outfit)
		if len(productImages) == 0 {
			uc.l.Infof(ctx, "EnrichPreviews: outfit %q has no product images, skipping", outfit.StyleName)
			uc.metrics.RecordPreview("skipped")
			continue
		}

		prompt := uc.buildRenderInstruction(ctx, event, outfit, promptItems)

		var imageURL string
		err := uc.exec.Execute(ctx, "preview.render", func(ctx context.Context) error {
			url, renderErr := uc.renderer.Render(ctx, referenceImageURL, productImages, prompt)
			if renderErr != nil {
				return renderErr
			}
			imageURL = url
			return nil
		}, previewClassifier)
		if err != nil {
			uc.l.Warnf(ctx, "EnrichPreviews: rendering failed for outfit %q (non-fatal): %v", outfit.StyleName, err)
			uc.metrics.RecordPreview("failed")
			continue
		}

		out[i] = outfit.WithPreview(imageURL, prompt)
		uc.metrics.RecordPreview("rendered")
	}

	return out, nil
}

// previewClassifier retries only transient server errors. Everything
// else, including a terminal non-success status, fails the attempt once.
func previewClassifier(err error) resilience.ErrorClassification {
	return resilience.ErrorClassification{
		Retryable:     provider.IsTransient(err),
		RecordFailure: true,
	}
}

// collectProductImages gathers the chosen products' image URLs and the
// compact item facts fed to the prompt writer.
func collectProductImages(outfit model.ResolvedOutfit) ([]string, []map[string]string) {
	var images []string
	var promptItems []map[string]string

	for _, item := range outfit.Items {
		chosen := item.ChosenProduct
		if chosen.ImageURL == "" {
			continue
		}
		images = append(images, chosen.ImageURL)
		promptItems = append(promptItems, map[string]string{
			"name":         item.Name,
			"category":     item.Category,
			"product_name": chosen.Name,
			"color":        chosen.Color,
			"brand":        chosen.Brand,
		})
	}
	return images, promptItems
}

// buildRenderInstruction asks the model for a rendering prompt, falling
// back to the fixed generic instruction.
func (uc *implUseCase) buildRenderInstruction(ctx context.Context, event model.EventUnderstanding, outfit model.ResolvedOutfit, items []map[string]string) string {
	resp, err := uc.llm.Generate(ctx, &llmprovider.Request{
		System:      previewPromptSystemPrompt,
		User:        buildRenderPrompt(event, outfit, items),
		Temperature: llmTemperature,
		MaxTokens:   512,
	})
	if err != nil {
		uc.l.Warnf(ctx, "buildRenderInstruction: generation failed for %q, using generic prompt: %v", outfit.StyleName, err)
		return fallbackPreviewPrompt
	}
	uc.recordTokenUsage(resp)

	instruction, fellBack := structparse.Decode(resp.Text, renderInstruction{})
	if fellBack || instruction.Prompt == "" {
		return fallbackPreviewPrompt
	}
	return instruction.Prompt
}
