package usecase

import (
	"context"
	"strings"
	"time"

	"ai-outfit-assistant/internal/model"
	"ai-outfit-assistant/internal/stylist"
	"ai-outfit-assistant/pkg/llmprovider"
	"ai-outfit-assistant/pkg/structparse"
)

// AnalyzeEvent turns the free-form description into a canonical event
// record. Interface-supplied budget/gender/age always win over inferred
// values; a failed generation or parse degrades to documented defaults.
func (uc *implUseCase) AnalyzeEvent(ctx context.Context, sc model.Scope, req model.UserRequest) (model.EventUnderstanding, error) {
	if strings.TrimSpace(req.Description) == "" {
		return model.EventUnderstanding{}, stylist.ErrEmptyDescription
	}

	start := time.Now()
	defer func() {
		uc.metrics.ObserveStage("analyze_event", time.Since(start))
	}()

	uc.l.Infof(ctx, "AnalyzeEvent: user=%s description_length=%d", sc.UserID, len(req.Description))

	var raw string
	resp, err := uc.llm.Generate(ctx, &llmprovider.Request{
		System:      eventAnalysisSystemPrompt,
		User:        buildEventPrompt(req),
		Temperature: llmTemperature,
		MaxTokens:   1024,
	})
	if err != nil {
		uc.l.Warnf(ctx, "AnalyzeEvent: generation failed, using defaults: %v", err)
	} else {
		raw = resp.Text
		uc.recordTokenUsage(resp)
	}

	event, fellBack := structparse.Decode(raw, model.DefaultEventUnderstanding())
	if fellBack {
		uc.l.Warnf(ctx, "AnalyzeEvent: unparseable analysis output, using defaults. Raw=%q", raw)
	}

	event = normalizeEvent(event)
	applyOverrides(&event, req)

	uc.l.Infof(ctx, "AnalyzeEvent: event_type=%s formality=%s gender=%s budget=%v",
		event.EventType, event.FormalityLevel, event.Gender, event.Budget)
	return event, nil
}

// normalizeEvent fills empty attributes with placeholders and clamps the
// gender onto the closed set.
func normalizeEvent(event model.EventUnderstanding) model.EventUnderstanding {
	if strings.TrimSpace(event.EventType) == "" {
		event.EventType = model.Unspecified
	}
	if strings.TrimSpace(event.TimeOfDay) == "" {
		event.TimeOfDay = model.Unspecified
	}
	if strings.TrimSpace(event.FormalityLevel) == "" {
		event.FormalityLevel = model.Unspecified
	}
	if strings.TrimSpace(event.Style) == "" {
		event.Style = model.Unspecified
	}
	event.Gender = model.ParseGender(string(event.Gender))

	if event.Budget != nil && *event.Budget <= 0 {
		event.Budget = nil
	}
	if event.Age != nil && *event.Age <= 0 {
		event.Age = nil
	}
	return event
}

// applyOverrides enforces interface precedence: values the caller supplied
// replace whatever the model inferred.
func applyOverrides(event *model.EventUnderstanding, req model.UserRequest) {
	if req.Budget != nil {
		event.Budget = req.Budget
	}
	if req.Gender != nil {
		event.Gender = *req.Gender
	}
	if req.Age != nil {
		event.Age = req.Age
	}
}

func (uc *implUseCase) recordTokenUsage(resp *llmprovider.Response) {
	if resp == nil || resp.Usage == nil {
		return
	}
	uc.metrics.RecordTokenUsage(resp.ProviderName, resp.ModelName, resp.Usage.InputTokens, resp.Usage.OutputTokens)
}
