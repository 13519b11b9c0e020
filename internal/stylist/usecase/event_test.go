package usecase

import (
	"context"
	"errors"
	"testing"

	"ai-outfit-assistant/internal/model"
	"ai-outfit-assistant/internal/stylist"
)

func TestAnalyzeEvent(t *testing.T) {
	t.Run("Empty Description Error", func(t *testing.T) {
		uc := newTestUseCase(&fakeLLM{}, &fakeCatalog{}, nil)
		_, err := uc.AnalyzeEvent(context.Background(), model.Scope{}, model.UserRequest{Description: "   "})
		if !errors.Is(err, stylist.ErrEmptyDescription) {
			t.Errorf("expected ErrEmptyDescription, got %v", err)
		}
	})

	t.Run("Parses Inferred Attributes", func(t *testing.T) {
		llm := &fakeLLM{
			eventResp: `{"event_type": "wedding", "time_of_day": "day", "formality_level": "formal", "style": "elegant summer", "budget": 300, "gender": "male", "age": 30}`,
		}
		uc := newTestUseCase(llm, &fakeCatalog{}, nil)

		event, err := uc.AnalyzeEvent(context.Background(), model.Scope{}, model.UserRequest{
			Description: "a summer wedding, something elegant around 300 euros",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if event.EventType != "wedding" || event.FormalityLevel != "formal" {
			t.Errorf("unexpected event: %+v", event)
		}
		if event.Budget == nil || *event.Budget != 300 {
			t.Errorf("budget = %v, want inferred 300", event.Budget)
		}
		if event.Gender != model.GenderMale {
			t.Errorf("gender = %s, want male", event.Gender)
		}
	})

	t.Run("Interface Values Override Inferred", func(t *testing.T) {
		llm := &fakeLLM{
			eventResp: `{"event_type": "party", "budget": 500, "gender": "male", "age": 45}`,
		}
		uc := newTestUseCase(llm, &fakeCatalog{}, nil)

		gender := model.GenderFemale
		event, err := uc.AnalyzeEvent(context.Background(), model.Scope{}, model.UserRequest{
			Description: "birthday party",
			Budget:      floatPtr(200),
			Gender:      &gender,
			Age:         intPtr(28),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if event.Budget == nil || *event.Budget != 200 {
			t.Errorf("budget = %v, want interface-supplied 200", event.Budget)
		}
		if event.Gender != model.GenderFemale {
			t.Errorf("gender = %s, want interface-supplied female", event.Gender)
		}
		if event.Age == nil || *event.Age != 28 {
			t.Errorf("age = %v, want interface-supplied 28", event.Age)
		}
	})

	t.Run("Non-JSON Output Yields Defaults With Overrides", func(t *testing.T) {
		llm := &fakeLLM{eventResp: "I could not help with that, sorry!"}
		uc := newTestUseCase(llm, &fakeCatalog{}, nil)

		gender := model.GenderMale
		event, err := uc.AnalyzeEvent(context.Background(), model.Scope{}, model.UserRequest{
			Description: "job interview next week",
			Budget:      floatPtr(150),
			Gender:      &gender,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if event.EventType != model.Unspecified || event.Style != model.Unspecified {
			t.Errorf("expected placeholder defaults, got %+v", event)
		}
		if event.Budget == nil || *event.Budget != 150 {
			t.Errorf("budget = %v, want interface-supplied 150 despite parse failure", event.Budget)
		}
		if event.Gender != model.GenderMale {
			t.Errorf("gender = %s, want interface-supplied male", event.Gender)
		}
	})

	t.Run("Generation Failure Degrades To Defaults", func(t *testing.T) {
		llm := &fakeLLM{err: errors.New("all providers failed")}
		uc := newTestUseCase(llm, &fakeCatalog{}, nil)

		event, err := uc.AnalyzeEvent(context.Background(), model.Scope{}, model.UserRequest{Description: "dinner date"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if event.Gender != model.GenderUndetermined {
			t.Errorf("gender = %s, want undetermined default", event.Gender)
		}
		if event.Budget != nil {
			t.Errorf("budget = %v, want unset", event.Budget)
		}
	})

	t.Run("Unknown Gender Clamped To Closed Set", func(t *testing.T) {
		llm := &fakeLLM{eventResp: `{"event_type": "date", "gender": "woman"}`}
		uc := newTestUseCase(llm, &fakeCatalog{}, nil)

		event, err := uc.AnalyzeEvent(context.Background(), model.Scope{}, model.UserRequest{Description: "a date"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if event.Gender != model.GenderUndetermined {
			t.Errorf("gender = %s, want undetermined for out-of-set value", event.Gender)
		}
	})
}
