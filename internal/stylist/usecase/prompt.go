package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"ai-outfit-assistant/internal/model"
)

// llmTemperature keeps structured output deterministic.
const llmTemperature = 0.2

// eventAnalysisSystemPrompt instructs the model to normalize a free-form
// event description.
const eventAnalysisSystemPrompt = `You are an event analysis assistant for a fashion service. Your job is to extract a structured understanding of the event from the user's description.

RULES:
1. Identify:
   - event_type: wedding, job_interview, date, party, casual_outing, business_meeting or another short label
   - time_of_day: "day", "evening", "night" or "unspecified"
   - formality_level: "casual", "smart_casual", "business", "formal", "black_tie" or "unspecified"
   - style: a short description of the desired style, or "unspecified"
   - budget: total budget as a number in euros, only if the user states one
   - gender: MUST be exactly one of: "male", "female", "undetermined"
   - age: approximate age as an integer, only if stated or strongly implied
2. Return ONLY a valid JSON object. No markdown, no code blocks, no explanation text.
3. Never invent a budget or an age the user did not give.
4. When a field cannot be determined, use "unspecified" (or "undetermined" for gender) and omit budget/age.

EXAMPLE INPUT:
"I'm invited to a summer wedding in the south of France, I'd like something elegant for around 300 euros"

EXAMPLE OUTPUT:
{
  "event_type": "wedding",
  "time_of_day": "day",
  "formality_level": "formal",
  "style": "elegant summer",
  "budget": 300,
  "gender": "undetermined"
}`

// outfitPlanningSystemPrompt instructs the model to propose outfit plans
// with per-item price ceilings.
const outfitPlanningSystemPrompt = `You are a personal stylist. Given a structured event understanding, propose outfit ideas with a per-item price budget.

RULES:
1. Propose 2 to 4 complete outfits adapted to the event, formality and style.
2. Each outfit has:
   - style_name: a short evocative name
   - description: one or two sentences describing the look
   - formality_level: same scale as the event
   - items: 2 to 5 entries, each with "name" (precise shopping description), "category" (suit, shirt, dress, trousers, shoes, jacket, skirt, top, accessory) and "max_price" (number, euros)
   - total_budget: the sum of the items' max_price values
3. When the event defines a budget, every outfit's total_budget MUST stay at or under it.
4. Return ONLY a valid JSON array of outfits. No markdown, no code blocks, no explanation text.

EXAMPLE OUTPUT:
[
  {
    "style_name": "Classic navy",
    "description": "A timeless navy suit with crisp white shirt, safe for any formal daytime event.",
    "formality_level": "formal",
    "items": [
      {"name": "navy slim fit suit", "category": "suit", "max_price": 180},
      {"name": "white dress shirt", "category": "shirt", "max_price": 50},
      {"name": "black leather derby shoes", "category": "shoes", "max_price": 70}
    ],
    "total_budget": 300
  }
]`

// searchQuerySystemPrompt turns one planned item plus event attributes
// into a normalized catalog query.
const searchQuerySystemPrompt = `You are a product search planner for a fashion catalog. Given one outfit item and the event context, produce the best search query.

RULES:
1. Return ONLY a valid JSON object with exactly two fields:
   - query: a short storefront search string (item, color, fit, style keywords)
   - max_price: the price ceiling as a number in euros
2. Keep max_price equal to the item's declared ceiling unless the context clearly demands tightening it. Never raise it.
3. No markdown, no code blocks, no explanation text.

EXAMPLE OUTPUT:
{"query": "costume slim bleu marine", "max_price": 180}`

// candidateSelectionSystemPrompt picks one product from a short list.
const candidateSelectionSystemPrompt = `You are a personal shopper choosing one product for an outfit item.

RULES:
1. You receive the outfit item, the event context and a numbered list of candidate products sorted from cheapest to most expensive.
2. Pick the candidate that best matches the item description, style and formality. Prefer cheaper candidates when quality of match is equal.
3. Return ONLY a valid JSON object: {"index": N} where N is the zero-based position of your choice in the list.
4. No markdown, no code blocks, no explanation text.`

// previewPromptSystemPrompt asks for a rendering instruction for the
// image-to-image model.
const previewPromptSystemPrompt = `You are a prompt writer for an image-to-image fashion rendering model.

RULES:
1. The first input image is the person, the remaining images are clothing references.
2. Write one English instruction that keeps the person's face, skin tone and body shape, and dresses them with the referenced items in a clean, realistic, fashion-editorial style. Mention the outfit's style and the event's formality.
3. Return ONLY a valid JSON object: {"prompt": "..."}. No markdown, no code blocks, no explanation text.`

// fallbackPreviewPrompt is used when the prompt-writing call returns
// nothing usable.
const fallbackPreviewPrompt = "Use the first image as the base person. Keep the same face, skin tone and body shape. " +
	"Use the other images only as clothing references. " +
	"Dress the person according to the described outfit in a clean, realistic, fashion style."

// buildEventPrompt pairs the raw description with the known overrides so
// the model does not contradict them.
func buildEventPrompt(req model.UserRequest) string {
	var sb strings.Builder
	sb.WriteString("Event description: ")
	sb.WriteString(req.Description)
	sb.WriteString("\n")

	if req.Budget != nil {
		fmt.Fprintf(&sb, "Budget (euros): %.2f\n", *req.Budget)
	}
	if req.Gender != nil {
		fmt.Fprintf(&sb, "Gender (confirmed by the user): %s\n", *req.Gender)
	}
	if req.Age != nil {
		fmt.Fprintf(&sb, "Age: %d\n", *req.Age)
	}

	sb.WriteString("\nReturn only the JSON object.")
	return sb.String()
}

// buildPlanningPrompt feeds the event record to the stylist as data only.
func buildPlanningPrompt(event model.EventUnderstanding) string {
	payload, _ := json.MarshalIndent(event, "", "  ")
	return "Here is the event understanding:\n\n" + string(payload) +
		"\n\nPropose outfits adapted to this event and style, respecting the budget if present. Return only the JSON array."
}

// buildQueryPrompt describes one item plus the event attributes that
// shape the search.
func buildQueryPrompt(item model.ItemBudget, event model.EventUnderstanding) string {
	payload, _ := json.MarshalIndent(map[string]any{
		"item": item,
		"event": map[string]any{
			"style":           event.Style,
			"formality_level": event.FormalityLevel,
			"gender":          event.Gender,
		},
	}, "", "  ")
	return "Here is the outfit item and the event context:\n\n" + string(payload) +
		"\n\nReturn only the JSON object with query and max_price."
}

// buildSelectionPrompt lists the shortlisted candidates for one item.
func buildSelectionPrompt(item model.ItemBudget, event model.EventUnderstanding, candidates []model.ProductCandidate) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Item: %s (category %s, ceiling %.2f EUR)\n", item.Name, item.Category, item.MaxPrice)
	fmt.Fprintf(&sb, "Event: style %s, formality %s\n\nCandidates:\n", event.Style, event.FormalityLevel)

	for i, c := range candidates {
		fmt.Fprintf(&sb, "%d. %s", i, c.Name)
		if c.Brand != "" {
			fmt.Fprintf(&sb, " by %s", c.Brand)
		}
		if c.Color != "" {
			fmt.Fprintf(&sb, ", %s", c.Color)
		}
		fmt.Fprintf(&sb, " - %.2f %s\n", c.Price, c.Currency)
	}

	sb.WriteString("\nReturn only the JSON object with the chosen index.")
	return sb.String()
}

// buildRenderPrompt describes the event and chosen items for the prompt
// writer.
func buildRenderPrompt(event model.EventUnderstanding, outfit model.ResolvedOutfit, items []map[string]string) string {
	payload, _ := json.MarshalIndent(map[string]any{
		"event": event,
		"outfit": map[string]string{
			"style_name":      outfit.StyleName,
			"description":     outfit.Description,
			"formality_level": outfit.FormalityLevel,
		},
		"items": items,
	}, "", "  ")
	return "Here is the event context and the chosen outfit with its items:\n\n" + string(payload) +
		"\n\nGenerate the JSON with the 'prompt' field as requested."
}
