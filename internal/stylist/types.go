package stylist

import (
	"ai-outfit-assistant/internal/model"
)

// ProcessInput is the raw request to a pipeline run.
type ProcessInput struct {
	Description       string        // Free-form event description from the user
	Budget            *float64      // Global budget in EUR (optional)
	Gender            *model.Gender // Interface-supplied gender (optional)
	Age               *int          // Interface-supplied age (optional)
	ReferenceImageURL string        // Photo to render previews onto (optional)
}

// ProcessOutput is the full pipeline result.
type ProcessOutput struct {
	Event   model.EventUnderstanding `json:"event"`
	Plans   []model.OutfitPlan       `json:"outfit_plans"`
	Outfits []model.ResolvedOutfit   `json:"resolved_outfits"`
}

// UserRequest converts the input into the canonical request record.
func (in ProcessInput) UserRequest() model.UserRequest {
	return model.UserRequest{
		Description:       in.Description,
		Budget:            in.Budget,
		Gender:            in.Gender,
		Age:               in.Age,
		ReferenceImageURL: in.ReferenceImageURL,
	}
}
