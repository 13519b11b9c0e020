package model

// Gender is the closed set of demographic hints the pipeline understands.
type Gender string

const (
	GenderMale         Gender = "male"
	GenderFemale       Gender = "female"
	GenderUndetermined Gender = "undetermined"
)

// Unspecified is the placeholder for event attributes the analysis could
// not infer. Fields are never left empty.
const Unspecified = "unspecified"

// ParseGender maps free-form input onto the closed gender set.
func ParseGender(raw string) Gender {
	switch Gender(raw) {
	case GenderMale:
		return GenderMale
	case GenderFemale:
		return GenderFemale
	default:
		return GenderUndetermined
	}
}

// UserRequest is the raw input to a pipeline run. Budget and age are
// pointers so "absent" stays distinguishable from zero.
type UserRequest struct {
	Description       string
	Budget            *float64
	Gender            *Gender
	Age               *int
	ReferenceImageURL string
}

// EventUnderstanding is the normalized interpretation of a user request.
// Interface-supplied budget/gender/age always win over inferred values.
type EventUnderstanding struct {
	EventType      string   `json:"event_type"`
	TimeOfDay      string   `json:"time_of_day"`
	FormalityLevel string   `json:"formality_level"`
	Style          string   `json:"style"`
	Budget         *float64 `json:"budget,omitempty"`
	Gender         Gender   `json:"gender"`
	Age            *int     `json:"age,omitempty"`
}

// DefaultEventUnderstanding returns the record used when analysis yields
// nothing usable.
func DefaultEventUnderstanding() EventUnderstanding {
	return EventUnderstanding{
		EventType:      Unspecified,
		TimeOfDay:      Unspecified,
		FormalityLevel: Unspecified,
		Style:          Unspecified,
		Gender:         GenderUndetermined,
	}
}

// ItemBudget is one planned garment with its declared price ceiling.
type ItemBudget struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	MaxPrice float64 `json:"max_price"`
}

// OutfitPlan is a proposed style concept with per-item ceilings, not yet
// tied to real products. TotalBudget always equals the ceiling sum.
type OutfitPlan struct {
	StyleName      string       `json:"style_name"`
	Description    string       `json:"description"`
	FormalityLevel string       `json:"formality_level"`
	Items          []ItemBudget `json:"items"`
	TotalBudget    float64      `json:"total_budget"`
}

// CeilingTotal sums the declared per-item ceilings.
func (p OutfitPlan) CeilingTotal() float64 {
	var total float64
	for _, item := range p.Items {
		total += item.MaxPrice
	}
	return total
}

// ProductCandidate is one purchasable product returned by the catalog
// provider. Never mutated after creation.
type ProductCandidate struct {
	Name     string  `json:"name"`
	Brand    string  `json:"brand,omitempty"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	URL      string  `json:"url"`
	ImageURL string  `json:"image_url,omitempty"`
	SKU      string  `json:"sku,omitempty"`
	Color    string  `json:"color,omitempty"`
}

// ResolvedItem pairs a planned item with the product chosen for it. The
// product price may diverge from the ceiling; only the outfit-level budget
// gate decides acceptance.
type ResolvedItem struct {
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	MaxPrice      float64          `json:"max_price"`
	ChosenProduct ProductCandidate `json:"chosen_product"`
}

// ResolvedOutfit is an outfit plan with every item matched to a concrete
// product. TotalBudget is recomputed from real prices and is distinct from
// the planning-stage ceiling sum.
type ResolvedOutfit struct {
	StyleName       string         `json:"style_name"`
	Description     string         `json:"description"`
	FormalityLevel  string         `json:"formality_level"`
	TotalBudget     float64        `json:"total_budget"`
	Items           []ResolvedItem `json:"items"`
	PreviewImageURL string         `json:"preview_image_url,omitempty"`
	PreviewPrompt   string         `json:"preview_prompt,omitempty"`
}

// RealTotal sums the chosen product prices.
func (o ResolvedOutfit) RealTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.ChosenProduct.Price
	}
	return total
}

// WithPreview returns a copy of the outfit carrying preview fields. The
// receiver is left untouched.
func (o ResolvedOutfit) WithPreview(imageURL, prompt string) ResolvedOutfit {
	out := o
	out.PreviewImageURL = imageURL
	out.PreviewPrompt = prompt
	return out
}
