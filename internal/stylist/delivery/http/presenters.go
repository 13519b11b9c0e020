package http

import (
	"ai-outfit-assistant/internal/model"
	"ai-outfit-assistant/internal/stylist"
)

// --- Request DTOs ---

type processReq struct {
	Description       string   `json:"description"         binding:"required,min=1,max=2000"`
	Budget            *float64 `json:"budget"              binding:"omitempty,gt=0"`
	Gender            *string  `json:"gender"              binding:"omitempty,oneof=male female undetermined"`
	Age               *int     `json:"age"                 binding:"omitempty,gt=0,lt=120"`
	ReferenceImageURL string   `json:"reference_image_url" binding:"omitempty,url"`
}

func (r processReq) validate() error { return nil }

func (r processReq) toInput() stylist.ProcessInput {
	input := stylist.ProcessInput{
		Description:       r.Description,
		Budget:            r.Budget,
		Age:               r.Age,
		ReferenceImageURL: r.ReferenceImageURL,
	}
	if r.Gender != nil {
		g := model.ParseGender(*r.Gender)
		input.Gender = &g
	}
	return input
}

// --- Response DTOs ---

type processResp struct {
	Event           model.EventUnderstanding `json:"event"`
	OutfitPlans     []model.OutfitPlan       `json:"outfit_plans"`
	ResolvedOutfits []model.ResolvedOutfit   `json:"resolved_outfits"`
}

func (h *handler) newProcessResp(out stylist.ProcessOutput) processResp {
	plans := out.Plans
	if plans == nil {
		plans = []model.OutfitPlan{}
	}
	outfits := out.Outfits
	if outfits == nil {
		outfits = []model.ResolvedOutfit{}
	}
	return processResp{
		Event:           out.Event,
		OutfitPlans:     plans,
		ResolvedOutfits: outfits,
	}
}
