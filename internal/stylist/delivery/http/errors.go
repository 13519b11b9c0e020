package http

import (
	"errors"

	"ai-outfit-assistant/internal/stylist"
)

// mapError translates use-case errors into client-facing ones. Every
// domain error surfaces as-is; anything unknown gets a generic message
// so internals never leak into responses.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, stylist.ErrEmptyDescription),
		errors.Is(err, stylist.ErrInvalidBudget),
		errors.Is(err, stylist.ErrInvalidAge):
		return err
	default:
		return errors.New("failed to process the outfit request")
	}
}
