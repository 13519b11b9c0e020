package http

import (
	"github.com/gin-gonic/gin"

	"ai-outfit-assistant/internal/stylist"
	"ai-outfit-assistant/pkg/log"
)

// Handler is the public interface for the stylist HTTP delivery layer.
type Handler interface {
	Process(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc stylist.UseCase
}

// New creates a new HTTP handler for the stylist domain.
func New(l log.Logger, uc stylist.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
