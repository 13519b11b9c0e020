package http

import (
	"github.com/gin-gonic/gin"

	"ai-outfit-assistant/internal/middleware"
	"ai-outfit-assistant/internal/model"
	"ai-outfit-assistant/pkg/response"
)

// Process godoc
// @Summary     Build outfit proposals for an event
// @Description Takes a free-form event description and returns the structured
// @Description event understanding, the proposed outfit plans, and the outfits
// @Description resolved against the product catalog. When a reference image is
// @Description supplied, resolved outfits may carry a rendered preview image.
// @Tags        Stylist
// @Accept      json
// @Produce     json
// @Param       body body processReq true "Event description and optional constraints"
// @Success     200 {object} processResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/outfits [POST]
func (h *handler) Process(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processProcessReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	sc := model.Scope{
		UserID:    c.GetHeader("X-User-ID"),
		RequestID: c.GetString(middleware.RequestIDKey),
	}

	output, err := h.uc.Process(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Process: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newProcessResp(output))
}
