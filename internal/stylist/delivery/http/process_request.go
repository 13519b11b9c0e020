package http

import (
	"github.com/gin-gonic/gin"
)

// processProcessReq binds and validates the outfit request body.
func (h *handler) processProcessReq(c *gin.Context) (processReq, error) {
	var req processReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}
