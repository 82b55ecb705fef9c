package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/GoyacJ/qmt-gateway/models"
)

// GET /v1/account/balance?account_id=XYZ
func (h *GatewayHandler) GetBalance(c *gin.Context) {
	var q models.AccountQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	if !h.validate(c, q) {
		return
	}

	balance, err := h.Service.GetBalance(c.Request.Context(), q.AccountID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, balance)
}

// GET /v1/account/positions?account_id=XYZ
func (h *GatewayHandler) GetPositions(c *gin.Context) {
	var q models.AccountQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	if !h.validate(c, q) {
		return
	}

	positions, err := h.Service.GetPositions(c.Request.Context(), q.AccountID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, models.PositionsData{Positions: positions})
}
