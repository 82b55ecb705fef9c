package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoyacJ/qmt-gateway/models"
)

// POST /v1/orders
func (h *GatewayHandler) PlaceOrder(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	req.Side = models.OrderSide(strings.ToUpper(strings.TrimSpace(string(req.Side))))
	req.OrderType = models.OrderType(strings.ToUpper(strings.TrimSpace(string(req.OrderType))))
	if req.OrderType == "" {
		req.OrderType = models.OrderTypeMarket
	}
	if strings.TrimSpace(req.Market) == "" {
		req.Market = models.DefaultMarket
	}
	if !h.validate(c, req) {
		return
	}

	order, err := h.Service.PlaceOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, order)
}

// POST /v1/orders/cancel
func (h *GatewayHandler) CancelOrder(c *gin.Context) {
	var req models.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if !h.validate(c, req) {
		return
	}

	res, err := h.Service.CancelOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, res)
}
