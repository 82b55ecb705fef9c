package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/GoyacJ/qmt-gateway/models"
)

// GET /v1/market/snapshot?symbol=XYZ
func (h *GatewayHandler) GetSnapshot(c *gin.Context) {
	var q models.SnapshotQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	if !h.validate(c, q) {
		return
	}

	snap, err := h.Service.GetSnapshot(c.Request.Context(), q.Symbol)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, snap)
}

// GET /v1/market/klines?symbol=XYZ&interval=5m&limit=500
func (h *GatewayHandler) GetKlines(c *gin.Context) {
	var q models.KlineQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	if !h.validate(c, q) {
		return
	}

	klines, err := h.Service.GetKlines(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, models.KlinesData{Klines: klines})
}

// GET /v1/market/symbols?scope=watchlist|sector&sector=XYZ
func (h *GatewayHandler) GetSymbols(c *gin.Context) {
	var q models.SymbolsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	if !h.validate(c, q) {
		return
	}

	symbols, err := h.Service.GetSymbols(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, models.SymbolsData{Symbols: symbols})
}
