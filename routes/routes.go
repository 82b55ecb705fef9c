package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoyacJ/qmt-gateway/config"
	"github.com/GoyacJ/qmt-gateway/handlers"
	"github.com/GoyacJ/qmt-gateway/metrics"
	"github.com/GoyacJ/qmt-gateway/middleware"
	"github.com/GoyacJ/qmt-gateway/service"
)

// NewRouter builds the gin engine with recovery, access logging and HTTP
// metrics installed ahead of the gateway routes.
func NewRouter(cfg config.Config, svc *service.GatewayService, rec *metrics.Recorder, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))
	if rec != nil {
		router.Use(middleware.Metrics(rec))
	}
	RegisterRoutes(router, handlers.NewGatewayHandler(svc, cfg.Mode), cfg.Token, rec)
	return router
}

// RegisterRoutes mounts /health outside the auth gate and everything else,
// /metrics included, behind it.
func RegisterRoutes(router *gin.Engine, h *handlers.GatewayHandler, token string, rec *metrics.Recorder) {
	router.GET("/health", h.Health)

	protected := router.Group("/", middleware.BearerAuth(token))
	if rec != nil {
		protected.GET("/metrics", gin.WrapH(rec.Handler()))
	}

	v1 := protected.Group("/v1")
	{
		v1.GET("/account/balance", h.GetBalance)
		v1.GET("/account/positions", h.GetPositions)

		v1.GET("/market/snapshot", h.GetSnapshot)
		v1.GET("/market/klines", h.GetKlines)
		v1.GET("/market/symbols", h.GetSymbols)

		v1.POST("/orders", h.PlaceOrder)
		v1.POST("/orders/cancel", h.CancelOrder)
	}
}
