package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/GoyacJ/qmt-gateway/adapter"
	"github.com/GoyacJ/qmt-gateway/models"
	"github.com/GoyacJ/qmt-gateway/service"
	"github.com/GoyacJ/qmt-gateway/utils"
)

const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeUnknownSymbol = "UNKNOWN_SYMBOL"
	CodeNotSupported  = "NOT_SUPPORTED"
	CodeTimeout       = "TIMEOUT"
	CodeInternal      = "INTERNAL_ERROR"
)

type GatewayHandler struct {
	Service   *service.GatewayService
	Validator *validator.Validate
	Mode      string
	Now       func() time.Time
}

func NewGatewayHandler(s *service.GatewayService, mode string) *GatewayHandler {
	return &GatewayHandler{
		Service:   s,
		Validator: utils.GetValidator(),
		Mode:      mode,
		Now:       time.Now,
	}
}

// GET /health
func (h *GatewayHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status: "ok",
		Mode:   h.Mode,
		Time:   h.Now().Unix(),
	})
}

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, models.Envelope{Data: data})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: "invalid request: " + err.Error(),
		Code:  CodeValidation,
	})
}

func (h *GatewayHandler) validate(c *gin.Context, req any) bool {
	err := h.Validator.Struct(req)
	if err == nil {
		return true
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:            "validation failed",
		Code:             CodeValidation,
		ValidationErrors: utils.FormatValidationErrors(err),
	})
	return false
}

// respondError maps service errors onto HTTP statuses. Unclassified errors
// are attached to the gin context so the request logger records them.
func respondError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, CodeInternal
	switch {
	case errors.Is(err, adapter.ErrValidation):
		status, code = http.StatusBadRequest, CodeValidation
	case errors.Is(err, adapter.ErrUnknownSymbol):
		status, code = http.StatusBadRequest, CodeUnknownSymbol
	case errors.Is(err, adapter.ErrNotSupported):
		status, code = http.StatusNotImplemented, CodeNotSupported
	case errors.Is(err, context.DeadlineExceeded):
		status, code = http.StatusGatewayTimeout, CodeTimeout
	default:
		_ = c.Error(err)
	}
	c.JSON(status, models.ErrorResponse{Error: err.Error(), Code: code})
}
