package service

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/GoyacJ/qmt-gateway/adapter"
	"github.com/GoyacJ/qmt-gateway/metrics"
	"github.com/GoyacJ/qmt-gateway/models"
)

// GatewayService is the single entry point from the transport layer into the
// active execution adapter.
type GatewayService struct {
	Adapter adapter.Adapter
	Metrics *metrics.Recorder
	Logger  *zap.Logger
}

func NewGatewayService(a adapter.Adapter, rec *metrics.Recorder, logger *zap.Logger) *GatewayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GatewayService{
		Adapter: a,
		Metrics: rec,
		Logger:  logger,
	}
}

func (s *GatewayService) observe(op string, start time.Time, err error) {
	if s.Metrics != nil {
		s.Metrics.ObserveAdapterCall(s.Adapter.Name(), op, time.Since(start), err)
	}
}

func (s *GatewayService) GetBalance(ctx context.Context, accountID string) (b *models.Balance, err error) {
	defer func(start time.Time) { s.observe("get_balance", start, err) }(time.Now())
	return s.Adapter.GetBalance(ctx, strings.TrimSpace(accountID))
}

func (s *GatewayService) GetPositions(ctx context.Context, accountID string) (p []models.Position, err error) {
	defer func(start time.Time) { s.observe("get_positions", start, err) }(time.Now())
	p, err = s.Adapter.GetPositions(ctx, strings.TrimSpace(accountID))
	if err == nil && p == nil {
		p = []models.Position{}
	}
	return p, err
}

func (s *GatewayService) GetSnapshot(ctx context.Context, symbol string) (snap *models.Snapshot, err error) {
	defer func(start time.Time) { s.observe("get_snapshot", start, err) }(time.Now())
	return s.Adapter.GetSnapshot(ctx, adapter.NormalizeSymbol(symbol))
}

func (s *GatewayService) GetKlines(ctx context.Context, q models.KlineQuery) (k []models.Kline, err error) {
	defer func(start time.Time) { s.observe("get_klines", start, err) }(time.Now())
	return s.Adapter.GetKlines(ctx, adapter.NormalizeSymbol(q.Symbol), strings.ToLower(q.Interval), q.Limit)
}

func (s *GatewayService) GetSymbols(ctx context.Context, q models.SymbolsQuery) (syms []string, err error) {
	defer func(start time.Time) { s.observe("get_symbols", start, err) }(time.Now())
	syms, err = s.Adapter.GetSymbols(ctx, models.SymbolScope(q.Scope), q.Sector)
	if err == nil && syms == nil {
		syms = []string{}
	}
	return syms, err
}

// PlaceOrder fills in request defaults and re-checks quantity so a bad
// request never reaches the adapter, whichever transport sent it.
func (s *GatewayService) PlaceOrder(ctx context.Context, req *models.OrderRequest) (order *models.Order, err error) {
	if req == nil {
		return nil, errors.Wrap(adapter.ErrValidation, "order request is required")
	}
	normalized := *req
	normalized.Symbol = adapter.NormalizeSymbol(req.Symbol)
	normalized.Side = models.OrderSide(strings.ToUpper(strings.TrimSpace(string(req.Side))))
	normalized.OrderType = models.OrderType(strings.ToUpper(strings.TrimSpace(string(req.OrderType))))
	if normalized.Market == "" {
		normalized.Market = models.DefaultMarket
	}
	if normalized.OrderType == "" {
		normalized.OrderType = models.OrderTypeMarket
	}

	log := s.Logger.With(
		zap.String("account_id", normalized.AccountID),
		zap.String("client_req_id", normalized.ClientReqID),
		zap.String("symbol", normalized.Symbol),
		zap.String("side", string(normalized.Side)),
		zap.Int64("quantity", normalized.Quantity),
	)

	if normalized.Quantity < 1 {
		s.recordOrder(normalized.Side, "REJECTED")
		return nil, errors.Wrapf(adapter.ErrValidation, "quantity must be at least 1, got %d", normalized.Quantity)
	}

	start := time.Now()
	order, err = s.Adapter.PlaceOrder(ctx, &normalized)
	s.observe("place_order", start, err)
	if err != nil {
		s.recordOrder(normalized.Side, "REJECTED")
		log.Warn("order placement failed", zap.Error(err))
		return nil, err
	}

	s.recordOrder(order.Side, string(order.Status))
	log.Info("order placed",
		zap.String("order_id", order.OrderID),
		zap.String("status", string(order.Status)),
		zap.Float64("avg_price", order.AvgPrice))
	return order, nil
}

func (s *GatewayService) CancelOrder(ctx context.Context, req *models.CancelOrderRequest) (res *models.CancelResult, err error) {
	if req == nil || strings.TrimSpace(req.OrderID) == "" {
		return nil, errors.Wrap(adapter.ErrValidation, "order id is required")
	}
	normalized := *req
	normalized.OrderID = strings.TrimSpace(req.OrderID)

	start := time.Now()
	res, err = s.Adapter.CancelOrder(ctx, &normalized)
	s.observe("cancel_order", start, err)
	if err != nil {
		s.Logger.Warn("order cancel failed", zap.String("order_id", normalized.OrderID), zap.Error(err))
		return nil, err
	}

	if s.Metrics != nil {
		s.Metrics.ObserveCancel(string(res.Status))
	}
	s.Logger.Info("order cancel processed",
		zap.String("account_id", normalized.AccountID),
		zap.String("order_id", res.OrderID),
		zap.String("status", string(res.Status)))
	return res, nil
}

func (s *GatewayService) recordOrder(side models.OrderSide, status string) {
	if s.Metrics != nil {
		s.Metrics.ObserveOrder(string(side), status)
	}
}
