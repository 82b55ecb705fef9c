package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GoyacJ/qmt-gateway/models"
	"github.com/GoyacJ/qmt-gateway/repository"
)

const MockName = "mock"

// Reference values served by the mock. They are constants so round-trip
// tests can compare exactly.
var (
	mockBalance = models.Balance{
		TotalEquity:      1_000_000,
		AvailableBalance: 650_000,
		WalletBalance:    650_000,
		UnrealizedPnL:    0,
		MarketValue:      350_000,
	}
	mockPositions = []models.Position{
		{
			Symbol:        "600519.SH",
			Quantity:      500,
			AvailableQty:  300,
			EntryPrice:    1680.0,
			LastPrice:     1698.0,
			UnrealizedPnL: 9000.0,
		},
	}
	mockLastPrice  = 1698.0
	mockUpperLimit = 1867.8
	mockLowerLimit = 1528.2
)

// MockAdapter serves deterministic market data and fills every order
// immediately at the snapshot last price. Its order registry lives for the
// lifetime of the adapter.
type MockAdapter struct {
	orders *repository.OrderRepository
	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

type MockOption func(*MockAdapter)

// WithClock overrides the wall clock used for klines and order timestamps.
func WithClock(now func() time.Time) MockOption {
	return func(m *MockAdapter) { m.now = now }
}

// WithIDGenerator overrides order id generation.
func WithIDGenerator(newID func() string) MockOption {
	return func(m *MockAdapter) { m.newID = newID }
}

func WithLogger(logger *zap.Logger) MockOption {
	return func(m *MockAdapter) { m.logger = logger }
}

func NewMockAdapter(opts ...MockOption) *MockAdapter {
	m := &MockAdapter{
		orders: repository.NewOrderRepository(),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MockAdapter) Name() string { return MockName }

// Orders exposes the registry read side, mainly for tests and diagnostics.
func (m *MockAdapter) Orders() []models.Order {
	return m.orders.ListOrders()
}

func (m *MockAdapter) GetBalance(ctx context.Context, accountID string) (*models.Balance, error) {
	if accountID == "" {
		return nil, errors.Wrap(ErrNotSupported, "empty account id cannot be resolved")
	}
	b := mockBalance
	return &b, nil
}

func (m *MockAdapter) GetPositions(ctx context.Context, accountID string) ([]models.Position, error) {
	if accountID == "" {
		return nil, errors.Wrap(ErrNotSupported, "empty account id cannot be resolved")
	}
	out := make([]models.Position, len(mockPositions))
	copy(out, mockPositions)
	return out, nil
}

func (m *MockAdapter) GetSnapshot(ctx context.Context, symbol string) (*models.Snapshot, error) {
	normalized := NormalizeSymbol(symbol)
	if !IsTradable(normalized) {
		return nil, errors.Wrapf(ErrUnknownSymbol, "%q", symbol)
	}
	return &models.Snapshot{
		Symbol:     normalized,
		LastPrice:  mockLastPrice,
		UpperLimit: mockUpperLimit,
		LowerLimit: mockLowerLimit,
	}, nil
}

func (m *MockAdapter) GetKlines(ctx context.Context, symbol, interval string, limit int) ([]models.Kline, error) {
	if !IsTradable(symbol) {
		return nil, errors.Wrapf(ErrUnknownSymbol, "%q", symbol)
	}
	step, err := models.ParseInterval(interval)
	if err != nil {
		return nil, errors.Wrap(ErrValidation, err.Error())
	}
	if limit < 1 || limit > models.MaxKlineLimit {
		return nil, errors.Wrapf(ErrValidation, "limit must be within 1..%d, got %d", models.MaxKlineLimit, limit)
	}
	return generateKlines(decimal.NewFromFloat(mockLastPrice), m.now(), step, limit), nil
}

func (m *MockAdapter) GetSymbols(ctx context.Context, scope models.SymbolScope, sector string) ([]string, error) {
	src := defaultWatchlist
	if scope == models.SymbolScopeSector {
		if syms, ok := lookupSector(sector); ok {
			src = syms
		}
	}
	out := make([]string, len(src))
	copy(out, src)
	return out, nil
}

func (m *MockAdapter) PlaceOrder(ctx context.Context, req *models.OrderRequest) (*models.Order, error) {
	if req == nil {
		return nil, errors.Wrap(ErrValidation, "order request is required")
	}
	if req.Quantity < 1 {
		return nil, errors.Wrapf(ErrValidation, "quantity must be at least 1, got %d", req.Quantity)
	}
	if req.Side != models.OrderSideBuy && req.Side != models.OrderSideSell {
		return nil, errors.Wrapf(ErrValidation, "unsupported side %q", req.Side)
	}

	snap, err := m.GetSnapshot(ctx, req.Symbol)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	order := models.Order{
		OrderID:     m.newID(),
		ClientReqID: req.ClientReqID,
		AccountID:   req.AccountID,
		Market:      req.Market,
		Symbol:      snap.Symbol,
		Side:        req.Side,
		Quantity:    req.Quantity,
		OrderType:   req.OrderType,
		Status:      models.OrderStatusFilled,
		AvgPrice:    snap.LastPrice,
		Commission:  0,
		CreatedAt:   m.now().UnixMilli(),
	}
	if order.Market == "" {
		order.Market = models.DefaultMarket
	}
	if order.OrderType == "" {
		order.OrderType = models.OrderTypeMarket
	}

	if err := m.orders.CreateOrder(order); err != nil {
		return nil, errors.Wrap(err, "store order")
	}
	m.logger.Debug("mock order filled",
		zap.String("order_id", order.OrderID),
		zap.String("symbol", order.Symbol),
		zap.Float64("avg_price", order.AvgPrice))
	return &order, nil
}

// CancelOrder does not guard on status: a FILLED order becomes CANCELED,
// matching the reference gateway. Canceling twice stays CANCELED.
func (m *MockAdapter) CancelOrder(ctx context.Context, req *models.CancelOrderRequest) (*models.CancelResult, error) {
	if req == nil || req.OrderID == "" {
		return nil, errors.Wrap(ErrValidation, "order id is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	order, ok := m.orders.CancelOrder(req.OrderID)
	if !ok {
		return &models.CancelResult{OrderID: req.OrderID, Status: models.OrderStatusNotFound}, nil
	}
	return &models.CancelResult{OrderID: order.OrderID, Status: order.Status}, nil
}
