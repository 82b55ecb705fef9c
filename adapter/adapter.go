// Package adapter defines the execution backend contract behind the gateway
// and the backends that satisfy it.
package adapter

import (
	"context"

	"github.com/GoyacJ/qmt-gateway/models"
)

// Adapter is the capability set every execution backend implements. Methods
// must be safe for concurrent use. A live backend may block on network I/O
// and must honor ctx; callers treat PlaceOrder and CancelOrder as able to
// time out with an unknown outcome and retry with the same client_req_id.
type Adapter interface {
	Name() string

	// GetBalance returns ErrNotSupported when the account cannot be resolved.
	GetBalance(ctx context.Context, accountID string) (*models.Balance, error)
	// GetPositions may return an empty slice. Order is stable across calls.
	GetPositions(ctx context.Context, accountID string) ([]models.Position, error)
	// GetSnapshot returns ErrUnknownSymbol for symbols that are not tradable.
	GetSnapshot(ctx context.Context, symbol string) (*models.Snapshot, error)
	// GetKlines returns exactly limit candles in ascending open time, the
	// newest one closing at or before the current time.
	GetKlines(ctx context.Context, symbol, interval string, limit int) ([]models.Kline, error)
	// GetSymbols degrades to the default watchlist for an unknown sector.
	GetSymbols(ctx context.Context, scope models.SymbolScope, sector string) ([]string, error)
	// PlaceOrder returns ErrValidation when quantity < 1.
	PlaceOrder(ctx context.Context, req *models.OrderRequest) (*models.Order, error)
	// CancelOrder reports an unknown order id as a NOT_FOUND result, not an error.
	CancelOrder(ctx context.Context, req *models.CancelOrderRequest) (*models.CancelResult, error)
}
