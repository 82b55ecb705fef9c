package models

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

type OrderSide string
type OrderType string
type OrderStatus string
type SymbolScope string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"

	OrderTypeMarket OrderType = "MARKET"

	OrderStatusFilled   OrderStatus = "FILLED"
	OrderStatusCanceled OrderStatus = "CANCELED"
	// OrderStatusNotFound is only reported by a cancel of an unknown order id.
	OrderStatusNotFound OrderStatus = "NOT_FOUND"

	SymbolScopeWatchlist SymbolScope = "watchlist"
	SymbolScopeSector    SymbolScope = "sector"
)

const (
	DefaultMarket      = "CN-A"
	DefaultInterval    = "5m"
	DefaultKlineLimit  = 500
	MaxKlineLimit      = 2000
	DefaultSymbolScope = SymbolScopeWatchlist
)

var intervals = map[string]time.Duration{
	"1m":  time.Minute,
	"3m":  3 * time.Minute,
	"5m":  5 * time.Minute,
	"15m": 15 * time.Minute,
	"30m": 30 * time.Minute,
	"1h":  time.Hour,
	"2h":  2 * time.Hour,
	"4h":  4 * time.Hour,
	"1d":  24 * time.Hour,
}

// ParseInterval converts a kline interval code such as "5m" into its duration.
func ParseInterval(value string) (time.Duration, error) {
	d, ok := intervals[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return 0, errors.Errorf("unsupported interval %q", value)
	}
	return d, nil
}

// IsValidInterval reports whether ParseInterval accepts value.
func IsValidInterval(value string) bool {
	_, err := ParseInterval(value)
	return err == nil
}
