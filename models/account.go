package models

type Balance struct {
	TotalEquity      float64 `json:"total_equity"`
	AvailableBalance float64 `json:"available_balance"`
	WalletBalance    float64 `json:"wallet_balance"`
	UnrealizedPnL    float64 `json:"unrealized_pnl"`
	MarketValue      float64 `json:"market_value"`
}

// Position is long-only: AvailableQty (sellable today) never exceeds Quantity.
type Position struct {
	Symbol        string  `json:"symbol"`
	Quantity      float64 `json:"quantity"`
	AvailableQty  float64 `json:"available_qty"`
	EntryPrice    float64 `json:"entry_price"`
	LastPrice     float64 `json:"last_price"`
	UnrealizedPnL float64 `json:"unrealized_pnl"`
}
