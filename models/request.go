package models

type AccountQuery struct {
	AccountID string `form:"account_id" validate:"required"`
}

type SnapshotQuery struct {
	Symbol string `form:"symbol" validate:"required"`
}

type KlineQuery struct {
	Symbol   string `form:"symbol" validate:"required"`
	Interval string `form:"interval,default=5m" validate:"required,interval"`
	Limit    int    `form:"limit,default=500" validate:"min=1,max=2000"`
}

type SymbolsQuery struct {
	Scope  string `form:"scope,default=watchlist" validate:"oneof=watchlist sector"`
	Sector string `form:"sector"`
}

type OrderRequest struct {
	AccountID   string    `json:"account_id" validate:"required"`
	Market      string    `json:"market"`
	Symbol      string    `json:"symbol" validate:"required"`
	Side        OrderSide `json:"side" validate:"required,oneof=BUY SELL"`
	Quantity    int64     `json:"quantity" validate:"gte=1"`
	OrderType   OrderType `json:"order_type" validate:"oneof=MARKET"`
	ClientReqID string    `json:"client_req_id" validate:"required"`
}

type CancelOrderRequest struct {
	AccountID string `json:"account_id" validate:"required"`
	OrderID   string `json:"order_id" validate:"required"`
}
