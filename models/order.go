package models

type Order struct {
	OrderID     string      `json:"order_id"`
	ClientReqID string      `json:"client_req_id"`
	AccountID   string      `json:"account_id"`
	Market      string      `json:"market"`
	Symbol      string      `json:"symbol"`
	Side        OrderSide   `json:"side"`
	Quantity    int64       `json:"quantity"`
	OrderType   OrderType   `json:"order_type"`
	Status      OrderStatus `json:"status"`
	AvgPrice    float64     `json:"avg_price"`
	Commission  float64     `json:"commission"`
	CreatedAt   int64       `json:"created_at"` // epoch ms
}

type CancelResult struct {
	OrderID string      `json:"order_id"`
	Status  OrderStatus `json:"status"`
}
