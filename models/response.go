package models

// Envelope wraps every successful trading response as {"data": ...}.
type Envelope struct {
	Data any `json:"data"`
}

type PositionsData struct {
	Positions []Position `json:"positions"`
}

type KlinesData struct {
	Klines []Kline `json:"klines"`
}

type SymbolsData struct {
	Symbols []string `json:"symbols"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Mode   string `json:"mode"`
	Time   int64  `json:"time"`
}

type ErrorResponse struct {
	Error            string            `json:"error"`
	Code             string            `json:"code"`
	ValidationErrors map[string]string `json:"validation_errors,omitempty"`
}
