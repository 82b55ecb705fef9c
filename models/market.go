package models

// Snapshot carries the last price and the session price-limit band.
// A zero limit means the band is unknown or not applicable.
type Snapshot struct {
	Symbol     string  `json:"symbol"`
	LastPrice  float64 `json:"last_price"`
	UpperLimit float64 `json:"upper_limit"`
	LowerLimit float64 `json:"lower_limit"`
}

type Kline struct {
	OpenTime    int64   `json:"openTime"`
	CloseTime   int64   `json:"closeTime"`
	Open        float64 `json:"open"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	Close       float64 `json:"close"`
	Volume      float64 `json:"volume"`
	QuoteVolume float64 `json:"quoteVolume"`
}
