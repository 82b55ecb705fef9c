package adapter

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GoyacJ/qmt-gateway/models"
)

var (
	klineUpTick   = decimal.RequireFromString("0.8")
	klineDownTick = decimal.RequireFromString("-0.5")
	klineWick     = decimal.RequireFromString("0.4")
	klineBaseVol  = int64(1200)
)

// generateKlines walks a fixed up/down pattern from start so the series is
// reproducible for a given clock. The newest candle is the last completed one:
// it closes just before now truncated to the interval boundary. Every candle
// satisfies low <= open,close <= high.
func generateKlines(start decimal.Decimal, now time.Time, step time.Duration, limit int) []models.Kline {
	stepMs := step.Milliseconds()
	nowMs := now.UnixMilli()
	base := nowMs - nowMs%stepMs

	out := make([]models.Kline, limit)
	price := start
	for i := 0; i < limit; i++ {
		openTime := base - stepMs*int64(limit-i)

		open := price
		delta := klineUpTick
		if i%2 == 1 {
			delta = klineDownTick
		}
		closePx := open.Add(delta)
		high := decimal.Max(open, closePx).Add(klineWick)
		low := decimal.Min(open, closePx).Sub(klineWick)
		volume := decimal.NewFromInt(klineBaseVol + int64(i))

		out[i] = models.Kline{
			OpenTime:    openTime,
			CloseTime:   openTime + stepMs - 1,
			Open:        open.InexactFloat64(),
			High:        high.InexactFloat64(),
			Low:         low.InexactFloat64(),
			Close:       closePx.InexactFloat64(),
			Volume:      volume.InexactFloat64(),
			QuoteVolume: volume.Mul(closePx).InexactFloat64(),
		}
		price = closePx
	}
	return out
}
