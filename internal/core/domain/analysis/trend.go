// internal/core/domain/analysis/trend.go
package analysis

import (
	"github.com/markcheno/go-talib"

	"crypto-engulfing-alert-bot/internal/core/domain/candle"
)

// Trend - направление тренда относительно скользящей средней
type Trend string

const (
	TrendUp        Trend = "up"
	TrendDown      Trend = "down"
	TrendFlat      Trend = "flat"
	TrendUndefined Trend = "undefined"
)

// Параметры по умолчанию
const (
	DefaultTrendPeriod = 20
	DefaultDeadbandPct = 2.0
	minimumTrendPeriod = 2
	percentDenominator = 100.0
)

// Label - подпись тренда для сообщений
func (t Trend) Label() string {
	switch t {
	case TrendUp:
		return "⬆️ восходящий"
	case TrendDown:
		return "⬇️ нисходящий"
	case TrendFlat:
		return "➡️ боковой"
	default:
		return "❔ не определен"
	}
}

// ClassifyTrend сравнивает последнюю цену закрытия со средней по окну period.
// Последняя (формирующаяся) свеча в среднюю не входит.
func ClassifyTrend(candles []candle.Candle, period int, deadbandPct float64) Trend {
	if period < minimumTrendPeriod || len(candles) < period {
		return TrendUndefined
	}

	closes := candle.Closes(candles)
	latest := closes[len(closes)-1]

	history := closes[:len(closes)-1]
	window := period
	if len(history) < window {
		window = len(history)
	}
	history = history[len(history)-window:]

	mean := sma(history, window)
	if mean <= 0 {
		return TrendUndefined
	}

	band := deadbandPct / percentDenominator
	switch {
	case latest > mean*(1+band):
		return TrendUp
	case latest < mean*(1-band):
		return TrendDown
	default:
		return TrendFlat
	}
}

// sma - простая средняя по последнему окну
func sma(values []float64, window int) float64 {
	if window == 1 {
		return values[len(values)-1]
	}
	out := talib.Sma(values, window)
	return out[len(out)-1]
}
