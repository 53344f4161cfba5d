// internal/core/domain/signals/detectors/engulfing.go
package detectors

import (
	"crypto-engulfing-alert-bot/internal/core/domain/candle"
	"crypto-engulfing-alert-bot/internal/core/domain/signals"
)

// DetectEngulfing проверяет паттерн поглощения на паре соседних свечей
func DetectEngulfing(prev, curr candle.Candle) signals.Signal {
	// бычье: падающая свеча, затем растущая, тело которой ее перекрывает
	if prev.Close.LessThan(prev.Open) &&
		curr.Close.GreaterThan(curr.Open) &&
		curr.Close.GreaterThan(prev.Open) &&
		curr.Open.LessThan(prev.Close) {
		return signals.Bullish
	}

	// медвежье: зеркально
	if prev.Close.GreaterThan(prev.Open) &&
		curr.Close.LessThan(curr.Open) &&
		curr.Close.LessThan(prev.Open) &&
		curr.Open.GreaterThan(prev.Close) {
		return signals.Bearish
	}

	return signals.None
}

// DetectLatest проверяет две последние свечи последовательности
func DetectLatest(candles []candle.Candle) signals.Signal {
	if len(candles) < 2 {
		return signals.None
	}
	return DetectEngulfing(candles[len(candles)-2], candles[len(candles)-1])
}
