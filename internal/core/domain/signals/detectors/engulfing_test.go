package detectors

import (
	"testing"

	"github.com/shopspring/decimal"

	"crypto-engulfing-alert-bot/internal/core/domain/candle"
	"crypto-engulfing-alert-bot/internal/core/domain/signals"
)

func body(open, close float64) candle.Candle {
	o, c := decimal.NewFromFloat(open), decimal.NewFromFloat(close)
	return candle.Candle{Open: o, Close: c, High: decimal.Max(o, c), Low: decimal.Min(o, c)}
}

func TestDetectEngulfing(t *testing.T) {
	tests := []struct {
		name       string
		prev, curr candle.Candle
		want       signals.Signal
	}{
		{"bullish engulfing", body(100, 90), body(88, 105), signals.Bullish},
		{"bearish engulfing", body(90, 100), body(102, 85), signals.Bearish},
		{"identical candles", body(100, 105), body(100, 105), signals.None},
		{"doji pair", body(100, 100), body(100, 100), signals.None},
		{"bullish body too small", body(100, 90), body(91, 99), signals.None},
		{"bullish open above prev close", body(100, 90), body(92, 105), signals.None},
		{"bearish close above prev open", body(90, 100), body(102, 95), signals.None},
		{"same direction", body(90, 100), body(95, 110), signals.None},
		{"touching prev open is not enough", body(100, 90), body(88, 100), signals.None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectEngulfing(tt.prev, tt.curr); got != tt.want {
				t.Errorf("DetectEngulfing = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDetectEngulfingExhaustive(t *testing.T) {
	// перебор небольшой сетки цен против прямой формулы
	prices := []float64{1, 2, 3, 4, 5}
	for _, po := range prices {
		for _, pc := range prices {
			for _, co := range prices {
				for _, cc := range prices {
					want := signals.None
					switch {
					case pc < po && cc > co && cc > po && co < pc:
						want = signals.Bullish
					case pc > po && cc < co && cc < po && co > pc:
						want = signals.Bearish
					}
					if got := DetectEngulfing(body(po, pc), body(co, cc)); got != want {
						t.Fatalf("prev(%v,%v) curr(%v,%v) = %s, want %s", po, pc, co, cc, got, want)
					}
				}
			}
		}
	}
}

func TestDetectLatest(t *testing.T) {
	seq := []candle.Candle{body(50, 60), body(100, 90), body(88, 105)}
	if got := DetectLatest(seq); got != signals.Bullish {
		t.Errorf("DetectLatest = %s", got)
	}
	if got := DetectLatest(seq[:1]); got != signals.None {
		t.Errorf("single candle = %s", got)
	}
}
