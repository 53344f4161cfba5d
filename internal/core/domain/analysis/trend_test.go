package analysis

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"crypto-engulfing-alert-bot/internal/core/domain/candle"
)

func series(closes ...float64) []candle.Candle {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]candle.Candle, len(closes))
	for i, c := range closes {
		d := decimal.NewFromFloat(c)
		out[i] = candle.Candle{Open: d, High: d, Low: d, Close: d, Timestamp: start.Add(time.Duration(i) * time.Hour)}
	}
	return out
}

func flatThen(n int, base, last float64) []candle.Candle {
	closes := make([]float64, 0, n+1)
	for i := 0; i < n; i++ {
		closes = append(closes, base)
	}
	return series(append(closes, last)...)
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name    string
		candles []candle.Candle
		want    Trend
	}{
		{"above deadband", flatThen(20, 100, 103), TrendUp},
		{"inside deadband", flatThen(20, 100, 99), TrendFlat},
		{"below deadband", flatThen(20, 100, 97), TrendDown},
		{"exact boundary is flat", flatThen(20, 100, 102), TrendFlat},
		{"exactly period candles", flatThen(19, 100, 103), TrendUp},
		{"too few candles", flatThen(10, 100, 103), TrendUndefined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyTrend(tt.candles, DefaultTrendPeriod, DefaultDeadbandPct); got != tt.want {
				t.Errorf("ClassifyTrend = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyTrendUsesTrailingWindow(t *testing.T) {
	// старые свечи по 50 не должны влиять на среднюю по последним 20
	closes := make([]float64, 0, 41)
	for i := 0; i < 20; i++ {
		closes = append(closes, 50)
	}
	for i := 0; i < 20; i++ {
		closes = append(closes, 100)
	}
	closes = append(closes, 101)

	if got := ClassifyTrend(series(closes...), 20, 2); got != TrendFlat {
		t.Errorf("ClassifyTrend = %s, want flat", got)
	}
}

func TestClassifyTrendBadPeriod(t *testing.T) {
	if got := ClassifyTrend(flatThen(5, 100, 110), 1, 2); got != TrendUndefined {
		t.Errorf("period 1: got %s", got)
	}
	if got := ClassifyTrend(nil, 20, 2); got != TrendUndefined {
		t.Errorf("nil candles: got %s", got)
	}
}
