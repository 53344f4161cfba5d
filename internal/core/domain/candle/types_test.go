package candle

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func mk(open, high, low, close float64, ts time.Time) Candle {
	return Candle{
		Open:      decimal.NewFromFloat(open),
		High:      decimal.NewFromFloat(high),
		Low:       decimal.NewFromFloat(low),
		Close:     decimal.NewFromFloat(close),
		Timestamp: ts,
	}
}

func TestValidate(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		c       Candle
		wantErr bool
	}{
		{"valid bullish", mk(100, 110, 95, 105, now), false},
		{"valid doji", mk(100, 100, 100, 100, now), false},
		{"high below close", mk(100, 104, 95, 105, now), true},
		{"low above open", mk(100, 110, 101, 105, now), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSortAscendingAndTail(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := []Candle{
		mk(3, 3, 3, 3, base.Add(2*time.Hour)),
		mk(1, 1, 1, 1, base),
		mk(2, 2, 2, 2, base.Add(time.Hour)),
	}

	SortAscending(candles)
	for i, want := range []float64{1, 2, 3} {
		if got := candles[i].Close.InexactFloat64(); got != want {
			t.Fatalf("candles[%d].Close = %v, want %v", i, got, want)
		}
	}

	tail := Tail(candles, 2)
	if len(tail) != 2 || tail[0].Close.InexactFloat64() != 2 {
		t.Errorf("Tail returned %v", Closes(tail))
	}

	last, ok := Last(candles)
	if !ok || last.Close.InexactFloat64() != 3 {
		t.Errorf("Last = %v, %v", last, ok)
	}
	if _, ok := Last(nil); ok {
		t.Error("Last(nil) should report false")
	}
}
