// internal/core/domain/candle/types.go

package candle

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Candle - нормализованная свеча биржи
type Candle struct {
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
	Timestamp time.Time       `json:"timestamp"`
	Source    string          `json:"source"`
}

// Validate проверяет инвариант high >= max(open, close), low <= min(open, close)
func (c Candle) Validate() error {
	if c.High.LessThan(decimal.Max(c.Open, c.Close)) {
		return fmt.Errorf("candle %s: high %s below body", c.Timestamp.UTC().Format(time.RFC3339), c.High)
	}
	if c.Low.GreaterThan(decimal.Min(c.Open, c.Close)) {
		return fmt.Errorf("candle %s: low %s above body", c.Timestamp.UTC().Format(time.RFC3339), c.Low)
	}
	if c.Low.IsNegative() {
		return fmt.Errorf("candle %s: negative low %s", c.Timestamp.UTC().Format(time.RFC3339), c.Low)
	}
	return nil
}

// IsBullish - тело растущее
func (c Candle) IsBullish() bool {
	return c.Close.GreaterThan(c.Open)
}

// IsBearish - тело падающее
func (c Candle) IsBearish() bool {
	return c.Close.LessThan(c.Open)
}

// SortAscending упорядочивает свечи по времени (старые -> новые)
func SortAscending(candles []Candle) {
	sort.SliceStable(candles, func(i, j int) bool {
		return candles[i].Timestamp.Before(candles[j].Timestamp)
	})
}

// Closes возвращает цены закрытия для расчета индикаторов
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close.InexactFloat64()
	}
	return closes
}

// Last возвращает последнюю свечу
func Last(candles []Candle) (Candle, bool) {
	if len(candles) == 0 {
		return Candle{}, false
	}
	return candles[len(candles)-1], true
}

// Tail возвращает последние n свечей (или все, если их меньше)
func Tail(candles []Candle, n int) []Candle {
	if n <= 0 || len(candles) <= n {
		return candles
	}
	return candles[len(candles)-n:]
}
