// internal/infrastructure/api/normalize.go
package api

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"crypto-engulfing-alert-bot/internal/core/domain/candle"
)

// Decimal парсит поле ответа (строку или число) в decimal
func Decimal(provider, field string, v gjson.Result) (decimal.Decimal, error) {
	if !v.Exists() {
		return decimal.Zero, ParseError(provider, fmt.Sprintf("missing field %s", field), nil)
	}
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, ParseError(provider, fmt.Sprintf("bad decimal in %s: %q", field, v.String()), err)
	}
	return d, nil
}

// UnixTime парсит время в миллисекундах или секундах
func UnixTime(provider, field string, v gjson.Result, unit time.Duration) (time.Time, error) {
	if !v.Exists() {
		return time.Time{}, ParseError(provider, fmt.Sprintf("missing field %s", field), nil)
	}
	n, err := strconv.ParseInt(v.String(), 10, 64)
	if err != nil {
		return time.Time{}, ParseError(provider, fmt.Sprintf("bad timestamp in %s: %q", field, v.String()), err)
	}
	switch unit {
	case time.Second:
		return time.Unix(n, 0).UTC(), nil
	default:
		return time.UnixMilli(n).UTC(), nil
	}
}

// Finalize проверяет инварианты, сортирует по времени и обрезает до limit
func Finalize(provider string, candles []candle.Candle, limit int) ([]candle.Candle, error) {
	for _, c := range candles {
		if err := c.Validate(); err != nil {
			return nil, ParseError(provider, "candle invariant violated", err)
		}
	}
	candle.SortAscending(candles)
	return candle.Tail(candles, limit), nil
}

// ValidateLimit - для паттерна нужны минимум две свечи
func ValidateLimit(provider string, limit int) error {
	if limit < 2 {
		return fmt.Errorf("%s: limit must be >= 2, got %d", provider, limit)
	}
	return nil
}
