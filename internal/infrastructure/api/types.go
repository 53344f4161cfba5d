// internal/infrastructure/api/types.go
package api

import (
	"context"
	"time"

	"crypto-engulfing-alert-bot/internal/core/domain/candle"
)

// DefaultUserAgent - некоторые биржи отдают HTML-заглушку клиентам без User-Agent
const DefaultUserAgent = "CryptoEngulfingAlertBot/1.0"

// CandleProvider интерфейс для клиентов бирж
type CandleProvider interface {
	// Name - идентификатор провайдера (binance, bybit, kucoin, ...)
	Name() string
	// FetchCandles возвращает свечи в хронологическом порядке
	FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]candle.Candle, error)
}

// ClientOptions - общие настройки HTTP-клиентов бирж
type ClientOptions struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// ClampedTimeout ограничивает таймаут диапазоном 10-15 секунд
func (o ClientOptions) ClampedTimeout() time.Duration {
	switch {
	case o.Timeout <= 0:
		return 10 * time.Second
	case o.Timeout < 10*time.Second:
		return 10 * time.Second
	case o.Timeout > 15*time.Second:
		return 15 * time.Second
	default:
		return o.Timeout
	}
}

// UA возвращает непустой User-Agent
func (o ClientOptions) UA() string {
	if o.UserAgent == "" {
		return DefaultUserAgent
	}
	return o.UserAgent
}
