// internal/core/domain/signals/types.go
package signals

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crypto-engulfing-alert-bot/internal/core/domain/analysis"
	"crypto-engulfing-alert-bot/internal/core/domain/candle"
)

// Signal - результат проверки паттерна поглощения
type Signal string

const (
	Bullish Signal = "bullish"
	Bearish Signal = "bearish"
	None    Signal = "none"
)

// Label - подпись сигнала для сообщений
func (s Signal) Label() string {
	switch s {
	case Bullish:
		return "БЫЧЬЕ ПОГЛОЩЕНИЕ"
	case Bearish:
		return "МЕДВЕЖЬЕ ПОГЛОЩЕНИЕ"
	default:
		return "нет сигнала"
	}
}

// Icon - эмодзи сигнала
func (s Signal) Icon() string {
	switch s {
	case Bullish:
		return "🟢"
	case Bearish:
		return "🔴"
	default:
		return "⚪"
	}
}

// Alert - сигнал, подготовленный к отправке
type Alert struct {
	ID         string          `json:"id" db:"id"`
	Symbol     string          `json:"symbol" db:"symbol"`
	Interval   string          `json:"interval" db:"interval"`
	Signal     Signal          `json:"signal" db:"signal"`
	Trend      analysis.Trend  `json:"trend" db:"trend"`
	Price      decimal.Decimal `json:"price" db:"price"`
	Source     string          `json:"source" db:"source"`
	CandleTime time.Time       `json:"candle_time" db:"candle_time"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	Title      string          `json:"title" db:"-"`
	Text       string          `json:"text" db:"-"`
}

// NewAlert собирает алерт по последней свече
func NewAlert(symbol, interval string, sig Signal, trend analysis.Trend, last candle.Candle, provider string) Alert {
	return Alert{
		ID:         uuid.New().String(),
		Symbol:     symbol,
		Interval:   interval,
		Signal:     sig,
		Trend:      trend,
		Price:      last.Close,
		Source:     provider,
		CandleTime: last.Timestamp.UTC(),
		CreatedAt:  time.Now().UTC(),
	}
}
