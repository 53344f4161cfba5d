// internal/infrastructure/persistence/postgres/models/alert.go
package models

import (
	"time"

	"github.com/shopspring/decimal"

	"crypto-engulfing-alert-bot/internal/core/domain/signals"
)

// Alert - строка таблицы engulfing_alerts
type Alert struct {
	ID         string          `db:"id"`
	Symbol     string          `db:"symbol"`
	Timeframe  string          `db:"timeframe"`
	Signal     string          `db:"signal"`
	Trend      string          `db:"trend"`
	Price      decimal.Decimal `db:"price"`
	Source     string          `db:"source"`
	CandleTime time.Time       `db:"candle_time"`
	CreatedAt  time.Time       `db:"created_at"`
}

// AlertFromDomain конвертирует доменный алерт
func AlertFromDomain(a signals.Alert) *Alert {
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return &Alert{
		ID:         a.ID,
		Symbol:     a.Symbol,
		Timeframe:  a.Interval,
		Signal:     string(a.Signal),
		Trend:      string(a.Trend),
		Price:      a.Price,
		Source:     a.Source,
		CandleTime: a.CandleTime,
		CreatedAt:  createdAt,
	}
}
