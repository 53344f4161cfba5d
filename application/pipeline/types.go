// application/pipeline/types.go
package pipeline

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"crypto-engulfing-alert-bot/internal/core/domain/analysis"
	"crypto-engulfing-alert-bot/internal/core/domain/candle"
	"crypto-engulfing-alert-bot/internal/core/domain/signals"
)

// CandleFetcher - источник свечей с перебором провайдеров
type CandleFetcher interface {
	FetchWithFallback(ctx context.Context, symbol, interval string, limit int) ([]candle.Candle, string, error)
}

// AlertDispatcher - рассылка алертов; true если хотя бы один канал принял
type AlertDispatcher interface {
	Dispatch(ctx context.Context, alert signals.Alert) bool
}

// Journal - журнал отправленных алертов (только запись)
type Journal interface {
	Name() string
	Record(ctx context.Context, alert signals.Alert) error
}

// Options - параметры анализа
type Options struct {
	Symbol      string
	Interval    string
	CandleLimit int
	TrendPeriod int
	DeadbandPct float64
}

// CycleResult - итог одного цикла
type CycleResult struct {
	StartedAt  time.Time       `json:"started_at"`
	Duration   time.Duration   `json:"duration"`
	Candles    int             `json:"candles"`
	Provider   string          `json:"provider,omitempty"`
	Price      decimal.Decimal `json:"price"`
	Signal     signals.Signal  `json:"signal"`
	Trend      analysis.Trend  `json:"trend"`
	Suppressed bool            `json:"suppressed"`
	Dispatched bool            `json:"dispatched"`
	AlertID    string          `json:"alert_id,omitempty"`
	FetchError string          `json:"fetch_error,omitempty"`
}
