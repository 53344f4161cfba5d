// internal/infrastructure/api/exchanges/bybit/types.go
package bybit

import "crypto-engulfing-alert-bot/pkg/period"

// CategorySpot - категория рынка Bybit v5 (спот)
const CategorySpot = "spot"

// intervals - Bybit использует числовые коды минут и буквы для D/W
var intervals = map[string]string{
	period.Period1m:  "1",
	period.Period3m:  "3",
	period.Period5m:  "5",
	period.Period15m: "15",
	period.Period30m: "30",
	period.Period1h:  "60",
	period.Period2h:  "120",
	period.Period4h:  "240",
	period.Period6h:  "360",
	period.Period12h: "720",
	period.Period1d:  "D",
	period.Period1w:  "W",
}

// Поля строки kline в порядке ответа: [startTime, open, high, low, close, volume, turnover]
const (
	fieldStart = iota
	fieldOpen
	fieldHigh
	fieldLow
	fieldClose
	fieldVolume
)
