package alert_repo

import (
	"context"

	"crypto-engulfing-alert-bot/internal/core/domain/signals"
)

// AlertRepository интерфейс журнала отправленных сигналов
type AlertRepository interface {
	// Record сохраняет отправленный алерт
	Record(ctx context.Context, alert signals.Alert) error
	// Name - имя журнала для логов
	Name() string
}
