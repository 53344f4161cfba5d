// internal/adapters/notification/dispatcher.go
package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	"crypto-engulfing-alert-bot/internal/core/domain/signals"
	"crypto-engulfing-alert-bot/internal/delivery/telegram/app/bot/formatters"
	"crypto-engulfing-alert-bot/pkg/logger"
)

// DispatchStats - счетчики доставки
type DispatchStats struct {
	Dispatched int       `json:"dispatched"`
	Failed     int       `json:"failed"`
	LastSent   time.Time `json:"last_sent"`
	LastError  string    `json:"last_error,omitempty"`
}

// Dispatcher рассылает алерт по всем включенным каналам
type Dispatcher struct {
	notifiers []Notifier
	formatter *formatters.SignalFormatter

	mu    sync.RWMutex
	stats DispatchStats
}

// NewDispatcher создает диспетчер
func NewDispatcher(notifiers ...Notifier) *Dispatcher {
	return &Dispatcher{
		notifiers: notifiers,
		formatter: formatters.NewSignalFormatter(),
	}
}

// Channels - имена подключенных каналов
func (d *Dispatcher) Channels() []string {
	names := make([]string, 0, len(d.notifiers))
	for _, n := range d.notifiers {
		names = append(names, n.Name())
	}
	return names
}

// Prepare заполняет заголовок и текст алерта, если они пусты
func (d *Dispatcher) Prepare(alert signals.Alert) signals.Alert {
	if alert.Title == "" {
		alert.Title = d.formatter.Title(alert)
	}
	if alert.Text == "" {
		alert.Text = d.formatter.FormatAlert(alert)
	}
	return alert
}

// Dispatch отправляет алерт. Успех - хотя бы один канал принял сообщение.
// Ошибки каналов логируются и не пробрасываются.
func (d *Dispatcher) Dispatch(ctx context.Context, alert signals.Alert) bool {
	alert = d.Prepare(alert)

	if len(d.notifiers) == 0 {
		logger.Warn("⚠️ Нет включенных каналов уведомлений, алерт %s не отправлен", alert.Signal)
		d.recordFailure(errors.New("no notification channels"))
		return false
	}

	delivered := 0
	for _, n := range d.notifiers {
		if err := n.Send(ctx, alert); err != nil {
			nerr := &NotificationError{Channel: n.Name(), Err: err}
			logger.Error("❌ %v", nerr)
			d.recordFailure(nerr)
			continue
		}
		delivered++
		logger.Debug("✅ Алерт %s доставлен через %s", alert.ID, n.Name())
	}

	if delivered == 0 {
		return false
	}

	d.mu.Lock()
	d.stats.Dispatched++
	d.stats.LastSent = time.Now()
	d.mu.Unlock()
	return true
}

// SendStartupMessage - разовое сообщение о запуске (без дедупликации)
func (d *Dispatcher) SendStartupMessage(ctx context.Context, symbol, interval, version string) bool {
	now := time.Now().UTC()
	alert := signals.Alert{
		Symbol:    symbol,
		Interval:  interval,
		Signal:    signals.None,
		CreatedAt: now,
		Title:     "🚀 Бот запущен",
		Text:      d.formatter.FormatStartup(symbol, interval, version, now),
	}
	return d.Dispatch(ctx, alert)
}

// Stats возвращает копию счетчиков
func (d *Dispatcher) Stats() DispatchStats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stats
}

func (d *Dispatcher) recordFailure(err error) {
	d.mu.Lock()
	d.stats.Failed++
	d.stats.LastError = err.Error()
	d.mu.Unlock()
}
