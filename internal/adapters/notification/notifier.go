// internal/adapters/notification/notifier.go
package notification

import (
	"context"
	"fmt"

	"crypto-engulfing-alert-bot/internal/core/domain/signals"
)

// Notifier - канал доставки алертов
type Notifier interface {
	Name() string
	Send(ctx context.Context, alert signals.Alert) error
}

// NotificationError - канал отклонил алерт или недоступен
type NotificationError struct {
	Channel string
	Err     error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification via %s failed: %v", e.Channel, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}
