// internal/adapters/notification/nats_notifier.go
package notification

import (
	"context"

	"crypto-engulfing-alert-bot/internal/core/domain/signals"
)

// ChannelNATS - имя канала
const ChannelNATS = "nats"

// JSONPublisher - публикация в брокер
type JSONPublisher interface {
	PublishJSON(v interface{}) error
}

// NATSNotifier публикует алерт целиком в JSON
type NATSNotifier struct {
	publisher JSONPublisher
}

func NewNATSNotifier(publisher JSONPublisher) *NATSNotifier {
	return &NATSNotifier{publisher: publisher}
}

func (n *NATSNotifier) Name() string {
	return ChannelNATS
}

func (n *NATSNotifier) Send(ctx context.Context, alert signals.Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return n.publisher.PublishJSON(alert)
}
