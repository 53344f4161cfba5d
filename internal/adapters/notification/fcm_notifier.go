// internal/adapters/notification/fcm_notifier.go
package notification

import (
	"context"

	"crypto-engulfing-alert-bot/internal/core/domain/signals"
	"crypto-engulfing-alert-bot/internal/delivery/fcm"
	"crypto-engulfing-alert-bot/internal/delivery/telegram/app/bot/formatters"
)

// ChannelFCM - имя канала
const ChannelFCM = "fcm"

// FCMNotifier отправляет push на топик Firebase
type FCMNotifier struct {
	client *fcm.Client
	topic  string
	title  string
}

// NewFCMNotifier создает нотификатор; title - заголовок push-уведомления
func NewFCMNotifier(client *fcm.Client, topic, title string) *FCMNotifier {
	return &FCMNotifier{client: client, topic: topic, title: title}
}

func (n *FCMNotifier) Name() string {
	return ChannelFCM
}

// Send - заголовок из конфигурации, тело - текст алерта без разметки
func (n *FCMNotifier) Send(ctx context.Context, alert signals.Alert) error {
	title := n.title
	if title == "" {
		title = alert.Title
	}
	return n.client.Send(ctx, fcm.Message{
		Topic: n.topic,
		Title: title,
		Body:  formatters.PlainText(alert.Text),
	})
}
