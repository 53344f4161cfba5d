// internal/adapters/notification/telegram_notifier.go
package notification

import (
	"context"

	"crypto-engulfing-alert-bot/internal/core/domain/signals"
	"crypto-engulfing-alert-bot/internal/delivery/telegram/app/http_client"
)

// ChannelTelegram - имя канала
const ChannelTelegram = "telegram"

// TelegramNotifier отправляет алерты в чат Telegram
type TelegramNotifier struct {
	client *http_client.TelegramClient
	chatID string
}

// NewTelegramNotifier создает нотификатор для чата chatID
func NewTelegramNotifier(client *http_client.TelegramClient, chatID string) *TelegramNotifier {
	return &TelegramNotifier{client: client, chatID: chatID}
}

func (n *TelegramNotifier) Name() string {
	return ChannelTelegram
}

// Send - Markdown-сообщение через sendMessage
func (n *TelegramNotifier) Send(ctx context.Context, alert signals.Alert) error {
	return n.client.SendMessage(ctx, n.chatID, alert.Text, "Markdown")
}
