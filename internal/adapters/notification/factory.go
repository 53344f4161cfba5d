// internal/adapters/notification/factory.go
package notification

import (
	"context"
	"time"

	"crypto-engulfing-alert-bot/internal/delivery/fcm"
	"crypto-engulfing-alert-bot/internal/delivery/telegram/app/http_client"
	"crypto-engulfing-alert-bot/internal/infrastructure/config"
	natstransport "crypto-engulfing-alert-bot/internal/infrastructure/transport/nats"
	"crypto-engulfing-alert-bot/pkg/logger"
)

// NotifierFactory фабрика для создания нотификаторов
type NotifierFactory struct {
	cfg     *config.Config
	timeout time.Duration
	closers []func()
}

// NewNotifierFactory создает новую фабрику нотификаторов
func NewNotifierFactory(cfg *config.Config) *NotifierFactory {
	return &NotifierFactory{cfg: cfg, timeout: 15 * time.Second}
}

// CreateNotifiers создает все сконфигурированные каналы.
// Канал без параметров или с ошибкой инициализации выключается с предупреждением.
func (nf *NotifierFactory) CreateNotifiers(ctx context.Context) []Notifier {
	var notifiers []Notifier

	for _, ch := range nf.cfg.Channels() {
		if !ch.Enabled {
			logger.Warn("⚠️ Канал %s выключен: %s", ch.Name, ch.Reason)
			continue
		}

		var (
			n   Notifier
			err error
		)
		switch ch.Name {
		case config.ChannelTelegram:
			n = nf.createTelegram()
		case config.ChannelFCM:
			n, err = nf.createFCM(ctx)
		case config.ChannelNATS:
			n, err = nf.createNATS()
		}
		if err != nil {
			logger.Warn("⚠️ Канал %s выключен: %v", ch.Name, err)
			continue
		}
		if n != nil {
			logger.Info("✅ Канал уведомлений %s подключен", n.Name())
			notifiers = append(notifiers, n)
		}
	}

	return notifiers
}

// Close освобождает соединения каналов
func (nf *NotifierFactory) Close() {
	for i := len(nf.closers) - 1; i >= 0; i-- {
		nf.closers[i]()
	}
	nf.closers = nil
}

func (nf *NotifierFactory) createTelegram() Notifier {
	client := http_client.NewTelegramClient(nf.cfg.Telegram.APIURL, nf.cfg.Telegram.BotToken, nf.timeout)
	return NewTelegramNotifier(client, nf.cfg.Telegram.ChatID)
}

func (nf *NotifierFactory) createFCM(ctx context.Context) (Notifier, error) {
	c := nf.cfg.FCM
	client, err := fcm.NewClientFromFile(ctx, c.CredentialsFile, c.ProjectID, c.Endpoint, nf.timeout)
	if err != nil {
		return nil, err
	}
	return NewFCMNotifier(client, c.Topic, c.Title), nil
}

func (nf *NotifierFactory) createNATS() (Notifier, error) {
	c := nf.cfg.NATS
	publisher, err := natstransport.NewPublisher(natstransport.Config{
		URL:           c.URL,
		Subject:       c.Subject,
		Name:          "engulfing-alert-bot",
		MaxReconnect:  c.MaxReconnect,
		ReconnectWait: c.ReconnectWait,
	})
	if err != nil {
		return nil, err
	}
	nf.closers = append(nf.closers, publisher.Close)
	return NewNATSNotifier(publisher), nil
}
