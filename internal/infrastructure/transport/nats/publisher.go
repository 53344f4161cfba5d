// internal/infrastructure/transport/nats/publisher.go
package nats

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"crypto-engulfing-alert-bot/pkg/logger"
)

// Config - параметры подключения к NATS
type Config struct {
	URL           string
	Subject       string
	Name          string
	MaxReconnect  int
	ReconnectWait time.Duration
	FlushTimeout  time.Duration
}

// Publisher публикует JSON-сообщения в один subject
type Publisher struct {
	conn         *nats.Conn
	subject      string
	flushTimeout time.Duration
}

// NewPublisher подключается к NATS
func NewPublisher(cfg Config) (*Publisher, error) {
	if cfg.Subject == "" {
		return nil, fmt.Errorf("nats subject is empty")
	}
	if cfg.FlushTimeout <= 0 {
		cfg.FlushTimeout = 5 * time.Second
	}

	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.MaxReconnects(cfg.MaxReconnect),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn("⚠️ NATS отключен: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("🔌 NATS переподключен к %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("🔌 NATS соединение закрыто")
		}),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Publisher{
		conn:         conn,
		subject:      cfg.Subject,
		flushTimeout: cfg.FlushTimeout,
	}, nil
}

// Subject - subject публикации
func (p *Publisher) Subject() string {
	return p.subject
}

// PublishJSON сериализует v и дожидается подтверждения сервером (flush)
func (p *Publisher) PublishJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.subject, err)
	}
	if err := p.conn.FlushTimeout(p.flushTimeout); err != nil {
		return fmt.Errorf("failed to flush %s: %w", p.subject, err)
	}
	return nil
}

// IsConnected checks if NATS is connected
func (p *Publisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}

// Close закрывает соединение, дожидаясь отправки буфера
func (p *Publisher) Close() {
	if p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
