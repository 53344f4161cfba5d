// internal/infrastructure/persistence/redis_storage/alert_journal.go
package redis_storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"crypto-engulfing-alert-bot/internal/core/domain/signals"
)

// DefaultPrefix - префикс ключей журнала
const DefaultPrefix = "engulfing:alerts:"

// AlertJournal хранит последние отправленные алерты в списке Redis.
// Только запись: состояние дедупликации из журнала не восстанавливается.
type AlertJournal struct {
	client redis.Cmdable
	prefix string
	size   int64
	ttl    time.Duration
}

// NewAlertJournal создает журнал; size - максимальная длина списка
func NewAlertJournal(client redis.Cmdable, size int64, ttl time.Duration) *AlertJournal {
	if size <= 0 {
		size = 500
	}
	return &AlertJournal{
		client: client,
		prefix: DefaultPrefix,
		size:   size,
		ttl:    ttl,
	}
}

func (j *AlertJournal) Name() string {
	return "redis"
}

// Key - ключ списка для пары символ/интервал
func (j *AlertJournal) Key(symbol, interval string) string {
	return fmt.Sprintf("%s%s:%s", j.prefix, strings.ToUpper(symbol), strings.ToLower(interval))
}

// Record добавляет алерт в голову списка и обрезает хвост
func (j *AlertJournal) Record(ctx context.Context, alert signals.Alert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	key := j.Key(alert.Symbol, alert.Interval)
	pipe := j.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, j.size-1)
	if j.ttl > 0 {
		pipe.Expire(ctx, key, j.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis journal %s: %w", key, err)
	}
	return nil
}
