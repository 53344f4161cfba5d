// /internal/infrastructure/persistence/postgres/repository/alert/repository.go
package alert_repo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"crypto-engulfing-alert-bot/internal/core/domain/signals"
	"crypto-engulfing-alert-bot/internal/infrastructure/persistence/postgres/models"
	"crypto-engulfing-alert-bot/pkg/logger"
)

const insertAlertQuery = `
		INSERT INTO engulfing_alerts (id, symbol, timeframe, signal, trend, price, source, candle_time, created_at)
		VALUES (:id, :symbol, :timeframe, :signal, :trend, :price, :source, :candle_time, :created_at)
		ON CONFLICT (id) DO NOTHING
	`

type alertRepoImpl struct {
	db *sqlx.DB
}

// NewAlertRepository создаёт реализацию AlertRepository
func NewAlertRepository(db *sqlx.DB) AlertRepository {
	return &alertRepoImpl{db: db}
}

func (r *alertRepoImpl) Name() string {
	return "postgres"
}

// Record вставляет алерт; повтор того же ID игнорируется
func (r *alertRepoImpl) Record(ctx context.Context, alert signals.Alert) error {
	if alert.ID == "" {
		return fmt.Errorf("AlertRepo.Record: alert without id")
	}

	if _, err := r.db.NamedExecContext(ctx, insertAlertQuery, models.AlertFromDomain(alert)); err != nil {
		return fmt.Errorf("AlertRepo.Record: %w", err)
	}

	logger.Debug("💾 Алерт сохранен в БД: %s %s %s", alert.Symbol, alert.Interval, alert.Signal)
	return nil
}
