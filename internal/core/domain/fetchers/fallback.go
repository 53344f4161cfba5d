// internal/core/domain/fetchers/fallback.go
package fetchers

import (
	"context"
	"fmt"

	"crypto-engulfing-alert-bot/internal/core/domain/candle"
	"crypto-engulfing-alert-bot/internal/infrastructure/api"
	"crypto-engulfing-alert-bot/pkg/logger"
)

// Coordinator перебирает провайдеров в фиксированном порядке приоритета.
// Каждый провайдер пробуется один раз за цикл, гонки между провайдерами нет.
type Coordinator struct {
	providers []api.CandleProvider
}

// NewCoordinator создает координатор; порядок providers - это порядок приоритета
func NewCoordinator(providers ...api.CandleProvider) *Coordinator {
	return &Coordinator{providers: providers}
}

// Providers возвращает цепочку провайдеров
func (c *Coordinator) Providers() []api.CandleProvider {
	return c.providers
}

// FetchWithFallback возвращает свечи первого провайдера, отдавшего >= 2 свечей
func (c *Coordinator) FetchWithFallback(ctx context.Context, symbol, interval string, limit int) ([]candle.Candle, string, error) {
	if limit < MinCandles {
		return nil, "", fmt.Errorf("limit must be >= %d, got %d", MinCandles, limit)
	}

	failed := &AllProvidersFailedError{Symbol: symbol, Interval: interval}

	for _, p := range c.providers {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		candles, err := p.FetchCandles(ctx, symbol, interval, limit)
		if err == nil && len(candles) < MinCandles {
			err = fmt.Errorf("%s: got %d candles: %w", p.Name(), len(candles), ErrInsufficientCandles)
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, "", ctx.Err()
			}
			logger.Warn("⚠️ Провайдер %s недоступен: %v", p.Name(), err)
			failed.Attempts = append(failed.Attempts, Attempt{Provider: p.Name(), Err: err})
			continue
		}

		if len(failed.Attempts) > 0 {
			logger.Info("🔁 Данные получены от резервного провайдера %s (после %d ошибок)", p.Name(), len(failed.Attempts))
		}
		return candles, p.Name(), nil
	}

	return nil, "", failed
}
