// application/bootstrap/app.go
package bootstrap

import (
	"context"
	"errors"
	"sync"
	"time"

	"crypto-engulfing-alert-bot/application/pipeline"
	"crypto-engulfing-alert-bot/application/scheduler"
	"crypto-engulfing-alert-bot/internal/adapters/notification"
	"crypto-engulfing-alert-bot/internal/core/domain/fetchers"
	"crypto-engulfing-alert-bot/internal/delivery/status"
	"crypto-engulfing-alert-bot/internal/infrastructure/config"
	infrastructure_factory "crypto-engulfing-alert-bot/internal/infrastructure/package"
	"crypto-engulfing-alert-bot/pkg/logger"
	"crypto-engulfing-alert-bot/pkg/utils"
)

// Application - основное приложение
type Application struct {
	config       *config.Config
	providers    *fetchers.Coordinator
	dispatcher   *notification.Dispatcher
	notifiers    *notification.NotifierFactory
	infra        *infrastructure_factory.InfrastructureFactory
	tracker      *pipeline.Tracker
	pipeline     *pipeline.SignalPipeline
	scheduler    *scheduler.PollingScheduler
	statusServer *status.Server

	mu        sync.Mutex
	running   bool
	closed    bool
	startTime time.Time
}

// Run запускает сервер статуса и цикл опроса до отмены контекста
func (app *Application) Run(ctx context.Context) error {
	app.mu.Lock()
	if app.running {
		app.mu.Unlock()
		return errors.New("приложение уже запущено")
	}
	app.running = true
	app.startTime = time.Now()
	app.mu.Unlock()

	logger.Info("🚀 Запуск приложения...")

	if app.statusServer != nil {
		if err := app.statusServer.Start(app.config.HTTP.Port); err != nil {
			logger.Error("❌ HTTP статус-сервер не запущен: %v", err)
			app.Close()
			app.mu.Lock()
			app.running = false
			app.mu.Unlock()
			return err
		}
	}

	if app.config.StartupMessage {
		app.dispatcher.SendStartupMessage(ctx, app.config.Market.Symbol, app.config.Market.Interval, app.config.Version)
	}

	err := app.scheduler.Run(ctx)

	app.shutdown()
	return err
}

// RunOnce выполняет один цикл без планировщика
func (app *Application) RunOnce(ctx context.Context) (pipeline.CycleResult, error) {
	return app.pipeline.RunCycle(ctx)
}

// Providers - цепочка провайдеров в порядке перебора
func (app *Application) Providers() *fetchers.Coordinator {
	return app.providers
}

// Tracker - статус пайплайна
func (app *Application) Tracker() *pipeline.Tracker {
	return app.tracker
}

// cycle - задача планировщика
func (app *Application) cycle(ctx context.Context) error {
	_, err := app.pipeline.RunCycle(ctx)
	app.tracker.SetStorages(app.infra.HealthCheck(ctx))
	return err
}

// shutdown останавливает сервер статуса и закрывает соединения
func (app *Application) shutdown() {
	logger.Info("🛑 Останавливаем приложение...")

	if app.statusServer != nil {
		if err := app.statusServer.Shutdown(context.Background()); err != nil {
			logger.Warn("⚠️ Ошибка остановки HTTP сервера: %v", err)
		}
	}
	app.Close()

	app.mu.Lock()
	app.running = false
	uptime := time.Since(app.startTime)
	app.mu.Unlock()

	logger.Info("✅ Приложение остановлено. Время работы: %s", utils.FormatDuration(uptime))
}

// Close освобождает ресурсы: NATS, Redis, PostgreSQL
func (app *Application) Close() {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.closed {
		return
	}
	app.closed = true

	app.notifiers.Close()
	app.infra.Stop()
}
