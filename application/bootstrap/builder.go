// application/bootstrap/builder.go
package bootstrap

import (
	"context"
	"fmt"

	"crypto-engulfing-alert-bot/application/pipeline"
	"crypto-engulfing-alert-bot/application/scheduler"
	"crypto-engulfing-alert-bot/internal/adapters/notification"
	"crypto-engulfing-alert-bot/internal/core/domain/fetchers"
	"crypto-engulfing-alert-bot/internal/core/domain/signals"
	"crypto-engulfing-alert-bot/internal/delivery/status"
	"crypto-engulfing-alert-bot/internal/infrastructure/config"
	infrastructure_factory "crypto-engulfing-alert-bot/internal/infrastructure/package"
	"crypto-engulfing-alert-bot/pkg/logger"
)

// Option - настройка приложения
type Option func(*AppBuilder)

// WithLogLevel переопределяет LOG_LEVEL (флаг --log-level)
func WithLogLevel(level string) Option {
	return func(b *AppBuilder) {
		if level != "" {
			b.config.Logging.Level = level
		}
	}
}

// WithoutHTTPServer выключает сервер статуса (команда check)
func WithoutHTTPServer() Option {
	return func(b *AppBuilder) {
		b.config.HTTP.Enabled = false
	}
}

// WithoutJournals не поднимает Redis/PostgreSQL
func WithoutJournals() Option {
	return func(b *AppBuilder) {
		b.config.Redis.Enabled = false
		b.config.Database.Enabled = false
	}
}

// WithGlobalLogger инициализирует глобальный логгер из LOG_* настроек
func WithGlobalLogger() Option {
	return func(b *AppBuilder) {
		b.initLogger = true
	}
}

// AppBuilder собирает приложение из конфигурации
type AppBuilder struct {
	config     *config.Config
	options    []Option
	initLogger bool
}

// NewAppBuilder создает билдер
func NewAppBuilder() *AppBuilder {
	return &AppBuilder{}
}

// WithConfig задает конфигурацию
func (b *AppBuilder) WithConfig(cfg *config.Config) *AppBuilder {
	b.config = cfg
	return b
}

// WithOption добавляет опцию
func (b *AppBuilder) WithOption(opt Option) *AppBuilder {
	b.options = append(b.options, opt)
	return b
}

// Build создает все компоненты. Хранилища подключаются здесь же,
// поэтому после ошибки Build ничего закрывать не нужно.
func (b *AppBuilder) Build(ctx context.Context) (*Application, error) {
	if b.config == nil {
		return nil, fmt.Errorf("конфигурация не задана")
	}
	for _, opt := range b.options {
		opt(b)
	}
	cfg := b.config

	if b.initLogger {
		if err := logger.InitGlobal(logger.Options{
			Path:   cfg.Logging.File,
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Debug:  cfg.Logging.DebugMode,
		}); err != nil {
			return nil, fmt.Errorf("инициализация логгера: %w", err)
		}
	}

	// 1. Провайдеры свечей
	chain, err := fetchers.NewProviderFactory(cfg.Exchange.HTTPTimeout, cfg.Exchange.UserAgent).BuildChain(cfg.ProviderChain)
	if err != nil {
		return nil, fmt.Errorf("цепочка провайдеров: %w", err)
	}
	coordinator := fetchers.NewCoordinator(chain...)

	// 2. Каналы уведомлений
	notifiers := notification.NewNotifierFactory(cfg)
	dispatcher := notification.NewDispatcher(notifiers.CreateNotifiers(ctx)...)

	// 3. Журналы
	infra, err := infrastructure_factory.NewInfrastructureFactory(cfg)
	if err != nil {
		notifiers.Close()
		return nil, err
	}
	if err := infra.Start(ctx); err != nil {
		notifiers.Close()
		return nil, fmt.Errorf("запуск инфраструктуры: %w", err)
	}
	var journals []pipeline.Journal
	for _, j := range infra.Journals() {
		journals = append(journals, j)
	}

	// 4. Пайплайн и статус
	dedup := signals.NewDedupState()
	tracker := pipeline.NewTracker(cfg.Market.Symbol, cfg.Market.Interval, dispatcher.Channels(), dedup)
	tracker.SetStorages(infra.HealthCheck(ctx))

	signalPipeline := pipeline.NewSignalPipeline(pipeline.Options{
		Symbol:      cfg.Market.Symbol,
		Interval:    cfg.Market.Interval,
		CandleLimit: cfg.Market.CandleLimit,
		TrendPeriod: cfg.Market.TrendPeriod,
		DeadbandPct: cfg.Market.TrendDeadband,
	}, coordinator, dispatcher, dedup, tracker, journals...)

	app := &Application{
		config:     cfg,
		providers:  coordinator,
		dispatcher: dispatcher,
		notifiers:  notifiers,
		infra:      infra,
		tracker:    tracker,
		pipeline:   signalPipeline,
	}

	// 5. Планировщик
	app.scheduler = scheduler.New(
		fmt.Sprintf("engulfing %s %s", cfg.Market.Symbol, cfg.Market.Interval),
		app.cycle,
		scheduler.Config{
			Interval:       cfg.PollInterval(),
			MinSleep:       cfg.Polling.MinSleep,
			FailureBackoff: cfg.Polling.FailureBackoff,
		},
	)

	// 6. HTTP статус
	if cfg.HTTP.Enabled {
		app.statusServer = status.NewServer(tracker, app.scheduler, cfg.Version)
	}

	logger.Info("✅ Приложение собрано: %d провайдеров, %d каналов, %d журналов",
		len(chain), len(dispatcher.Channels()), len(journals))
	return app, nil
}
