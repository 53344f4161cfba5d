// internal/infrastructure/package/package.go
package infrastructure_factory

import (
	"context"
	"fmt"
	"sync"

	"crypto-engulfing-alert-bot/internal/infrastructure/cache/redis"
	"crypto-engulfing-alert-bot/internal/infrastructure/config"
	database "crypto-engulfing-alert-bot/internal/infrastructure/persistence/postgres/database"
	alert_repo "crypto-engulfing-alert-bot/internal/infrastructure/persistence/postgres/repository/alert"
	storage "crypto-engulfing-alert-bot/internal/infrastructure/persistence/redis_storage"
	"crypto-engulfing-alert-bot/pkg/logger"
)

// InfrastructureFactory поднимает необязательные хранилища журнала сигналов
type InfrastructureFactory struct {
	config          *config.Config
	databaseService *database.DatabaseService
	redisService    *redis.RedisService
	journals        []alert_repo.AlertRepository
	mu              sync.RWMutex
	running         bool
}

// NewInfrastructureFactory создает главную фабрику инфраструктуры
func NewInfrastructureFactory(cfg *config.Config) (*InfrastructureFactory, error) {
	if cfg == nil {
		return nil, fmt.Errorf("конфигурация не может быть nil")
	}
	return &InfrastructureFactory{config: cfg}, nil
}

// Start запускает включенные хранилища.
// Недоступное хранилище не останавливает бота: журнал просто выключается.
func (f *InfrastructureFactory) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.running {
		return fmt.Errorf("фабрика инфраструктуры уже запущена")
	}

	if f.config.Database.Enabled {
		ds := database.NewDatabaseService(f.config.Database)
		if err := ds.Start(ctx); err != nil {
			logger.Warn("⚠️ PostgreSQL недоступен, журнал в БД выключен: %v", err)
		} else {
			f.databaseService = ds
			f.journals = append(f.journals, alert_repo.NewAlertRepository(ds.GetDB()))
		}
	}

	if f.config.Redis.Enabled {
		rs := redis.NewRedisService(f.config.Redis)
		if err := rs.Start(ctx); err != nil {
			logger.Warn("⚠️ Redis недоступен, журнал в Redis выключен: %v", err)
		} else {
			f.redisService = rs
			f.journals = append(f.journals, storage.NewAlertJournal(rs.GetClient(), f.config.Redis.JournalSize, f.config.Redis.JournalTTL))
		}
	}

	f.running = true
	if len(f.journals) > 0 {
		logger.Info("✅ Журнал сигналов: %d хранилищ(а)", len(f.journals))
	}
	return nil
}

// Journals возвращает подключенные журналы
func (f *InfrastructureFactory) Journals() []alert_repo.AlertRepository {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]alert_repo.AlertRepository, len(f.journals))
	copy(out, f.journals)
	return out
}

// HealthCheck - состояние хранилищ для эндпоинта статуса
func (f *InfrastructureFactory) HealthCheck(ctx context.Context) map[string]bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	health := map[string]bool{}
	if f.databaseService != nil {
		health["postgres"] = f.databaseService.HealthCheck(ctx)
	}
	if f.redisService != nil {
		health["redis"] = f.redisService.HealthCheck(ctx)
	}
	return health
}

// Stop закрывает соединения
func (f *InfrastructureFactory) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.redisService != nil {
		if err := f.redisService.Stop(); err != nil {
			logger.Warn("⚠️ %v", err)
		}
		f.redisService = nil
	}
	if f.databaseService != nil {
		if err := f.databaseService.Stop(); err != nil {
			logger.Warn("⚠️ %v", err)
		}
		f.databaseService = nil
	}
	f.journals = nil
	f.running = false
}
