// /internal/infrastructure/config/config.go
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"crypto-engulfing-alert-bot/pkg/logger"
	"crypto-engulfing-alert-bot/pkg/period"
)

// ============================================
// РЫНОК И АНАЛИЗ
// ============================================

// MarketConfig - что и как анализируем
type MarketConfig struct {
	Symbol        string  `env:"SYMBOL, default=BTCUSDT"`
	Interval      string  `env:"INTERVAL, default=1h"`
	CandleLimit   int     `env:"CANDLE_LIMIT, default=50"`
	TrendPeriod   int     `env:"TREND_PERIOD, default=20"`
	TrendDeadband float64 `env:"TREND_DEADBAND, default=2"` // в процентах
}

// PollingConfig - расписание цикла опроса
type PollingConfig struct {
	CheckInterval  int           `env:"CHECK_INTERVAL, default=300"` // секунды
	MinSleep       time.Duration `env:"MIN_SLEEP, default=5s"`
	FailureBackoff time.Duration `env:"FAILURE_BACKOFF, default=60s"`
}

// ExchangeConfig - провайдеры свечей
type ExchangeConfig struct {
	Providers     []string      `env:"PROVIDERS"`
	ProvidersFile string        `env:"PROVIDERS_FILE"`
	HTTPTimeout   time.Duration `env:"HTTP_TIMEOUT, default=10s"`
	UserAgent     string        `env:"USER_AGENT, default=CryptoEngulfingAlertBot/1.0"`
}

// ============================================
// КАНАЛЫ УВЕДОМЛЕНИЙ
// ============================================

// TelegramConfig - бот Telegram
type TelegramConfig struct {
	BotToken string `env:"TELEGRAM_TOKEN"`
	ChatID   string `env:"CHAT_ID"`
	APIURL   string `env:"TELEGRAM_API_URL, default=https://api.telegram.org"`
}

// FCMConfig - Firebase Cloud Messaging
type FCMConfig struct {
	CredentialsFile string `env:"CREDENTIALS_FILE"`
	ProjectID       string `env:"PROJECT_ID"`
	Topic           string `env:"TOPIC, default=all"`
	Title           string `env:"TITLE, default=Alerta Crypto"`
	Endpoint        string `env:"ENDPOINT, default=https://fcm.googleapis.com"`
}

// NATSConfig - публикация сигналов в NATS
type NATSConfig struct {
	URL           string        `env:"URL"`
	Subject       string        `env:"SUBJECT, default=alerts.engulfing"`
	MaxReconnect  int           `env:"MAX_RECONNECT, default=10"`
	ReconnectWait time.Duration `env:"RECONNECT_WAIT, default=2s"`
}

// ============================================
// ХРАНИЛИЩА ЖУРНАЛА СИГНАЛОВ
// ============================================

// RedisConfig конфигурация Redis
type RedisConfig struct {
	Enabled      bool          `env:"ENABLED, default=false"`
	Host         string        `env:"HOST, default=localhost"`
	Port         int           `env:"PORT, default=6379"`
	Password     string        `env:"PASSWORD"`
	DB           int           `env:"DB, default=0"`
	PoolSize     int           `env:"POOL_SIZE, default=10"`
	MinIdleConns int           `env:"MIN_IDLE_CONNS, default=2"`
	MaxRetries   int           `env:"MAX_RETRIES, default=3"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT, default=5s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT, default=3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT, default=3s"`
	JournalSize  int64         `env:"JOURNAL_SIZE, default=500"`
	JournalTTL   time.Duration `env:"JOURNAL_TTL, default=720h"`
}

// DatabaseConfig - конфигурация базы данных
type DatabaseConfig struct {
	Enabled         bool          `env:"ENABLED, default=false"`
	Host            string        `env:"HOST, default=localhost"`
	Port            int           `env:"PORT, default=5432"`
	User            string        `env:"USER"`
	Password        string        `env:"PASSWORD"`
	Name            string        `env:"NAME, default=alerts"`
	SSLMode         string        `env:"SSLMODE, default=disable"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS, default=5"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS, default=2"`
	MaxConnLifetime time.Duration `env:"MAX_CONN_LIFETIME, default=30m"`
	AutoMigrate     bool          `env:"ENABLE_AUTO_MIGRATE, default=true"`
}

// ============================================
// HTTP И ЛОГИРОВАНИЕ
// ============================================

// HTTPConfig - сервер статуса
type HTTPConfig struct {
	Enabled bool `env:"HTTP_ENABLED, default=true"`
	Port    int  `env:"PORT, default=8080"`
}

// LoggingConfig - логирование
type LoggingConfig struct {
	Level     string `env:"LEVEL, default=info"`
	Format    string `env:"FORMAT, default=text"`
	File      string `env:"FILE"`
	DebugMode bool   `env:"DEBUG, default=false"`
}

// ============================================
// ОСНОВНАЯ КОНФИГУРАЦИЯ ПРИЛОЖЕНИЯ
// ============================================

// Config - основная структура конфигурации
type Config struct {
	Environment    string `env:"ENVIRONMENT, default=production"`
	Version        string `env:"VERSION, default=1.0.0"`
	StartupMessage bool   `env:"STARTUP_MESSAGE, default=false"`

	Market   MarketConfig
	Polling  PollingConfig
	Exchange ExchangeConfig

	Telegram TelegramConfig
	FCM      FCMConfig  `env:", prefix=FCM_"`
	NATS     NATSConfig `env:", prefix=NATS_"`

	Redis    RedisConfig    `env:", prefix=REDIS_"`
	Database DatabaseConfig `env:", prefix=DB_"`

	HTTP    HTTPConfig
	Logging LoggingConfig `env:", prefix=LOG_"`

	// Разрешенная цепочка провайдеров (после PROVIDERS_FILE и PROVIDERS)
	ProviderChain []ProviderConfig
}

// ============================================
// ЗАГРУЗКА КОНФИГУРАЦИИ
// ============================================

// LoadConfig загружает конфигурацию из .env файла и переменных окружения
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			logger.Warn("⚠️  Config file %s not found, using environment variables", path)
		}
	}
	return Load(ctx, envconfig.OsLookuper())
}

// Load собирает конфигурацию из произвольного источника переменных
func Load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, &ConfigError{Problems: []string{err.Error()}}
	}

	cfg.Market.Symbol = strings.ToUpper(strings.TrimSpace(cfg.Market.Symbol))
	if p, err := period.Normalize(cfg.Market.Interval); err == nil {
		cfg.Market.Interval = p
	}

	chain, err := ResolveProviders(cfg.Exchange.Providers, cfg.Exchange.ProvidersFile)
	if err != nil {
		return nil, &ConfigError{Problems: []string{err.Error()}}
	}
	cfg.ProviderChain = chain

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ============================================
// ВАЛИДАЦИЯ
// ============================================

// ConfigError - ошибка конфигурации
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// IsConfigError проверяет тип ошибки
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// Validate проверяет обязательные параметры конфигурации
func (c *Config) Validate() error {
	var problems []string

	if c.Market.Symbol == "" {
		problems = append(problems, "SYMBOL is required")
	}
	if !period.IsValidPeriod(c.Market.Interval) {
		problems = append(problems, fmt.Sprintf("INTERVAL %q must be one of: %s", c.Market.Interval, strings.Join(period.AllPeriods, ", ")))
	}
	if c.Market.CandleLimit < 2 {
		problems = append(problems, "CANDLE_LIMIT must be >= 2")
	}
	if c.Market.TrendPeriod < 2 {
		problems = append(problems, "TREND_PERIOD must be >= 2")
	}
	if c.Market.TrendDeadband < 0 {
		problems = append(problems, "TREND_DEADBAND must not be negative")
	}
	if c.Polling.CheckInterval <= 0 {
		problems = append(problems, "CHECK_INTERVAL must be positive")
	}
	if c.Polling.MinSleep <= 0 {
		problems = append(problems, "MIN_SLEEP must be positive")
	}
	if len(c.ProviderChain) == 0 {
		problems = append(problems, "at least one candle provider must be enabled")
	}
	if c.HTTP.Enabled && (c.HTTP.Port <= 0 || c.HTTP.Port > 65535) {
		problems = append(problems, "PORT должен быть в диапазоне 1-65535")
	}

	if len(problems) > 0 {
		return &ConfigError{Problems: problems}
	}
	return nil
}

// ============================================
// ВСПОМОГАТЕЛЬНЫЕ МЕТОДЫ
// ============================================

// PollInterval - интервал между циклами
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Polling.CheckInterval) * time.Second
}

// GetRedisAddress возвращает адрес Redis
func (c *Config) GetRedisAddress() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// IsDev - режим разработки
func (c *Config) IsDev() bool {
	return strings.EqualFold(c.Environment, "dev") || strings.EqualFold(c.Environment, "development")
}

// PrintSummary выводит эффективную конфигурацию
func (c *Config) PrintSummary() {
	logger.Info("📋 Конфигурация приложения:")
	logger.Info("   • Окружение: %s (v%s)", c.Environment, c.Version)
	logger.Info("   • Символ: %s, интервал: %s, свечей: %d", c.Market.Symbol, c.Market.Interval, c.Market.CandleLimit)
	logger.Info("   • Тренд: SMA%d, зона нечувствительности ±%.1f%%", c.Market.TrendPeriod, c.Market.TrendDeadband)
	logger.Info("   • Интервал проверки: %d сек (мин. пауза %v, пауза после ошибки %v)",
		c.Polling.CheckInterval, c.Polling.MinSleep, c.Polling.FailureBackoff)

	names := make([]string, 0, len(c.ProviderChain))
	for _, p := range c.ProviderChain {
		names = append(names, p.Name)
	}
	logger.Info("   • Провайдеры: %s", strings.Join(names, " → "))

	for _, ch := range c.Channels() {
		if ch.Enabled {
			logger.Info("   • Канал %s: включен", ch.Name)
		} else {
			logger.Info("   • Канал %s: выключен (%s)", ch.Name, ch.Reason)
		}
	}

	if c.Telegram.BotToken != "" {
		logger.Info("   • Telegram Token: %s", maskToken(c.Telegram.BotToken))
	}
	if c.Redis.Enabled {
		logger.Info("   • Redis: %s (DB: %d)", c.GetRedisAddress(), c.Redis.DB)
	}
	if c.Database.Enabled {
		logger.Info("   • PostgreSQL: %s:%d/%s", c.Database.Host, c.Database.Port, c.Database.Name)
	}
	logger.Info("   • HTTP сервер: %v (порт: %d)", c.HTTP.Enabled, c.HTTP.Port)
}

func maskToken(token string) string {
	if len(token) > 20 {
		return token[:10] + "..." + token[len(token)-10:]
	}
	if len(token) > 4 {
		return token[:4] + "..."
	}
	return "***"
}

// FileExists - вспомогательная проверка пути
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
