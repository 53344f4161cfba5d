package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func load(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	return Load(context.Background(), envconfig.MapLookuper(env))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t, map[string]string{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Market.Symbol != "BTCUSDT" || cfg.Market.Interval != "1h" {
		t.Errorf("market = %+v", cfg.Market)
	}
	if cfg.Market.CandleLimit != 50 || cfg.Market.TrendPeriod != 20 || cfg.Market.TrendDeadband != 2 {
		t.Errorf("market = %+v", cfg.Market)
	}
	if cfg.PollInterval() != 300*time.Second {
		t.Errorf("PollInterval = %v", cfg.PollInterval())
	}
	if cfg.Polling.MinSleep != 5*time.Second || cfg.Polling.FailureBackoff != 60*time.Second {
		t.Errorf("polling = %+v", cfg.Polling)
	}
	if cfg.Exchange.UserAgent != "CryptoEngulfingAlertBot/1.0" {
		t.Errorf("UserAgent = %q", cfg.Exchange.UserAgent)
	}
	if cfg.FCM.Title != "Alerta Crypto" || cfg.FCM.Topic != "all" {
		t.Errorf("fcm = %+v", cfg.FCM)
	}
	if cfg.NATS.Subject != "alerts.engulfing" {
		t.Errorf("NATS subject = %q", cfg.NATS.Subject)
	}

	var names []string
	for _, p := range cfg.ProviderChain {
		names = append(names, p.Name)
	}
	if got := strings.Join(names, ","); got != "binance,bybit,kucoin" {
		t.Errorf("provider chain = %s", got)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"SYMBOL":         "ethusdt",
		"INTERVAL":       "240m",
		"CHECK_INTERVAL": "60",
		"PROVIDERS":      "kucoin,binance",
		"REDIS_ENABLED":  "true",
		"REDIS_PORT":     "6380",
		"DB_HOST":        "db",
		"LOG_LEVEL":      "debug",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Market.Symbol != "ETHUSDT" {
		t.Errorf("Symbol = %q", cfg.Market.Symbol)
	}
	if cfg.Market.Interval != "4h" {
		t.Errorf("Interval = %q", cfg.Market.Interval)
	}
	if cfg.PollInterval() != time.Minute {
		t.Errorf("PollInterval = %v", cfg.PollInterval())
	}
	if len(cfg.ProviderChain) != 2 || cfg.ProviderChain[0].Name != "kucoin" {
		t.Errorf("chain = %+v", cfg.ProviderChain)
	}
	if !cfg.Redis.Enabled || cfg.GetRedisAddress() != "localhost:6380" {
		t.Errorf("redis = %+v", cfg.Redis)
	}
	if cfg.Database.Host != "db" {
		t.Errorf("db host = %s", cfg.Database.Host)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad interval", map[string]string{"INTERVAL": "7m"}, "INTERVAL"},
		{"monthly interval", map[string]string{"INTERVAL": "1M"}, "INTERVAL"},
		{"zero check interval", map[string]string{"CHECK_INTERVAL": "0"}, "CHECK_INTERVAL"},
		{"short limit", map[string]string{"CANDLE_LIMIT": "1"}, "CANDLE_LIMIT"},
		{"unknown provider", map[string]string{"PROVIDERS": "binance,okx"}, "okx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, tt.env)
			if err == nil {
				t.Fatal("expected error")
			}
			if !IsConfigError(err) {
				t.Errorf("error %T is not ConfigError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestChannels(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"TELEGRAM_TOKEN": "123:abc",
		"NATS_URL":       "nats://localhost:4222",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ChannelEnabled(ChannelTelegram) {
		t.Error("telegram must be disabled without CHAT_ID")
	}
	if cfg.ChannelEnabled(ChannelFCM) {
		t.Error("fcm must be disabled without credentials")
	}
	if !cfg.ChannelEnabled(ChannelNATS) {
		t.Error("nats must be enabled")
	}

	for _, ch := range cfg.Channels() {
		if !ch.Enabled && ch.Reason == "" {
			t.Errorf("channel %s disabled without reason", ch.Name)
		}
	}
}

func TestProvidersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.yaml")
	content := `providers:
  - name: Bybit
    base_urls:
      - http://bybit.local
      - http://bybit-mirror.local
  - name: binance
    enabled: false
    base_urls: [http://binance.local]
  - name: kucoin
    base_urls: [http://kucoin.local]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	chain, err := ResolveProviders(nil, path)
	if err != nil {
		t.Fatalf("ResolveProviders: %v", err)
	}
	if len(chain) != 2 || chain[0].Name != "bybit" || chain[1].Name != "kucoin" {
		t.Fatalf("chain = %+v", chain)
	}
	if len(chain[0].BaseURLs) != 2 {
		t.Errorf("bybit mirrors = %v", chain[0].BaseURLs)
	}

	if _, err := ResolveProviders([]string{"binance"}, path); err == nil {
		t.Error("disabled provider must not be selectable")
	}
}

func TestMaskToken(t *testing.T) {
	if got := maskToken("1234567890:ABCDEFGHIJKLMNOPQRSTUVWXYZ"); strings.Contains(got, "ABCDEFGHIJ") {
		t.Errorf("token not masked: %s", got)
	}
	if got := maskToken("abc"); got != "***" {
		t.Errorf("short token = %s", got)
	}
}
