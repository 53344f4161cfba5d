// application/commands/root.go
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"crypto-engulfing-alert-bot/internal/infrastructure/config"
)

var (
	configPath string
	logLevel   string
)

// rootCmd - без подкоманды работает как run
var rootCmd = &cobra.Command{
	Use:   "bot",
	Short: "Engulfing pattern alert bot",
	Long: `Polls candles for one symbol from Binance, Bybit or KuCoin (with fallback
between providers and their mirrors), detects bullish/bearish engulfing on the
last two candles and sends deduplicated alerts to Telegram, FCM and NATS.`,
	SilenceUsage: true,
	RunE:         runBot,
}

// Execute запускает CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".env", "path to .env file")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "log level override (debug, info, warn, error)")
}

// loadConfig читает .env и окружение
func loadConfig(ctx context.Context) (*config.Config, error) {
	return config.LoadConfig(ctx, configPath)
}

// signalContext отменяется по SIGINT/SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
