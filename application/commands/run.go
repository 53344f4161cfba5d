// application/commands/run.go
package commands

import (
	"github.com/spf13/cobra"

	"crypto-engulfing-alert-bot/application/bootstrap"
	"crypto-engulfing-alert-bot/pkg/logger"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the polling loop and the status server",
	Long: `Starts the polling loop and the HTTP status server (GET /health, /health/live).
Stops on SIGINT/SIGTERM after the current step.

Examples:
  bot run
  bot run --config prod.env --log-level debug`,
	RunE: runBot,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runBot(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	app, err := bootstrap.NewAppBuilder().
		WithConfig(cfg).
		WithOption(bootstrap.WithLogLevel(logLevel)).
		WithOption(bootstrap.WithGlobalLogger()).
		Build(ctx)
	if err != nil {
		return err
	}
	defer logger.Close()

	cfg.PrintSummary()
	return app.Run(ctx)
}
