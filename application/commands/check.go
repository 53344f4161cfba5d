// application/commands/check.go
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"crypto-engulfing-alert-bot/application/bootstrap"
	"crypto-engulfing-alert-bot/pkg/logger"
)

var checkNoJournal bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a single cycle and print the result",
	Long: `Fetches candles once, runs pattern and trend analysis and dispatches an alert
if a pattern is found. Prints the cycle result as JSON and exits.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkNoJournal, "no-journal", false, "do not connect Redis/PostgreSQL journals")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	builder := bootstrap.NewAppBuilder().
		WithConfig(cfg).
		WithOption(bootstrap.WithLogLevel(logLevel)).
		WithOption(bootstrap.WithGlobalLogger()).
		WithOption(bootstrap.WithoutHTTPServer())
	if checkNoJournal {
		builder.WithOption(bootstrap.WithoutJournals())
	}

	app, err := builder.Build(ctx)
	if err != nil {
		return err
	}
	defer logger.Close()
	defer app.Close()

	res, err := app.RunOnce(ctx)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
