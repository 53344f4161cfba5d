// application/commands/providers.go
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"crypto-engulfing-alert-bot/internal/core/domain/fetchers"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Print the resolved provider fallback chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}

		chain, err := fetchers.NewProviderFactory(cfg.Exchange.HTTPTimeout, cfg.Exchange.UserAgent).BuildChain(cfg.ProviderChain)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Symbol %s, interval %s, %d candles\n", cfg.Market.Symbol, cfg.Market.Interval, cfg.Market.CandleLimit)
		for i, p := range chain {
			fmt.Fprintf(out, "%d. %s\n", i+1, p.Name())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
