// cmd/bot/main.go
package main

import (
	"os"

	"crypto-engulfing-alert-bot/application/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
