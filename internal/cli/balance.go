package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vietddude/payout/internal/control"
)

var balanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "Show native and token balances for an account",
	Args:  cobra.ExactArgs(1),
	Run:   runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	app, err := control.NewService(*cfg)
	if err != nil {
		slog.Error("Failed to initialize service", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = app.Stop()
	}()

	ctx := context.Background()

	native, err := app.Coins.Balance(ctx, args[0])
	if err != nil {
		slog.Error("Failed to fetch native balance", "error", err)
		os.Exit(1)
	}
	fmt.Printf("trx:   %s\n", native)

	if app.Tokens != nil {
		token, err := app.Tokens.Balance(ctx, args[0])
		if err != nil {
			slog.Error("Failed to fetch token balance", "error", err)
			os.Exit(1)
		}
		symbol := cfg.Chain.Token.Symbol
		if symbol == "" {
			symbol = "token"
		}
		fmt.Printf("%s: %s\n", symbol, token)
	}
}
