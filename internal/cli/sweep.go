package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vietddude/payout/internal/control"
	"github.com/vietddude/payout/internal/core/domain"
)

var (
	sweepAsset   string
	sweepKey     string
	sweepReserve string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep <from> <to>",
	Short: "Transfer the full remaining balance",
	Long:  "Transfer the full remaining balance to <to>. Pass \"-\" as <from> to derive the sender address from the signing key.",
	Args:  cobra.ExactArgs(2),
	Run:   runSweep,
}

func init() {
	sweepCmd.Flags().StringVar(&sweepAsset, "asset", string(domain.AssetToken), "asset to sweep: trx or trc20")
	sweepCmd.Flags().StringVar(&sweepKey, "key", "", "signing key reference passed to the signer service")
	sweepCmd.Flags().StringVar(&sweepReserve, "reserve", "0", "amount to leave behind, in display units")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	if sweepKey == "" {
		sweepKey = os.Getenv("PAYOUT_SIGNING_KEY")
	}
	if sweepKey == "" {
		slog.Error("No signing key: pass --key or set PAYOUT_SIGNING_KEY")
		os.Exit(1)
	}

	app, err := control.NewService(*cfg)
	if err != nil {
		slog.Error("Failed to initialize service", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = app.Stop()
	}()

	ctx := context.Background()

	from := args[0]
	if from == "-" {
		from, err = app.Wallet().DeriveAddress(ctx, sweepKey)
		if err != nil {
			slog.Error("Failed to derive sender address", "error", err)
			os.Exit(1)
		}
		slog.Info("Derived sender address", "address", from)
	}

	var (
		balance  string
		decimals int
	)
	switch domain.Asset(sweepAsset) {
	case domain.AssetNative:
		balance, err = app.Coins.Balance(ctx, from)
		decimals = cfg.Chain.NativeDecimals
	case domain.AssetToken:
		if app.Tokens == nil {
			slog.Error("No token contract configured")
			os.Exit(1)
		}
		balance, err = app.Tokens.Balance(ctx, from)
		decimals = cfg.Chain.Token.Decimals
	default:
		slog.Error("Unknown asset", "asset", sweepAsset)
		os.Exit(1)
	}
	if err != nil {
		slog.Error("Failed to fetch balance", "error", err)
		os.Exit(1)
	}

	amount, err := subtractReserve(balance, sweepReserve, decimals)
	if err != nil {
		slog.Error("Nothing to sweep", "balance", balance, "reserve", sweepReserve, "error", err)
		os.Exit(1)
	}

	req := domain.TransferRequest{
		From:       from,
		To:         args[1],
		Amount:     amount,
		PrivateKey: sweepKey,
		// Best effort absorbs balance changes between the query and the
		// transfer itself.
		Options: domain.TransferOptions{BestEffort: true},
	}

	var res *domain.TransferResult
	if domain.Asset(sweepAsset) == domain.AssetNative {
		res, err = app.Coins.Transfer(ctx, req)
	} else {
		res, err = app.Tokens.Transfer(ctx, req)
	}
	if err != nil {
		slog.Error("Sweep failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("tx_id:  %s\namount: %s\nfee:    %s\n", res.TxID, res.Amount, res.Fee)
}

func subtractReserve(balance, reserve string, decimals int) (string, error) {
	bal, err := domain.ToBaseUnits(balance, decimals)
	if err != nil {
		return "", err
	}
	res, err := domain.ToBaseUnits(reserve, decimals)
	if err != nil {
		return "", fmt.Errorf("invalid reserve: %w", err)
	}
	remaining := bal.Sub(bal, res)
	if remaining.Sign() <= 0 {
		return "", fmt.Errorf("balance %s does not exceed reserve %s", balance, reserve)
	}
	return domain.ToDisplayUnits(remaining, decimals)
}
