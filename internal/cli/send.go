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
	sendAsset      string
	sendKey        string
	sendBestEffort bool
	sendFeeLimit   int64
)

var sendCmd = &cobra.Command{
	Use:   "send <from> <to> <amount>",
	Short: "Execute a transfer",
	Long:  "Execute a transfer. Pass \"-\" as <from> to derive the sender address from the signing key.",
	Args:  cobra.ExactArgs(3),
	Run:   runSend,
}

func init() {
	sendCmd.Flags().StringVar(&sendAsset, "asset", string(domain.AssetToken), "asset to transfer: trx or trc20")
	sendCmd.Flags().StringVar(&sendKey, "key", "", "signing key reference passed to the signer service")
	sendCmd.Flags().BoolVar(&sendBestEffort, "best-effort", false, "clamp the amount to the available balance instead of failing")
	sendCmd.Flags().Int64Var(&sendFeeLimit, "fee-limit", 0, "fee limit in sun (0 = configured default)")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	if sendKey == "" {
		sendKey = os.Getenv("PAYOUT_SIGNING_KEY")
	}
	if sendKey == "" {
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
		from, err = app.Wallet().DeriveAddress(ctx, sendKey)
		if err != nil {
			slog.Error("Failed to derive sender address", "error", err)
			os.Exit(1)
		}
		slog.Info("Derived sender address", "address", from)
	}

	req := domain.TransferRequest{
		From:       from,
		To:         args[1],
		Amount:     args[2],
		PrivateKey: sendKey,
		Options: domain.TransferOptions{
			BestEffort: sendBestEffort,
			FeeLimit:   sendFeeLimit,
		},
	}

	var res *domain.TransferResult
	switch domain.Asset(sendAsset) {
	case domain.AssetNative:
		res, err = app.Coins.Transfer(ctx, req)
	case domain.AssetToken:
		if app.Tokens == nil {
			slog.Error("No token contract configured")
			os.Exit(1)
		}
		res, err = app.Tokens.Transfer(ctx, req)
	default:
		slog.Error("Unknown asset", "asset", sendAsset)
		os.Exit(1)
	}
	if err != nil {
		slog.Error("Transfer failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("tx_id:  %s\namount: %s\nfee:    %s\n", res.TxID, res.Amount, res.Fee)
}
