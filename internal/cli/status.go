package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vietddude/payout/internal/control"
	"github.com/vietddude/payout/internal/core/domain"
	"github.com/vietddude/payout/internal/infra/chain/tron"
	"github.com/vietddude/payout/internal/infra/storage/postgres"
	"github.com/vietddude/payout/internal/transfer"
)

var statusLimit int

var statusCmd = &cobra.Command{
	Use:   "status [txid]",
	Short: "Show recent transfers, or look one up on chain",
	Long:  "Without arguments, lists recent transfers from the journal. With a transaction id, queries the chain directly.",
	Args:  cobra.MaximumNArgs(1),
	Run:   runStatus,
}

func init() {
	statusCmd.Flags().IntVar(&statusLimit, "limit", 20, "number of transfers to show")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	if len(args) == 1 {
		runStatusLookup(args[0])
		return
	}
	runStatusList()
}

func runStatusLookup(txID string) {
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
	node := app.Node()

	tx, err := node.GetTransaction(ctx, txID)
	if err != nil {
		slog.Error("Failed to fetch transaction", "error", err)
		os.Exit(1)
	}
	if tx == nil {
		fmt.Println("status: unknown")
		return
	}

	info, err := node.GetTransactionInfo(ctx, txID)
	if err != nil {
		slog.Error("Failed to fetch transaction info", "error", err)
		os.Exit(1)
	}

	var contract tron.Address
	if cfg.Chain.Token.Contract != "" {
		contract, err = tron.ParseAddress(cfg.Chain.Token.Contract)
		if err != nil {
			slog.Error("Invalid token contract in config", "error", err)
			os.Exit(1)
		}
	}

	decoded, err := transfer.DecodeTransactionInfo(info, contract, cfg.Chain.Token.Decimals, cfg.Chain.NativeDecimals)
	var execErr *domain.ExecutionFailedError
	if errors.As(err, &execErr) {
		fmt.Printf("status: failed\nreason: %s\n", execErr.Reason)
		return
	}
	if err != nil {
		slog.Error("Failed to decode transaction info", "error", err)
		os.Exit(1)
	}
	if decoded == nil {
		fmt.Println("status: pending")
		return
	}

	fmt.Printf("status: confirmed\nfee:    %s\n", decoded.Fee)
	if decoded.From != "" {
		fmt.Printf("from:   %s\nto:     %s\namount: %s\n", decoded.From, decoded.To, decoded.Amount)
	}
}

func runStatusList() {
	cfg := loadConfig()

	if cfg.Database.URL == "" {
		slog.Error("No database configured; the status command needs the transfer journal")
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = db.Close()
	}()

	recs, err := postgres.NewTransferRepo(db).ListRecent(ctx, statusLimit)
	if err != nil {
		slog.Error("Failed to query transfers", "error", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "TXID\tASSET\tTO\tAMOUNT\tFEE\tSTATUS\tCREATED")
	for _, r := range recs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.TxID, r.Asset, r.To, r.EffectiveAmount, r.Fee, r.Status,
			r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	_ = w.Flush()
}
