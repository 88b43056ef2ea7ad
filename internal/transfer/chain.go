package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/vietddude/payout/internal/core/domain"
	"github.com/vietddude/payout/internal/infra/chain/tron"
)

// Chain bundles the per-chain capabilities the coin and token services
// share: node access, signing, and fee pricing. Services hold a Chain by
// composition; nothing is embedded.
type Chain struct {
	Node            *tron.NodeClient
	Signer          Signer
	Fees            *FeeEstimator
	NativeDecimals  int
	DefaultFeeLimit int64

	log *slog.Logger
}

// NewChain assembles the shared chain capabilities.
func NewChain(node *tron.NodeClient, signer Signer, fees *FeeEstimator, nativeDecimals int, defaultFeeLimit int64) *Chain {
	return &Chain{
		Node:            node,
		Signer:          signer,
		Fees:            fees,
		NativeDecimals:  nativeDecimals,
		DefaultFeeLimit: defaultFeeLimit,
		log:             slog.Default().With("component", "transfer"),
	}
}

func (c *Chain) feeLimitFor(opts domain.TransferOptions) int64 {
	if opts.FeeLimit > 0 {
		return opts.FeeLimit
	}
	return c.DefaultFeeLimit
}

// signAndBroadcast hands the node-built transaction to the signer and
// submits the result. One attempt only: a rejected broadcast surfaces as a
// BroadcastError, never a silent retry that could double-spend.
func (c *Chain) signAndBroadcast(ctx context.Context, tx *tron.Transaction, keyMaterial string) (string, error) {
	unsigned, err := json.Marshal(tx)
	if err != nil {
		return "", fmt.Errorf("marshal unsigned transaction: %w", err)
	}

	signed, err := c.Signer.Sign(ctx, unsigned, keyMaterial)
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}

	txID, err := c.Node.Broadcast(ctx, signed)
	if err != nil {
		return "", err
	}
	if txID == "" {
		txID = tx.TxID
	}
	return txID, nil
}

// applyBalance resolves the requested amount against the available balance.
// Best-effort clamps to what is there; a zero balance fails either way.
func applyBalance(amount, balance *big.Int, bestEffort bool) (*big.Int, error) {
	if balance.Sign() <= 0 {
		return nil, fmt.Errorf("%w: balance is zero", domain.ErrInsufficientBalance)
	}
	if amount.Cmp(balance) <= 0 {
		return amount, nil
	}
	if bestEffort {
		return new(big.Int).Set(balance), nil
	}
	return nil, fmt.Errorf("%w: have %s, need %s", domain.ErrInsufficientBalance, balance, amount)
}

// validateAmount parses and bounds-checks a display amount.
func validateAmount(amount string, decimals int) (*big.Int, error) {
	n, err := domain.ToBaseUnits(amount, decimals)
	if err != nil {
		return nil, err
	}
	if n.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero amount", domain.ErrInvalidAmount)
	}
	return n, nil
}
