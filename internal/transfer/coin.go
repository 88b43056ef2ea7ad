package transfer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vietddude/payout/internal/core/domain"
	"github.com/vietddude/payout/internal/infra/chain/tron"
)

// CoinService executes native-coin transfers. Plain balance moves consume
// only bandwidth, which the free daily allotment covers for typical payout
// volumes, so the pipeline skips the resource fee check and reports "0".
type CoinService struct {
	chain *Chain
	rec   *Recorder
	log   *slog.Logger
}

// NewCoinService creates a native-coin transfer service.
func NewCoinService(chain *Chain, rec *Recorder) *CoinService {
	return &CoinService{
		chain: chain,
		rec:   rec,
		log:   slog.Default().With("component", "coin_transfer"),
	}
}

// Balance returns the account's native balance in display units.
func (s *CoinService) Balance(ctx context.Context, owner string) (string, error) {
	addr, err := tron.ParseAddress(owner)
	if err != nil {
		return "", err
	}
	bal, err := s.chain.Node.GetBalance(ctx, addr)
	if err != nil {
		return "", err
	}
	return domain.ToDisplayUnits(bal, s.chain.NativeDecimals)
}

// Transfer validates, builds, signs, and broadcasts a native transfer.
func (s *CoinService) Transfer(ctx context.Context, req domain.TransferRequest) (*domain.TransferResult, error) {
	res, err := s.transfer(ctx, req)
	if err != nil {
		s.rec.RecordRejected(domain.AssetNative)
		return nil, err
	}
	s.rec.RecordBroadcast(ctx, domain.AssetNative, req, res)
	return res, nil
}

func (s *CoinService) transfer(ctx context.Context, req domain.TransferRequest) (*domain.TransferResult, error) {
	from, err := tron.ParseAddress(req.From)
	if err != nil {
		return nil, fmt.Errorf("sender: %w", err)
	}
	to, err := tron.ParseAddress(req.To)
	if err != nil {
		return nil, fmt.Errorf("recipient: %w", err)
	}
	if from.Equal(to) {
		return nil, fmt.Errorf("%w: sender and recipient are the same account", domain.ErrInvalidAddress)
	}
	amount, err := validateAmount(req.Amount, s.chain.NativeDecimals)
	if err != nil {
		return nil, err
	}

	balance, err := s.chain.Node.GetBalance(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("fetch balance: %w", err)
	}
	amount, err = applyBalance(amount, balance, req.Options.BestEffort)
	if err != nil {
		return nil, err
	}

	tx, err := s.chain.Node.BuildTransfer(ctx, from, to, amount, req.Options.MinTimestamp)
	if err != nil {
		return nil, err
	}

	txID, err := s.chain.signAndBroadcast(ctx, tx, req.PrivateKey)
	if err != nil {
		return nil, err
	}

	effective, err := domain.ToDisplayUnits(amount, s.chain.NativeDecimals)
	if err != nil {
		return nil, err
	}

	s.log.Info("native transfer broadcast",
		"tx_id", txID,
		"from", from.Display(),
		"to", to.Display(),
		"amount", effective)

	return &domain.TransferResult{TxID: txID, Amount: effective, Fee: "0"}, nil
}
