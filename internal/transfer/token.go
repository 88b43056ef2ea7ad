package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/vietddude/payout/internal/core/domain"
	"github.com/vietddude/payout/internal/infra/chain/tron"
	"github.com/vietddude/payout/internal/transfer/metrics"
)

// TokenService executes fungible-token transfers against one configured
// contract. The pipeline is strictly sequential: validate, encode, simulate,
// build, check the fee, then broadcast exactly once.
type TokenService struct {
	chain    *Chain
	contract tron.Address
	decimals int
	rec      *Recorder
	log      *slog.Logger
}

// NewTokenService creates a token transfer service for one contract.
func NewTokenService(chain *Chain, contract tron.Address, decimals int, rec *Recorder) *TokenService {
	return &TokenService{
		chain:    chain,
		contract: contract,
		decimals: decimals,
		rec:      rec,
		log:      slog.Default().With("component", "token_transfer", "contract", contract.Display()),
	}
}

// Balance returns the sender's token balance in display units.
func (s *TokenService) Balance(ctx context.Context, owner string) (string, error) {
	addr, err := tron.ParseAddress(owner)
	if err != nil {
		return "", err
	}
	bal, err := s.chain.Node.TokenBalance(ctx, s.contract, addr)
	if err != nil {
		return "", err
	}
	return domain.ToDisplayUnits(bal, s.decimals)
}

// Transfer runs the full token transfer pipeline and returns the accepted
// transaction id with the effective amount and estimated fee.
func (s *TokenService) Transfer(ctx context.Context, req domain.TransferRequest) (*domain.TransferResult, error) {
	res, err := s.transfer(ctx, req)
	if err != nil {
		s.rec.RecordRejected(domain.AssetToken)
		return nil, err
	}
	s.rec.RecordBroadcast(ctx, domain.AssetToken, req, res)
	return res, nil
}

func (s *TokenService) transfer(ctx context.Context, req domain.TransferRequest) (*domain.TransferResult, error) {
	from, err := tron.ParseAddress(req.From)
	if err != nil {
		return nil, fmt.Errorf("sender: %w", err)
	}
	to, err := tron.ParseAddress(req.To)
	if err != nil {
		return nil, fmt.Errorf("recipient: %w", err)
	}
	amount, err := validateAmount(req.Amount, s.decimals)
	if err != nil {
		return nil, err
	}

	balance, err := s.chain.Node.TokenBalance(ctx, s.contract, from)
	if err != nil {
		return nil, fmt.Errorf("fetch token balance: %w", err)
	}
	amount, err = applyBalance(amount, balance, req.Options.BestEffort)
	if err != nil {
		return nil, err
	}

	params, err := tron.EncodeTransferParams(to, amount)
	if err != nil {
		return nil, err
	}

	// Simulate before spending anything. A failing transfer would still
	// burn the sender's energy if broadcast.
	sim, err := s.chain.Node.ConstantCall(ctx, from, s.contract, tron.TransferSelector, params)
	if err != nil {
		return nil, fmt.Errorf("simulate transfer: %w", err)
	}
	if !sim.Result.Result {
		return nil, &domain.SimulationFailedError{
			Code:    sim.Result.Code,
			Message: tron.DecodeHexMessage(sim.Result.Message),
		}
	}

	tx, err := s.chain.Node.BuildTrigger(ctx, from, s.contract, tron.TransferSelector, params, s.chain.feeLimitFor(req.Options))
	if err != nil {
		return nil, err
	}

	est, err := s.checkFee(ctx, from, tx, sim.EnergyUsed)
	if err != nil {
		return nil, err
	}

	txID, err := s.chain.signAndBroadcast(ctx, tx, req.PrivateKey)
	if err != nil {
		return nil, err
	}

	effective, err := domain.ToDisplayUnits(amount, s.decimals)
	if err != nil {
		return nil, err
	}

	if !est.IsFree() {
		feeSun, _ := new(big.Float).SetInt(est.FeeSun).Float64()
		metrics.TransferFeeSun.WithLabelValues(string(domain.AssetToken)).Observe(feeSun)
	}

	s.log.Info("token transfer broadcast",
		"tx_id", txID,
		"from", from.Display(),
		"to", to.Display(),
		"amount", effective,
		"fee", est.Fee)

	return &domain.TransferResult{TxID: txID, Amount: effective, Fee: est.Fee}, nil
}

// checkFee verifies the sender can afford the resources the broadcast will
// burn. The unsigned transaction's serialized size stands in for bandwidth.
func (s *TokenService) checkFee(ctx context.Context, from tron.Address, tx *tron.Transaction, energyUsed int64) (domain.FeeEstimate, error) {
	serialized, err := json.Marshal(tx)
	if err != nil {
		return domain.FeeEstimate{}, fmt.Errorf("size transaction: %w", err)
	}
	txBytes := EstimateTransactionBytes(len(serialized))

	quota, err := s.chain.Node.GetResourceQuota(ctx, from)
	if err != nil {
		return domain.FeeEstimate{}, fmt.Errorf("fetch resource quota: %w", err)
	}

	est, err := s.chain.Fees.Estimate(quota, energyUsed, txBytes)
	if err != nil {
		return domain.FeeEstimate{}, err
	}
	if est.IsFree() {
		return est, nil
	}

	native, err := s.chain.Node.GetBalance(ctx, from)
	if err != nil {
		return domain.FeeEstimate{}, fmt.Errorf("fetch native balance: %w", err)
	}
	if native.Cmp(est.FeeSun) < 0 {
		available, derr := domain.ToDisplayUnits(native, s.chain.NativeDecimals)
		if derr != nil {
			available = native.String()
		}
		return domain.FeeEstimate{}, &domain.GasShortageError{
			Available: available,
			Required:  est.Fee,
		}
	}
	return est, nil
}
