package transfer

import (
	"math/big"

	"github.com/vietddude/payout/internal/core/domain"
	"github.com/vietddude/payout/internal/infra/chain/tron"
)

const (
	receiptSuccess = "SUCCESS"
	resultFailed   = "FAILED"
)

// DecodeTransactionInfo rebuilds a token transfer's outcome from its
// confirmed receipt.
//
// The node reports two verdicts: the transaction-level result, FAILED when
// execution reverted, and the receipt result carrying the contract outcome.
// A FAILED transaction surfaces as ExecutionFailedError with the decoded
// node message. A receipt not yet at SUCCESS reads as not-yet-final: nil
// result, nil error. A successful receipt without a matching Transfer log
// (a contract call that moved nothing) yields a success with amount "0"
// and no parties.
func DecodeTransactionInfo(info *tron.TransactionInfo, token tron.Address, tokenDecimals, nativeDecimals int) (*domain.TransactionInfo, error) {
	if info == nil || info.ID == "" {
		return nil, nil
	}

	if info.Result == resultFailed {
		return nil, &domain.ExecutionFailedError{
			Reason: tron.DecodeHexMessage(info.ResMessage),
		}
	}
	if info.Receipt.Result != receiptSuccess {
		return nil, nil
	}

	fee, err := domain.ToDisplayUnits(big.NewInt(info.Fee), nativeDecimals)
	if err != nil {
		return nil, err
	}

	log, err := tron.FindTransferLog(info.Log, token)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return &domain.TransactionInfo{
			Success: true,
			ID:      info.ID,
			Amount:  "0",
			Fee:     fee,
		}, nil
	}

	amount, err := domain.ToDisplayUnits(log.Value, tokenDecimals)
	if err != nil {
		return nil, err
	}

	return &domain.TransactionInfo{
		Success: true,
		ID:      info.ID,
		From:    log.From.Display(),
		To:      log.To.Display(),
		Amount:  amount,
		Fee:     fee,
	}, nil
}

// NativeOutcome classifies an included native transfer from the raw
// transaction's per-contract results. Plain transfers carry no receipt, so
// ret[].contractRet is the only failure signal; an empty list counts as
// success.
func NativeOutcome(tx *tron.Transaction) domain.TransferStatus {
	if tx != nil {
		for _, ret := range tx.Ret {
			if ret.ContractRet != "" && ret.ContractRet != receiptSuccess {
				return domain.TransferFailed
			}
		}
	}
	return domain.TransferConfirmed
}
