package tron

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/vietddude/payout/internal/core/domain"
)

// Selectors for the fungible-token standard. The node takes the textual
// selector in the function_selector field and hashes it itself; only the
// argument block travels in the parameter field.
const (
	TransferSelector  = "transfer(address,uint256)"
	BalanceOfSelector = "balanceOf(address)"

	// TransferEventTopic is keccak256("Transfer(address,address,uint256)"),
	// topic-0 of every standard token transfer event.
	TransferEventTopic = "ddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"
)

// wordHexLen is one 32-byte ABI word in hex characters.
const wordHexLen = 64

// EncodeTransferParams encodes the (recipient, amount) argument block for
// transfer(address,uint256).
func EncodeTransferParams(to Address, amount *big.Int) (string, error) {
	if amount == nil || amount.Sign() < 0 {
		return "", fmt.Errorf("%w: transfer amount must be non-negative", domain.ErrInvalidAmount)
	}
	return to.PaddedParameter() + EncodeUint256(amount), nil
}

// EncodeBalanceOfParams encodes the argument block for balanceOf(address).
func EncodeBalanceOfParams(owner Address) string {
	return owner.PaddedParameter()
}

// EncodeUint256 left-pads the hex form of v to one ABI word.
func EncodeUint256(v *big.Int) string {
	s := v.Text(16)
	if len(s) < wordHexLen {
		s = strings.Repeat("0", wordHexLen-len(s)) + s
	}
	return s
}

// DecodeUint256 parses a hex-encoded ABI word into an integer. An empty blob
// reads as zero, matching how the node omits all-zero results.
func DecodeUint256(s string) (*big.Int, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("invalid uint256 %q", s)
	}
	return v, nil
}
