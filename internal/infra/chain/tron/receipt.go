package tron

import (
	"encoding/hex"
	"math/big"
)

// DecodeHexMessage turns a hex-encoded node message into readable text.
// Nodes hex-encode revert reasons and broadcast rejections; anything that is
// not valid hex comes back unchanged.
func DecodeHexMessage(msg string) string {
	if msg == "" {
		return ""
	}
	decoded, err := hex.DecodeString(msg)
	if err != nil {
		return msg
	}
	return string(decoded)
}

// TransferLog is a decoded token Transfer event.
type TransferLog struct {
	From  Address
	To    Address
	Value *big.Int
}

// FindTransferLog scans receipt logs for the first Transfer event emitted by
// the given token contract. Returns nil without error when no log matches.
func FindTransferLog(logs []EventLog, token Address) (*TransferLog, error) {
	for _, l := range logs {
		if len(l.Topics) < 3 || l.Topics[0] != TransferEventTopic {
			continue
		}
		emitter, err := ParseHexAddress(l.Address)
		if err != nil {
			continue
		}
		if !emitter.Equal(token) {
			continue
		}
		from, err := ParseHexAddress(l.Topics[1])
		if err != nil {
			return nil, err
		}
		to, err := ParseHexAddress(l.Topics[2])
		if err != nil {
			return nil, err
		}
		value, err := DecodeUint256(l.Data)
		if err != nil {
			return nil, err
		}
		return &TransferLog{From: from, To: to, Value: value}, nil
	}
	return nil, nil
}
