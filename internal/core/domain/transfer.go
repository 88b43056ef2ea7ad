package domain

import (
	"time"

	"github.com/google/uuid"
)

// Asset identifies what is being transferred.
type Asset string

const (
	AssetNative Asset = "trx"
	AssetToken  Asset = "trc20"
)

// TransferOptions are the caller-tunable knobs of a transfer.
type TransferOptions struct {
	// BestEffort clamps the amount to the available balance instead of
	// failing, which supports sweep-remaining-balance transfers. A zero
	// balance still fails.
	BestEffort bool

	// FeeLimit caps the resource fee the sender is willing to burn, in
	// native sub-units. Zero means the configured default.
	FeeLimit int64

	// MinTimestamp pins the transaction's earliest validity, in epoch
	// milliseconds. Zero lets the node choose.
	MinTimestamp int64
}

// TransferRequest describes one transfer invocation. All fields are
// request-scoped; nothing here outlives the call.
type TransferRequest struct {
	From   string
	To     string
	Amount string // display units

	// PrivateKey is opaque signing material handed to the Signer
	// collaborator. This package never interprets it.
	PrivateKey string

	Options TransferOptions
}

// TransferResult is the outcome of an accepted broadcast.
type TransferResult struct {
	TxID   string
	Amount string // effective amount after any best-effort clamp
	Fee    string // estimated burn, display units
}

// TransferStatus tracks a journaled transfer through confirmation.
type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferConfirmed TransferStatus = "confirmed"
	TransferFailed    TransferStatus = "failed"
)

// TransferRecord is one row of the transfer journal.
type TransferRecord struct {
	ID              uuid.UUID
	Asset           Asset
	From            string
	To              string
	RequestedAmount string
	EffectiveAmount string
	Fee             string
	TxID            string
	Status          TransferStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TransactionInfo is the reconciled view of a confirmed transaction,
// rebuilt from either a native transfer record or a decoded token event.
// Absent fields stay empty/zero rather than being omitted.
type TransactionInfo struct {
	Success bool
	ID      string
	From    string
	To      string
	Amount  string
	Fee     string
}
