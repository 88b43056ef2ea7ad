package transfer

import (
	"context"
	"encoding/json"
)

// Signer turns an unsigned node-built transaction into a signed one. The
// key material is opaque here: a raw key, a key reference, or whatever the
// implementation understands.
type Signer interface {
	Sign(ctx context.Context, unsigned json.RawMessage, keyMaterial string) (json.RawMessage, error)
}

// WalletFactory derives the account address controlled by key material.
// Used when callers supply a key but no sender address.
type WalletFactory interface {
	DeriveAddress(ctx context.Context, keyMaterial string) (string, error)
}
