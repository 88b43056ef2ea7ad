package tron

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/vietddude/payout/internal/core/domain"
)

// AddressPrefix is the network byte carried by every mainnet address.
const AddressPrefix = 0x41

const (
	payloadLen  = 20
	rawLen      = payloadLen + 1
	topicLen    = 32
	checksumLen = 4
)

// Address is the canonical raw form: one network prefix byte followed by the
// 20-byte account payload. The payload alone is the account's identity; the
// prefix and checksum only exist in encodings.
type Address [rawLen]byte

// ParseAddress accepts any supported representation: the checksummed base58
// display form, prefixed or bare hex, or a 32-byte padded/topic value.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Address{}, fmt.Errorf("%w: empty input", domain.ErrInvalidAddress)
	}
	if s[0] == 'T' {
		return parseBase58(s)
	}
	return ParseHexAddress(s)
}

// ParseHexAddress parses the hex representations. Case-insensitive; a
// 32-byte value is read as a padded ABI parameter or event topic and
// stripped to its low 20 bytes.
func ParseHexAddress(s string) (Address, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", domain.ErrInvalidAddress, err)
	}

	var a Address
	a[0] = AddressPrefix
	switch len(raw) {
	case rawLen:
		if raw[0] != AddressPrefix {
			return Address{}, fmt.Errorf("%w: unexpected network prefix 0x%02x", domain.ErrInvalidAddress, raw[0])
		}
		copy(a[:], raw)
	case payloadLen:
		copy(a[1:], raw)
	case topicLen:
		copy(a[1:], raw[topicLen-payloadLen:])
	default:
		return Address{}, fmt.Errorf("%w: bad length %d", domain.ErrInvalidAddress, len(raw))
	}
	return a, nil
}

func parseBase58(s string) (Address, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", domain.ErrInvalidAddress, err)
	}
	if len(raw) != rawLen+checksumLen {
		return Address{}, fmt.Errorf("%w: bad length %d", domain.ErrInvalidAddress, len(raw))
	}

	var a Address
	copy(a[:], raw[:rawLen])
	if a[0] != AddressPrefix {
		return Address{}, fmt.Errorf("%w: unexpected network prefix 0x%02x", domain.ErrInvalidAddress, a[0])
	}
	if !bytes.Equal(raw[rawLen:], checksum(a[:])) {
		return Address{}, fmt.Errorf("%w: checksum mismatch", domain.ErrInvalidAddress)
	}
	return a, nil
}

func checksum(raw []byte) []byte {
	h1 := sha256.Sum256(raw)
	h2 := sha256.Sum256(h1[:])
	return h2[:checksumLen]
}

// Hex returns the lower-case hex form, with or without the network prefix.
func (a Address) Hex(withPrefix bool) string {
	if withPrefix {
		return hex.EncodeToString(a[:])
	}
	return hex.EncodeToString(a[1:])
}

// PaddedParameter returns the 32-byte zero-left-padded form used as an ABI
// call argument. Never a storage or display form.
func (a Address) PaddedParameter() string {
	return strings.Repeat("0", (topicLen-payloadLen)*2) + hex.EncodeToString(a[1:])
}

// Display returns the checksummed base58 form.
func (a Address) Display() string {
	buf := make([]byte, 0, rawLen+checksumLen)
	buf = append(buf, a[:]...)
	buf = append(buf, checksum(a[:])...)
	return base58.Encode(buf)
}

// Equal reports whether both addresses carry the same 20-byte payload.
func (a Address) Equal(b Address) bool {
	return bytes.Equal(a[1:], b[1:])
}

// IsZero reports whether the payload is all zero bytes.
func (a Address) IsZero() bool {
	for _, b := range a[1:] {
		if b != 0 {
			return false
		}
	}
	return true
}

func (a Address) String() string {
	return a.Display()
}
