package tron

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/vietddude/payout/internal/core/domain"
)

func TestEncodeTransferParams(t *testing.T) {
	to, err := ParseAddress("TNPeeaaFB7K9cmo4uQpcU32zGK8G1NYqeL")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	params, err := EncodeTransferParams(to, big.NewInt(5_000_000))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	want := "0000000000000000000000008840e6c55b9ada326d211d818c34a994aeced808" +
		"00000000000000000000000000000000000000000000000000000000004c4b40"
	if params != want {
		t.Errorf("params mismatch:\n got %s\nwant %s", params, want)
	}
}

func TestEncodeTransferParams_NegativeAmount(t *testing.T) {
	to, _ := ParseAddress("TNPeeaaFB7K9cmo4uQpcU32zGK8G1NYqeL")
	if _, err := EncodeTransferParams(to, big.NewInt(-1)); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestEncodeUint256(t *testing.T) {
	tests := []struct {
		in   *big.Int
		want string
	}{
		{big.NewInt(0), strings.Repeat("0", 64)},
		{big.NewInt(1), strings.Repeat("0", 63) + "1"},
		{big.NewInt(255), strings.Repeat("0", 62) + "ff"},
	}
	for _, tt := range tests {
		if got := EncodeUint256(tt.in); got != tt.want {
			t.Errorf("EncodeUint256(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDecodeUint256(t *testing.T) {
	v, err := DecodeUint256(strings.Repeat("0", 62) + "ff")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Int64() != 255 {
		t.Errorf("got %s, want 255", v)
	}

	// The node elides all-zero constant results.
	v, err = DecodeUint256("")
	if err != nil {
		t.Fatalf("decode empty: %v", err)
	}
	if v.Sign() != 0 {
		t.Errorf("empty blob should decode to zero, got %s", v)
	}

	if _, err := DecodeUint256("zzzz"); err == nil {
		t.Error("expected error for non-hex input")
	}
}

func TestDecodeUint256_RoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1", "1000000", "340282366920938463463374607431768211455"} {
		n, _ := new(big.Int).SetString(s, 10)
		back, err := DecodeUint256(EncodeUint256(n))
		if err != nil {
			t.Fatalf("round trip %s: %v", s, err)
		}
		if back.Cmp(n) != 0 {
			t.Errorf("round trip %s: got %s", s, back)
		}
	}
}
