package tron

import (
	"math/big"
	"strings"
	"testing"
)

func TestDecodeHexMessage(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"revert reason", "524556455254206f70636f6465206578656375746564", "REVERT opcode executed"},
		{"not hex passes through", "Sigerror", "Sigerror"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeHexMessage(tt.in); got != tt.want {
				t.Errorf("DecodeHexMessage(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFindTransferLog(t *testing.T) {
	token, _ := ParseAddress("TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t")
	from, _ := ParseAddress("TNPeeaaFB7K9cmo4uQpcU32zGK8G1NYqeL")
	to, _ := ParseAddress("T9yD14Nj9j7xAB4dbGeiX9h8unkKHxuWwb")

	transferLog := EventLog{
		Address: token.Hex(false),
		Topics: []string{
			TransferEventTopic,
			strings.Repeat("0", 24) + from.Hex(false),
			strings.Repeat("0", 24) + to.Hex(false),
		},
		Data: EncodeUint256(big.NewInt(1_500_000)),
	}

	log, err := FindTransferLog([]EventLog{transferLog}, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log == nil {
		t.Fatal("expected a transfer log")
	}
	if !log.From.Equal(from) || !log.To.Equal(to) {
		t.Errorf("decoded parties mismatch: from=%s to=%s", log.From, log.To)
	}
	if log.Value.Int64() != 1_500_000 {
		t.Errorf("decoded value = %s, want 1500000", log.Value)
	}
}

func TestFindTransferLog_NoMatch(t *testing.T) {
	token, _ := ParseAddress("TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t")
	other, _ := ParseAddress("TNPeeaaFB7K9cmo4uQpcU32zGK8G1NYqeL")

	tests := []struct {
		name string
		logs []EventLog
	}{
		{"no logs", nil},
		{"wrong topic", []EventLog{{
			Address: token.Hex(false),
			Topics:  []string{strings.Repeat("ab", 32), "", ""},
		}}},
		{"wrong emitter", []EventLog{{
			Address: other.Hex(false),
			Topics: []string{
				TransferEventTopic,
				strings.Repeat("0", 64),
				strings.Repeat("0", 64),
			},
			Data: strings.Repeat("0", 64),
		}}},
		{"short topics", []EventLog{{
			Address: token.Hex(false),
			Topics:  []string{TransferEventTopic},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := FindTransferLog(tt.logs, token)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if log != nil {
				t.Errorf("expected no match, got %+v", log)
			}
		})
	}
}
