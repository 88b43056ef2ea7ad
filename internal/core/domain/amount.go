package domain

import (
	"fmt"
	"math/big"
	"strings"
)

// Amount handling uses exact scaled-integer arithmetic on big.Int. Binary
// floating point never touches balances, fees, or transfer amounts.

// ToBaseUnits converts a human decimal amount into integer base units by
// scaling with 10^decimals. Fractional digits beyond the asset precision are
// truncated, never rounded up.
func ToBaseUnits(amount string, decimals int) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}
	if strings.HasPrefix(amount, "-") {
		return nil, fmt.Errorf("%w: negative amount %s", ErrInvalidAmount, amount)
	}
	amount = strings.TrimPrefix(amount, "+")

	intPart := amount
	fracPart := ""
	if i := strings.IndexByte(amount, '.'); i >= 0 {
		intPart, fracPart = amount[:i], amount[i+1:]
	}
	if intPart == "" && fracPart == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) || (fracPart != "" && !isDigits(fracPart)) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}

	if len(fracPart) > decimals {
		fracPart = fracPart[:decimals]
	}
	fracPart += strings.Repeat("0", decimals-len(fracPart))

	n, ok := new(big.Int).SetString(intPart+fracPart, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	return n, nil
}

// ToDisplayUnits converts integer base units into the human decimal form,
// stripping trailing fractional zeros. The integer part is always kept, so
// "0" never collapses to an empty string or a bare decimal point.
func ToDisplayUnits(baseUnits *big.Int, decimals int) (string, error) {
	if baseUnits == nil {
		return "", fmt.Errorf("%w: nil amount", ErrInvalidAmount)
	}
	if baseUnits.Sign() < 0 {
		return "", fmt.Errorf("%w: negative amount %s", ErrInvalidAmount, baseUnits)
	}

	s := baseUnits.String()
	if decimals == 0 {
		return s, nil
	}
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}

	intPart := s[:len(s)-decimals]
	fracPart := strings.TrimRight(s[len(s)-decimals:], "0")
	if fracPart == "" {
		return intPart, nil
	}
	return intPart + "." + fracPart, nil
}

// TruncateFraction limits a display amount to at most maxFrac fractional
// digits by truncation, then strips trailing zeros.
func TruncateFraction(amount string, maxFrac int) string {
	i := strings.IndexByte(amount, '.')
	if i < 0 {
		return amount
	}
	frac := amount[i+1:]
	if len(frac) > maxFrac {
		frac = frac[:maxFrac]
	}
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		return amount[:i]
	}
	return amount[:i] + "." + frac
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
