// Package units converts between human decimal amounts and integer base units.
package units

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	// ErrEmptyAmount is returned for an empty or blank amount.
	ErrEmptyAmount = errors.New("amount is empty")
	// ErrNegativeAmount is returned when the amount carries a leading minus sign.
	ErrNegativeAmount = errors.New("amount is negative")
	// ErrMalformedAmount is returned when the digits cannot be parsed as an integer.
	ErrMalformedAmount = errors.New("amount is malformed")
)

// ParseBaseUnit scales a decimal amount by 10^decimals. Fractional digits beyond decimals are
// truncated, not rounded. A negative decimals value is treated as 0.
func ParseBaseUnit(amount string, decimals int) (*big.Int, error) {
	if decimals < 0 {
		decimals = 0
	}
	clean := strings.TrimSpace(amount)
	if clean == "" {
		return nil, ErrEmptyAmount
	}

	// Text after a second dot is ignored.
	integer, rest, _ := strings.Cut(clean, ".")
	fraction, _, _ := strings.Cut(rest, ".")
	if len(fraction) > decimals {
		fraction = fraction[:decimals]
	}
	if integer == "" {
		integer = "0"
	}
	if strings.HasPrefix(integer, "-") {
		return nil, ErrNegativeAmount
	}

	combined := integer + fraction + strings.Repeat("0", decimals-len(fraction))
	if !isDigits(combined) {
		return nil, fmt.Errorf("%w: %q", ErrMalformedAmount, amount)
	}

	value, ok := new(big.Int).SetString(combined, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMalformedAmount, amount)
	}
	return value, nil
}

// ToBaseUnit is the permissive form of ParseBaseUnit: any input it cannot parse yields "0".
// The result always matches ^[0-9]+$.
func ToBaseUnit(amount string, decimals int) string {
	value, err := ParseBaseUnit(amount, decimals)
	if err != nil {
		return "0"
	}
	return value.String()
}

// FromBaseUnit formats a base-unit integer as a decimal string with trailing zeros trimmed.
// Example: value=1500000, decimals=6 => "1.5"
func FromBaseUnit(value *big.Int, decimals int) string {
	if value == nil {
		return "0"
	}
	if decimals <= 0 {
		return value.String()
	}

	sign := ""
	abs := new(big.Int).Set(value)
	if abs.Sign() < 0 {
		sign = "-"
		abs.Neg(abs)
	}

	digits := abs.String()
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}
	intPart := digits[:len(digits)-decimals]
	fracPart := strings.TrimRight(digits[len(digits)-decimals:], "0")

	if fracPart == "" {
		if intPart == "0" {
			return "0"
		}
		return sign + intPart
	}
	return sign + intPart + "." + fracPart
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
