package util

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Parse a decimal amount of native tokens (e.g. "0.0001") into base units
// given the number of `decimals` of the token (e.g. 18 for ether).
// Amounts with more fractional digits than `decimals` are rejected rather
// than silently truncated.
func ParseUnits(amount string, decimals int) (*big.Int, error) {
	var whole, frac string
	var ret, scale, fracv *big.Int
	var dot int
	var ok bool

	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, fmt.Errorf("empty amount")
	}

	if strings.HasPrefix(amount, "-") {
		return nil, fmt.Errorf("negative amount '%s'", amount)
	}

	dot = strings.IndexByte(amount, '.')
	if dot < 0 {
		whole = amount
		frac = ""
	} else {
		whole = amount[:dot]
		frac = amount[dot+1:]
	}

	if whole == "" {
		whole = "0"
	}

	frac = strings.TrimRight(frac, "0")
	if len(frac) > decimals {
		return nil, fmt.Errorf("amount '%s' exceeds %d decimals",
			amount, decimals)
	}

	scale = new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)),
		nil)

	ret, ok = new(big.Int).SetString(whole, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount '%s'", amount)
	}

	ret.Mul(ret, scale)

	if frac != "" {
		frac = frac + strings.Repeat("0", decimals-len(frac))
		fracv, ok = new(big.Int).SetString(frac, 10)
		if !ok {
			return nil, fmt.Errorf("invalid amount '%s'", amount)
		}
		ret.Add(ret, fracv)
	}

	return ret, nil
}

// Format an amount of base units as a decimal string of native tokens with
// no trailing zeros (e.g. 1000000000000000 wei is "0.001").
func FormatUnits(value *big.Int, decimals int) string {
	var scale, whole, frac *big.Int
	var fracs string
	var neg bool

	if value == nil {
		return "0"
	}

	neg = value.Sign() < 0

	scale = new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)),
		nil)
	whole, frac = new(big.Int).QuoRem(new(big.Int).Abs(value), scale,
		new(big.Int))

	fracs = frac.String()
	if decimals > 0 {
		fracs = strings.Repeat("0", decimals-len(fracs)) + fracs
	}
	fracs = strings.TrimRight(fracs, "0")

	if neg {
		if fracs == "" {
			return "-" + whole.String()
		}
		return "-" + whole.String() + "." + fracs
	}

	if fracs == "" {
		return whole.String()
	}

	return whole.String() + "." + fracs
}

// Convert an amount of base units into a float of native tokens.
// The conversion goes through the exact decimal representation so that
// e.g. 1000000000000000 wei becomes exactly the float literal 0.001.
func UnitsToFloat(value *big.Int, decimals int) float64 {
	var ret float64
	var err error

	ret, err = strconv.ParseFloat(FormatUnits(value, decimals), 64)
	if err != nil {
		return 0
	}

	return ret
}
